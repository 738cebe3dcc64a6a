package novx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/novel"
)

type reader struct {
	m      *novel.Model
	log    *zap.Logger
	strict bool
}

func (r *reader) readRoot(root *etree.Element) error {
	project := root.SelectElement("PROJECT")
	if project == nil {
		return fmt.Errorf("no PROJECT element found")
	}
	if err := r.readProject(project); err != nil {
		return err
	}
	if err := r.readWorldElements(root, "LOCATIONS", r.m.AddLocation, novel.LocationRoot); err != nil {
		return err
	}
	if err := r.readWorldElements(root, "ITEMS", r.m.AddItem, novel.ItemRoot); err != nil {
		return err
	}
	if err := r.readCharacters(root); err != nil {
		return err
	}
	if err := r.readChapters(root); err != nil {
		return err
	}
	if err := r.readPlotLines(root); err != nil {
		return err
	}
	if err := r.readProjectNotes(root); err != nil {
		return err
	}
	r.readProgress(root)
	return nil
}

// apply runs a validating entity setter, honoring the strictness policy:
// strict reading surfaces the error, lenient reading drops the value with a
// warning.
func (r *reader) apply(field, value string, set func(string) error) error {
	if value == "" {
		return nil
	}
	if err := set(value); err != nil {
		if r.strict {
			return err
		}
		r.log.Warn("Dropping malformed value", zap.String("field", field), zap.Error(err))
	}
	return nil
}

func (r *reader) intValue(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		ferr := &common.FormatError{Field: field, Value: value, Err: err}
		if r.strict {
			return 0, ferr
		}
		r.log.Warn("Dropping malformed value", zap.String("field", field), zap.Error(err))
		return 0, nil
	}
	return n, nil
}

// enumAttr maps an absent attribute to 0 and an unparsable one to -1, so the
// entity setters clamp it to their defined fallback.
func enumAttr(e *etree.Element, key string) int {
	v := e.SelectAttrValue(key, "")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func flagAttr(e *etree.Element, key string) bool {
	return e.SelectAttrValue(key, "") == "1"
}

func entityID(e *etree.Element) string {
	return e.SelectAttrValue("id", "")
}

// elementText joins the text of the p children, one line per paragraph.
// Inline markup inside a paragraph flattens to its character data.
func elementText(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var lines []string
	for _, p := range e.SelectElements("p") {
		lines = append(lines, flatText(p))
	}
	return strings.Join(lines, "\n")
}

func flatText(e *etree.Element) string {
	var sb strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(flatText(t))
		}
	}
	return sb.String()
}

// childText returns the element's raw text. No trimming: heading affixes and
// similar values carry significant spaces.
func childText(e *etree.Element, tag string) string {
	if child := e.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

// readLinks accepts both layouts in circulation: Path and FullPath child
// elements, or path and fullPath attributes on the Link element itself.
func readLinks(e *etree.Element) *novel.OrderedMap[string] {
	links := novel.NewOrderedMap[string]()
	for _, link := range e.SelectElements("Link") {
		path := childText(link, "Path")
		full := childText(link, "FullPath")
		if path == "" {
			path = link.SelectAttrValue("path", "")
			full = link.SelectAttrValue("fullPath", "")
		}
		if path != "" {
			links.Set(path, full)
		}
	}
	return links
}

type baseEntity interface {
	SetTitle(string)
	SetDesc(string)
	SetLinks(*novel.OrderedMap[string])
}

func readBaseData(e *etree.Element, entity baseEntity) {
	entity.SetTitle(childText(e, "Title"))
	entity.SetDesc(elementText(e.SelectElement("Desc")))
	entity.SetLinks(readLinks(e))
}

func (r *reader) readProject(e *etree.Element) error {
	b := r.m.Book
	b.SetRenumberChapters(flagAttr(e, "renumberChapters"))
	b.SetRenumberParts(flagAttr(e, "renumberParts"))
	b.SetRenumberWithinParts(flagAttr(e, "renumberWithinParts"))
	b.SetRomanChapterNumbers(flagAttr(e, "romanChapterNumbers"))
	b.SetRomanPartNumbers(flagAttr(e, "romanPartNumbers"))
	b.SetSaveWordCount(flagAttr(e, "saveWordCount"))
	b.SetWorkPhase(enumAttr(e, "workPhase"))

	readBaseData(e, b)
	b.SetAuthorName(childText(e, "Author"))

	b.SetChapterHeadingPrefix(childText(e, "ChapterHeadingPrefix"))
	b.SetChapterHeadingSuffix(childText(e, "ChapterHeadingSuffix"))
	b.SetPartHeadingPrefix(childText(e, "PartHeadingPrefix"))
	b.SetPartHeadingSuffix(childText(e, "PartHeadingSuffix"))

	b.SetCustomPlotProgress(childText(e, "CustomPlotProgress"))
	b.SetCustomCharacterization(childText(e, "CustomCharacterization"))
	b.SetCustomWorldBuilding(childText(e, "CustomWorldBuilding"))
	b.SetCustomGoal(childText(e, "CustomGoal"))
	b.SetCustomConflict(childText(e, "CustomConflict"))
	b.SetCustomOutcome(childText(e, "CustomOutcome"))
	b.SetCustomChrBio(childText(e, "CustomChrBio"))
	b.SetCustomChrGoals(childText(e, "CustomChrGoals"))

	start, err := r.intValue("WordCountStart", childText(e, "WordCountStart"))
	if err != nil {
		return err
	}
	b.SetWordCountStart(start)
	target, err := r.intValue("WordTarget", childText(e, "WordTarget"))
	if err != nil {
		return err
	}
	b.SetWordTarget(target)

	return r.apply("ReferenceDate", childText(e, "ReferenceDate"), b.SetReferenceDate)
}

// skipEntity handles an element without an ID attribute: an error under
// strict reading, dropped with a warning otherwise.
func (r *reader) skipEntity(tag string) (bool, error) {
	if r.strict {
		return false, fmt.Errorf("%s element without an id", tag)
	}
	r.log.Warn("Dropping element without an id", zap.String("tag", tag))
	return true, nil
}

func (r *reader) readChapters(root *etree.Element) error {
	chapters := root.SelectElement("CHAPTERS")
	if chapters == nil {
		return nil
	}
	for _, e := range chapters.SelectElements("CHAPTER") {
		chID := entityID(e)
		if chID == "" {
			if skip, err := r.skipEntity("CHAPTER"); !skip {
				return err
			}
			continue
		}
		c := r.m.AddChapter(chID)
		c.SetType(enumAttr(e, "type"))
		if e.SelectAttrValue("level", "") == "1" {
			c.SetLevel(novel.PartLevel)
		}
		c.SetIsTrash(flagAttr(e, "isTrash"))
		c.SetNoNumber(flagAttr(e, "noNumber"))
		readBaseData(e, c)
		c.SetNotes(elementText(e.SelectElement("Notes")))
		r.m.Tree.Append(novel.Root(novel.ChapterRoot), chID)

		for _, xmlSection := range e.SelectElements("SECTION") {
			scID := entityID(xmlSection)
			if scID == "" {
				if skip, err := r.skipEntity("SECTION"); !skip {
					return err
				}
				continue
			}
			s := r.m.AddSection(scID)
			if err := r.readSection(xmlSection, s); err != nil {
				return err
			}
			if s.Type() < c.Type() {
				s.SetType(c.Type())
			}
			r.m.Tree.Append(novel.ChapterParent(chID), scID)
		}
	}
	return nil
}

func (r *reader) readSection(e *etree.Element, s *novel.Section) error {
	s.SetType(enumAttr(e, "type"))
	s.SetStatus(enumAttr(e, "status"))
	s.SetScene(enumAttr(e, "scene"))
	if s.Scene() == novel.NotAScene {
		// Legacy key, one kind lower than its replacement.
		if pacing := enumAttr(e, "pacing"); pacing == 1 || pacing == 2 {
			s.SetScene(pacing + 1)
		}
	}
	s.SetAppendToPrev(flagAttr(e, "append"))

	readBaseData(e, s)
	s.SetNotes(elementText(e.SelectElement("Notes")))
	s.SetTags(novel.SplitList(childText(e, "Tags"), ";"))

	s.SetGoal(elementText(e.SelectElement("Goal")))
	s.SetConflict(elementText(e.SelectElement("Conflict")))
	s.SetOutcome(elementText(e.SelectElement("Outcome")))

	// Current layout has PlotlineNotes directly below the section, the
	// legacy one wraps them in a PlotNotes element.
	noteParent := e.SelectElement("PlotNotes")
	if noteParent == nil {
		noteParent = e
	}
	notes := novel.NewOrderedMap[string]()
	for _, xmlNote := range noteParent.SelectElements("PlotlineNotes") {
		if plID := entityID(xmlNote); plID != "" {
			notes.Set(plID, elementText(xmlNote))
		}
	}
	s.SetPlotlineNotes(notes)

	if err := r.apply("Date", childText(e, "Date"), s.SetDate); err != nil {
		return err
	}
	if s.Date() == "" {
		if err := r.apply("Day", childText(e, "Day"), s.SetDay); err != nil {
			return err
		}
	}
	if err := r.apply("Time", childText(e, "Time"), s.SetTime); err != nil {
		return err
	}
	if err := r.apply("LastsDays", childText(e, "LastsDays"), s.SetLastsDays); err != nil {
		return err
	}
	if err := r.apply("LastsHours", childText(e, "LastsHours"), s.SetLastsHours); err != nil {
		return err
	}
	if err := r.apply("LastsMinutes", childText(e, "LastsMinutes"), s.SetLastsMinutes); err != nil {
		return err
	}

	s.SetCharacters(idList(e, "Characters"))
	s.SetLocations(idList(e, "Locations"))
	s.SetItems(idList(e, "Items"))

	if xmlContent := e.SelectElement("Content"); xmlContent != nil {
		text, err := contentText(xmlContent)
		if err != nil {
			return err
		}
		s.SetContent(text)
	} else if s.Type() < novel.StageLevel1 {
		s.SetContent("")
	}
	return nil
}

func idList(e *etree.Element, tag string) []string {
	child := e.SelectElement(tag)
	if child == nil {
		return nil
	}
	return novel.SplitList(child.SelectAttrValue("ids", ""), " ")
}

func (r *reader) readCharacters(root *etree.Element) error {
	characters := root.SelectElement("CHARACTERS")
	if characters == nil {
		return nil
	}
	for _, e := range characters.SelectElements("CHARACTER") {
		crID := entityID(e)
		if crID == "" {
			if skip, err := r.skipEntity("CHARACTER"); !skip {
				return err
			}
			continue
		}
		c := r.m.AddCharacter(crID)
		c.SetIsMajor(flagAttr(e, "major"))
		readBaseData(e, c)
		c.SetNotes(elementText(e.SelectElement("Notes")))
		c.SetTags(novel.SplitList(childText(e, "Tags"), ";"))
		c.SetAka(childText(e, "Aka"))
		c.SetFullName(childText(e, "FullName"))
		c.SetBio(elementText(e.SelectElement("Bio")))
		c.SetGoals(elementText(e.SelectElement("Goals")))
		if err := r.apply("BirthDate", childText(e, "BirthDate"), c.SetBirthDate); err != nil {
			return err
		}
		if err := r.apply("DeathDate", childText(e, "DeathDate"), c.SetDeathDate); err != nil {
			return err
		}
		r.m.Tree.Append(novel.Root(novel.CharacterRoot), crID)
	}
	return nil
}

func (r *reader) readWorldElements(root *etree.Element, branch string, add func(string) *novel.WorldElement, rootTag novel.RootTag) error {
	container := root.SelectElement(branch)
	if container == nil {
		return nil
	}
	for _, e := range container.ChildElements() {
		id := entityID(e)
		if id == "" {
			if skip, err := r.skipEntity(e.Tag); !skip {
				return err
			}
			continue
		}
		w := add(id)
		readBaseData(e, w)
		w.SetNotes(elementText(e.SelectElement("Notes")))
		w.SetTags(novel.SplitList(childText(e, "Tags"), ";"))
		w.SetAka(childText(e, "Aka"))
		r.m.Tree.Append(novel.Root(rootTag), id)
	}
	return nil
}

func (r *reader) readPlotLines(root *etree.Element) error {
	plotLines := root.SelectElement("ARCS")
	if plotLines == nil {
		return nil
	}
	for _, e := range plotLines.SelectElements("ARC") {
		plID := entityID(e)
		if plID == "" {
			if skip, err := r.skipEntity("ARC"); !skip {
				return err
			}
			continue
		}
		p := r.m.AddPlotLine(plID)
		readBaseData(e, p)
		p.SetNotes(elementText(e.SelectElement("Notes")))
		p.SetShortName(childText(e, "ShortName"))
		p.SetSections(idList(e, "Sections"))
		r.m.Tree.Append(novel.Root(novel.PlotLineRoot), plID)

		for _, xmlPoint := range e.SelectElements("POINT") {
			ppID := entityID(xmlPoint)
			if ppID == "" {
				if skip, err := r.skipEntity("POINT"); !skip {
					return err
				}
				continue
			}
			pp := r.m.AddPlotPoint(ppID)
			readBaseData(xmlPoint, pp)
			pp.SetNotes(elementText(xmlPoint.SelectElement("Notes")))
			if assoc := xmlPoint.SelectElement("Section"); assoc != nil {
				pp.SetSectionAssoc(entityID(assoc))
			}
			r.m.Tree.Append(novel.PlotLineParent(plID), ppID)
		}
	}
	return nil
}

func (r *reader) readProjectNotes(root *etree.Element) error {
	projectNotes := root.SelectElement("PROJECTNOTES")
	if projectNotes == nil {
		return nil
	}
	for _, e := range projectNotes.SelectElements("PROJECTNOTE") {
		pnID := entityID(e)
		if pnID == "" {
			if skip, err := r.skipEntity("PROJECTNOTE"); !skip {
				return err
			}
			continue
		}
		readBaseData(e, r.m.AddProjectNote(pnID))
		r.m.Tree.Append(novel.Root(novel.ProjectNoteRoot), pnID)
	}
	return nil
}

func (r *reader) readProgress(root *etree.Element) {
	progress := root.SelectElement("PROGRESS")
	if progress == nil {
		return
	}
	for _, wc := range progress.SelectElements("WC") {
		date := childText(wc, "Date")
		count := childText(wc, "Count")
		withUnused := childText(wc, "WithUnused")
		if date == "" || count == "" || withUnused == "" {
			r.log.Warn("Dropping incomplete word count entry", zap.String("date", date))
			continue
		}
		r.m.WCLog.Set(date, novel.WordCount{Count: count, WithUnused: withUnused})
	}
}
