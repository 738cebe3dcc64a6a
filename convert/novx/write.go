package novx

import (
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"mdnovx/novel"
)

type writer struct {
	m *novel.Model
}

func (w *writer) buildRoot(root *etree.Element) error {
	w.buildProject(root.CreateElement("PROJECT"))

	chapters := root.CreateElement("CHAPTERS")
	for _, chID := range w.m.Tree.Children(novel.Root(novel.ChapterRoot)) {
		if err := w.buildChapter(chapters, chID); err != nil {
			return err
		}
	}

	characters := root.CreateElement("CHARACTERS")
	for _, crID := range w.m.Tree.Children(novel.Root(novel.CharacterRoot)) {
		w.buildCharacter(createEntity(characters, "CHARACTER", crID), w.m.Characters[crID])
	}

	locations := root.CreateElement("LOCATIONS")
	for _, lcID := range w.m.Tree.Children(novel.Root(novel.LocationRoot)) {
		buildWorldElement(createEntity(locations, "LOCATION", lcID), w.m.Locations[lcID])
	}

	items := root.CreateElement("ITEMS")
	for _, itID := range w.m.Tree.Children(novel.Root(novel.ItemRoot)) {
		buildWorldElement(createEntity(items, "ITEM", itID), w.m.Items[itID])
	}

	plotLines := root.CreateElement("ARCS")
	for _, plID := range w.m.Tree.Children(novel.Root(novel.PlotLineRoot)) {
		w.buildPlotLine(createEntity(plotLines, "ARC", plID), plID)
	}

	projectNotes := root.CreateElement("PROJECTNOTES")
	for _, pnID := range w.m.Tree.Children(novel.Root(novel.ProjectNoteRoot)) {
		n := w.m.ProjectNotes[pnID]
		setBaseData(createEntity(projectNotes, "PROJECTNOTE", pnID), n.Title(), n.Desc(), n.Links())
	}

	w.buildProgress(root)
	return nil
}

func createEntity(parent *etree.Element, tag, id string) *etree.Element {
	e := parent.CreateElement(tag)
	e.CreateAttr("id", id)
	return e
}

func setFlag(e *etree.Element, key string, set bool) {
	if set {
		e.CreateAttr(key, "1")
	}
}

// textElement renders multi-line text as one p child per line.
func textElement(tag, text string) *etree.Element {
	e := etree.NewElement(tag)
	for _, line := range strings.Split(text, "\n") {
		e.CreateElement("p").SetText(line)
	}
	return e
}

func setBaseData(e *etree.Element, title, desc string, links *novel.OrderedMap[string]) {
	if title != "" {
		e.CreateElement("Title").SetText(title)
	}
	if desc != "" {
		e.AddChild(textElement("Desc", desc))
	}
	for _, path := range links.Keys() {
		link := e.CreateElement("Link")
		link.CreateElement("Path").SetText(path)
		if full, _ := links.Get(path); full != "" {
			link.CreateElement("FullPath").SetText(full)
		}
	}
}

func setNotes(e *etree.Element, notes string) {
	if notes != "" {
		e.AddChild(textElement("Notes", notes))
	}
}

func setTags(e *etree.Element, tags []string) {
	if len(tags) > 0 {
		e.CreateElement("Tags").SetText(strings.Join(tags, ";"))
	}
}

func setText(e *etree.Element, tag, text string) {
	if text != "" {
		e.CreateElement(tag).SetText(text)
	}
}

func setIDList(e *etree.Element, tag string, ids []string) {
	if len(ids) > 0 {
		e.CreateElement(tag).CreateAttr("ids", strings.Join(ids, " "))
	}
}

func (w *writer) buildProject(e *etree.Element) {
	b := w.m.Book
	setFlag(e, "renumberChapters", b.RenumberChapters())
	setFlag(e, "renumberParts", b.RenumberParts())
	setFlag(e, "renumberWithinParts", b.RenumberWithinParts())
	setFlag(e, "romanChapterNumbers", b.RomanChapterNumbers())
	setFlag(e, "romanPartNumbers", b.RomanPartNumbers())
	setFlag(e, "saveWordCount", b.SaveWordCount())
	if b.WorkPhase() != novel.PhaseUnset {
		e.CreateAttr("workPhase", strconv.Itoa(b.WorkPhase()))
	}

	setBaseData(e, b.Title(), b.Desc(), b.Links())
	setText(e, "Author", b.AuthorName())

	setText(e, "ChapterHeadingPrefix", b.ChapterHeadingPrefix())
	setText(e, "ChapterHeadingSuffix", b.ChapterHeadingSuffix())
	setText(e, "PartHeadingPrefix", b.PartHeadingPrefix())
	setText(e, "PartHeadingSuffix", b.PartHeadingSuffix())

	setText(e, "CustomPlotProgress", b.CustomPlotProgress())
	setText(e, "CustomCharacterization", b.CustomCharacterization())
	setText(e, "CustomWorldBuilding", b.CustomWorldBuilding())
	setText(e, "CustomGoal", b.CustomGoal())
	setText(e, "CustomConflict", b.CustomConflict())
	setText(e, "CustomOutcome", b.CustomOutcome())
	setText(e, "CustomChrBio", b.CustomChrBio())
	setText(e, "CustomChrGoals", b.CustomChrGoals())

	if b.WordCountStart() != 0 {
		setText(e, "WordCountStart", strconv.Itoa(b.WordCountStart()))
	}
	if b.WordTarget() != 0 {
		setText(e, "WordTarget", strconv.Itoa(b.WordTarget()))
	}
	setText(e, "ReferenceDate", b.ReferenceDate())
}

func (w *writer) buildChapter(chapters *etree.Element, chID string) error {
	c := w.m.Chapters[chID]
	e := createEntity(chapters, "CHAPTER", chID)
	if c.Type() != novel.TypeNormal {
		e.CreateAttr("type", strconv.Itoa(c.Type()))
	}
	if c.Level() == novel.PartLevel {
		e.CreateAttr("level", "1")
	}
	setFlag(e, "isTrash", c.IsTrash())
	setFlag(e, "noNumber", c.NoNumber())

	setBaseData(e, c.Title(), c.Desc(), c.Links())
	setNotes(e, c.Notes())

	for _, scID := range w.m.Tree.Children(novel.ChapterParent(chID)) {
		if err := w.buildSection(createEntity(e, "SECTION", scID), w.m.Sections[scID]); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) buildSection(e *etree.Element, s *novel.Section) error {
	if s.Type() != novel.SectionNormal {
		e.CreateAttr("type", strconv.Itoa(s.Type()))
	}
	if s.Status() > novel.StatusOutline {
		e.CreateAttr("status", strconv.Itoa(s.Status()))
	}
	if s.Scene() > novel.NotAScene {
		e.CreateAttr("scene", strconv.Itoa(s.Scene()))
	}
	setFlag(e, "append", s.AppendToPrev())

	setBaseData(e, s.Title(), s.Desc(), s.Links())
	setNotes(e, s.Notes())
	setTags(e, s.Tags())

	if s.Goal() != "" {
		e.AddChild(textElement("Goal", s.Goal()))
	}
	if s.Conflict() != "" {
		e.AddChild(textElement("Conflict", s.Conflict()))
	}
	if s.Outcome() != "" {
		e.AddChild(textElement("Outcome", s.Outcome()))
	}

	for _, plID := range s.PlotlineNotes().Keys() {
		if !slices.Contains(s.PlotLines(), plID) {
			continue
		}
		note, _ := s.PlotlineNotes().Get(plID)
		if note == "" {
			continue
		}
		notes := textElement("PlotlineNotes", note)
		notes.CreateAttr("id", plID)
		e.AddChild(notes)
	}

	if s.Date() != "" {
		setText(e, "Date", s.Date())
	} else {
		setText(e, "Day", s.Day())
	}
	setText(e, "Time", s.Time())

	if s.LastsDays() != "0" {
		setText(e, "LastsDays", s.LastsDays())
	}
	if s.LastsHours() != "0" {
		setText(e, "LastsHours", s.LastsHours())
	}
	if s.LastsMinutes() != "0" {
		setText(e, "LastsMinutes", s.LastsMinutes())
	}

	setIDList(e, "Characters", s.Characters())
	setIDList(e, "Locations", s.Locations())
	setIDList(e, "Items", s.Items())

	return appendContent(e, s.Content())
}

func (w *writer) buildCharacter(e *etree.Element, c *novel.Character) {
	setFlag(e, "major", c.IsMajor())
	setBaseData(e, c.Title(), c.Desc(), c.Links())
	setNotes(e, c.Notes())
	setTags(e, c.Tags())
	setText(e, "Aka", c.Aka())
	setText(e, "FullName", c.FullName())
	if c.Bio() != "" {
		e.AddChild(textElement("Bio", c.Bio()))
	}
	if c.Goals() != "" {
		e.AddChild(textElement("Goals", c.Goals()))
	}
	setText(e, "BirthDate", c.BirthDate())
	setText(e, "DeathDate", c.DeathDate())
}

func buildWorldElement(e *etree.Element, world *novel.WorldElement) {
	setBaseData(e, world.Title(), world.Desc(), world.Links())
	setNotes(e, world.Notes())
	setTags(e, world.Tags())
	setText(e, "Aka", world.Aka())
}

func (w *writer) buildPlotLine(e *etree.Element, plID string) {
	p := w.m.PlotLines[plID]
	setBaseData(e, p.Title(), p.Desc(), p.Links())
	setNotes(e, p.Notes())
	setText(e, "ShortName", p.ShortName())
	setIDList(e, "Sections", p.Sections())

	for _, ppID := range w.m.Tree.Children(novel.PlotLineParent(plID)) {
		pp := w.m.PlotPoints[ppID]
		point := createEntity(e, "POINT", ppID)
		setBaseData(point, pp.Title(), pp.Desc(), pp.Links())
		setNotes(point, pp.Notes())
		if pp.SectionAssoc() != "" {
			point.CreateElement("Section").CreateAttr("id", pp.SectionAssoc())
		}
	}
}

func (w *writer) buildProgress(root *etree.Element) {
	entries := w.m.LogEntries()
	if len(entries) == 0 {
		return
	}
	progress := root.CreateElement("PROGRESS")
	for _, entry := range entries {
		wc := progress.CreateElement("WC")
		wc.CreateElement("Date").SetText(entry.Date)
		wc.CreateElement("Count").SetText(entry.Count)
		wc.CreateElement("WithUnused").SetText(entry.WithUnused)
	}
}
