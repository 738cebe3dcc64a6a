// Package mdnov reads and writes the line-oriented project markup format:
// UTF-8 text made of blocks opened by "@@" lines, each carrying a YAML-like
// front matter between "---" lines and free text spans opened by "%%" lines.
package mdnov

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/novel"
)

// metaReader gives typed access to the parsed front matter of one block. In
// lenient mode malformed values fall back to the zero value with a warning,
// in strict mode the first failure is kept and surfaced after the block.
type metaReader struct {
	meta   map[string]string
	strict bool
	log    *zap.Logger
	err    error
}

func parseMeta(lines []string, strict bool, log *zap.Logger) *metaReader {
	meta := make(map[string]string)
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return &metaReader{meta: meta, strict: strict, log: log}
}

func (r *metaReader) fail(key string, err error) {
	if r.strict {
		if r.err == nil {
			r.err = fmt.Errorf("field %q: %w", key, err)
		}
		return
	}
	r.log.Warn("Dropping malformed front matter value", zap.String("key", key), zap.Error(err))
}

func (r *metaReader) text(key string) string {
	return r.meta[key]
}

func (r *metaReader) flag(key string) bool {
	return r.meta[key] == "1"
}

// enum parses a numeric field, mapping anything unparsable to -1 so the
// entity setter clamps it to its defined fallback.
func (r *metaReader) enum(key string) int {
	v, ok := r.meta[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func (r *metaReader) intValue(key string) int {
	v, ok := r.meta[key]
	if !ok || v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, &common.FormatError{Field: key, Value: v, Err: err})
		return 0
	}
	return n
}

// apply runs an entity date/time/int setter against a front matter value,
// honoring the strictness policy.
func (r *metaReader) apply(key string, set func(string) error) {
	v, ok := r.meta[key]
	if !ok {
		return
	}
	if err := set(v); err != nil {
		r.fail(key, err)
	}
}

func (r *metaReader) list(key string) []string {
	return novel.SplitList(r.meta[key], ";")
}

// stripEnds drops the first and last character of a heading affix, undoing
// the quoting applied on write.
func stripEnds(v string) string {
	runes := []rune(v)
	if len(runes) < 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}

func applyBookMeta(b *novel.Project, r *metaReader) {
	b.SetTitle(r.text("Title"))
	b.SetRenumberChapters(r.flag("renumberChapters"))
	b.SetRenumberParts(r.flag("renumberParts"))
	b.SetRenumberWithinParts(r.flag("renumberWithinParts"))
	b.SetRomanChapterNumbers(r.flag("romanChapterNumbers"))
	b.SetRomanPartNumbers(r.flag("romanPartNumbers"))
	b.SetSaveWordCount(r.flag("saveWordCount"))
	b.SetWorkPhase(r.enum("workPhase"))
	b.SetAuthorName(r.text("Author"))
	b.SetChapterHeadingPrefix(stripEnds(r.text("ChapterHeadingPrefix")))
	b.SetChapterHeadingSuffix(stripEnds(r.text("ChapterHeadingSuffix")))
	b.SetPartHeadingPrefix(stripEnds(r.text("PartHeadingPrefix")))
	b.SetPartHeadingSuffix(stripEnds(r.text("PartHeadingSuffix")))
	b.SetCustomPlotProgress(r.text("CustomPlotProgress"))
	b.SetCustomCharacterization(r.text("CustomCharacterization"))
	b.SetCustomWorldBuilding(r.text("CustomWorldBuilding"))
	b.SetCustomGoal(r.text("CustomGoal"))
	b.SetCustomConflict(r.text("CustomConflict"))
	b.SetCustomOutcome(r.text("CustomOutcome"))
	b.SetCustomChrBio(r.text("CustomChrBio"))
	b.SetCustomChrGoals(r.text("CustomChrGoals"))
	b.SetWordCountStart(r.intValue("WordCountStart"))
	b.SetWordTarget(r.intValue("WordTarget"))
	r.apply("ReferenceDate", b.SetReferenceDate)
}

func applyChapterMeta(c *novel.Chapter, r *metaReader) {
	c.SetTitle(r.text("Title"))
	c.SetType(r.enum("type"))
	c.SetLevel(r.enum("level"))
	c.SetIsTrash(r.flag("isTrash"))
	c.SetNoNumber(r.flag("noNumber"))
}

func applySectionMeta(s *novel.Section, r *metaReader) {
	s.SetTitle(r.text("Title"))
	s.SetTags(r.list("Tags"))
	s.SetType(r.enum("type"))
	s.SetStatus(r.enum("status"))
	s.SetScene(r.enum("scene"))
	if s.Scene() == novel.NotAScene {
		// Legacy key, one kind lower than its replacement.
		if pacing := r.enum("pacing"); pacing == 1 || pacing == 2 {
			s.SetScene(pacing + 1)
		}
	}
	s.SetAppendToPrev(r.flag("append"))
	r.apply("Date", s.SetDate)
	if s.Date() == "" {
		r.apply("Day", s.SetDay)
	}
	r.apply("Time", s.SetTime)
	r.apply("LastsDays", s.SetLastsDays)
	r.apply("LastsHours", s.SetLastsHours)
	r.apply("LastsMinutes", s.SetLastsMinutes)
	s.SetCharacters(r.list("Characters"))
	s.SetLocations(r.list("Locations"))
	s.SetItems(r.list("Items"))
}

func applyCharacterMeta(c *novel.Character, r *metaReader) {
	c.SetTitle(r.text("Title"))
	c.SetTags(r.list("Tags"))
	c.SetAka(r.text("Aka"))
	c.SetIsMajor(r.flag("major"))
	c.SetFullName(r.text("FullName"))
	r.apply("BirthDate", c.SetBirthDate)
	r.apply("DeathDate", c.SetDeathDate)
}

func applyWorldMeta(w *novel.WorldElement, r *metaReader) {
	w.SetTitle(r.text("Title"))
	w.SetTags(r.list("Tags"))
	w.SetAka(r.text("Aka"))
}

func applyPlotLineMeta(p *novel.PlotLine, r *metaReader) {
	p.SetTitle(r.text("Title"))
	p.SetShortName(r.text("ShortName"))
	p.SetSections(r.list("Sections"))
}

func applyPlotPointMeta(p *novel.PlotPoint, r *metaReader) {
	p.SetTitle(r.text("Title"))
	p.SetSectionAssoc(r.text("Section"))
}

func bookMeta(b *novel.Project) []string {
	var lines []string
	add := func(key, value string) {
		if value != "" {
			lines = append(lines, key+": "+value)
		}
	}
	addFlag := func(key string, set bool) {
		if set {
			lines = append(lines, key+": 1")
		}
	}
	addQuoted := func(key, value string) {
		if value != "" {
			lines = append(lines, key+`: "`+value+`"`)
		}
	}
	add("Title", b.Title())
	addFlag("renumberChapters", b.RenumberChapters())
	addFlag("renumberParts", b.RenumberParts())
	addFlag("renumberWithinParts", b.RenumberWithinParts())
	addFlag("romanChapterNumbers", b.RomanChapterNumbers())
	addFlag("romanPartNumbers", b.RomanPartNumbers())
	addFlag("saveWordCount", b.SaveWordCount())
	if b.WorkPhase() != novel.PhaseUnset {
		add("workPhase", strconv.Itoa(b.WorkPhase()))
	}
	add("Author", b.AuthorName())
	addQuoted("ChapterHeadingPrefix", b.ChapterHeadingPrefix())
	addQuoted("ChapterHeadingSuffix", b.ChapterHeadingSuffix())
	addQuoted("PartHeadingPrefix", b.PartHeadingPrefix())
	addQuoted("PartHeadingSuffix", b.PartHeadingSuffix())
	add("CustomPlotProgress", b.CustomPlotProgress())
	add("CustomCharacterization", b.CustomCharacterization())
	add("CustomWorldBuilding", b.CustomWorldBuilding())
	add("CustomGoal", b.CustomGoal())
	add("CustomConflict", b.CustomConflict())
	add("CustomOutcome", b.CustomOutcome())
	add("CustomChrBio", b.CustomChrBio())
	add("CustomChrGoals", b.CustomChrGoals())
	if b.WordCountStart() != 0 {
		add("WordCountStart", strconv.Itoa(b.WordCountStart()))
	}
	if b.WordTarget() != 0 {
		add("WordTarget", strconv.Itoa(b.WordTarget()))
	}
	add("ReferenceDate", b.ReferenceDate())
	return lines
}

func chapterMeta(c *novel.Chapter) []string {
	var lines []string
	if c.Title() != "" {
		lines = append(lines, "Title: "+c.Title())
	}
	if c.Type() != novel.TypeNormal {
		lines = append(lines, "type: "+strconv.Itoa(c.Type()))
	}
	if c.Level() == novel.PartLevel {
		lines = append(lines, "level: 1")
	}
	if c.IsTrash() {
		lines = append(lines, "isTrash: 1")
	}
	if c.NoNumber() {
		lines = append(lines, "noNumber: 1")
	}
	return lines
}

func sectionMeta(s *novel.Section) []string {
	var lines []string
	add := func(key, value string) {
		if value != "" {
			lines = append(lines, key+": "+value)
		}
	}
	add("Title", s.Title())
	add("Tags", strings.Join(s.Tags(), ";"))
	if s.Type() != novel.SectionNormal {
		add("type", strconv.Itoa(s.Type()))
	}
	if s.Status() > novel.StatusOutline {
		add("status", strconv.Itoa(s.Status()))
	}
	if s.Scene() > novel.NotAScene {
		add("scene", strconv.Itoa(s.Scene()))
	}
	if s.AppendToPrev() {
		add("append", "1")
	}
	if s.Date() != "" {
		add("Date", s.Date())
	} else {
		add("Day", s.Day())
	}
	add("Time", s.Time())
	if s.LastsDays() != "0" {
		add("LastsDays", s.LastsDays())
	}
	if s.LastsHours() != "0" {
		add("LastsHours", s.LastsHours())
	}
	if s.LastsMinutes() != "0" {
		add("LastsMinutes", s.LastsMinutes())
	}
	add("Characters", strings.Join(s.Characters(), ";"))
	add("Locations", strings.Join(s.Locations(), ";"))
	add("Items", strings.Join(s.Items(), ";"))
	return lines
}

func characterMeta(c *novel.Character) []string {
	var lines []string
	add := func(key, value string) {
		if value != "" {
			lines = append(lines, key+": "+value)
		}
	}
	add("Title", c.Title())
	add("Tags", strings.Join(c.Tags(), ";"))
	add("Aka", c.Aka())
	if c.IsMajor() {
		add("major", "1")
	}
	add("FullName", c.FullName())
	add("BirthDate", c.BirthDate())
	add("DeathDate", c.DeathDate())
	return lines
}

func worldMeta(w *novel.WorldElement) []string {
	var lines []string
	add := func(key, value string) {
		if value != "" {
			lines = append(lines, key+": "+value)
		}
	}
	add("Title", w.Title())
	add("Tags", strings.Join(w.Tags(), ";"))
	add("Aka", w.Aka())
	return lines
}

func plotLineMeta(p *novel.PlotLine) []string {
	var lines []string
	if p.Title() != "" {
		lines = append(lines, "Title: "+p.Title())
	}
	if p.ShortName() != "" {
		lines = append(lines, "ShortName: "+p.ShortName())
	}
	if len(p.Sections()) > 0 {
		lines = append(lines, "Sections: "+strings.Join(p.Sections(), ";"))
	}
	return lines
}

func plotPointMeta(p *novel.PlotPoint) []string {
	var lines []string
	if p.Title() != "" {
		lines = append(lines, "Title: "+p.Title())
	}
	if p.SectionAssoc() != "" {
		lines = append(lines, "Section: "+p.SectionAssoc())
	}
	return lines
}

func applyProjectNoteMeta(n *novel.ProjectNote, r *metaReader) {
	n.SetTitle(r.text("Title"))
}

func titleMeta(title string) []string {
	if title == "" {
		return nil
	}
	return []string{"Title: " + title}
}
