package novel

import (
	"strconv"
	"time"
)

// WordCount is one entry of the historical word count log: the words in
// normal sections and the total including unused ones. Values stay strings
// the way the project files carry them.
type WordCount struct {
	Count      string
	WithUnused string
}

// Model is the complete in-memory representation of a project. Codecs read
// into it, transform it and write it back out.
type Model struct {
	Book *Project

	Chapters     map[string]*Chapter
	Sections     map[string]*Section
	Characters   map[string]*Character
	Locations    map[string]*WorldElement
	Items        map[string]*WorldElement
	PlotLines    map[string]*PlotLine
	PlotPoints   map[string]*PlotPoint
	ProjectNotes map[string]*ProjectNote

	Tree *Tree

	// WCLog is the persisted word count history, wcLogUpdate collects
	// corrections to fold in on the next save.
	WCLog       *OrderedMap[WordCount]
	wcLogUpdate *OrderedMap[WordCount]

	onChange ChangeHook
}

// NewModel creates an empty model. The hook, which may be nil, fires on every
// real change to any entity the model creates.
func NewModel(onChange ChangeHook) *Model {
	m := &Model{
		Chapters:     make(map[string]*Chapter),
		Sections:     make(map[string]*Section),
		Characters:   make(map[string]*Character),
		Locations:    make(map[string]*WorldElement),
		Items:        make(map[string]*WorldElement),
		PlotLines:    make(map[string]*PlotLine),
		PlotPoints:   make(map[string]*PlotPoint),
		ProjectNotes: make(map[string]*ProjectNote),
		Tree:         NewTree(),
		WCLog:        NewOrderedMap[WordCount](),
		wcLogUpdate:  NewOrderedMap[WordCount](),
		onChange:     onChange,
	}
	m.Book = &Project{}
	m.init(&m.Book.element)
	return m
}

func (m *Model) init(e *element) {
	e.onChange = m.onChange
	e.links = NewOrderedMap[string]()
}

func (m *Model) AddChapter(id string) *Chapter {
	c := &Chapter{level: ChapterLevel}
	m.init(&c.element)
	m.Chapters[id] = c
	return c
}

func (m *Model) AddSection(id string) *Section {
	s := &Section{
		status:        StatusOutline,
		plotlineNotes: NewOrderedMap[string](),
		scPlotPoints:  NewOrderedMap[string](),
	}
	m.init(&s.element)
	m.Sections[id] = s
	return s
}

func (m *Model) AddCharacter(id string) *Character {
	c := &Character{}
	m.init(&c.element)
	m.Characters[id] = c
	return c
}

func (m *Model) AddLocation(id string) *WorldElement {
	w := &WorldElement{}
	m.init(&w.element)
	m.Locations[id] = w
	return w
}

func (m *Model) AddItem(id string) *WorldElement {
	w := &WorldElement{}
	m.init(&w.element)
	m.Items[id] = w
	return w
}

func (m *Model) AddPlotLine(id string) *PlotLine {
	p := &PlotLine{}
	m.init(&p.element)
	m.PlotLines[id] = p
	return p
}

func (m *Model) AddPlotPoint(id string) *PlotPoint {
	p := &PlotPoint{}
	m.init(&p.element)
	m.PlotPoints[id] = p
	return p
}

func (m *Model) AddProjectNote(id string) *ProjectNote {
	n := &ProjectNote{}
	m.init(&n.element)
	m.ProjectNotes[id] = n
	return n
}

// AdjustSectionTypes propagates the unused state down the tree: an unused
// part infects the chapters below it, an unused chapter infects its sections.
// Trash chapters keep their own type.
func (m *Model) AdjustSectionTypes() {
	partType := TypeNormal
	for _, chID := range m.Tree.Children(Root(ChapterRoot)) {
		chapter, ok := m.Chapters[chID]
		if !ok {
			continue
		}
		if chapter.Level() == PartLevel {
			partType = chapter.Type()
		} else if partType != TypeNormal && !chapter.IsTrash() {
			chapter.SetType(partType)
		}
		for _, scID := range m.Tree.Children(ChapterParent(chID)) {
			section, ok := m.Sections[scID]
			if !ok {
				continue
			}
			if section.Type() < chapter.Type() {
				section.SetType(chapter.Type())
			}
		}
	}
}

// CountWords sums the section word counts: count covers normal sections only,
// withUnused also includes unused ones. Trash chapters never count.
func (m *Model) CountWords() (count, withUnused int) {
	for _, chID := range m.Tree.Children(Root(ChapterRoot)) {
		chapter, ok := m.Chapters[chID]
		if !ok || chapter.IsTrash() {
			continue
		}
		for _, scID := range m.Tree.Children(ChapterParent(chID)) {
			section, ok := m.Sections[scID]
			if !ok || section.Type() >= StageLevel1 {
				continue
			}
			withUnused += section.WordCount()
			if section.Type() == SectionNormal {
				count += section.WordCount()
			}
		}
	}
	return count, withUnused
}

// PruneSectionReferences drops references to characters, locations and items
// that do not exist in the model.
func (m *Model) PruneSectionReferences() {
	for _, section := range m.Sections {
		section.SetCharacters(intersection(section.Characters(), m.Characters))
		section.SetLocations(intersection(section.Locations(), m.Locations))
		section.SetItems(intersection(section.Items(), m.Items))
	}
}

// UpdatePlotLines rebuilds the derived plot data on the sections: which plot
// lines each section belongs to and which plot points are anchored there.
// Dangling section references on plot lines and plot points are dropped.
func (m *Model) UpdatePlotLines() {
	for _, section := range m.Sections {
		section.scPlotLines = nil
		section.scPlotPoints = NewOrderedMap[string]()
	}
	for _, plID := range m.Tree.Children(Root(PlotLineRoot)) {
		plotLine, ok := m.PlotLines[plID]
		if !ok {
			continue
		}
		plotLine.SetSections(intersection(plotLine.Sections(), m.Sections))
		for _, scID := range plotLine.Sections() {
			section := m.Sections[scID]
			section.scPlotLines = append(section.scPlotLines, plID)
		}
		for _, ppID := range m.Tree.Children(PlotLineParent(plID)) {
			plotPoint, ok := m.PlotPoints[ppID]
			if !ok {
				continue
			}
			if section, ok := m.Sections[plotPoint.SectionAssoc()]; ok {
				section.scPlotPoints.Set(ppID, plID)
			} else {
				plotPoint.SetSectionAssoc("")
			}
		}
	}
}

// KeepWordCount queues a log correction when the current word counts differ
// from the latest log entry, dated with the file modification time. Called
// right after reading a project with a non-empty log.
func (m *Model) KeepWordCount(timestamp time.Time) {
	_, latest, ok := m.WCLog.Last()
	if !ok {
		return
	}
	count, withUnused := m.CountWords()
	actual := WordCount{Count: itoa(count), WithUnused: itoa(withUnused)}
	if actual == latest {
		return
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	m.wcLogUpdate.Set(timestamp.Format(isoDateLayout), actual)
}

// UpdateWordCountLog stamps today's word counts into the log and folds in the
// queued corrections. A no-op unless the project saves word counts.
func (m *Model) UpdateWordCountLog(now time.Time) {
	if !m.Book.SaveWordCount() {
		m.wcLogUpdate = NewOrderedMap[WordCount]()
		return
	}
	count, withUnused := m.CountWords()
	m.wcLogUpdate.Set(now.Format(isoDateLayout), WordCount{Count: itoa(count), WithUnused: itoa(withUnused)})
	for _, date := range m.wcLogUpdate.Keys() {
		wc, _ := m.wcLogUpdate.Get(date)
		m.WCLog.Set(date, wc)
	}
	m.wcLogUpdate = NewOrderedMap[WordCount]()
}

// LogEntries returns the word count log ready for writing. When the project
// saves word counts, runs of identical consecutive entries collapse to their
// first occurrence.
func (m *Model) LogEntries() []LogEntry {
	var out []LogEntry
	var prev WordCount
	for i, date := range m.WCLog.Keys() {
		wc, _ := m.WCLog.Get(date)
		if m.Book.SaveWordCount() && i > 0 && wc == prev {
			continue
		}
		prev = wc
		out = append(out, LogEntry{Date: date, WordCount: wc})
	}
	return out
}

// LogEntry is one dated word count log record.
type LogEntry struct {
	Date string
	WordCount
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
