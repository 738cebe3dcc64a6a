package novel

import (
	"fmt"
	"strconv"
	"time"
)

// Section types.
const (
	SectionNormal = 0
	SectionUnused = 1
	StageLevel1   = 2
	StageLevel2   = 3
)

// Completion status values.
const (
	StatusOutline = 1
	StatusDraft   = 2
	StatusEdit1   = 3
	StatusEdit2   = 4
	StatusDone    = 5
)

// Scene kinds.
const (
	NotAScene     = 0
	ActionScene   = 1
	ReactionScene = 2
	OtherScene    = 3
)

// SceneMarkers maps a scene kind to its one character display marker.
var SceneMarkers = [...]string{"-", "A", "R", "x"}

// Section is a unit of prose inside a chapter, or a stage marker structuring
// the outline. It carries the narrative metadata, the scheduling data and the
// marked-up content itself.
type Section struct {
	tagged
	scType       int
	scene        int
	status       int
	appendToPrev bool

	goal          string
	conflict      string
	outcome       string
	plotlineNotes *OrderedMap[string]

	date         string
	day          string
	time         string
	lastsDays    string
	lastsHours   string
	lastsMinutes string

	characters []string
	locations  []string
	items      []string

	content   string
	wordCount int

	// Derived at load time, never persisted directly.
	weekDay      string
	localeDate   string
	scPlotLines  []string
	scPlotPoints *OrderedMap[string]
}

func (s *Section) Type() int { return s.scType }

// SetType accepts SectionNormal through StageLevel2, anything else becomes
// SectionUnused.
func (s *Section) SetType(v int) {
	if v < SectionNormal || v > StageLevel2 {
		v = SectionUnused
	}
	setField(&s.element, &s.scType, v)
}

func (s *Section) Scene() int { return s.scene }

// SetScene accepts NotAScene through OtherScene, anything else becomes
// NotAScene.
func (s *Section) SetScene(v int) {
	if v < NotAScene || v > OtherScene {
		v = NotAScene
	}
	setField(&s.element, &s.scene, v)
}

func (s *Section) Status() int { return s.status }

// SetStatus accepts StatusOutline through StatusDone, anything else becomes
// StatusOutline.
func (s *Section) SetStatus(v int) {
	if v < StatusOutline || v > StatusDone {
		v = StatusOutline
	}
	setField(&s.element, &s.status, v)
}

func (s *Section) AppendToPrev() bool     { return s.appendToPrev }
func (s *Section) SetAppendToPrev(v bool) { setField(&s.element, &s.appendToPrev, v) }

func (s *Section) Goal() string        { return s.goal }
func (s *Section) SetGoal(v string)    { setField(&s.element, &s.goal, v) }
func (s *Section) Conflict() string    { return s.conflict }
func (s *Section) SetConflict(v string) { setField(&s.element, &s.conflict, v) }
func (s *Section) Outcome() string     { return s.outcome }
func (s *Section) SetOutcome(v string) { setField(&s.element, &s.outcome, v) }

// PlotlineNotes maps a plot line ID to the note this section carries for it.
func (s *Section) PlotlineNotes() *OrderedMap[string] { return s.plotlineNotes }
func (s *Section) SetPlotlineNotes(v *OrderedMap[string]) {
	setMap(&s.element, &s.plotlineNotes, v)
}

func (s *Section) Date() string { return s.date }

// SetDate validates v as an ISO date and recomputes the derived week day and
// display date. Setting a date clears the unspecific day, an empty value
// clears all date fields.
func (s *Section) SetDate(v string) error {
	if v == "" {
		setField(&s.element, &s.date, "")
		s.weekDay = ""
		s.localeDate = ""
		return nil
	}
	v, err := VerifiedDate(v)
	if err != nil {
		return err
	}
	if wd, ok := weekDay(v); ok {
		s.weekDay = wd.String()
	}
	s.localeDate = localeDate(v)
	setField(&s.element, &s.day, "")
	setField(&s.element, &s.date, v)
	return nil
}

func (s *Section) Day() string { return s.day }

// SetDay validates v as an integer day number. Setting a day clears the
// calendar date.
func (s *Section) SetDay(v string) error {
	if v != "" {
		var err error
		if v, err = VerifiedInt(v); err != nil {
			return err
		}
	}
	if s.date != "" {
		setField(&s.element, &s.date, "")
		s.weekDay = ""
		s.localeDate = ""
	}
	setField(&s.element, &s.day, v)
	return nil
}

func (s *Section) Time() string { return s.time }

// SetTime validates v as an ISO time, padding it to HH:MM:SS.
func (s *Section) SetTime(v string) error {
	if v != "" {
		var err error
		if v, err = VerifiedTime(v); err != nil {
			return err
		}
	}
	setField(&s.element, &s.time, v)
	return nil
}

func (s *Section) WeekDay() string    { return s.weekDay }
func (s *Section) LocaleDate() string { return s.localeDate }

func (s *Section) LastsDays() string    { return s.lastsDays }
func (s *Section) LastsHours() string   { return s.lastsHours }
func (s *Section) LastsMinutes() string { return s.lastsMinutes }

func (s *Section) SetLastsDays(v string) error {
	return s.setDuration(&s.lastsDays, v)
}

func (s *Section) SetLastsHours(v string) error {
	return s.setDuration(&s.lastsHours, v)
}

func (s *Section) SetLastsMinutes(v string) error {
	return s.setDuration(&s.lastsMinutes, v)
}

func (s *Section) setDuration(dst *string, v string) error {
	if v != "" {
		var err error
		if v, err = VerifiedInt(v); err != nil {
			return err
		}
	}
	setField(&s.element, dst, v)
	return nil
}

func (s *Section) Characters() []string     { return s.characters }
func (s *Section) SetCharacters(v []string) { setList(&s.element, &s.characters, v) }
func (s *Section) Locations() []string      { return s.locations }
func (s *Section) SetLocations(v []string)  { setList(&s.element, &s.locations, v) }
func (s *Section) Items() []string          { return s.items }
func (s *Section) SetItems(v []string)      { setList(&s.element, &s.items, v) }

func (s *Section) Content() string { return s.content }

// SetContent stores the marked-up prose and keeps the word count in sync.
func (s *Section) SetContent(v string) {
	if s.content == v {
		return
	}
	s.content = v
	s.wordCount = CountWords(v)
	s.notify()
}

func (s *Section) WordCount() int { return s.wordCount }

// PlotLines lists the plot lines this section belongs to. Maintained by the
// model when plot line assignments change.
func (s *Section) PlotLines() []string     { return s.scPlotLines }
func (s *Section) SetPlotLines(v []string) { s.scPlotLines = dedup(v) }

// PlotPoints maps the IDs of plot points anchored here to their owning plot
// line.
func (s *Section) PlotPoints() *OrderedMap[string] { return s.scPlotPoints }

// EndDateTime reports when the section ends, adding the duration fields to
// the start. The first result is a calendar date when the section has one,
// otherwise a day number.
func (s *Section) EndDateTime() (string, string, error) {
	startTime := s.time
	if startTime == "" {
		startTime = "00:00:00"
	}
	clock, err := time.Parse(isoTimeLayout, startTime)
	if err != nil {
		return "", "", err
	}
	seconds := clock.Hour()*3600 + clock.Minute()*60 + clock.Second() +
		atoiDefault(s.lastsHours)*3600 + atoiDefault(s.lastsMinutes)*60
	carry := atoiDefault(s.lastsDays) + seconds/86400
	seconds %= 86400
	endTime := fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	if s.date != "" {
		start, err := time.Parse(isoDateLayout, s.date)
		if err != nil {
			return "", "", err
		}
		return start.AddDate(0, 0, carry).Format(isoDateLayout), endTime, nil
	}
	return fmt.Sprint(atoiDefault(s.day) + carry), endTime, nil
}

func atoiDefault(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
