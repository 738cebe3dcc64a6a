package novel

// Work phases.
const (
	PhaseUnset          = 0
	PhaseOutline        = 1
	PhaseDraft          = 2
	PhaseFirstEdit      = 3
	PhaseSecondEdit     = 4
	PhaseDone           = 5
)

// Project is the book root element holding the project-wide options: author,
// word count targets, chapter numbering preferences and the custom field
// labels an editing front end may display.
type Project struct {
	element
	authorName     string
	wordTarget     int
	wordCountStart int
	workPhase      int

	renumberChapters    bool
	renumberParts       bool
	renumberWithinParts bool
	romanChapterNumbers bool
	romanPartNumbers    bool
	saveWordCount       bool

	chapterHeadingPrefix string
	chapterHeadingSuffix string
	partHeadingPrefix    string
	partHeadingSuffix    string

	customPlotProgress     string
	customCharacterization string
	customWorldBuilding    string
	customGoal             string
	customConflict         string
	customOutcome          string
	customChrBio           string
	customChrGoals         string

	referenceDate    string
	referenceWeekDay string
}

func (p *Project) AuthorName() string      { return p.authorName }
func (p *Project) SetAuthorName(v string)  { setField(&p.element, &p.authorName, v) }
func (p *Project) WordTarget() int         { return p.wordTarget }
func (p *Project) SetWordTarget(v int)     { setField(&p.element, &p.wordTarget, v) }
func (p *Project) WordCountStart() int     { return p.wordCountStart }
func (p *Project) SetWordCountStart(v int) { setField(&p.element, &p.wordCountStart, v) }

func (p *Project) WorkPhase() int { return p.workPhase }

// SetWorkPhase accepts PhaseOutline through PhaseDone, anything else becomes
// PhaseUnset.
func (p *Project) SetWorkPhase(v int) {
	if v < PhaseOutline || v > PhaseDone {
		v = PhaseUnset
	}
	setField(&p.element, &p.workPhase, v)
}

func (p *Project) RenumberChapters() bool        { return p.renumberChapters }
func (p *Project) SetRenumberChapters(v bool)    { setField(&p.element, &p.renumberChapters, v) }
func (p *Project) RenumberParts() bool           { return p.renumberParts }
func (p *Project) SetRenumberParts(v bool)       { setField(&p.element, &p.renumberParts, v) }
func (p *Project) RenumberWithinParts() bool     { return p.renumberWithinParts }
func (p *Project) SetRenumberWithinParts(v bool) { setField(&p.element, &p.renumberWithinParts, v) }
func (p *Project) RomanChapterNumbers() bool     { return p.romanChapterNumbers }
func (p *Project) SetRomanChapterNumbers(v bool) { setField(&p.element, &p.romanChapterNumbers, v) }
func (p *Project) RomanPartNumbers() bool        { return p.romanPartNumbers }
func (p *Project) SetRomanPartNumbers(v bool)    { setField(&p.element, &p.romanPartNumbers, v) }
func (p *Project) SaveWordCount() bool           { return p.saveWordCount }
func (p *Project) SetSaveWordCount(v bool)       { setField(&p.element, &p.saveWordCount, v) }

func (p *Project) ChapterHeadingPrefix() string { return p.chapterHeadingPrefix }
func (p *Project) SetChapterHeadingPrefix(v string) {
	setField(&p.element, &p.chapterHeadingPrefix, v)
}

func (p *Project) ChapterHeadingSuffix() string { return p.chapterHeadingSuffix }
func (p *Project) SetChapterHeadingSuffix(v string) {
	setField(&p.element, &p.chapterHeadingSuffix, v)
}

func (p *Project) PartHeadingPrefix() string     { return p.partHeadingPrefix }
func (p *Project) SetPartHeadingPrefix(v string) { setField(&p.element, &p.partHeadingPrefix, v) }
func (p *Project) PartHeadingSuffix() string     { return p.partHeadingSuffix }
func (p *Project) SetPartHeadingSuffix(v string) { setField(&p.element, &p.partHeadingSuffix, v) }

func (p *Project) CustomPlotProgress() string { return p.customPlotProgress }
func (p *Project) SetCustomPlotProgress(v string) {
	setField(&p.element, &p.customPlotProgress, v)
}

func (p *Project) CustomCharacterization() string { return p.customCharacterization }
func (p *Project) SetCustomCharacterization(v string) {
	setField(&p.element, &p.customCharacterization, v)
}

func (p *Project) CustomWorldBuilding() string { return p.customWorldBuilding }
func (p *Project) SetCustomWorldBuilding(v string) {
	setField(&p.element, &p.customWorldBuilding, v)
}

func (p *Project) CustomGoal() string        { return p.customGoal }
func (p *Project) SetCustomGoal(v string)    { setField(&p.element, &p.customGoal, v) }
func (p *Project) CustomConflict() string    { return p.customConflict }
func (p *Project) SetCustomConflict(v string) { setField(&p.element, &p.customConflict, v) }
func (p *Project) CustomOutcome() string     { return p.customOutcome }
func (p *Project) SetCustomOutcome(v string) { setField(&p.element, &p.customOutcome, v) }
func (p *Project) CustomChrBio() string      { return p.customChrBio }
func (p *Project) SetCustomChrBio(v string)  { setField(&p.element, &p.customChrBio, v) }
func (p *Project) CustomChrGoals() string    { return p.customChrGoals }
func (p *Project) SetCustomChrGoals(v string) { setField(&p.element, &p.customChrGoals, v) }

func (p *Project) ReferenceDate() string    { return p.referenceDate }
func (p *Project) ReferenceWeekDay() string { return p.referenceWeekDay }

// SetReferenceDate validates v as an ISO date and recomputes the reference
// week day. An empty value clears both.
func (p *Project) SetReferenceDate(v string) error {
	if v == "" {
		setField(&p.element, &p.referenceDate, "")
		p.referenceWeekDay = ""
		return nil
	}
	v, err := VerifiedDate(v)
	if err != nil {
		return err
	}
	if wd, ok := weekDay(v); ok {
		p.referenceWeekDay = wd.String()
	}
	setField(&p.element, &p.referenceDate, v)
	return nil
}
