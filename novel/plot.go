package novel

// PlotLine is a story arc threading through a subset of the sections. Its
// short name doubles as the arc label in exports.
type PlotLine struct {
	noted
	shortName string
	sections  []string
}

func (p *PlotLine) ShortName() string     { return p.shortName }
func (p *PlotLine) SetShortName(v string) { setField(&p.element, &p.shortName, v) }
func (p *PlotLine) Sections() []string    { return p.sections }
func (p *PlotLine) SetSections(v []string) {
	setList(&p.element, &p.sections, v)
}

// PlotPoint is a narrative beat on a plot line, optionally anchored to the
// section where it happens.
type PlotPoint struct {
	noted
	sectionAssoc string
}

func (p *PlotPoint) SectionAssoc() string { return p.sectionAssoc }
func (p *PlotPoint) SetSectionAssoc(v string) {
	setField(&p.element, &p.sectionAssoc, v)
}

// ProjectNote is a free-form note attached to the project as a whole.
type ProjectNote struct {
	element
}
