package novel

// Chapter levels and types.
const (
	PartLevel    = 1
	ChapterLevel = 2

	TypeNormal = 0
	TypeUnused = 1
)

// Chapter is a part or chapter heading grouping sections. A part is a chapter
// with level 1; its type propagates to the chapters and sections below it.
type Chapter struct {
	noted
	level    int
	chType   int
	isTrash  bool
	noNumber bool
}

func (c *Chapter) Level() int { return c.level }

// SetLevel accepts PartLevel or ChapterLevel, anything else becomes
// ChapterLevel.
func (c *Chapter) SetLevel(v int) {
	if v != PartLevel {
		v = ChapterLevel
	}
	setField(&c.element, &c.level, v)
}

func (c *Chapter) Type() int { return c.chType }

// SetType accepts TypeNormal or TypeUnused, anything else becomes TypeUnused.
func (c *Chapter) SetType(v int) {
	if v != TypeNormal {
		v = TypeUnused
	}
	setField(&c.element, &c.chType, v)
}

func (c *Chapter) IsTrash() bool       { return c.isTrash }
func (c *Chapter) SetIsTrash(v bool)   { setField(&c.element, &c.isTrash, v) }
func (c *Chapter) NoNumber() bool      { return c.noNumber }
func (c *Chapter) SetNoNumber(v bool)  { setField(&c.element, &c.noNumber, v) }
