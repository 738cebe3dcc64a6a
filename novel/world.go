package novel

// WorldElement is a story-world entity with alternative names and tags.
// Locations and items are plain world elements, Character extends it.
type WorldElement struct {
	tagged
	aka string
}

func (w *WorldElement) Aka() string     { return w.aka }
func (w *WorldElement) SetAka(v string) { setField(&w.element, &w.aka, v) }

// Character carries the biography and goal sheets plus vital dates. The
// major flag separates main characters from supporting cast.
type Character struct {
	WorldElement
	bio       string
	goals     string
	fullName  string
	isMajor   bool
	birthDate string
	deathDate string
}

func (c *Character) Bio() string          { return c.bio }
func (c *Character) SetBio(v string)      { setField(&c.element, &c.bio, v) }
func (c *Character) Goals() string        { return c.goals }
func (c *Character) SetGoals(v string)    { setField(&c.element, &c.goals, v) }
func (c *Character) FullName() string     { return c.fullName }
func (c *Character) SetFullName(v string) { setField(&c.element, &c.fullName, v) }
func (c *Character) IsMajor() bool        { return c.isMajor }
func (c *Character) SetIsMajor(v bool)    { setField(&c.element, &c.isMajor, v) }
func (c *Character) BirthDate() string    { return c.birthDate }
func (c *Character) DeathDate() string    { return c.deathDate }

// SetBirthDate validates v as an ISO date. An empty value clears the field.
func (c *Character) SetBirthDate(v string) error {
	if v != "" {
		var err error
		if v, err = VerifiedDate(v); err != nil {
			return err
		}
	}
	setField(&c.element, &c.birthDate, v)
	return nil
}

func (c *Character) SetDeathDate(v string) error {
	if v != "" {
		var err error
		if v, err = VerifiedDate(v); err != nil {
			return err
		}
	}
	setField(&c.element, &c.deathDate, v)
	return nil
}

// Age reports the character's age in full years at the given ISO date,
// negative when counting years since death.
func (c *Character) Age(nowISO string) (int, error) {
	return Age(nowISO, c.birthDate, c.deathDate)
}
