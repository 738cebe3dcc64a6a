package novel

import (
	"slices"
	"testing"
	"time"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		text    string
		divider string
		want    []string
	}{
		{"", ";", nil},
		{"Alice; Bob;Alice ; ;Carol", ";", []string{"Alice", "Bob", "Carol"}},
		{"cr1 cr2 cr1", " ", []string{"cr1", "cr2"}},
	}
	for _, c := range cases {
		got := SplitList(c.text, c.divider)
		if !slices.Equal(got, c.want) {
			t.Errorf("SplitList(%q, %q) = %v, want %v", c.text, c.divider, got, c.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"<p>one two three</p>", 3},
		{"<p>one--two—three</p><p>four</p>", 4},
		{"<p>one <note>not counted</note>two</p>", 2},
		{"<p>one <comment>skip this</comment>two</p>", 2},
		{"<p>first</p><p>second</p>", 2},
	}
	for _, c := range cases {
		if got := CountWords(c.text); got != c.want {
			t.Errorf("CountWords(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestSectionDateDayExclusive(t *testing.T) {
	m := NewModel(nil)
	s := m.AddSection("sc1")
	if err := s.SetDate("2024-07-13"); err != nil {
		t.Fatal(err)
	}
	if s.WeekDay() != "Saturday" {
		t.Errorf("week day = %q, want Saturday", s.WeekDay())
	}
	if err := s.SetDay("3"); err != nil {
		t.Fatal(err)
	}
	if s.Date() != "" || s.WeekDay() != "" || s.LocaleDate() != "" {
		t.Errorf("setting a day must clear the date, got %q/%q/%q", s.Date(), s.WeekDay(), s.LocaleDate())
	}
	if err := s.SetDate("2024-07-14"); err != nil {
		t.Fatal(err)
	}
	if s.Day() != "" {
		t.Errorf("setting a date must clear the day, got %q", s.Day())
	}
	if err := s.SetDate("not a date"); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestSectionTimePadding(t *testing.T) {
	m := NewModel(nil)
	s := m.AddSection("sc1")
	cases := []struct{ in, want string }{
		{"8", "8:00:00"},
		{"08:30", "08:30:00"},
		{"08:30:15", "08:30:15"},
	}
	for _, c := range cases {
		if err := s.SetTime(c.in); err != nil {
			t.Fatalf("SetTime(%q): %v", c.in, err)
		}
		if s.Time() != c.want {
			t.Errorf("SetTime(%q) stored %q, want %q", c.in, s.Time(), c.want)
		}
	}
	if err := s.SetTime("25:00"); err == nil {
		t.Error("expected an error for an out of range time")
	}
}

func TestSectionContentWordCount(t *testing.T) {
	m := NewModel(nil)
	s := m.AddSection("sc1")
	s.SetContent("<p>one two</p><p>three</p>")
	if s.WordCount() != 3 {
		t.Errorf("word count = %d, want 3", s.WordCount())
	}
	s.SetContent("")
	if s.WordCount() != 0 {
		t.Errorf("word count after clearing = %d, want 0", s.WordCount())
	}
}

func TestChangeHook(t *testing.T) {
	var fired int
	m := NewModel(func() { fired++ })
	c := m.AddChapter("ch1")
	c.SetTitle("One")
	c.SetTitle("One")
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}
	s := m.AddSection("sc1")
	s.SetCharacters([]string{"cr1", "cr1", "cr2"})
	s.SetCharacters([]string{"cr1", "cr2"})
	if fired != 2 {
		t.Errorf("hook fired %d times, want 2", fired)
	}
}

func TestAdjustSectionTypes(t *testing.T) {
	m := NewModel(nil)

	part := m.AddChapter("ch1")
	part.SetLevel(PartLevel)
	part.SetType(TypeUnused)
	m.Tree.Append(Root(ChapterRoot), "ch1")

	m.AddChapter("ch2")
	m.Tree.Append(Root(ChapterRoot), "ch2")
	m.AddSection("sc1")
	m.Tree.Append(ChapterParent("ch2"), "sc1")

	trash := m.AddChapter("ch3")
	trash.SetIsTrash(true)
	m.Tree.Append(Root(ChapterRoot), "ch3")

	m.AdjustSectionTypes()

	if got := m.Chapters["ch2"].Type(); got != TypeUnused {
		t.Errorf("chapter under unused part has type %d, want %d", got, TypeUnused)
	}
	if got := m.Sections["sc1"].Type(); got != SectionUnused {
		t.Errorf("section under unused chapter has type %d, want %d", got, SectionUnused)
	}
	if got := m.Chapters["ch3"].Type(); got != TypeNormal {
		t.Errorf("trash chapter type changed to %d", got)
	}
}

func TestCountWordsTotals(t *testing.T) {
	m := NewModel(nil)
	m.AddChapter("ch1")
	m.Tree.Append(Root(ChapterRoot), "ch1")

	used := m.AddSection("sc1")
	used.SetContent("<p>one two three</p>")
	m.Tree.Append(ChapterParent("ch1"), "sc1")

	unused := m.AddSection("sc2")
	unused.SetType(SectionUnused)
	unused.SetContent("<p>four five</p>")
	m.Tree.Append(ChapterParent("ch1"), "sc2")

	stage := m.AddSection("sc3")
	stage.SetType(StageLevel1)
	stage.SetContent("<p>never counted</p>")
	m.Tree.Append(ChapterParent("ch1"), "sc3")

	trash := m.AddChapter("ch2")
	trash.SetIsTrash(true)
	m.Tree.Append(Root(ChapterRoot), "ch2")
	dropped := m.AddSection("sc4")
	dropped.SetContent("<p>gone</p>")
	m.Tree.Append(ChapterParent("ch2"), "sc4")

	count, withUnused := m.CountWords()
	if count != 3 || withUnused != 5 {
		t.Errorf("CountWords() = (%d, %d), want (3, 5)", count, withUnused)
	}
}

func TestUpdatePlotLines(t *testing.T) {
	m := NewModel(nil)
	m.AddChapter("ch1")
	m.Tree.Append(Root(ChapterRoot), "ch1")
	m.AddSection("sc1")
	m.Tree.Append(ChapterParent("ch1"), "sc1")

	pl := m.AddPlotLine("ac1")
	pl.SetSections([]string{"sc1", "sc9"})
	m.Tree.Append(Root(PlotLineRoot), "ac1")

	pp := m.AddPlotPoint("ap1")
	pp.SetSectionAssoc("sc1")
	m.Tree.Append(PlotLineParent("ac1"), "ap1")

	orphan := m.AddPlotPoint("ap2")
	orphan.SetSectionAssoc("sc9")
	m.Tree.Append(PlotLineParent("ac1"), "ap2")

	m.UpdatePlotLines()

	if got := pl.Sections(); !slices.Equal(got, []string{"sc1"}) {
		t.Errorf("plot line sections = %v, want [sc1]", got)
	}
	s := m.Sections["sc1"]
	if got := s.PlotLines(); !slices.Equal(got, []string{"ac1"}) {
		t.Errorf("section plot lines = %v, want [ac1]", got)
	}
	if plID, ok := s.PlotPoints().Get("ap1"); !ok || plID != "ac1" {
		t.Errorf("plot point ap1 anchored to %q (%v), want ac1", plID, ok)
	}
	if _, ok := s.PlotPoints().Get("ap2"); ok {
		t.Error("orphaned plot point must not be anchored")
	}
}

func TestPruneSectionReferences(t *testing.T) {
	m := NewModel(nil)
	m.AddCharacter("cr1")
	m.AddLocation("lc1")
	s := m.AddSection("sc1")
	s.SetCharacters([]string{"cr1", "cr9"})
	s.SetLocations([]string{"lc1", "lc9"})
	s.SetItems([]string{"it9"})

	m.PruneSectionReferences()

	if got := s.Characters(); !slices.Equal(got, []string{"cr1"}) {
		t.Errorf("characters = %v, want [cr1]", got)
	}
	if got := s.Locations(); !slices.Equal(got, []string{"lc1"}) {
		t.Errorf("locations = %v, want [lc1]", got)
	}
	if got := s.Items(); got != nil {
		t.Errorf("items = %v, want none", got)
	}
}

func TestWordCountLog(t *testing.T) {
	m := NewModel(nil)
	m.Book.SetSaveWordCount(true)
	m.AddChapter("ch1")
	m.Tree.Append(Root(ChapterRoot), "ch1")
	s := m.AddSection("sc1")
	s.SetContent("<p>one two three</p>")
	m.Tree.Append(ChapterParent("ch1"), "sc1")

	m.WCLog.Set("2024-01-01", WordCount{"5", "5"})
	m.KeepWordCount(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))
	m.UpdateWordCountLog(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	want := []LogEntry{
		{"2024-01-01", WordCount{"5", "5"}},
		{"2024-02-01", WordCount{"3", "3"}},
		{"2024-03-01", WordCount{"3", "3"}},
	}
	got := m.LogEntries()
	if len(got) != 2 {
		t.Fatalf("LogEntries() = %v, want the first two of %v with the duplicate collapsed", got, want)
	}
	for i, e := range want[:2] {
		if got[i] != e {
			t.Errorf("entry %d = %v, want %v", i, got[i], e)
		}
	}
}

func TestLogEntriesKeepDuplicatesWithoutSaving(t *testing.T) {
	m := NewModel(nil)
	m.WCLog.Set("2024-01-01", WordCount{"5", "5"})
	m.WCLog.Set("2024-01-02", WordCount{"5", "5"})
	if got := m.LogEntries(); len(got) != 2 {
		t.Errorf("LogEntries() collapsed to %v although word counts are not being saved", got)
	}
}

func TestEndDateTime(t *testing.T) {
	m := NewModel(nil)
	s := m.AddSection("sc1")
	if err := s.SetDate("2024-07-13"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTime("23:30"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastsHours("1"); err != nil {
		t.Fatal(err)
	}
	date, clock, err := s.EndDateTime()
	if err != nil {
		t.Fatal(err)
	}
	if date != "2024-07-14" || clock != "00:30:00" {
		t.Errorf("EndDateTime() = (%s, %s), want (2024-07-14, 00:30:00)", date, clock)
	}

	if err := s.SetDay("2"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastsDays("3"); err != nil {
		t.Fatal(err)
	}
	date, clock, err = s.EndDateTime()
	if err != nil {
		t.Fatal(err)
	}
	if date != "5" || clock != "00:30:00" {
		t.Errorf("EndDateTime() = (%s, %s), want (5, 00:30:00)", date, clock)
	}
}

func TestDayDateConversion(t *testing.T) {
	date, err := DateFromDay("10", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if date != "2024-01-11" {
		t.Errorf("DateFromDay = %s, want 2024-01-11", date)
	}
	day, err := DayFromDate("2024-01-11", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if day != "10" {
		t.Errorf("DayFromDate = %s, want 10", day)
	}
}

func TestCharacterAge(t *testing.T) {
	m := NewModel(nil)
	c := m.AddCharacter("cr1")
	if err := c.SetBirthDate("2000-06-15"); err != nil {
		t.Fatal(err)
	}
	age, err := c.Age("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if age != 23 {
		t.Errorf("age = %d, want 23", age)
	}
	if err := c.SetDeathDate("2020-01-01"); err != nil {
		t.Fatal(err)
	}
	age, err = c.Age("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if age != -4 {
		t.Errorf("years since death = %d, want -4", age)
	}
}

func TestTreeInsertAndDelete(t *testing.T) {
	tr := NewTree()
	tr.Append(Root(ChapterRoot), "ch1")
	tr.Append(Root(ChapterRoot), "ch3")
	tr.Insert(Root(ChapterRoot), 1, "ch2")
	if got := tr.Children(Root(ChapterRoot)); !slices.Equal(got, []string{"ch1", "ch2", "ch3"}) {
		t.Errorf("children = %v, want [ch1 ch2 ch3]", got)
	}
	tr.Append(ChapterParent("ch1"), "sc1")
	tr.DeleteChildren(Root(ChapterRoot))
	if got := tr.Children(Root(ChapterRoot)); got != nil {
		t.Errorf("children after delete = %v, want none", got)
	}
	if got := tr.Children(ChapterParent("ch1")); got != nil {
		t.Errorf("sections of a deleted chapter = %v, want none", got)
	}
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "3")
	if got := m.Keys(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("keys = %v, want [b a]", got)
	}
	if v, _ := m.Get("b"); v != "3" {
		t.Errorf("b = %q, want 3", v)
	}
	m.Delete("b")
	if got := m.Keys(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("keys after delete = %v, want [a]", got)
	}
}
