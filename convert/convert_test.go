package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mdnovx/convert/mdnov"
	"mdnovx/novel"
)

type fakeUI struct {
	answer   bool
	asked    []string
	statuses []string
}

func (u *fakeUI) AskYesNo(question string) bool {
	u.asked = append(u.asked, question)
	return u.answer
}

func (u *fakeUI) SetStatus(message string) {
	u.statuses = append(u.statuses, message)
}

func (u *fakeUI) lastStatus() string {
	if len(u.statuses) == 0 {
		return ""
	}
	return u.statuses[len(u.statuses)-1]
}

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
}

func sampleProject(t *testing.T, dir string) string {
	t.Helper()
	m := novel.NewModel(nil)
	m.Book.SetTitle("Sample")
	m.Book.SetAuthorName("J. Doe")
	m.AddChapter("ch1").SetTitle("One")
	m.Tree.Append(novel.Root(novel.ChapterRoot), "ch1")
	s := m.AddSection("sc1")
	s.SetTitle("Opening")
	s.SetContent("He said *go* and meant **stay**.\nNobody argued.\n")
	m.Tree.Append(novel.ChapterParent("ch1"), "sc1")
	cr := m.AddCharacter("cr1")
	cr.SetTitle("Vera")
	m.Tree.Append(novel.Root(novel.CharacterRoot), "cr1")
	s.SetCharacters([]string{"cr1"})

	path := filepath.Join(dir, "sample.mdnov")
	if err := mdnov.New(true, testLogger(t)).Write(path, m); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBothDirections(t *testing.T) {
	dir := t.TempDir()
	mdnovPath := sampleProject(t, dir)
	before, err := os.ReadFile(mdnovPath)
	if err != nil {
		t.Fatal(err)
	}

	ui := &fakeUI{answer: true}
	c := New(ui, true, false, testLogger(t))
	if err := c.Run(mdnovPath); err != nil {
		t.Fatal(err)
	}
	novxPath := filepath.Join(dir, "sample.novx")
	if _, err := os.Stat(novxPath); err != nil {
		t.Fatalf("target not written: %v", err)
	}
	if got := ui.lastStatus(); got != `File written: "`+novxPath+`".` {
		t.Errorf("status = %q", got)
	}
	if len(ui.asked) != 0 {
		t.Errorf("unexpected question: %v", ui.asked)
	}

	// Converting back overwrites the source, after confirmation, and must
	// reproduce it byte for byte.
	if err := c.Run(novxPath); err != nil {
		t.Fatal(err)
	}
	if len(ui.asked) != 1 || !strings.Contains(ui.asked[0], "Overwrite existing file") {
		t.Errorf("questions = %v", ui.asked)
	}
	after, err := os.ReadFile(mdnovPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Errorf("round trip changed the file:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestRunRefusalCancels(t *testing.T) {
	dir := t.TempDir()
	mdnovPath := sampleProject(t, dir)
	novxPath := filepath.Join(dir, "sample.novx")
	if err := os.WriteFile(novxPath, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	ui := &fakeUI{answer: false}
	if err := New(ui, true, false, testLogger(t)).Run(mdnovPath); err != nil {
		t.Fatal(err)
	}
	if got := ui.lastStatus(); got != "!Action canceled by user." {
		t.Errorf("status = %q", got)
	}
	data, err := os.ReadFile(novxPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keep" {
		t.Error("declined conversion touched the target")
	}
}

func TestRunOverwriteSkipsQuestion(t *testing.T) {
	dir := t.TempDir()
	mdnovPath := sampleProject(t, dir)
	novxPath := filepath.Join(dir, "sample.novx")
	if err := os.WriteFile(novxPath, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	ui := &fakeUI{answer: false}
	if err := New(ui, true, true, testLogger(t)).Run(mdnovPath); err != nil {
		t.Fatal(err)
	}
	if len(ui.asked) != 0 {
		t.Errorf("unexpected question: %v", ui.asked)
	}
	if _, err := os.Stat(novxPath + ".bak"); err != nil {
		t.Errorf("backup of the old target missing: %v", err)
	}
}

func TestRunUnsupportedExtension(t *testing.T) {
	ui := &fakeUI{}
	err := New(ui, false, false, testLogger(t)).Run("story.txt")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := ui.lastStatus(); got != `!File format ".txt" is not supported.` {
		t.Errorf("status = %q", got)
	}
}

func TestRunMissingSource(t *testing.T) {
	ui := &fakeUI{}
	missing := filepath.Join(t.TempDir(), "gone.mdnov")
	if err := New(ui, false, false, testLogger(t)).Run(missing); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasPrefix(ui.lastStatus(), "!File not found:") {
		t.Errorf("status = %q", ui.lastStatus())
	}
}
