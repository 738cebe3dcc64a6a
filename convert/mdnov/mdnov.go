package mdnov

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/novel"
)

// Extension is the file name extension of this format.
const Extension = common.MdnovExt

// Codec reads and writes whole project files. In strict mode malformed input
// aborts the read, otherwise it is repaired with defined fallbacks and logged.
type Codec struct {
	strict bool
	log    *zap.Logger
}

func New(strict bool, log *zap.Logger) *Codec {
	return &Codec{strict: strict, log: log.Named("mdnov")}
}

// Read parses the file at path into m, runs the reference repair passes and
// queues a word count log correction when the stored counts are stale.
func (c *Codec) Read(path string, m *novel.Model) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %q: %w", path, err)
	}
	m.Tree.Reset()
	r := &reader{m: m, log: c.log, strict: c.strict}
	if err := r.run(string(data)); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	m.PruneSectionReferences()
	m.UpdatePlotLines()
	var stamp time.Time
	if fi, err := os.Stat(path); err == nil {
		stamp = fi.ModTime()
	}
	m.KeepWordCount(stamp)
	return nil
}

// Write renders m and replaces the file at path, backing up an existing one.
func (c *Codec) Write(path string, m *novel.Model) error {
	m.UpdateWordCountLog(time.Now())
	text, err := render(m)
	if err != nil {
		return err
	}
	return common.WriteFileWithBackup(path, []byte(text))
}
