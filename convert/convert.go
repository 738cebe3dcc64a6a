// Package convert drives whole file conversions between the two project
// formats. The source format is picked by file name extension, the target is
// always the other format next to the source.
package convert

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/convert/mdnov"
	"mdnovx/convert/novx"
	"mdnovx/novel"
)

// UI is the collaborator surface of the conversion: a question before a file
// is overwritten and one final status line. Status messages starting with "!"
// report a failure.
type UI interface {
	AskYesNo(question string) bool
	SetStatus(message string)
}

type codec interface {
	Read(path string, m *novel.Model) error
	Write(path string, m *novel.Model) error
}

// Converter runs single file conversions. Overwrite suppresses the
// confirmation question, strict is handed to the codecs.
type Converter struct {
	ui        UI
	log       *zap.Logger
	strict    bool
	overwrite bool
}

func New(ui UI, strict, overwrite bool, log *zap.Logger) *Converter {
	return &Converter{ui: ui, log: log.Named("convert"), strict: strict, overwrite: overwrite}
}

// Run converts the project at sourcePath into the other format, replacing the
// extension. The outcome is reported through the UI and returned.
func (c *Converter) Run(sourcePath string) error {
	srcFmt, ok := detectFmt(sourcePath)
	if !ok {
		c.ui.SetStatus(fmt.Sprintf("!File format %q is not supported.", ext(sourcePath)))
		return fmt.Errorf("%q: %w", sourcePath, common.ErrUnsupportedExtension)
	}
	targetPath := strings.TrimSuffix(sourcePath, srcFmt.Ext()) + srcFmt.Other().Ext()
	source := c.codecFor(srcFmt)
	target := c.codecFor(srcFmt.Other())

	if _, err := os.Stat(sourcePath); err != nil {
		c.ui.SetStatus(fmt.Sprintf("!File not found: %q.", sourcePath))
		return fmt.Errorf("source file %q: %w", sourcePath, err)
	}

	if _, err := os.Stat(targetPath); err == nil && !c.overwrite {
		if !c.ui.AskYesNo(fmt.Sprintf("Overwrite existing file %q?", targetPath)) {
			c.ui.SetStatus("!Action canceled by user.")
			return nil
		}
	}

	m := novel.NewModel(nil)
	if err := source.Read(sourcePath, m); err != nil {
		c.ui.SetStatus("!" + err.Error())
		return err
	}
	if err := target.Write(targetPath, m); err != nil {
		c.ui.SetStatus("!" + err.Error())
		return err
	}
	c.ui.SetStatus(fmt.Sprintf("File written: %q.", targetPath))
	c.log.Debug("Conversion finished",
		zap.Stringer("from", srcFmt), zap.String("source", sourcePath), zap.String("target", targetPath))
	return nil
}

func (c *Converter) codecFor(f common.ProjectFmt) codec {
	if f == common.FmtNovx {
		return novx.New(c.strict, c.log)
	}
	return mdnov.New(c.strict, c.log)
}

func detectFmt(path string) (common.ProjectFmt, bool) {
	switch {
	case strings.HasSuffix(path, common.NovxExt):
		return common.FmtNovx, true
	case strings.HasSuffix(path, common.MdnovExt):
		return common.FmtMdnov, true
	}
	return 0, false
}

// TargetPath derives the result file name for a source, swapping one project
// extension for the other. ok is false when the source has neither.
func TargetPath(sourcePath string) (string, bool) {
	f, ok := detectFmt(sourcePath)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(sourcePath, f.Ext()) + f.Other().Ext(), true
}

func ext(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}
