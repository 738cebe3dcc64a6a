// Package novx reads and writes novx project files: XML documents with a
// fixed branch order under the novx root and prose stored as p elements with
// light inline markup. The word count log, schedule data and plot structure
// all round-trip through the model.
package novx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/novel"
)

// Extension is the file name extension of this format.
const Extension = common.NovxExt

// Supported schema generation. Files of a newer major or minor version are
// rejected, as are files of an older major version.
const (
	majorVersion = 1
	minorVersion = 4
)

// xmlHeader is prepended verbatim after serialization, the serializer itself
// never writes a declaration.
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE novx SYSTEM "novx_1_4.dtd">
<?xml-stylesheet href="novx.css" type="text/css"?>
`

// Codec reads and writes whole project files. In strict mode malformed input
// aborts the read, otherwise it is repaired with defined fallbacks and logged.
type Codec struct {
	strict bool
	log    *zap.Logger
}

func New(strict bool, log *zap.Logger) *Codec {
	return &Codec{strict: strict, log: log.Named("novx")}
}

// Read parses the file at path into m, adjusts section types down the tree,
// runs the reference repair passes and queues a word count log correction
// when the stored counts are stale.
func (c *Codec) Read(path string, m *novel.Model) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %q: %w", path, err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "novx" {
		return fmt.Errorf("file %q is not a novx document", path)
	}
	if err := checkVersion(path, root.SelectAttrValue("version", "")); err != nil {
		return err
	}
	m.Tree.Reset()
	r := &reader{m: m, log: c.log, strict: c.strict}
	if err := r.readRoot(root); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	m.AdjustSectionTypes()
	m.PruneSectionReferences()
	m.UpdatePlotLines()
	var stamp time.Time
	if fi, err := os.Stat(path); err == nil {
		stamp = fi.ModTime()
	}
	m.KeepWordCount(stamp)
	return nil
}

func checkVersion(path, version string) error {
	majorStr, minorStr, ok := strings.Cut(version, ".")
	if !ok {
		return &common.FormatError{Field: "version", Value: version}
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return &common.FormatError{Field: "version", Value: version, Err: err}
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return &common.FormatError{Field: "version", Value: version, Err: err}
	}
	switch {
	case major > majorVersion:
		return &common.UnsupportedVersionError{Path: path, Version: version, Newer: true}
	case major < majorVersion:
		return &common.UnsupportedVersionError{Path: path, Version: version}
	case minor > minorVersion:
		return &common.UnsupportedVersionError{Path: path, Version: version, Newer: true}
	}
	return nil
}

// Write serializes m and replaces the file at path, backing up an existing
// one. The document is indented and carries the three line header in front of
// the root element.
func (c *Codec) Write(path string, m *novel.Model) error {
	m.UpdateWordCountLog(time.Now())
	m.AdjustSectionTypes()

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	root := doc.CreateElement("novx")
	root.CreateAttr("version", fmt.Sprintf("%d.%d", majorVersion, minorVersion))
	w := &writer{m: m}
	if err := w.buildRoot(root); err != nil {
		return err
	}
	indent(root, 0)

	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return common.WriteFileWithBackup(path, append([]byte(xmlHeader), data...))
}
