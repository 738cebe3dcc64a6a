package novx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Paragraph separator placeholder, used while line structure and tag
// replacements overlap during translation.
const paraSep = "@%&"

var (
	strongSpan  = regexp.MustCompile(`\*\*(.+?)\*\*`)
	emSpan      = regexp.MustCompile(`\*(.+?)\*`)
	commentTags = regexp.MustCompile(`<comment>.*?</comment>`)
	noteTags    = regexp.MustCompile(`<note.*?>.*?</note>`)
	spanTags    = regexp.MustCompile(`<span.*?>|</span>`)
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&amp;", "&",
)

// appendContent attaches the marked up prose to xmlSection as a Content
// element: one p per paragraph, emphasis markers turned into em and strong
// tags. Markup characters that XML reserves are escaped up front so the
// assembled fragment always parses.
func appendContent(xmlSection *etree.Element, text string) error {
	if text == "" {
		return nil
	}
	text = xmlEscaper.Replace(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "***", "§%§")
	text = strongSpan.ReplaceAllString(text, "<strong>$1</strong>")
	text = emSpan.ReplaceAllString(text, "<em>$1</em>")
	text = strings.ReplaceAll(text, "§%§", "***")
	lines := make([]string, 0, 8)
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, "<p>"+line+"</p>")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<Content>\n" + strings.Join(lines, "\n") + "\n</Content>"); err != nil {
		return fmt.Errorf("content markup: %w", err)
	}
	xmlSection.AddChild(doc.Root())
	return nil
}

// Ordered tag to markdown replacements. Emphasis spans move their leading
// space outside and adjacent spans of the same kind merge before the tags
// collapse to markers.
var contentReplacements = [][2]string{
	{"<Content>", ""},
	{"</Content>", ""},
	{"<em> ", " <em>"},
	{"<strong> ", " <strong>"},
	{"</em><em>", ""},
	{"</strong><strong>", ""},
	{"<p>", ""},
	{`<p style="quotations">`, ""},
	{"</p>", "\n"},
	{"<em>", "*"},
	{"</em>", "*"},
	{"<strong>", "**"},
	{"</strong>", "**"},
	{"  ", " "},
}

// contentText translates a Content element back into marked up prose.
// Comments, editor notes and style spans are dropped. Non-empty prose always
// ends with a newline.
func contentText(xmlContent *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.AddChild(xmlContent.Copy())
	text, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("content serialization: %w", err)
	}
	for _, r := range contentReplacements {
		text = strings.ReplaceAll(text, r[0], r[1])
	}
	text = strings.ReplaceAll(text, "\n", paraSep)
	text = commentTags.ReplaceAllString(text, "")
	text = noteTags.ReplaceAllString(text, "")
	var lines []string
	for _, line := range strings.Split(text, paraSep) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	text = strings.Join(lines, "\n")
	text = spanTags.ReplaceAllString(text, "")
	text = strings.TrimSpace(xmlUnescaper.Replace(text))
	if text == "" {
		return "", nil
	}
	return text + "\n", nil
}
