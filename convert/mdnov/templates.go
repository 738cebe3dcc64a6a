package mdnov

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"mdnovx/novel"
)

// Block templates. Every block opens with the entity ID, carries the front
// matter between "---" fences and closes with a "%%" line. The span values
// (Links, Desc, ...) are pre-rendered and already carry their delimiters.
const (
	fileHeaderTemplate = "@@book\n    \n---\n{{.YAML}}\n---\n\n\n{{.Links}}{{.Desc}}%%\n\n"

	chapterTemplate = "\n@@{{.ID}}\n    \n---\n{{.YAML}}\n---\n\n{{.Links}}{{.Desc}}{{.Notes}}\n%%\n\n"

	sectionTemplate = "\n@@{{.ID}}\n    \n---\n{{.YAML}}\n---\n\n" +
		"{{.Links}}{{.Desc}}{{.Notes}}{{.Goal}}{{.Conflict}}{{.Outcome}}{{.Plotlines}}{{.Content}}%%\n"

	characterTemplate = "\n@@{{.ID}}\n    \n---\n{{.YAML}}\n---\n\n{{.Links}}{{.Desc}}{{.Bio}}{{.Goals}}{{.Notes}}\n%%\n\n"

	worldTemplate = "\n@@{{.ID}}\n    \n---\n{{.YAML}}\n---\n\n{{.Links}}{{.Desc}}{{.Notes}}\n%%\n\n"

	projectNoteTemplate = "\n@@{{.ID}}\n    \n---\n{{.YAML}}\n---\n\n{{.Links}}{{.Desc}}\n%%\n\n"

	fileFooterTemplate = "\n{{.Wordcountlog}}\n\n%%"
)

var blockTemplates = template.Must(template.New("header").Funcs(sprig.FuncMap()).Parse(fileHeaderTemplate))

func init() {
	template.Must(blockTemplates.New("chapter").Parse(chapterTemplate))
	template.Must(blockTemplates.New("section").Parse(sectionTemplate))
	template.Must(blockTemplates.New("character").Parse(characterTemplate))
	template.Must(blockTemplates.New("world").Parse(worldTemplate))
	template.Must(blockTemplates.New("projectNote").Parse(projectNoteTemplate))
	template.Must(blockTemplates.New("footer").Parse(fileFooterTemplate))
}

func renderBlock(buf *bytes.Buffer, name string, mapping map[string]string) error {
	if err := blockTemplates.ExecuteTemplate(buf, name, mapping); err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	return nil
}

// sanitizeMarkdown makes free text safe to embed in a block: front matter
// fences and block/span delimiters are defused, and paragraphs are separated
// by blank lines.
func sanitizeMarkdown(text string) string {
	for strings.Contains(text, "\n---") {
		text = strings.ReplaceAll(text, "\n---", "\n???")
	}
	text = strings.ReplaceAll(text, "@@", "??")
	text = strings.ReplaceAll(text, "%%", "??")
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	text = strings.ReplaceAll(text, "\n", "\n\n")
	return strings.TrimSpace(text)
}

// unsanitizeMarkdown reverses the paragraph spacing applied by
// sanitizeMarkdown, restoring single newline paragraph separators.
func unsanitizeMarkdown(text string) string {
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	return strings.TrimSpace(text)
}

// spanKey renders one tagged free text span, empty when there is no text.
func spanKey(text, key string) string {
	if text == "" || key == "" {
		return ""
	}
	return fmt.Sprintf("%%%%%s:\n\n%s\n\n", key, sanitizeMarkdown(text))
}

func renderLinks(links *novel.OrderedMap[string]) string {
	var parts []string
	for _, path := range links.Keys() {
		full, _ := links.Get(path)
		parts = append(parts, "%%Link:")
		parts = append(parts, fmt.Sprintf("[LinkPath](%s)", quotePath(path)))
		if full != "" {
			parts = append(parts, fmt.Sprintf("[FullPath](file:///%s)", quotePath(full)))
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func renderPlotlineNotes(s *novel.Section) string {
	var parts []string
	for _, plID := range s.PlotlineNotes().Keys() {
		inLine := false
		for _, id := range s.PlotLines() {
			if id == plID {
				inLine = true
				break
			}
		}
		if !inLine {
			continue
		}
		note, _ := s.PlotlineNotes().Get(plID)
		if note == "" {
			continue
		}
		parts = append(parts, "%%Plotline:", plID, "%%Plotline note:", sanitizeMarkdown(note))
	}
	return strings.Join(parts, "\n\n") + "\n\n"
}

func quotePath(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}

func unquotePath(path string) string {
	out, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return out
}
