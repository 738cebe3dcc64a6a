package mdnov

import (
	"bytes"
	"strings"

	"mdnovx/novel"
)

// render produces the full file text: book header, chapters with their
// sections, characters, locations, items, plot lines with their plot points,
// project notes and the progress log footer.
func render(m *novel.Model) (string, error) {
	var buf bytes.Buffer

	err := renderBlock(&buf, "header", map[string]string{
		"YAML":  strings.Join(bookMeta(m.Book), "\n"),
		"Links": renderLinks(m.Book.Links()),
		"Desc":  spanKey(m.Book.Desc(), "Desc"),
	})
	if err != nil {
		return "", err
	}

	for _, chID := range m.Tree.Children(novel.Root(novel.ChapterRoot)) {
		c := m.Chapters[chID]
		err := renderBlock(&buf, "chapter", map[string]string{
			"ID":    chID,
			"YAML":  strings.Join(chapterMeta(c), "\n"),
			"Links": renderLinks(c.Links()),
			"Desc":  spanKey(c.Desc(), "Desc"),
			"Notes": spanKey(c.Notes(), "Notes"),
		})
		if err != nil {
			return "", err
		}
		for _, scID := range m.Tree.Children(novel.ChapterParent(chID)) {
			s := m.Sections[scID]
			err := renderBlock(&buf, "section", map[string]string{
				"ID":        scID,
				"YAML":      strings.Join(sectionMeta(s), "\n"),
				"Links":     renderLinks(s.Links()),
				"Desc":      spanKey(s.Desc(), "Desc"),
				"Notes":     spanKey(s.Notes(), "Notes"),
				"Goal":      spanKey(s.Goal(), "Goal"),
				"Conflict":  spanKey(s.Conflict(), "Conflict"),
				"Outcome":   spanKey(s.Outcome(), "Outcome"),
				"Plotlines": renderPlotlineNotes(s),
				"Content":   spanKey(s.Content(), "Content"),
			})
			if err != nil {
				return "", err
			}
		}
	}

	for _, crID := range m.Tree.Children(novel.Root(novel.CharacterRoot)) {
		c := m.Characters[crID]
		err := renderBlock(&buf, "character", map[string]string{
			"ID":    crID,
			"YAML":  strings.Join(characterMeta(c), "\n"),
			"Links": renderLinks(c.Links()),
			"Desc":  spanKey(c.Desc(), "Desc"),
			"Bio":   spanKey(c.Bio(), "Bio"),
			"Goals": spanKey(c.Goals(), "Goals"),
			"Notes": spanKey(c.Notes(), "Notes"),
		})
		if err != nil {
			return "", err
		}
	}

	for _, lcID := range m.Tree.Children(novel.Root(novel.LocationRoot)) {
		if err := renderWorld(&buf, lcID, m.Locations[lcID]); err != nil {
			return "", err
		}
	}
	for _, itID := range m.Tree.Children(novel.Root(novel.ItemRoot)) {
		if err := renderWorld(&buf, itID, m.Items[itID]); err != nil {
			return "", err
		}
	}

	for _, plID := range m.Tree.Children(novel.Root(novel.PlotLineRoot)) {
		p := m.PlotLines[plID]
		err := renderBlock(&buf, "world", map[string]string{
			"ID":    plID,
			"YAML":  strings.Join(plotLineMeta(p), "\n"),
			"Links": renderLinks(p.Links()),
			"Desc":  spanKey(p.Desc(), "Desc"),
			"Notes": spanKey(p.Notes(), "Notes"),
		})
		if err != nil {
			return "", err
		}
		for _, ppID := range m.Tree.Children(novel.PlotLineParent(plID)) {
			pp := m.PlotPoints[ppID]
			err := renderBlock(&buf, "world", map[string]string{
				"ID":    ppID,
				"YAML":  strings.Join(plotPointMeta(pp), "\n"),
				"Links": renderLinks(pp.Links()),
				"Desc":  spanKey(pp.Desc(), "Desc"),
				"Notes": spanKey(pp.Notes(), "Notes"),
			})
			if err != nil {
				return "", err
			}
		}
	}

	for _, pnID := range m.Tree.Children(novel.Root(novel.ProjectNoteRoot)) {
		n := m.ProjectNotes[pnID]
		err := renderBlock(&buf, "projectNote", map[string]string{
			"ID":    pnID,
			"YAML":  strings.Join(titleMeta(n.Title()), "\n"),
			"Links": renderLinks(n.Links()),
			"Desc":  spanKey(n.Desc(), "Desc"),
		})
		if err != nil {
			return "", err
		}
	}

	err = renderBlock(&buf, "footer", map[string]string{
		"Wordcountlog": renderWordCountLog(m),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderWorld(buf *bytes.Buffer, id string, w *novel.WorldElement) error {
	return renderBlock(buf, "world", map[string]string{
		"ID":    id,
		"YAML":  strings.Join(worldMeta(w), "\n"),
		"Links": renderLinks(w.Links()),
		"Desc":  spanKey(w.Desc(), "Desc"),
		"Notes": spanKey(w.Notes(), "Notes"),
	})
}

func renderWordCountLog(m *novel.Model) string {
	entries := m.LogEntries()
	if len(entries) == 0 {
		return ""
	}
	lines := []string{"@@Progress"}
	for _, e := range entries {
		lines = append(lines, "- "+e.Date+";"+e.Count+";"+e.WithUnused)
	}
	return strings.Join(lines, "\n")
}
