package mdnov

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mdnovx/common"
	"mdnovx/novel"
)

type linkable interface {
	SetLinks(*novel.OrderedMap[string])
}

// reader is the line state machine for one file. Block openers switch the
// current entity, "---" fences toggle front matter collection and "%%" lines
// close the running span before optionally opening a new one.
type reader struct {
	m      *novel.Model
	log    *zap.Logger
	strict bool

	inMeta    bool
	span      string
	collected []string

	applyMeta func(*metaReader)
	spans     map[string]func(string)
	element   linkable
	section   *novel.Section
	progress  bool

	chID     string
	plID     string
	plNoteID string
}

func (r *reader) run(text string) error {
	for n, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "@@") {
			if err := r.closeSpan(); err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			if err := r.openBlock(strings.TrimSpace(line[2:])); err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			continue
		}
		if err := r.line(line); err != nil {
			return fmt.Errorf("line %d: %w", n+1, err)
		}
	}
	return r.closeSpan()
}

func (r *reader) openBlock(tag string) error {
	r.inMeta = false
	r.collected = nil
	r.applyMeta = nil
	r.spans = nil
	r.element = nil
	r.section = nil
	r.progress = false
	r.plNoteID = ""

	switch {
	case tag == "book":
		b := r.m.Book
		r.element = b
		r.applyMeta = func(mr *metaReader) { applyBookMeta(b, mr) }
		r.spans = map[string]func(string){"Desc": b.SetDesc}

	case tag == "Progress":
		r.progress = true
		r.span = "Progress"

	case strings.HasPrefix(tag, novel.ChapterPrefix):
		c := r.m.AddChapter(tag)
		r.m.Tree.Append(novel.Root(novel.ChapterRoot), tag)
		r.chID = tag
		r.element = c
		r.applyMeta = func(mr *metaReader) { applyChapterMeta(c, mr) }
		r.spans = map[string]func(string){"Desc": c.SetDesc, "Notes": c.SetNotes}

	case strings.HasPrefix(tag, novel.SectionPrefix):
		if r.chID == "" {
			if r.strict {
				return fmt.Errorf("section %q appears before any chapter", tag)
			}
			r.log.Warn("Dropping section without a chapter", zap.String("id", tag))
			return nil
		}
		s := r.m.AddSection(tag)
		r.m.Tree.Append(novel.ChapterParent(r.chID), tag)
		r.element = s
		r.section = s
		r.applyMeta = func(mr *metaReader) { applySectionMeta(s, mr) }
		r.spans = map[string]func(string){
			"Desc":     s.SetDesc,
			"Notes":    s.SetNotes,
			"Goal":     s.SetGoal,
			"Conflict": s.SetConflict,
			"Outcome":  s.SetOutcome,
			"Content": func(text string) {
				if text != "" {
					text += "\n"
				}
				s.SetContent(text)
			},
		}

	case strings.HasPrefix(tag, novel.CharacterPrefix):
		c := r.m.AddCharacter(tag)
		r.m.Tree.Append(novel.Root(novel.CharacterRoot), tag)
		r.element = c
		r.applyMeta = func(mr *metaReader) { applyCharacterMeta(c, mr) }
		r.spans = map[string]func(string){
			"Desc": c.SetDesc, "Notes": c.SetNotes,
			"Bio": c.SetBio, "Goals": c.SetGoals,
		}

	case strings.HasPrefix(tag, novel.LocationPrefix):
		w := r.m.AddLocation(tag)
		r.m.Tree.Append(novel.Root(novel.LocationRoot), tag)
		r.element = w
		r.applyMeta = func(mr *metaReader) { applyWorldMeta(w, mr) }
		r.spans = map[string]func(string){"Desc": w.SetDesc, "Notes": w.SetNotes}

	case strings.HasPrefix(tag, novel.ItemPrefix):
		w := r.m.AddItem(tag)
		r.m.Tree.Append(novel.Root(novel.ItemRoot), tag)
		r.element = w
		r.applyMeta = func(mr *metaReader) { applyWorldMeta(w, mr) }
		r.spans = map[string]func(string){"Desc": w.SetDesc, "Notes": w.SetNotes}

	case strings.HasPrefix(tag, novel.PlotPointPrefix):
		if r.plID == "" {
			if r.strict {
				return fmt.Errorf("plot point %q appears before any plot line", tag)
			}
			r.log.Warn("Dropping plot point without a plot line", zap.String("id", tag))
			return nil
		}
		p := r.m.AddPlotPoint(tag)
		r.m.Tree.Append(novel.PlotLineParent(r.plID), tag)
		r.element = p
		r.applyMeta = func(mr *metaReader) { applyPlotPointMeta(p, mr) }
		r.spans = map[string]func(string){"Desc": p.SetDesc, "Notes": p.SetNotes}

	case strings.HasPrefix(tag, novel.PlotLinePrefix):
		p := r.m.AddPlotLine(tag)
		r.m.Tree.Append(novel.Root(novel.PlotLineRoot), tag)
		r.plID = tag
		r.element = p
		r.applyMeta = func(mr *metaReader) { applyPlotLineMeta(p, mr) }
		r.spans = map[string]func(string){"Desc": p.SetDesc, "Notes": p.SetNotes}

	case strings.HasPrefix(tag, novel.ProjectNotePrefix):
		n := r.m.AddProjectNote(tag)
		r.m.Tree.Append(novel.Root(novel.ProjectNoteRoot), tag)
		r.element = n
		r.applyMeta = func(mr *metaReader) { applyProjectNoteMeta(n, mr) }
		r.spans = map[string]func(string){"Desc": n.SetDesc}

	default:
		if r.strict {
			return fmt.Errorf("unknown block tag %q", tag)
		}
		r.log.Warn("Ignoring unknown block", zap.String("tag", tag))
	}
	return nil
}

func (r *reader) line(line string) error {
	if strings.HasPrefix(line, "---") && !r.progress {
		if !r.inMeta {
			r.inMeta = true
			r.collected = nil
			return nil
		}
		r.inMeta = false
		mr := parseMeta(r.collected, r.strict, r.log)
		r.collected = nil
		if r.applyMeta != nil {
			r.applyMeta(mr)
		}
		return mr.err
	}

	if strings.HasPrefix(line, "%%") {
		if err := r.closeSpan(); err != nil {
			return err
		}
		if tag := strings.Trim(line, "%: "); tag != "" {
			r.span = tag
		}
		return nil
	}

	if r.inMeta || r.span != "" {
		r.collected = append(r.collected, line)
	}
	return nil
}

func (r *reader) closeSpan() error {
	if r.span == "" {
		r.collected = nil
		return nil
	}
	text := strings.TrimSpace(strings.Join(r.collected, "\n"))
	span := r.span
	r.span = ""
	r.collected = nil

	switch {
	case r.progress:
		return r.setWordCount(text)
	case span == "Link":
		return r.setLinks(text)
	case span == "Plotline":
		r.plNoteID = text
	case span == "Plotline note":
		if r.section != nil && r.plNoteID != "" {
			notes := r.section.PlotlineNotes().Clone()
			notes.Set(r.plNoteID, unsanitizeMarkdown(text))
			r.section.SetPlotlineNotes(notes)
		}
		r.plNoteID = ""
	default:
		set, ok := r.spans[span]
		if !ok {
			r.log.Warn("Ignoring unknown span", zap.String("key", span))
			return nil
		}
		set(unsanitizeMarkdown(text))
		r.plNoteID = ""
	}
	return nil
}

func (r *reader) setLinks(text string) error {
	if r.element == nil {
		return nil
	}
	links := novel.NewOrderedMap[string]()
	rel := ""
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		kind, rest, ok := strings.Cut(line, "](")
		if !ok {
			if r.strict {
				return &common.FormatError{Field: "link", Value: line}
			}
			r.log.Warn("Dropping malformed link line", zap.String("line", line))
			continue
		}
		switch kind {
		case "[LinkPath":
			rel = unquotePath(strings.Trim(rest, ") "))
		case "[FullPath":
			full := strings.TrimPrefix(unquotePath(strings.Trim(rest, ") ")), "file:///")
			if rel != "" {
				links.Set(rel, full)
			}
			rel = ""
		}
	}
	r.element.SetLinks(links)
	return nil
}

func (r *reader) setWordCount(text string) error {
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(strings.Trim(line, "- "), ";")
		if len(parts) < 3 {
			if r.strict {
				return &common.FormatError{Field: "word count log", Value: line}
			}
			r.log.Warn("Dropping malformed word count entry", zap.String("line", line))
			continue
		}
		r.m.WCLog.Set(parts[0], novel.WordCount{Count: parts[1], WithUnused: parts[2]})
	}
	return nil
}
