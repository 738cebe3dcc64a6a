// Package novel implements the in-memory model of a novel-writing project:
// the book root with its chapters and sections, characters, locations, items,
// plot lines with their plot points, project notes and the historical word
// count log. Both project file codecs read into and write from this model.
package novel

import "strings"

// Every entity is identified by a stable string ID made of a two letter type
// prefix and a decimal suffix, e.g. "ch1" or "sc0003".
const (
	ChapterPrefix     = "ch"
	SectionPrefix     = "sc"
	CharacterPrefix   = "cr"
	LocationPrefix    = "lc"
	ItemPrefix        = "it"
	PlotLinePrefix    = "ac"
	PlotPointPrefix   = "ap"
	ProjectNotePrefix = "pn"
)

// IDPrefix returns the two letter type tag of an entity ID, empty if the ID is
// too short to carry one.
func IDPrefix(id string) string {
	if len(id) < 2 {
		return ""
	}
	return id[:2]
}

// SplitList splits text on divider dropping empty elements and duplicates
// while preserving order of first occurrence. Project files keep reference
// lists as "; " or space separated strings.
func SplitList(text, divider string) []string {
	if text == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, elem := range strings.Split(text, divider) {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		if _, dup := seen[elem]; dup {
			continue
		}
		seen[elem] = struct{}{}
		out = append(out, elem)
	}
	return out
}

// intersection keeps the elements of list that have a key in ref, preserving
// list order. Used to prune dangling entity references after load.
func intersection[V any](list []string, ref map[string]V) []string {
	var out []string
	for _, elem := range list {
		if _, ok := ref[elem]; ok {
			out = append(out, elem)
		}
	}
	return out
}
