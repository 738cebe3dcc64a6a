package novel

import "slices"

// RootTag names one of the six top level branches of the project tree.
type RootTag string

const (
	ChapterRoot     RootTag = "rtch"
	CharacterRoot   RootTag = "rtcr"
	LocationRoot    RootTag = "rtlc"
	ItemRoot        RootTag = "rtit"
	PlotLineRoot    RootTag = "rtac"
	ProjectNoteRoot RootTag = "rtpn"
)

var rootTags = []RootTag{
	ChapterRoot, CharacterRoot, LocationRoot,
	ItemRoot, PlotLineRoot, ProjectNoteRoot,
}

// Parent addresses a place in the tree a child can be attached to: either one
// of the six roots, or a chapter (for sections), or a plot line (for plot
// points).
type Parent struct {
	root RootTag
	id   string
}

func Root(tag RootTag) Parent          { return Parent{root: tag} }
func ChapterParent(id string) Parent   { return Parent{root: ChapterRoot, id: id} }
func PlotLineParent(id string) Parent  { return Parent{root: PlotLineRoot, id: id} }

// Tree keeps the order and nesting of all project entities. The entities
// themselves live in the model maps, the tree holds only IDs.
type Tree struct {
	roots    map[RootTag][]string
	children map[string][]string
}

func NewTree() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset empties the whole tree.
func (t *Tree) Reset() {
	t.roots = make(map[RootTag][]string)
	t.children = make(map[string][]string)
	for _, tag := range rootTags {
		t.roots[tag] = nil
	}
}

// Append attaches id as the last child of parent. Chapters and plot lines get
// an own empty child list so they can hold sections and plot points.
func (t *Tree) Append(parent Parent, id string) {
	if parent.id == "" {
		t.roots[parent.root] = append(t.roots[parent.root], id)
	} else {
		t.children[parent.id] = append(t.children[parent.id], id)
	}
	switch IDPrefix(id) {
	case ChapterPrefix, PlotLinePrefix:
		if _, ok := t.children[id]; !ok {
			t.children[id] = nil
		}
	}
}

// Insert attaches id as child number index of parent, clamping index to the
// valid range.
func (t *Tree) Insert(parent Parent, index int, id string) {
	list := t.Children(parent)
	if index < 0 {
		index = 0
	}
	if index > len(list) {
		index = len(list)
	}
	list = slices.Insert(slices.Clone(list), index, id)
	if parent.id == "" {
		t.roots[parent.root] = list
	} else {
		t.children[parent.id] = list
	}
	switch IDPrefix(id) {
	case ChapterPrefix, PlotLinePrefix:
		if _, ok := t.children[id]; !ok {
			t.children[id] = nil
		}
	}
}

// Children lists the child IDs of parent in order. The returned slice is
// shared, callers must not modify it.
func (t *Tree) Children(parent Parent) []string {
	if parent.id == "" {
		return t.roots[parent.root]
	}
	return t.children[parent.id]
}

// DeleteChildren drops the whole subtree below parent.
func (t *Tree) DeleteChildren(parent Parent) {
	for _, id := range t.Children(parent) {
		delete(t.children, id)
	}
	if parent.id == "" {
		t.roots[parent.root] = nil
	} else {
		t.children[parent.id] = nil
	}
}
