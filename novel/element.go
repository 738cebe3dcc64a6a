package novel

import "slices"

// ChangeHook is called whenever a setter actually changes a model field. The
// model installs a single hook on every entity it creates so callers can track
// dirty state. A nil hook is fine.
type ChangeHook func()

// element is the common base of every project entity: a title, a description
// and an ordered set of links mapping a relative path to a full path.
type element struct {
	onChange ChangeHook
	title    string
	desc     string
	links    *OrderedMap[string]
}

func (e *element) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// setField assigns v to *dst and fires the change hook, but only when the
// value actually differs.
func setField[T comparable](e *element, dst *T, v T) {
	if *dst == v {
		return
	}
	*dst = v
	e.notify()
}

func setList(e *element, dst *[]string, v []string) {
	v = dedup(v)
	if slices.Equal(*dst, v) {
		return
	}
	*dst = v
	e.notify()
}

func setMap[V comparable](e *element, dst **OrderedMap[V], v *OrderedMap[V]) {
	if (*dst).Equal(v) {
		return
	}
	*dst = v.Clone()
	e.notify()
}

func dedup(list []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, elem := range list {
		if _, dup := seen[elem]; dup {
			continue
		}
		seen[elem] = struct{}{}
		out = append(out, elem)
	}
	return out
}

func (e *element) Title() string        { return e.title }
func (e *element) SetTitle(v string)    { setField(e, &e.title, v) }
func (e *element) Desc() string         { return e.desc }
func (e *element) SetDesc(v string)     { setField(e, &e.desc, v) }
func (e *element) Links() *OrderedMap[string] { return e.links }

func (e *element) SetLinks(v *OrderedMap[string]) { setMap(e, &e.links, v) }

// noted extends element with free-form notes.
type noted struct {
	element
	notes string
}

func (n *noted) Notes() string     { return n.notes }
func (n *noted) SetNotes(v string) { setField(&n.element, &n.notes, v) }

// tagged extends noted with a tag list.
type tagged struct {
	noted
	tags []string
}

func (t *tagged) Tags() []string     { return t.tags }
func (t *tagged) SetTags(v []string) { setList(&t.element, &t.tags, v) }
