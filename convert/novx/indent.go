package novx

import (
	"strings"

	"github.com/beevik/etree"
)

// indent pretty prints the tree in place with two space steps. Paragraphs and
// elements that carry significant character data of their own are left
// untouched so no whitespace leaks into the text. The tag check matters for
// paragraphs made of inline markup only, say a fully emphasized line: such a
// "p" has no direct character data yet its inside is still prose.
func indent(e *etree.Element, level int) {
	pad := "\n" + strings.Repeat("  ", level)
	children := e.ChildElements()
	if len(children) == 0 || e.Tag == "p" || hasOwnText(e) {
		if level > 0 && strings.TrimSpace(e.Tail()) == "" {
			e.SetTail(pad)
		}
		return
	}
	if strings.TrimSpace(e.Text()) == "" {
		e.SetText(pad + "  ")
	}
	if strings.TrimSpace(e.Tail()) == "" {
		e.SetTail(pad)
	}
	for _, child := range children {
		indent(child, level+1)
	}
	if last := children[len(children)-1]; strings.TrimSpace(last.Tail()) == "" {
		last.SetTail(pad)
	}
}

// hasOwnText reports whether any direct character data of e is more than
// whitespace.
func hasOwnText(e *etree.Element) bool {
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return true
		}
	}
	return false
}
