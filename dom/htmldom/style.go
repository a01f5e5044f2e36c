package htmldom

import (
	"strings"

	"golang.org/x/net/html"
)

// SnapshotStyleAttr carries real computed style harvested from a live page
// (see the livedom package). When present it wins over inline styles and
// rules: it IS the computed style.
const SnapshotStyleAttr = "data-av-style"

// styleRule is one selector → declarations entry. Rules are consulted in
// insertion order with last-match-wins, and an inline style attribute
// overrides them all.
type styleRule struct {
	sel   simpleSelector
	decls map[string]string
}

// AddStyle registers declarations for every element matching a simple CSS
// selector. Supported selector subset:
//   - tag: "input", "form"
//   - .class, #id, tag.class, tag#id
//   - tag[attr], tag[attr=val]
//   - descendant combinator via space is NOT supported here; rules apply to
//     the matched element only, as computed style would.
func (d *Document) AddStyle(selector string, decls map[string]string) {
	norm := make(map[string]string, len(decls))
	for k, v := range decls {
		norm[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	d.rules = append(d.rules, styleRule{sel: parseSimpleSelector(selector), decls: norm})
}

// computedStyle resolves one property for a node. Missing property means the
// CSS default; the engine treats "" accordingly.
func (d *Document) computedStyle(n *html.Node, prop string) string {
	prop = strings.ToLower(prop)

	if snap, ok := nodeAttr(n, SnapshotStyleAttr); ok {
		if v, ok := parseInlineStyle(snap)[prop]; ok {
			return v
		}
	}

	if inline, ok := nodeAttr(n, "style"); ok {
		if v, ok := parseInlineStyle(inline)[prop]; ok {
			return v
		}
	}

	val := ""
	for _, r := range d.rules {
		if v, ok := r.decls[prop]; ok && matchesSelector(n, r.sel) {
			val = v
		}
	}
	return val
}

// parseInlineStyle splits "display: none; opacity:0" into a property map.
// Malformed declarations are skipped.
func parseInlineStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

// querySelectorAll returns all nodes matching a simple CSS selector, with
// the space-separated descendant combinator.
func querySelectorAll(doc *html.Node, selector string) []*html.Node {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}

	matches := matchSimple(doc, parts[0])
	for i := 1; i < len(parts); i++ {
		var next []*html.Node
		for _, parent := range matches {
			next = append(next, matchSimple(parent, parts[i])...)
		}
		matches = next
	}
	return matches
}

// matchSimple finds all nodes under root matching a single selector part.
func matchSimple(root *html.Node, sel string) []*html.Node {
	m := parseSimpleSelector(sel)
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n != root && matchesSelector(n, m) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return results
}

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
	any     bool
}

// parseSimpleSelector parses "tag.class", "#id", "tag[attr=val]", "*".
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector
	sel = strings.TrimSpace(sel)
	if sel == "*" || sel == "" {
		s.any = true
		return s
	}

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eqIdx := strings.IndexByte(attrPart, '='); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = strings.ToLower(sel)
	return s
}

// matchesSelector checks whether an element node matches a parsed selector.
func matchesSelector(n *html.Node, s simpleSelector) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.any {
		return true
	}
	if s.tag != "" && !strings.EqualFold(n.Data, s.tag) {
		return false
	}
	if s.id != "" {
		if id, _ := nodeAttr(n, "id"); id != s.id {
			return false
		}
	}
	if s.class != "" {
		cls, _ := nodeAttr(n, "class")
		found := false
		for _, c := range strings.Fields(cls) {
			if c == s.class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.attrKey != "" {
		v, ok := nodeAttr(n, s.attrKey)
		if !ok {
			return false
		}
		if s.attrVal != "" && v != s.attrVal {
			return false
		}
	}
	return true
}

func nodeAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
