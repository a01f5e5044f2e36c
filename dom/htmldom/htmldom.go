// Package htmldom adapts a parsed HTML tree (golang.org/x/net/html) to the
// dom abstraction. It backs the formscan CLI, the livedom snapshot path, and
// every engine test: detection semantics exercised here are exactly what the
// platform adapters reproduce against live documents.
//
// Computed style is approximated from inline style attributes plus a
// caller-supplied set of simple-selector rules. That is enough to express
// every visibility trick the engine defends against (display:none,
// visibility:hidden, opacity:0, transition reveals).
package htmldom

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/aliasvault/formcore/dom"
)

// ErrNoDocument is returned when the source parses to an empty tree.
var ErrNoDocument = errors.New("htmldom: no document element")

// Document is an in-memory document implementing dom.Document and dom.Events.
type Document struct {
	doc      *html.Node
	root     *html.Node // the <html> element
	location string

	wrap  map[*html.Node]*element
	rules []styleRule

	nextHandler int
	submitH     map[int]func(dom.Element)
	clickH      map[int]func(dom.Element)
	addedH      map[int]func(dom.Element)
}

// Option configures Parse.
type Option func(*Document)

// WithLocation sets the page URL reported by Location.
func WithLocation(url string) Option {
	return func(d *Document) { d.location = url }
}

// Parse builds a Document from HTML source.
func Parse(src string, opts ...Option) (*Document, error) {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	d := &Document{
		doc:     node,
		wrap:    make(map[*html.Node]*element),
		submitH: make(map[int]func(dom.Element)),
		clickH:  make(map[int]func(dom.Element)),
		addedH:  make(map[int]func(dom.Element)),
	}
	for _, o := range opts {
		o(d)
	}

	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			d.root = c
			break
		}
	}
	if d.root == nil {
		return nil, ErrNoDocument
	}
	return d, nil
}

// Root returns the document element (<html>).
func (d *Document) Root() dom.Element { return d.elem(d.root) }

// Location returns the page URL, or "".
func (d *Document) Location() string { return d.location }

// Body returns the <body> element, or nil.
func (d *Document) Body() dom.Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			return d.elem(c)
		}
	}
	return nil
}

// QuerySelector returns the first element matching a simple CSS selector,
// or nil. See matchSimple for the supported subset.
func (d *Document) QuerySelector(sel string) dom.Element {
	nodes := querySelectorAll(d.doc, sel)
	if len(nodes) == 0 {
		return nil
	}
	return d.elem(nodes[0])
}

// QuerySelectorAll returns every element matching a simple CSS selector.
func (d *Document) QuerySelectorAll(sel string) []dom.Element {
	var out []dom.Element
	for _, n := range querySelectorAll(d.doc, sel) {
		out = append(out, d.elem(n))
	}
	return out
}

// AddSubtree parses fragment in the context of parent, grafts the resulting
// nodes, and fires OnAdded once per grafted root. This is the htmldom stand-in
// for the structural-change capability a live adapter derives from a
// MutationObserver.
func (d *Document) AddSubtree(parent dom.Element, fragment string) ([]dom.Element, error) {
	pe, ok := parent.(*element)
	if !ok || pe.doc != d {
		return nil, errors.New("htmldom: parent does not belong to this document")
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), pe.n)
	if err != nil {
		return nil, err
	}

	var added []dom.Element
	for _, n := range nodes {
		pe.n.AppendChild(n)
		if n.Type == html.ElementNode {
			added = append(added, d.elem(n))
		}
	}
	for _, el := range added {
		d.fireAdded(el)
	}
	return added, nil
}

// Detach removes el from the tree. Subsequent Connected calls on it report
// false. Used to simulate navigation races.
func (d *Document) Detach(el dom.Element) {
	e, ok := el.(*element)
	if !ok || e.doc != d || e.n.Parent == nil {
		return
	}
	e.n.Parent.RemoveChild(e.n)
}

// elem returns the singleton wrapper for a node, so dom.Element values
// obtained twice for the same node compare equal.
func (d *Document) elem(n *html.Node) *element {
	if n == nil {
		return nil
	}
	if e, ok := d.wrap[n]; ok {
		return e
	}
	e := &element{doc: d, n: n}
	d.wrap[n] = e
	return e
}

type element struct {
	doc *Document
	n   *html.Node
}

func (e *element) Tag() string { return strings.ToLower(e.n.Data) }

func (e *element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if strings.EqualFold(a.Key, name) {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

func (e *element) Parent() dom.Element {
	p := e.n.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	if p == nil {
		return nil
	}
	return e.doc.elem(p)
}

func (e *element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.elem(c))
		}
	}
	return out
}

func (e *element) Connected() bool {
	for n := e.n; n != nil; n = n.Parent {
		if n == e.doc.doc || n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *element) Style(prop string) string { return e.doc.computedStyle(e.n, prop) }
