package dom

import "strings"

// Walk visits el and every descendant in document order. Returning false
// from fn stops the walk.
func Walk(el Element, fn func(Element) bool) bool {
	if el == nil {
		return true
	}
	if !fn(el) {
		return false
	}
	for _, c := range el.Children() {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Descendants collects every element under root (excluding root itself)
// matching pred. A nil pred matches everything.
func Descendants(root Element, pred func(Element) bool) []Element {
	if root == nil {
		return nil
	}
	var out []Element
	for _, c := range root.Children() {
		Walk(c, func(el Element) bool {
			if pred == nil || pred(el) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// Closest walks from el upward (including el) and returns the first
// ancestor matching pred, or nil.
func Closest(el Element, pred func(Element) bool) Element {
	for cur := el; cur != nil; cur = cur.Parent() {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// OwnerForm returns the nearest enclosing <form> of el. When the page has no
// form tag (JS-driven login flows), it falls back to the outermost ancestor,
// effectively the document element, so detection still has a container to
// scan.
func OwnerForm(el Element) Element {
	if el == nil {
		return nil
	}
	if f := Closest(el, func(e Element) bool { return IsTag(e, "form") }); f != nil {
		return f
	}
	cur := el
	for cur.Parent() != nil {
		cur = cur.Parent()
	}
	return cur
}

// IsTag reports whether el has the given tag name, case-insensitively.
func IsTag(el Element, tag string) bool {
	return el != nil && strings.EqualFold(el.Tag(), tag)
}
