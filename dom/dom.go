// Package dom defines the document abstraction the detection engine operates
// on. The engine never touches a concrete DOM API: each host platform (browser
// content script, native autofill service, credential provider) supplies an
// adapter implementing Element, and the classifier, detector and capture
// machinery run unchanged on top of it.
//
// The tree is owned by the host and may mutate or disappear underneath the
// engine at any time (navigation, concurrent scripts). All read paths must
// tolerate detached elements; callers re-check Connected before acting on a
// reference held across an asynchronous gap.
package dom

// Element is one node of the host document tree.
//
// Attr returns the element's current attribute value. Adapters for live
// documents are expected to surface the current user-entered value of input
// elements through Attr("value"), not the initial markup value.
//
// Style returns the computed value of a CSS property ("display",
// "visibility", "opacity", "transition"). An empty string means the property
// resolves to its CSS default; the engine treats that as visible.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	Style(prop string) string
	Parent() Element
	Children() []Element
	Connected() bool
}

// Document is the root handle an adapter exposes.
type Document interface {
	Root() Element
	// Location returns the page URL, or "" when the host has none
	// (detached fragments, native app contexts).
	Location() string
}

// AttrDefault returns the attribute value or def when absent.
func AttrDefault(el Element, name, def string) string {
	if v, ok := el.Attr(name); ok {
		return v
	}
	return def
}
