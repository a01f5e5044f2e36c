package detect

import (
	"github.com/aliasvault/formcore/dom"
)

// OrigAutocompleteAttr preserves the value the page declared before the
// engine disabled native completion, so a teardown can restore it.
const OrigAutocompleteAttr = "data-av-autocomplete-orig"

// DisableNativeAutocomplete turns off the browser's own completion for a
// classified field so it cannot race the vault popup. This is one of the two
// mutations the engine performs itself; everything else is delegated to the
// caller. No-ops on detached elements.
func DisableNativeAutocomplete(el dom.Element) {
	if el == nil || !el.Connected() {
		return
	}
	if orig, ok := el.Attr("autocomplete"); ok {
		el.SetAttr(OrigAutocompleteAttr, orig)
	}
	el.SetAttr("autocomplete", "off")
}

// RestoreNativeAutocomplete undoes DisableNativeAutocomplete.
func RestoreNativeAutocomplete(el dom.Element) {
	if el == nil || !el.Connected() {
		return
	}
	if orig, ok := el.Attr(OrigAutocompleteAttr); ok {
		el.SetAttr("autocomplete", orig)
		el.SetAttr(OrigAutocompleteAttr, "")
		return
	}
	el.SetAttr("autocomplete", "")
}

// IconAttacher is the caller-supplied hook that renders a visual indicator
// next to a classified field. The engine never touches layout itself.
type IconAttacher func(el dom.Element, role Role)

// AnnotateFields invokes attach for every autofill-triggerable field of a
// detected form, re-validating attachment first: fields may have left the
// tree since the detection pass.
func AnnotateFields(f *FormFields, attach IconAttacher) {
	if f == nil || attach == nil {
		return
	}
	for _, r := range []Role{RoleUsername, RoleEmail, RolePassword, RoleTotp} {
		if el := f.Field(r); el != nil && el.Connected() {
			attach(el, r)
		}
	}
}
