package detect

import (
	"github.com/aliasvault/formcore/dom"
)

// Detector answers form-level questions for one interaction: a clicked or
// focused element (possibly nil for a whole-document query) inside a
// document. Detectors are cheap, stateless snapshots; construct one per
// event, never cache one across page mutations.
type Detector struct {
	root    dom.Element
	clicked dom.Element
}

// New creates a Detector for a document and the element the user interacted
// with. clicked may be nil, in which case detection runs from the document
// root only.
func New(doc dom.Document, clicked dom.Element) *Detector {
	if doc == nil {
		return &Detector{}
	}
	return &Detector{root: doc.Root(), clicked: Unwrap(clicked)}
}

// NewFromRoot creates a Detector scanning a detached subtree. Used by hosts
// that hand the engine a fragment instead of a whole document.
func NewFromRoot(root, clicked dom.Element) *Detector {
	return &Detector{root: root, clicked: Unwrap(clicked)}
}

// Form runs one detection pass and returns the classified fields, or nil
// when the page offers nothing login-capable. Absence is normal control
// flow, not an error.
//
// With a clicked element, the pass anchors there: the element itself must
// survive the clickjacking gate (full visibility check, transition
// exception included), and its enclosing form-like container must not be
// hidden or fully transparent anywhere up the chain. Sibling fields are
// then exempt from the opacity check; only display/visibility filtering
// applies inside a confirmed container.
func (d *Detector) Form() *FormFields {
	if d.clicked != nil {
		return d.formFromClicked()
	}
	return d.formFromRoot()
}

func (d *Detector) formFromClicked() *FormFields {
	if !IsVisible(d.clicked) {
		return nil
	}
	container := dom.OwnerForm(d.clicked)
	if container == nil || !containerChainVisible(container) {
		return nil
	}
	fields := FindFields(container, IsDisplayed)
	if fields.Empty() {
		return nil
	}
	return fields
}

// formFromRoot scans without an anchor: each real <form> is gated as a
// container (an entirely display:none, visibility:hidden or opacity:0 form
// is rejected outright; the transition exception never applies at container
// level), and pages without a form tag fall back to scanning the whole
// document for JS-driven flows.
func (d *Detector) formFromRoot() *FormFields {
	if d.root == nil {
		return nil
	}

	forms := dom.Descendants(d.root, func(e dom.Element) bool { return dom.IsTag(e, "form") })
	var fallback *FormFields
	for _, form := range forms {
		if !containerChainVisible(form) {
			continue
		}
		fields := FindFields(form, IsDisplayed)
		if fields.LoginCapable() {
			return fields
		}
		if fallback == nil && !fields.Empty() {
			fallback = fields
		}
	}

	if len(forms) == 0 {
		fields := FindFields(d.root, IsDisplayed)
		if !fields.Empty() {
			return fields
		}
	}
	return fallback
}

// containerChainVisible walks from the container to the document element.
// A hidden or transparent ancestor hides the whole form regardless of the
// fields' own styles.
func containerChainVisible(container dom.Element) bool {
	for cur := container; cur != nil; cur = cur.Parent() {
		if !ContainerVisible(cur) {
			return false
		}
	}
	return true
}

// ContainsLoginForm reports whether the page (or the form around the clicked
// element) contains a login-capable form: a password field, or a
// username/email field for passwordless flows.
func (d *Detector) ContainsLoginForm() bool {
	return d.Form().LoginCapable()
}

// DetectedFieldRole returns the role of the clicked element specifically,
// or RoleNone. The clickjacking gate applies: an invisible clicked element
// never classifies.
func (d *Detector) DetectedFieldRole() Role {
	if d.clicked == nil || !IsVisible(d.clicked) {
		return RoleNone
	}
	return Classify(d.clicked)
}

// IsAutofillTriggerable reports whether focusing the clicked element should
// raise the autofill suggestion UI.
func (d *Detector) IsAutofillTriggerable() bool {
	return d.DetectedFieldRole().AutofillTriggerable()
}

// FindTotpField returns the TOTP input of the detected form, or nil.
func (d *Detector) FindTotpField() dom.Element {
	f := d.Form()
	if f == nil {
		return nil
	}
	return f.Totp
}
