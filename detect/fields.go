package detect

import (
	"strings"

	"github.com/aliasvault/formcore/dom"
)

// FormFields is the result of one detection pass over a container. Every
// reference is ephemeral: recomputed on each call, never cached across
// asynchronous gaps.
type FormFields struct {
	Username        dom.Element
	Email           dom.Element
	Password        dom.Element
	PasswordConfirm dom.Element
	FullName        dom.Element
	Totp            dom.Element

	// Birthdate sub-fields are consumed only by the fill operation, which
	// lives outside this engine.
	Birthdate BirthdateFields
}

// BirthdateFields is either a single date input or a day/month/year select
// triple.
type BirthdateFields struct {
	Single dom.Element
	Day    dom.Element
	Month  dom.Element
	Year   dom.Element
}

// Field returns the element holding the given role, or nil.
func (f *FormFields) Field(r Role) dom.Element {
	if f == nil {
		return nil
	}
	switch r {
	case RoleUsername:
		return f.Username
	case RoleEmail:
		return f.Email
	case RolePassword:
		return f.Password
	case RolePasswordConfirm:
		return f.PasswordConfirm
	case RoleFullName:
		return f.FullName
	case RoleTotp:
		return f.Totp
	}
	return nil
}

// Empty reports whether no field of any role was found.
func (f *FormFields) Empty() bool {
	return f == nil || (f.Username == nil && f.Email == nil && f.Password == nil &&
		f.PasswordConfirm == nil && f.FullName == nil && f.Totp == nil)
}

// LoginCapable reports whether the field set constitutes a login or signup
// form: a password field, or a username/email field for passwordless and
// magic-link flows. A lone full-name field does not qualify.
func (f *FormFields) LoginCapable() bool {
	if f == nil {
		return false
	}
	return f.Password != nil || f.Username != nil || f.Email != nil
}

// FindFields classifies every candidate under root and assigns each role to
// at most one element, first match in document order wins. Wrapper custom
// elements around a single real <input> are unwrapped and the duplicate
// suppressed. visible, when non-nil, filters candidates (capture uses the
// visibility evaluator here; plain detection filters nothing and leaves
// visibility to the container gate).
func FindFields(root dom.Element, visible func(dom.Element) bool) *FormFields {
	if root == nil {
		return nil
	}

	fields := &FormFields{}
	seen := make(map[dom.Element]bool)

	candidates := dom.Descendants(root, func(e dom.Element) bool {
		switch strings.ToLower(e.Tag()) {
		case "input", "select":
			return true
		}
		return false
	})

	for _, cand := range candidates {
		el := Unwrap(cand)
		if seen[el] {
			continue
		}
		seen[el] = true

		if dom.IsTag(el, "select") {
			classifyBirthdateSelect(el, &fields.Birthdate)
			continue
		}

		role := Classify(el)
		if role == RoleNone {
			classifyBirthdateInput(el, &fields.Birthdate)
			continue
		}
		if visible != nil && !visible(el) {
			continue
		}
		if fields.Field(role) == nil {
			assign(fields, role, el)
		}
	}

	return fields
}

func assign(f *FormFields, r Role, el dom.Element) {
	switch r {
	case RoleUsername:
		f.Username = el
	case RoleEmail:
		f.Email = el
	case RolePassword:
		f.Password = el
	case RolePasswordConfirm:
		f.PasswordConfirm = el
	case RoleFullName:
		f.FullName = el
	case RoleTotp:
		f.Totp = el
	}
}

func classifyBirthdateSelect(el dom.Element, b *BirthdateFields) {
	text := identifierText(el)
	if !matchesAny(text, []string{"birth", "dob", "day", "month", "year"}) {
		return
	}
	switch {
	case matchesAny(text, []string{"day", "dag"}) && b.Day == nil:
		b.Day = el
	case matchesAny(text, []string{"month", "maand"}) && b.Month == nil:
		b.Month = el
	case matchesAny(text, []string{"year", "jaar"}) && b.Year == nil:
		b.Year = el
	}
}

func classifyBirthdateInput(el dom.Element, b *BirthdateFields) {
	if b.Single != nil {
		return
	}
	typ := strings.ToLower(dom.AttrDefault(el, "type", "text"))
	if typ != "date" && typ != "text" {
		return
	}
	if matchesAny(identifierText(el), []string{"birthdate", "birthday", "dateofbirth", "date_of_birth", "date-of-birth", "dob"}) {
		b.Single = el
	}
}
