// Package detect decides whether a hostile page contains a login-capable
// form, classifies its input fields into semantic roles, and guards the
// decision against clickjacking-style invisibility tricks. It runs over the
// dom abstraction, so the same heuristics serve the browser content script,
// the native autofill service, and the credential provider.
package detect

// Role is the semantic role of a classified input field.
type Role int

const (
	RoleNone Role = iota
	RoleUsername
	RoleEmail
	RolePassword
	RolePasswordConfirm
	RoleFullName
	RoleTotp
)

var roleNames = map[Role]string{
	RoleNone:            "none",
	RoleUsername:        "username",
	RoleEmail:           "email",
	RolePassword:        "password",
	RolePasswordConfirm: "password_confirm",
	RoleFullName:        "full_name",
	RoleTotp:            "totp",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "none"
}

// AutofillTriggerable reports whether focusing a field of this role may
// raise the autofill suggestion UI. Confirm-password and full-name fields
// never trigger it: they only matter to an ongoing fill, not to credential
// selection.
func (r Role) AutofillTriggerable() bool {
	switch r {
	case RoleUsername, RoleEmail, RolePassword, RoleTotp:
		return true
	}
	return false
}
