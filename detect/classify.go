package detect

import (
	"strconv"
	"strings"

	"github.com/aliasvault/formcore/dom"
)

// Attribute heuristics, in precedence order per role: exact input type,
// autocomplete tokens, name/id substring patterns, then the TOTP structural
// heuristic. Autocomplete tokens are authoritative even when the form also
// carries autocomplete="off": sites routinely disable completion while
// still declaring semantic tokens.

var (
	usernamePatterns = []string{"username", "user", "login", "identifier", "account", "gebruikersnaam", "benutzername"}
	emailPatterns    = []string{"email", "e-mail", "emailaddress"}
	fullNamePatterns = []string{"fullname", "full-name", "full_name", "your-name", "yourname", "realname", "displayname"}
	confirmPatterns  = []string{"confirm", "verify", "repeat", "retype", "again", "password2", "2ndpassword", "second"}
	totpPatterns     = []string{"totp", "2fa", "mfa", "onetime", "one-time", "one_time", "otp", "authenticator"}
	codeWording      = []string{"code", "verification", "verify", "authenticat", "2fa", "one-time", "security"}

	// Fields matching these must never classify as username or password,
	// even when textual: session selectors, remember-me toggles, CSRF
	// tokens and the like.
	exclusionPatterns = []string{"remember", "duration", "session", "csrf", "token", "captcha", "search", "expiry", "expiration"}
)

// Classify returns the semantic role of a single candidate element, or
// RoleNone. Hidden inputs and non-input elements classify as RoleNone; a
// miss is normal control flow, never an error.
func Classify(el dom.Element) Role {
	if el == nil {
		return RoleNone
	}

	tag := strings.ToLower(el.Tag())
	if tag != "input" {
		return RoleNone
	}

	typ := strings.ToLower(dom.AttrDefault(el, "type", "text"))
	switch typ {
	case "hidden", "checkbox", "radio", "submit", "button", "file", "range", "color":
		return RoleNone
	}

	nameID := identifierText(el)

	// 1. Exact type.
	if typ == "password" {
		if matchesAny(nameID, confirmPatterns) {
			return RolePasswordConfirm
		}
		return RolePassword
	}

	// 2. Autocomplete tokens.
	switch autocompleteToken(el) {
	case "username":
		return RoleUsername
	case "email":
		return RoleEmail
	case "current-password", "new-password":
		return RolePassword
	case "one-time-code":
		return RoleTotp
	case "name":
		return RoleFullName
	}

	if typ == "email" {
		return RoleEmail
	}

	// 3. Name/id substring patterns. The exclusion list runs first:
	// session selectors and remember-me toggles never classify textually,
	// however username-ish they read. TOTP tokens next: "otp" and friends
	// are more specific than the broad username/email substrings.
	if matchesAny(nameID, exclusionPatterns) {
		return RoleNone
	}
	if matchesAny(nameID, totpPatterns) {
		return RoleTotp
	}
	if matchesAny(nameID, emailPatterns) {
		return RoleEmail
	}
	if matchesAny(nameID, usernamePatterns) {
		return RoleUsername
	}
	if matchesAny(nameID, fullNamePatterns) {
		return RoleFullName
	}
	// Bare "name" only counts as full name when nothing suggests an
	// account identifier; "username" was already taken above.
	if containsWordish(nameID, "name") && !strings.Contains(nameID, "user") {
		return RoleFullName
	}

	// 4. TOTP structural heuristic: short, numeric-oriented field with code
	// wording in its accessible text.
	if isTotpShaped(el, typ) {
		return RoleTotp
	}

	return RoleNone
}

// identifierText joins the attributes used for substring matching,
// lowercased: name, id and placeholder.
func identifierText(el dom.Element) string {
	var parts []string
	for _, a := range []string{"name", "id", "placeholder"} {
		if v, ok := el.Attr(a); ok && v != "" {
			parts = append(parts, strings.ToLower(v))
		}
	}
	return strings.Join(parts, " ")
}

// autocompleteToken returns the recognized semantic token from the
// autocomplete attribute, ignoring "off" and section/contact prefixes.
func autocompleteToken(el dom.Element) string {
	v, ok := el.Attr("autocomplete")
	if !ok {
		return ""
	}
	for _, tok := range strings.Fields(strings.ToLower(v)) {
		switch tok {
		case "username", "email", "current-password", "new-password", "one-time-code", "name":
			return tok
		}
	}
	return ""
}

func isTotpShaped(el dom.Element, typ string) bool {
	switch typ {
	case "tel", "text", "number":
	default:
		return false
	}

	maxLen, ok := el.Attr("maxlength")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(maxLen))
	if err != nil || n <= 0 || n > 8 {
		return false
	}

	var accessible []string
	for _, a := range []string{"aria-label", "aria-describedby", "placeholder", "name", "id"} {
		if v, ok := el.Attr(a); ok {
			accessible = append(accessible, strings.ToLower(v))
		}
	}
	return matchesAny(strings.Join(accessible, " "), codeWording)
}

func matchesAny(haystack string, patterns []string) bool {
	if haystack == "" {
		return false
	}
	for _, p := range patterns {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}

// containsWordish matches word while rejecting hits inside unrelated longer
// tokens such as "filename" or "hostname". Rejection is judged per token:
// a reject token elsewhere in the haystack does not veto a clean hit.
func containsWordish(haystack, word string) bool {
	for _, tok := range strings.Fields(haystack) {
		if !strings.Contains(tok, word) {
			continue
		}
		if rejectedNameToken(tok) {
			continue
		}
		return true
	}
	return false
}

func rejectedNameToken(tok string) bool {
	for _, reject := range []string{"filename", "hostname", "nickname", "surname", "domainname"} {
		if strings.Contains(tok, reject) {
			return true
		}
	}
	return false
}

// Unwrap resolves the custom-element duplication case: a non-form wrapper
// element containing exactly one real <input> classifies as that input, and
// the wrapper is suppressed as a candidate. Returns el itself when no
// unwrapping applies.
func Unwrap(el dom.Element) dom.Element {
	if el == nil {
		return nil
	}
	tag := strings.ToLower(el.Tag())
	if tag == "input" || tag == "form" {
		return el
	}

	inputs := dom.Descendants(el, func(e dom.Element) bool { return dom.IsTag(e, "input") })
	if len(inputs) == 1 {
		return inputs[0]
	}
	return el
}
