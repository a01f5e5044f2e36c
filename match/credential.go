// Package match decides which stored credentials may legitimately be
// offered for a relying-party identifier, app package name, or free-text
// search. The pipeline is strict, ordered and early-returning rather than a
// weighted score, with one deliberate anti-phishing invariant: a credential
// that carries a URL can never be surfaced via name similarity to a
// different domain.
//
// All functions are pure over their inputs; the vault collaborator supplies
// a read-only credential snapshot and the engine never mutates it.
package match

// Passkey is a WebAuthn credential reference. The engine uses RPID as a
// matching key and the rest only for free-text search.
type Passkey struct {
	RPID        string `json:"rp_id"`
	DisplayName string `json:"display_name,omitempty"`
	UserHandle  string `json:"user_handle,omitempty"`
}

// Credential is a stored vault entry, read-only to the engine.
type Credential struct {
	ServiceName string    `json:"service_name"`
	ServiceURL  string    `json:"service_url,omitempty"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email,omitempty"`
	Password    string    `json:"-"`
	Notes       string    `json:"notes,omitempty"`
	Passkeys    []Passkey `json:"passkeys,omitempty"`
}
