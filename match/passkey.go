package match

// FilterForRP selects credentials for a WebAuthn flow. The platform has
// already verified rpID, so passkey selection does not need the staged
// anti-phishing pipeline: credentials are scoped to passkeys whose rpId
// matches, then narrowed by free-text query with AND-of-words semantics:
// every search word must appear in at least one searchable field.
//
// An empty rpID skips the scoping; an empty query returns every scoped
// credential.
func (m *Matcher) FilterForRP(credentials []Credential, rpID, query string) []Credential {
	var out []Credential
	for _, c := range credentials {
		if rpID != "" && !hasPasskeyForRP(c, rpID, m.suffixes) {
			continue
		}
		if !matchesAllWords(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasPasskeyForRP(c Credential, rpID string, suffixes SuffixSet) bool {
	for _, pk := range c.Passkeys {
		if pk.RPID == rpID || relatedDomains(pk.RPID, rpID, suffixes) {
			return true
		}
	}
	return false
}

func matchesAllWords(c Credential, query string) bool {
	words := splitWords(query)
	if len(words) == 0 {
		return true
	}

	fields := []string{c.ServiceName, c.ServiceURL, c.Username, c.Email, c.Notes}
	for _, pk := range c.Passkeys {
		fields = append(fields, pk.RPID, pk.DisplayName)
	}

	for _, w := range words {
		if !wordInAnyField(w, fields) {
			return false
		}
	}
	return true
}

func wordInAnyField(word string, fields []string) bool {
	for _, f := range fields {
		if containsFold(word, f) {
			return true
		}
	}
	return false
}
