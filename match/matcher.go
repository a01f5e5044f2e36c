package match

import "strings"

// Matcher filters credential snapshots against search keys. It holds only
// the suffix table; every call is a pure function of its inputs.
type Matcher struct {
	suffixes SuffixSet
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithSuffixes replaces the default two-level public-suffix table.
func WithSuffixes(s SuffixSet) Option {
	return func(m *Matcher) {
		if s != nil {
			m.suffixes = s
		}
	}
}

// New creates a Matcher with the default suffix table.
func New(opts ...Option) *Matcher {
	m := &Matcher{suffixes: DefaultSuffixes()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Filter returns the subset of credentials that may legitimately be offered
// for searchKey. Tiers, each returning as soon as it applies:
//
//  1. App package name: exact stored-URL equality, nothing else. A package
//     key never reaches the later tiers.
//  2. Domain: stored domain equal to, subdomain of, or sharing a
//     registrable root with the search domain.
//  3. Name fallback, anti-phishing gated: only when tier 2 ran and found
//     nothing, and only over credentials with no stored URL at all. A
//     credential with a URL is never surfaced via name similarity to a
//     different domain.
//  4. Word/substring text match: only for keys that are neither package
//     names nor domains.
func (m *Matcher) Filter(credentials []Credential, searchKey string) []Credential {
	searchKey = strings.TrimSpace(searchKey)
	if searchKey == "" || len(credentials) == 0 {
		return nil
	}

	if IsAppPackage(searchKey) {
		return m.filterPackage(credentials, searchKey)
	}

	if domain, ok := ExtractDomain(searchKey); ok {
		if byDomain := m.filterDomain(credentials, domain); len(byDomain) > 0 {
			return byDomain
		}
		return m.filterNameFallback(credentials, domain)
	}

	return m.filterText(credentials, searchKey)
}

func (m *Matcher) filterPackage(credentials []Credential, pkg string) []Credential {
	var out []Credential
	for _, c := range credentials {
		if strings.EqualFold(strings.TrimSpace(c.ServiceURL), pkg) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Matcher) filterDomain(credentials []Credential, domain string) []Credential {
	var out []Credential
	for _, c := range credentials {
		stored, ok := ExtractDomain(c.ServiceURL)
		if !ok {
			continue
		}
		if relatedDomains(stored, domain, m.suffixes) {
			out = append(out, c)
		}
	}
	return out
}

// filterNameFallback searches URL-less credentials for the domain's first
// label in service name or notes. The result is returned regardless of
// emptiness; the pipeline never falls through from here to text matching.
func (m *Matcher) filterNameFallback(credentials []Credential, domain string) []Credential {
	label := firstLabel(domain, m.suffixes)
	if label == "" {
		return nil
	}
	var out []Credential
	for _, c := range credentials {
		if strings.TrimSpace(c.ServiceURL) != "" {
			continue
		}
		if containsFold(label, c.ServiceName, c.Notes) {
			out = append(out, c)
		}
	}
	return out
}

// filterText matches by exact word overlap; when the key yields no usable
// words, it degrades to plain substring containment.
func (m *Matcher) filterText(credentials []Credential, key string) []Credential {
	words := searchWords(key)

	var out []Credential
	for _, c := range credentials {
		if matchesText(c, key, words) {
			out = append(out, c)
		}
	}
	return out
}

func matchesText(c Credential, key string, words []string) bool {
	if len(words) == 0 {
		return containsFold(key, c.ServiceName, c.Username, c.Notes)
	}
	for _, w := range words {
		if hasWord(w, c.ServiceName, c.Username, c.Notes) {
			return true
		}
	}
	return false
}
