package match

import "strings"

// tldTokens identifies reversed-domain app package identifiers: a search
// key whose first dot-separated segment is one of these is treated as an
// Android/iOS package name (com.example.app), never as a hostname.
var tldTokens = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "io": {}, "app": {}, "dev": {},
	"co": {}, "me": {}, "ai": {}, "eu": {}, "us": {}, "uk": {}, "de": {},
	"nl": {}, "fr": {}, "it": {}, "es": {}, "se": {}, "no": {}, "fi": {},
	"dk": {}, "be": {}, "at": {}, "ch": {}, "pl": {}, "cz": {}, "ru": {},
	"jp": {}, "cn": {}, "kr": {}, "in": {}, "br": {}, "mx": {}, "ca": {},
	"au": {}, "nz": {}, "za": {}, "tv": {},
}

// IsAppPackage reports whether key looks like a reversed-domain app
// identifier rather than a hostname or URL.
func IsAppPackage(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "://") {
		return false
	}
	labels := strings.Split(key, ".")
	if len(labels) < 2 {
		return false
	}
	_, ok := tldTokens[labels[0]]
	return ok
}

// ExtractDomain normalizes a search key to a bare domain: scheme, userinfo,
// port, path, query, fragment and a leading "www." are stripped. Extraction
// fails (ok=false) for app package shapes, keys without a dot, and invalid
// characters; the matcher then degrades to the next pipeline tier.
func ExtractDomain(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || IsAppPackage(key) {
		return "", false
	}

	if idx := strings.Index(key, "://"); idx >= 0 {
		key = key[idx+3:]
	}
	if idx := strings.IndexAny(key, "/?#"); idx >= 0 {
		key = key[:idx]
	}
	if idx := strings.LastIndexByte(key, '@'); idx >= 0 {
		key = key[idx+1:]
	}
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		key = key[:idx]
	}
	key = strings.TrimPrefix(key, "www.")

	if !strings.Contains(key, ".") {
		return "", false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
		default:
			return "", false
		}
	}
	for _, label := range strings.Split(key, ".") {
		if label == "" {
			return "", false
		}
	}
	return key, true
}

// RootDomain derives the registrable domain using the two-level suffix
// table: "a.b.example.co.uk" → "example.co.uk", "sub.example.com" →
// "example.com".
func RootDomain(domain string, suffixes SuffixSet) string {
	labels := strings.Split(domain, ".")
	if len(labels) <= 2 {
		return domain
	}
	twoLevel := labels[len(labels)-2] + "." + labels[len(labels)-1]
	if suffixes.contains(twoLevel) {
		return labels[len(labels)-3] + "." + twoLevel
	}
	return twoLevel
}

// relatedDomains reports whether two domains may share credentials: equal,
// one a subdomain of the other, or sharing a registrable root.
func relatedDomains(a, b string, suffixes SuffixSet) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return RootDomain(a, suffixes) == RootDomain(b, suffixes)
}

// firstLabel returns the leftmost label of the registrable root:
// "example" from "sub.example.com". This is the token the URL-less name
// fallback searches for.
func firstLabel(domain string, suffixes SuffixSet) string {
	root := RootDomain(domain, suffixes)
	label, _, _ := strings.Cut(root, ".")
	return label
}
