package match

import "testing"

func names(creds []Credential) []string {
	var out []string
	for _, c := range creds {
		out = append(out, c.ServiceName)
	}
	return out
}

func TestFilter_AppPackageExactOnly(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Coolblue App", ServiceURL: "com.coolblue.app"},
		{ServiceName: "Coolblue Web", ServiceURL: "https://coolblue.nl"},
		{ServiceName: "Coolblue lookalike", Notes: "coolblue account"},
	}

	got := New().Filter(creds, "com.coolblue.app")
	if len(got) != 1 || got[0].ServiceName != "Coolblue App" {
		t.Fatalf("package match: got %v, want [Coolblue App] only", names(got))
	}
}

func TestFilter_AppPackageNoMatchReturnsNothing(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Coolblue lookalike", Notes: "com.coolblue.app mentioned here"},
	}
	if got := New().Filter(creds, "com.coolblue.app"); len(got) != 0 {
		t.Fatalf("package miss: got %v, want empty (no fall-through to text)", names(got))
	}
}

func TestFilter_DomainMatching(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Example", ServiceURL: "https://example.com"},
		{ServiceName: "Example UK", ServiceURL: "https://example.co.uk"},
		{ServiceName: "Other", ServiceURL: "https://other.com"},
	}
	m := New()

	got := m.Filter(creds, "https://sub.example.com/login")
	if len(got) != 1 || got[0].ServiceName != "Example" {
		t.Fatalf("subdomain search: got %v, want [Example]", names(got))
	}

	got = m.Filter(creds, "login.example.co.uk")
	if len(got) != 1 || got[0].ServiceName != "Example UK" {
		t.Fatalf("two-level suffix search: got %v, want [Example UK]", names(got))
	}
}

func TestFilter_AntiPhishingGate(t *testing.T) {
	creds := []Credential{
		// Has a URL for a different domain: must never surface via its
		// name, however much it resembles the search.
		{ServiceName: "Example Corp", ServiceURL: "https://evil.com"},
		// URL-less: eligible for the name fallback.
		{ServiceName: "Example Co", Notes: "my example account"},
	}

	got := New().Filter(creds, "https://example.com")
	if len(got) != 1 || got[0].ServiceName != "Example Co" {
		t.Fatalf("fallback: got %v, want [Example Co] only", names(got))
	}
}

func TestFilter_FallbackOnlyAfterDomainMiss(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Example Direct", ServiceURL: "https://example.com"},
		{ServiceName: "Example Co"}, // URL-less
	}

	// A direct URL match exists, so the URL-less credential is not added.
	got := New().Filter(creds, "example.com")
	if len(got) != 1 || got[0].ServiceName != "Example Direct" {
		t.Fatalf("direct match: got %v, want [Example Direct]", names(got))
	}
}

func TestFilter_FallbackSearchesNameAndNotes(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Shopping", Notes: "the coolblue account"},
		{ServiceName: "Coolblue"},
		{ServiceName: "Unrelated"},
	}

	got := New().Filter(creds, "coolblue.nl")
	if len(got) != 2 {
		t.Fatalf("fallback: got %v, want 2 URL-less matches", names(got))
	}
}

func TestFilter_FallbackEmptyDoesNotFallThrough(t *testing.T) {
	creds := []Credential{
		// Would match on words, but the key is a domain, so the pipeline
		// ends at the (empty) name fallback.
		{ServiceName: "totally unrelated example", ServiceURL: ""},
	}
	got := New().Filter(creds, "unmatched-domain.com")
	if len(got) != 0 {
		t.Fatalf("domain key: got %v, want empty (no text tier)", names(got))
	}
}

func TestFilter_TextWords(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Acme Banking Portal"},
		{ServiceName: "Other", Username: "banking-user"},
		{ServiceName: "Nothing here"},
	}

	got := New().Filter(creds, "banking!")
	if len(got) != 2 {
		t.Fatalf("word match: got %v, want 2", names(got))
	}
}

func TestFilter_TextShortWordsSubstring(t *testing.T) {
	// "ing" yields no usable words (>3 chars), so substring containment
	// applies instead.
	creds := []Credential{
		{ServiceName: "Banking"},
		{ServiceName: "Shop"},
	}
	got := New().Filter(creds, "ing")
	if len(got) != 1 || got[0].ServiceName != "Banking" {
		t.Fatalf("substring fallback: got %v, want [Banking]", names(got))
	}
}

func TestFilter_TextWordNeedsExactToken(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Bankingplus"}, // contains but is not the word
		{ServiceName: "My Banking"},
	}
	got := New().Filter(creds, "banking")
	if len(got) != 1 || got[0].ServiceName != "My Banking" {
		t.Fatalf("exact word: got %v, want [My Banking]", names(got))
	}
}

func TestFilter_EmptyInputs(t *testing.T) {
	if got := New().Filter(nil, "example.com"); got != nil {
		t.Errorf("nil credentials: got %v, want nil", got)
	}
	if got := New().Filter([]Credential{{ServiceName: "X"}}, "  "); got != nil {
		t.Errorf("blank key: got %v, want nil", got)
	}
}
