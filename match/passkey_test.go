package match

import "testing"

func TestFilterForRP_ScopedByRPID(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Example", Passkeys: []Passkey{{RPID: "example.com"}}},
		{ServiceName: "Example Login", Passkeys: []Passkey{{RPID: "login.example.com"}}},
		{ServiceName: "Other", Passkeys: []Passkey{{RPID: "other.com"}}},
		{ServiceName: "No passkey"},
	}

	got := New().FilterForRP(creds, "example.com", "")
	if len(got) != 2 {
		t.Fatalf("rp scope: got %v, want [Example, Example Login]", names(got))
	}
}

func TestFilterForRP_AndOfWords(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Work Email", Username: "alice@corp.example", Passkeys: []Passkey{{RPID: "example.com"}}},
		{ServiceName: "Personal", Username: "alice", Passkeys: []Passkey{{RPID: "example.com"}}},
	}
	m := New()

	// Both words must appear somewhere; only the first credential has
	// both "work" and "alice".
	got := m.FilterForRP(creds, "example.com", "work alice")
	if len(got) != 1 || got[0].ServiceName != "Work Email" {
		t.Fatalf("and-of-words: got %v, want [Work Email]", names(got))
	}

	// A word missing from every field of every credential filters all.
	if got := m.FilterForRP(creds, "example.com", "alice missingword"); len(got) != 0 {
		t.Fatalf("missing word: got %v, want empty", names(got))
	}
}

func TestFilterForRP_EmptyRPID(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Anything", Username: "bob"},
	}
	got := New().FilterForRP(creds, "", "bob")
	if len(got) != 1 {
		t.Fatalf("empty rpid: got %v, want [Anything]", names(got))
	}
}

func TestFilterForRP_SearchesPasskeyFields(t *testing.T) {
	creds := []Credential{
		{ServiceName: "Vault", Passkeys: []Passkey{{RPID: "example.com", DisplayName: "YubiKey work"}}},
		{ServiceName: "Vault2", Passkeys: []Passkey{{RPID: "example.com"}}},
	}
	got := New().FilterForRP(creds, "example.com", "yubikey")
	if len(got) != 1 || got[0].ServiceName != "Vault" {
		t.Fatalf("passkey fields: got %v, want [Vault]", names(got))
	}
}
