package match

// SuffixSet is the two-level public-suffix table used to derive registrable
// root domains ("example.co.uk" → root under "co.uk"). It is configuration
// data, not logic: deployments extend it without touching the matcher.
type SuffixSet map[string]struct{}

// defaultTwoLevelSuffixes is the hand-maintained baseline. Finite and
// deliberately small; this is not the full public-suffix list.
var defaultTwoLevelSuffixes = []string{
	"co.uk", "org.uk", "ac.uk", "gov.uk", "me.uk", "net.uk",
	"com.au", "net.au", "org.au", "edu.au", "gov.au",
	"co.nz", "net.nz", "org.nz",
	"co.jp", "ne.jp", "or.jp", "ac.jp",
	"com.br", "net.br", "org.br",
	"com.mx", "com.ar", "com.co", "com.pe", "com.ve",
	"co.in", "net.in", "org.in", "ac.in",
	"com.cn", "net.cn", "org.cn",
	"com.sg", "com.my", "com.hk", "com.tw", "co.th", "co.id", "com.ph", "com.vn",
	"co.za", "org.za", "co.ke",
	"com.tr", "com.ua", "com.pl", "com.ru", "co.il", "com.sa", "com.eg",
}

// DefaultSuffixes returns a fresh copy of the baseline table.
func DefaultSuffixes() SuffixSet {
	s := make(SuffixSet, len(defaultTwoLevelSuffixes))
	for _, sfx := range defaultTwoLevelSuffixes {
		s[sfx] = struct{}{}
	}
	return s
}

// Extend adds entries ("co.uk" form) and returns the set for chaining.
func (s SuffixSet) Extend(suffixes ...string) SuffixSet {
	for _, sfx := range suffixes {
		if sfx != "" {
			s[sfx] = struct{}{}
		}
	}
	return s
}

func (s SuffixSet) contains(suffix string) bool {
	_, ok := s[suffix]
	return ok
}
