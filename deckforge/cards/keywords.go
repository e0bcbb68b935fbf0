package cards

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical keyword names, lower-cased as they appear in catalog data.
const (
	KeywordBodyguard    = "bodyguard"
	KeywordChallenger   = "challenger"
	KeywordEvasive      = "evasive"
	KeywordReckless     = "reckless"
	KeywordResist       = "resist"
	KeywordRush         = "rush"
	KeywordShift        = "shift"
	KeywordSinger       = "singer"
	KeywordSingTogether = "sing together"
	KeywordSupport      = "support"
	KeywordVanish       = "vanish"
	KeywordWard         = "ward"
)

// KnownKeywords lists every keyword the analyzer and weight pipeline
// recognize. Longer names first so "sing together" wins over "singer"
// during text scans.
var KnownKeywords = []string{
	KeywordSingTogether,
	KeywordBodyguard,
	KeywordChallenger,
	KeywordEvasive,
	KeywordReckless,
	KeywordResist,
	KeywordRush,
	KeywordShift,
	KeywordSinger,
	KeywordSupport,
	KeywordVanish,
	KeywordWard,
}

// Keywords maps a keyword to its optional numeric amount ("Resist +2" has
// amount 2, "Evasive" has none). Built once at card construction.
type Keywords map[string]keywordEntry

type keywordEntry struct {
	amount    int
	hasAmount bool
}

var keywordAmountPattern = regexp.MustCompile(`^([a-z' ]+?)\s*\+?\s*(\d+)?$`)

// ParseKeywords builds a Keywords value from raw catalog strings such as
// "Resist +2", "Singer 5", or "Evasive".
func ParseKeywords(raw []string) Keywords {
	kws := make(Keywords, len(raw))
	for _, entry := range raw {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		m := keywordAmountPattern.FindStringSubmatch(entry)
		if m == nil {
			kws[entry] = keywordEntry{}
			continue
		}
		name := strings.TrimSpace(m[1])
		if m[2] == "" {
			kws[name] = keywordEntry{}
			continue
		}
		amount, err := strconv.Atoi(m[2])
		if err != nil {
			kws[name] = keywordEntry{}
			continue
		}
		kws[name] = keywordEntry{amount: amount, hasAmount: true}
	}
	return kws
}

func (k Keywords) Has(name string) bool {
	_, ok := k[name]
	return ok
}

// Amount returns the numeric amount attached to a keyword. The second
// return is false when the keyword is absent or carries no amount.
func (k Keywords) Amount(name string) (int, bool) {
	entry, ok := k[name]
	if !ok || !entry.hasAmount {
		return 0, false
	}
	return entry.amount, true
}

func (k Keywords) Names() []string {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	return names
}

var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

// Reminder text directly follows a keyword (and its optional amount) in
// parentheses; each pattern drops the reprint along with it. Built once,
// in KnownKeywords order.
var reminderPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(KnownKeywords))
	for i, kw := range KnownKeywords {
		patterns[i] = regexp.MustCompile(regexp.QuoteMeta(kw) + `(\s*\+?\s*\d+)?\s*\([^)]*\)`)
	}
	return patterns
}()

// SanitizeText strips keyword reminder text and every remaining
// parenthetical group from rules text, then lower-cases and trims. The
// result is used only for dependency inference and effect matching, never
// for display.
func SanitizeText(text string) string {
	lowered := strings.ToLower(text)
	for _, pattern := range reminderPatterns {
		lowered = pattern.ReplaceAllString(lowered, "")
	}
	lowered = parentheticalPattern.ReplaceAllString(lowered, "")
	return strings.TrimSpace(lowered)
}
