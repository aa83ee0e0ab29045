// Package countries maps free-text country names to lowercase ISO 3166-1
// alpha-2 codes for the news collector.
package countries

import "strings"

// Match describes how a country name was resolved.
type Match int

const (
	// MatchExact means the name matched the reference table directly.
	MatchExact Match = iota
	// MatchFuzzy means an approximate match was used.
	MatchFuzzy
	// MatchDefault means resolution failed and the "us" fallback applies.
	MatchDefault
)

// DefaultCode is returned when a name cannot be resolved at all.
const DefaultCode = "us"

// country is one row of the reference table. Table order is the
// canonical tie-break order for fuzzy matches.
type country struct {
	name string
	code string
}

var table = []country{
	{"United States", "us"},
	{"China", "cn"},
	{"India", "in"},
	{"Japan", "jp"},
	{"Germany", "de"},
	{"United Kingdom", "gb"},
	{"France", "fr"},
	{"Italy", "it"},
	{"Canada", "ca"},
	{"South Korea", "kr"},
	{"Brazil", "br"},
	{"Australia", "au"},
	{"Spain", "es"},
	{"Mexico", "mx"},
	{"Indonesia", "id"},
	{"Netherlands", "nl"},
	{"Saudi Arabia", "sa"},
	{"Turkey", "tr"},
	{"Switzerland", "ch"},
	{"Taiwan", "tw"},
	{"Poland", "pl"},
	{"Sweden", "se"},
	{"Belgium", "be"},
	{"Thailand", "th"},
	{"Ireland", "ie"},
	{"Austria", "at"},
	{"Norway", "no"},
	{"Israel", "il"},
	{"Singapore", "sg"},
	{"United Arab Emirates", "ae"},
	{"Malaysia", "my"},
	{"Vietnam", "vn"},
	{"Philippines", "ph"},
	{"Denmark", "dk"},
	{"Bangladesh", "bd"},
	{"Egypt", "eg"},
	{"South Africa", "za"},
	{"Finland", "fi"},
	{"Chile", "cl"},
	{"Pakistan", "pk"},
	{"Colombia", "co"},
	{"Czech Republic", "cz"},
	{"Romania", "ro"},
	{"Portugal", "pt"},
	{"New Zealand", "nz"},
	{"Peru", "pe"},
	{"Greece", "gr"},
	{"Hungary", "hu"},
	{"Ukraine", "ua"},
	{"Morocco", "ma"},
	{"Kenya", "ke"},
	{"Nigeria", "ng"},
	{"Argentina", "ar"},
	{"Russia", "ru"},
	{"Slovakia", "sk"},
	{"Bulgaria", "bg"},
	{"Croatia", "hr"},
	{"Lithuania", "lt"},
	{"Latvia", "lv"},
	{"Estonia", "ee"},
	{"Slovenia", "si"},
	{"Luxembourg", "lu"},
	{"Qatar", "qa"},
	{"Kuwait", "kw"},
	{"Sri Lanka", "lk"},
	{"Cambodia", "kh"},
	{"Myanmar", "mm"},
	{"Laos", "la"},
	{"Mongolia", "mn"},
	{"Iceland", "is"},
}

// aliases covers common short forms and official-name variants that the
// exact pass should still hit.
var aliases = map[string]string{
	"usa":                "us",
	"u.s.":               "us",
	"u.s.a.":             "us",
	"america":            "us",
	"uk":                 "gb",
	"u.k.":               "gb",
	"britain":            "gb",
	"great britain":      "gb",
	"england":            "gb",
	"korea":              "kr",
	"republic of korea":  "kr",
	"uae":                "ae",
	"holland":            "nl",
	"viet nam":           "vn",
	"czechia":            "cz",
	"russian federation": "ru",
	"burma":              "mm",
}

// Resolve converts a country name to a lowercase 2-letter code.
// Lookup order: exact table/alias match, then fuzzy match over the table
// (first candidate in table order wins ties), then the "us" default.
// Resolution never fails; the Match value tells the caller whether the
// fallback fired so it can be logged.
func Resolve(name string) (string, Match) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return DefaultCode, MatchDefault
	}

	for _, c := range table {
		if strings.ToLower(c.name) == needle {
			return c.code, MatchExact
		}
	}
	if code, ok := aliases[needle]; ok {
		return code, MatchExact
	}

	// Containment pass: "The Netherlands" or "Korea, South" style input.
	for _, c := range table {
		lower := strings.ToLower(c.name)
		if strings.Contains(needle, lower) || strings.Contains(lower, needle) {
			return c.code, MatchFuzzy
		}
	}

	// Edit-distance pass for typos. The first row with the minimal
	// distance wins, which keeps resolution deterministic.
	best := -1
	bestDist := maxEditDistance + 1
	for i, c := range table {
		d := editDistance(needle, strings.ToLower(c.name))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best >= 0 && bestDist <= maxEditDistance {
		return table[best].code, MatchFuzzy
	}

	return DefaultCode, MatchDefault
}

// maxEditDistance bounds the typo pass; anything farther than this is
// treated as unresolvable rather than guessed.
const maxEditDistance = 3

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
