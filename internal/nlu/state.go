package nlu

import (
	"regexp"
	"sort"
	"strings"
)

// stateAbbreviations maps two-letter postal codes to full state names,
// covering the 50 states plus DC.
var stateAbbreviations = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

type statePattern struct {
	re   *regexp.Regexp
	name string
}

// patterns in sorted abbreviation order so matches resolve the same way on
// every run
var (
	stateAbbrevPatterns []statePattern
	stateNamePatterns   []statePattern
)

func init() {
	abbrevs := make([]string, 0, len(stateAbbreviations))
	for a := range stateAbbreviations {
		abbrevs = append(abbrevs, a)
	}
	sort.Strings(abbrevs)

	for _, a := range abbrevs {
		name := stateAbbreviations[a]
		stateAbbrevPatterns = append(stateAbbrevPatterns, statePattern{
			re:   regexp.MustCompile(`\b` + a + `\b`),
			name: name,
		})
		stateNamePatterns = append(stateNamePatterns, statePattern{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
			name: name,
		})
	}
}

// InterpretState extracts a US state from free text. Abbreviation tokens are
// matched case-sensitively on word boundaries and win over full names; full
// names match case-insensitively. The boolean is false when no state appears.
func InterpretState(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	for _, p := range stateAbbrevPatterns {
		if p.re.MatchString(text) {
			return p.name, true
		}
	}

	for _, p := range stateNamePatterns {
		if p.re.MatchString(text) {
			return p.name, true
		}
	}

	return "", false
}

// CanonicalState maps a raw state string (full name or abbreviation, any
// case) to the canonical full name. Used to validate oracle responses.
func CanonicalState(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if full, ok := stateAbbreviations[strings.ToUpper(trimmed)]; ok {
		return full, true
	}
	for _, fullName := range stateAbbreviations {
		if strings.EqualFold(trimmed, fullName) {
			return fullName, true
		}
	}
	return "", false
}
