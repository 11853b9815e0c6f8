package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// nicuStayRe matches explicit "spent/stayed/was in N <unit> in the NICU"
// statements. Shared with the implied-answer extractor.
var nicuStayRe = regexp.MustCompile(`(?:spent|stayed|was in)(?:\s+\w+)?\s+(\d+)\s+(days?|weeks?|months?)\s+(?:in|at)\s+(?:the\s+)?(?:nicu|intensive care)`)

var (
	durMonthRe  = regexp.MustCompile(`(\d+)\s*(?:months?|mos?)`)
	durWeekRe   = regexp.MustCompile(`(\d+)\s*(?:weeks?|wks?)`)
	durDayRe    = regexp.MustCompile(`(\d+)\s*(?:days?|d)\b`)
	durNumberRe = regexp.MustCompile(`\b(\d+)\b`)
)

var durationPhrases = []struct {
	re   *regexp.Regexp
	days int
}{
	{regexp.MustCompile(`\bcouple\s+(?:of\s+)?days?\b`), 2},
	{regexp.MustCompile(`\bfew\s+(?:of\s+)?days?\b`), 3},
	{regexp.MustCompile(`\bcouple\s+(?:of\s+)?weeks?\b`), 14},
	{regexp.MustCompile(`\bfew\s+(?:of\s+)?weeks?\b`), 21},
	{regexp.MustCompile(`\babout\s+a\s+week\b`), 7},
	{regexp.MustCompile(`\bweek\s+and\s+(?:a\s+)?half\b`), 10},
	{regexp.MustCompile(`\bcouple\s+(?:of\s+)?months?\b`), 60},
	{regexp.MustCompile(`\bfew\s+(?:of\s+)?months?\b`), 90},
}

// DaysFromUnit converts a quantity with a duration unit into days, using the
// intake approximations of 7 days per week and 30 days per month.
func DaysFromUnit(quantity int, unit string) int {
	switch {
	case strings.Contains(unit, "week"):
		return quantity * 7
	case strings.Contains(unit, "month"):
		return quantity * 30
	default:
		return quantity
	}
}

// NICUStayDays extracts the duration from an explicit "spent N <unit> in the
// NICU" statement. The boolean is false when the pattern is absent.
func NICUStayDays(text string) (int, bool) {
	m := nicuStayRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return DaysFromUnit(n, m[2]), true
}

// InterpretDuration extracts a duration in days from free text, returning 0
// when nothing usable is found.
func InterpretDuration(text string) int {
	input := strings.ToLower(text)

	if days, ok := NICUStayDays(input); ok {
		return days
	}

	total := 0
	if m := durMonthRe.FindStringSubmatch(input); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n * 30
		}
	}
	if m := durWeekRe.FindStringSubmatch(input); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n * 7
		}
	}
	if m := durDayRe.FindStringSubmatch(input); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	if total > 0 {
		return total
	}

	// Bare integer with no unit: read as days when plausible.
	if m := durNumberRe.FindStringSubmatch(input); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 365 {
			return n
		}
	}

	for _, phrase := range durationPhrases {
		if phrase.re.MatchString(input) {
			return phrase.days
		}
	}

	return 0
}
