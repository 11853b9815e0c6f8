// Package nlu provides deterministic natural-language interpreters for intake
// answers. Every function is total: it returns a no-match sentinel instead of
// failing. These are the behavior contract the oracle path degrades to.
package nlu

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	minAge = 0.0
	maxAge = 25.0
)

var wordToNum = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
	"forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
}

var (
	monthsOldRe = regexp.MustCompile(`(\d+)\s*(?:months?|mos?)\s*old`)
	almostRe    = regexp.MustCompile(`almost\s*(\d+)`)

	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:year|yr|y)s?\s*old`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:year|yr|y)s?`),
		regexp.MustCompile(`(?:is|turned|age)\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`^(\d+(?:\.\d+)?)$`),
		regexp.MustCompile(`just turned\s*(\d+)`),
		regexp.MustCompile(`about to turn\s*(\d+)`),
	}

	wordAgeRe = regexp.MustCompile(`\b(zero|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)\b`)
)

// fraction phrases added to a preceding whole number of years
var fractionModifiers = []struct {
	phrase string
	re     *regexp.Regexp
	value  float64
}{
	{"and a half", regexp.MustCompile(`(\d+)\s*and a half`), 0.5},
	{"and 1/2", regexp.MustCompile(`(\d+)\s*and 1/2`), 0.5},
	{"and a quarter", regexp.MustCompile(`(\d+)\s*and a quarter`), 0.25},
	{"and 1/4", regexp.MustCompile(`(\d+)\s*and 1/4`), 0.25},
	{"and three quarters", regexp.MustCompile(`(\d+)\s*and three quarters`), 0.75},
	{"and 3/4", regexp.MustCompile(`(\d+)\s*and 3/4`), 0.75},
}

// InterpretAge extracts a child's age in years from free text. The boolean is
// false when no age can be found or the value falls outside [0, 25].
func InterpretAge(text string) (float64, bool) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return 0, false
	}

	if m := monthsOldRe.FindStringSubmatch(input); m != nil {
		if months, err := strconv.ParseFloat(m[1], 64); err == nil {
			return validAge(math.Round(months/12.0*10) / 10)
		}
	}

	if m := almostRe.FindStringSubmatch(input); m != nil {
		if age, err := strconv.ParseFloat(m[1], 64); err == nil {
			return validAge(age - 0.1)
		}
	}

	for _, frac := range fractionModifiers {
		if !strings.Contains(input, frac.phrase) {
			continue
		}
		if m := frac.re.FindStringSubmatch(input); m != nil {
			if base, err := strconv.ParseFloat(m[1], 64); err == nil {
				return validAge(base + frac.value)
			}
		}
	}

	for _, pattern := range agePatterns {
		m := pattern.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		age, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if age >= minAge && age <= maxAge {
			return age, true
		}
	}

	if m := wordAgeRe.FindStringSubmatch(input); m != nil {
		return validAge(wordToNum[m[1]])
	}

	return 0, false
}

func validAge(age float64) (float64, bool) {
	if age < minAge || age > maxAge {
		return 0, false
	}
	return age, true
}
