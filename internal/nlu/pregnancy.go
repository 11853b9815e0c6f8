package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// fullTermWeeks is the gestational age assumed for answers like "full term".
const fullTermWeeks = 40

var weeksPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:weeks|week|wks|wk)`),
	regexp.MustCompile(`(\d+)\s*w\b`),
}

var fullTermRe = regexp.MustCompile(`(?:full|term|full term|full-term)\b`)

var difficultDeliveryIndicators = []string{
	"difficult", "not easy", "hard", "complications", "emergency",
	"c-section", "csection", "c section", "cesarean", "forceps",
	"vacuum", "distress", "oxygen", "resuscitate", "nicu",
	"intensive care", "problem", "complication", "issue",
	"prolonged", "stuck", "trauma", "injury", "monitor", "fetal",
	"induced", "induction", "premature", "preemie", "breech",
}

// PregnancyDetails is the result of interpreting the pregnancy answer
type PregnancyDetails struct {
	Weeks             *int `json:"weeks"`
	DifficultDelivery bool `json:"difficult_delivery"`
}

// InterpretPregnancy extracts gestational age in weeks and whether the
// delivery was difficult. Weeks stays nil when no gestation signal is found.
func InterpretPregnancy(text string) PregnancyDetails {
	input := strings.ToLower(text)

	var weeks *int
	for _, pattern := range weeksPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				weeks = &n
				break
			}
		}
	}
	if weeks == nil && fullTermRe.MatchString(input) {
		w := fullTermWeeks
		weeks = &w
	}

	return PregnancyDetails{
		Weeks:             weeks,
		DifficultDelivery: containsAny(input, difficultDeliveryIndicators),
	}
}
