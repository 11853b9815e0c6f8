// Package eligibility evaluates age and birth state against the legal
// criteria table: globally excluded states and per-state statute-of-
// limitations cutoffs.
package eligibility

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/casewise/intake/internal/model"
)

// maxPursuableAge is the ceiling across all states.
const maxPursuableAge = 21.0

var (
	birthdayRe = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\s*birthday`)
	yearsRe    = regexp.MustCompile(`(\d+)\s*years?`)
	bareIntRe  = regexp.MustCompile(`(\d+)`)
)

// Checker evaluates intake eligibility against a read-only criteria table
type Checker struct {
	criteria *model.CriteriaTable
}

// NewChecker creates a checker over the supplied criteria table.
func NewChecker(criteria *model.CriteriaTable) *Checker {
	if criteria == nil {
		criteria = &model.CriteriaTable{}
	}
	return &Checker{criteria: criteria}
}

// LoadCriteria reads a criteria table from a YAML file.
func LoadCriteria(path string) (*model.CriteriaTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read criteria file: %w", err)
	}

	var criteria model.CriteriaTable
	if err := yaml.Unmarshal(data, &criteria); err != nil {
		return nil, fmt.Errorf("parse criteria file: %w", err)
	}
	return &criteria, nil
}

// Criteria exposes the loaded table for inspection commands.
func (c *Checker) Criteria() *model.CriteriaTable {
	return c.criteria
}

// ParseSOLAge converts an SOL rule string to a numeric age cutoff. It tries
// "Nth birthday" first, then "N years", then any bare integer. The boolean is
// false when no cutoff can be extracted.
func ParseSOLAge(rule string) (float64, bool) {
	if rule == "" {
		return 0, false
	}
	for _, re := range []*regexp.Regexp{birthdayRe, yearsRe, bareIntRe} {
		if m := re.FindStringSubmatch(rule); m != nil {
			var cutoff float64
			if _, err := fmt.Sscanf(m[1], "%f", &cutoff); err == nil {
				return cutoff, true
			}
		}
	}
	return 0, false
}

// WithinSOL reports whether the age is under the cutoff encoded in the rule
// string. An unparsable rule counts as a failure.
func WithinSOL(age float64, rule string) bool {
	cutoff, ok := ParseSOLAge(rule)
	if !ok {
		return false
	}
	return age < cutoff
}

// NormalizeAge rounds to one decimal and clamps into [0, 25].
func NormalizeAge(age float64) float64 {
	age = math.Round(age*10) / 10
	if age < 0 {
		return 0
	}
	if age > 25 {
		return 25
	}
	return age
}

// Check evaluates eligibility rules in order, short-circuiting on the first
// failure: excluded state, global age ceiling, then the state SOL cutoff.
// A nil age or empty state skips the rules that need them.
func (c *Checker) Check(age *float64, state string) (bool, string) {
	if state != "" && c.criteria.IsExcluded(state) {
		return false, fmt.Sprintf("We apologize, but we are currently not accepting cases from %s.", state)
	}

	if age == nil {
		return true, ""
	}

	normalized := NormalizeAge(*age)

	if normalized >= maxPursuableAge {
		return false, "We apologize, but based on your child's age, we cannot proceed with your case."
	}

	if state != "" {
		if rule, ok := c.criteria.SOLFor(state); ok && !WithinSOL(normalized, rule) {
			return false, fmt.Sprintf("We apologize, but based on your child's age and %s's requirements, we cannot proceed with your case.", state)
		}
	}

	return true, ""
}
