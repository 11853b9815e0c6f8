package eligibility

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/casewise/intake/internal/model"
)

func testCriteria() *model.CriteriaTable {
	return &model.CriteriaTable{
		StateSOL: map[string]model.StateRule{
			"Michigan": {MinorSOL: "10th birthday"},
			"New York": {MinorSOL: "10 years"},
			"Florida":  {MinorSOL: "8th birthday"},
		},
		ExcludedStates: []string{"Guamlandia"},
	}
}

func TestParseSOLAge(t *testing.T) {
	tests := []struct {
		rule string
		want float64
		ok   bool
	}{
		{"10th birthday", 10, true},
		{"21st birthday", 21, true},
		{"3rd birthday", 3, true},
		{"8 years", 8, true},
		{"within 12", 12, true},
		{"", 0, false},
		{"no limit stated", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseSOLAge(tt.rule)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseSOLAge(%q) = %v, %v; want %v, %v", tt.rule, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWithinSOL(t *testing.T) {
	if !WithinSOL(9.9, "10th birthday") {
		t.Error("9.9 should be within a 10th birthday cutoff")
	}
	if WithinSOL(10, "10th birthday") {
		t.Error("exactly 10 is past a 10th birthday cutoff")
	}
	if WithinSOL(5, "nonsense") {
		t.Error("unparsable rule must fail closed")
	}
}

func TestNormalizeAge(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{5.25, 5.3},
		{5.94999, 5.9},
		{-2, 0},
		{80, 25},
	}
	for _, tt := range tests {
		if got := NormalizeAge(tt.in); got != tt.want {
			t.Errorf("NormalizeAge(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCheck_AgeCeiling(t *testing.T) {
	c := NewChecker(testCriteria())
	age := 21.0

	eligible, reason := c.Check(&age, "")
	if eligible {
		t.Fatal("age 21 should fail the ceiling")
	}
	if !strings.Contains(reason, "based on your child's age") {
		t.Errorf("unexpected reason: %q", reason)
	}
}

func TestCheck_AgeOnlyPasses(t *testing.T) {
	c := NewChecker(testCriteria())
	age := 7.0

	if eligible, _ := c.Check(&age, ""); !eligible {
		t.Error("age 7 with no state yet should pass")
	}
}

func TestCheck_StateSOL(t *testing.T) {
	c := NewChecker(testCriteria())
	age := 12.0

	eligible, reason := c.Check(&age, "Michigan")
	if eligible {
		t.Fatal("age 12 in Michigan should fail the 10th birthday SOL")
	}
	if !strings.Contains(reason, "Michigan's requirements") {
		t.Errorf("unexpected reason: %q", reason)
	}

	age = 7
	if eligible, _ := c.Check(&age, "Michigan"); !eligible {
		t.Error("age 7 in Michigan should pass")
	}
}

func TestCheck_UnknownStateHasNoSOL(t *testing.T) {
	c := NewChecker(testCriteria())
	age := 18.0

	if eligible, _ := c.Check(&age, "Wyoming"); !eligible {
		t.Error("a state without a rule only faces the global ceiling")
	}
}

func TestCheck_ExcludedState(t *testing.T) {
	c := NewChecker(testCriteria())

	// exclusion applies even before an age is known
	eligible, reason := c.Check(nil, "Guamlandia")
	if eligible {
		t.Fatal("excluded state should fail")
	}
	if !strings.Contains(reason, "not accepting cases from Guamlandia") {
		t.Errorf("unexpected reason: %q", reason)
	}
}

func TestCheck_NilAgeNoState(t *testing.T) {
	c := NewChecker(testCriteria())
	if eligible, _ := c.Check(nil, ""); !eligible {
		t.Error("nothing known yet should pass")
	}
}

func TestLoadCriteria(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "criteria.yaml")

	content := `state_sol:
  Michigan:
    minor_sol: "10th birthday"
excluded_states:
  - Guamlandia
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	criteria, err := LoadCriteria(path)
	if err != nil {
		t.Fatalf("LoadCriteria: %v", err)
	}
	if rule, ok := criteria.SOLFor("Michigan"); !ok || rule != "10th birthday" {
		t.Errorf("SOLFor(Michigan) = %q, %v", rule, ok)
	}
	if !criteria.IsExcluded("Guamlandia") {
		t.Error("Guamlandia should be excluded")
	}

	if _, err := LoadCriteria(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
