package model

// StateRule carries the per-state intake rules from the criteria file
type StateRule struct {
	// MinorSOL is the statute-of-limitations cutoff for minors, expressed as
	// either "<N>th birthday" or "<N> years".
	MinorSOL string `yaml:"minor_sol" json:"minor_sol"`
}

// CriteriaTable is the read-only legal rule set supplied at construction
type CriteriaTable struct {
	StateSOL       map[string]StateRule `yaml:"state_sol" json:"state_sol"`
	ExcludedStates []string             `yaml:"excluded_states" json:"excluded_states"`
}

// IsExcluded reports whether the state is on the global exclusion list.
func (c *CriteriaTable) IsExcluded(state string) bool {
	for _, s := range c.ExcludedStates {
		if s == state {
			return true
		}
	}
	return false
}

// SOLFor returns the SOL rule string for the state, if one is defined.
func (c *CriteriaTable) SOLFor(state string) (string, bool) {
	rule, ok := c.StateSOL[state]
	if !ok || rule.MinorSOL == "" {
		return "", false
	}
	return rule.MinorSOL, true
}
