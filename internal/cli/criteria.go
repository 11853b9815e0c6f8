package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casewise/intake/internal/eligibility"
	"github.com/casewise/intake/internal/nlu"
)

// criteriaCmd represents the criteria command
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Inspect the state eligibility rules",
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List states with their statute-of-limitations rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		criteria, err := eligibility.LoadCriteria(cfg.CriteriaFile)
		if err != nil {
			return fmt.Errorf("loading criteria: %w", err)
		}

		states := make([]string, 0, len(criteria.StateSOL))
		for state := range criteria.StateSOL {
			states = append(states, state)
		}
		sort.Strings(states)

		for _, state := range states {
			fmt.Printf("%-20s %s\n", state, criteria.StateSOL[state].MinorSOL)
		}
		if len(criteria.ExcludedStates) > 0 {
			fmt.Printf("\nExcluded states: %s\n", strings.Join(criteria.ExcludedStates, ", "))
		}
		return nil
	},
}

var criteriaCheckCmd = &cobra.Command{
	Use:   "check <state> <age>",
	Short: "Check eligibility for a state and age",
	Long: `Check runs the same eligibility test the interview applies: state
exclusions first, then the age ceiling, then the state statute of limitations.

Example:
  intake criteria check Michigan 7
  intake criteria check "New York" 2.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		criteria, err := eligibility.LoadCriteria(cfg.CriteriaFile)
		if err != nil {
			return fmt.Errorf("loading criteria: %w", err)
		}

		state, ok := nlu.CanonicalState(args[0])
		if !ok {
			state = args[0]
		}
		age, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid age %q: %w", args[1], err)
		}
		age = eligibility.NormalizeAge(age)

		checker := eligibility.NewChecker(criteria)
		eligible, reason := checker.Check(&age, state)
		if eligible {
			fmt.Printf("Eligible: %s, age %.1f\n", state, age)
			return nil
		}
		fmt.Printf("Not eligible: %s, age %.1f\n%s\n", state, age, reason)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.AddCommand(criteriaShowCmd)
	criteriaCmd.AddCommand(criteriaCheckCmd)
}
