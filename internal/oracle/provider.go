// Package oracle wraps the optional external language-model service used to
// interpret free-text intake answers. Providers are opportunistic: any
// failure or unusable response makes the caller degrade to the deterministic
// interpreters in internal/nlu.
package oracle

import (
	"context"

	"github.com/casewise/intake/internal/model"
)

// Kind names an interpretation task so providers and tests can distinguish
// the instruction sets.
type Kind string

const (
	KindAge       Kind = "age"
	KindPregnancy Kind = "pregnancy"
	KindYesNo     Kind = "yes_no"
	KindDuration  Kind = "duration"
	KindState     Kind = "state"
)

// Provider defines the interface for language-model providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Interpret sends the system instructions and user text to the model and
	// returns the raw text response.
	Interpret(ctx context.Context, system, user string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds oracle provider configuration
type Config = model.OracleConfig

// SystemPrompt returns the fixed instruction set for an interpretation kind.
func SystemPrompt(kind Kind, topic string) string {
	switch kind {
	case KindAge:
		return `Extract the child's age in years from this text. Respond with ONLY a number.
If the age includes partial years (like "5 and a half"), convert to a decimal (5.5).
If the age is given in months (like "18 months"), convert to years (1.5).
If you can't determine the age, respond with "unknown".`

	case KindPregnancy:
		return `Extract two pieces of information from this text about a child's birth:
1. The number of weeks pregnant (gestational age) when the child was born
2. Whether there was a difficult delivery

Respond with ONLY a JSON object with two keys:
- "weeks": number (or null if not mentioned)
- "difficult_delivery": boolean (true if any indication of difficult/complicated/not easy delivery)

Example response: {"weeks": 34, "difficult_delivery": true}`

	case KindYesNo:
		return `Determine if this response is affirmative (yes) or negative (no).
Context about the question: ` + topic + `

Respond with ONLY "yes" or "no".
When in doubt and the response indicates any affirmative element, respond with "yes".`

	case KindDuration:
		return `Extract the duration mentioned in this text and convert it to total days.
Respond with ONLY the number of days as an integer.

For example:
- "2 weeks" -> 14
- "3 days" -> 3
- "a week and a half" -> 10
- "2 months and 5 days" -> 65
- "a couple of days" -> 2
- "a few weeks" -> 21

If you can't determine a specific duration, respond with "0".`

	case KindState:
		return `Extract the U.S. state mentioned in this text.
Respond with ONLY the full state name with proper capitalization.
Convert state abbreviations to full names (e.g., "NY" -> "New York").

If you can't determine a specific state, respond with "unknown".`
	}
	return ""
}
