package nlu

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casewise/intake/internal/oracle"
)

// Source tags where an interpretation came from, letting callers and tests
// distinguish the oracle path from the deterministic one.
type Source string

const (
	SourceOracle   Source = "oracle"
	SourceFallback Source = "fallback"
)

// Interpreter prefers the external oracle and degrades to the deterministic
// pattern interpreters on any failure or unusable response. A nil provider
// means the oracle is disabled and everything runs on the fallback path.
type Interpreter struct {
	provider   oracle.Provider
	maxRetries int
	maxInput   int
	logger     *zap.Logger
}

// NewInterpreter creates an interpreter. provider may be nil (oracle off).
func NewInterpreter(provider oracle.Provider, cfg oracle.Config, logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	maxInput := cfg.MaxInputChars
	if maxInput <= 0 {
		maxInput = 1000
	}
	return &Interpreter{
		provider:   provider,
		maxRetries: maxRetries,
		maxInput:   maxInput,
		logger:     logger,
	}
}

// query asks the oracle with bounded retries, returning "" when the oracle is
// disabled or every attempt fails. Failures are never propagated.
func (i *Interpreter) query(ctx context.Context, kind oracle.Kind, topic, userText string) string {
	if i.provider == nil {
		return ""
	}

	if len(userText) > i.maxInput {
		userText = userText[:i.maxInput] + "..."
	}
	system := oracle.SystemPrompt(kind, topic)

	for attempt := 0; attempt < i.maxRetries; attempt++ {
		resp, err := i.provider.Interpret(ctx, system, userText)
		if err == nil {
			return strings.TrimSpace(resp)
		}

		i.logger.Warn("oracle attempt failed",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		if attempt < i.maxRetries-1 {
			select {
			case <-ctx.Done():
				return ""
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	i.logger.Warn("oracle exhausted retries, degrading to fallback",
		zap.String("kind", string(kind)))
	return ""
}

// Age extracts a child's age in years.
func (i *Interpreter) Age(ctx context.Context, text string) (float64, bool, Source) {
	if strings.TrimSpace(text) == "" {
		return 0, false, SourceFallback
	}

	if resp := i.query(ctx, oracle.KindAge, "", text); resp != "" {
		if age, err := strconv.ParseFloat(strings.ReplaceAll(resp, ",", "."), 64); err == nil {
			return age, true, SourceOracle
		}
	}

	age, ok := InterpretAge(text)
	return age, ok, SourceFallback
}

// Pregnancy extracts gestational weeks and delivery difficulty.
func (i *Interpreter) Pregnancy(ctx context.Context, text string) (PregnancyDetails, Source) {
	if text == "" {
		return PregnancyDetails{}, SourceFallback
	}

	if resp := i.query(ctx, oracle.KindPregnancy, "", text); resp != "" {
		var details PregnancyDetails
		if err := json.Unmarshal([]byte(resp), &details); err == nil {
			return details, SourceOracle
		}
	}

	return InterpretPregnancy(text), SourceFallback
}

// YesNo classifies an answer as affirmative or negative for the given topic.
func (i *Interpreter) YesNo(ctx context.Context, text, topic string) (bool, Source) {
	if text == "" {
		return false, SourceFallback
	}

	// Unambiguous answers never need the oracle. The milestones override also
	// runs first: normal-development phrasing beats any other signal.
	input := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(strings.ToLower(topic), "developmental milestones") &&
		containsAny(input, normalDevelopmentPhrases) {
		return false, SourceFallback
	}
	if equalsAny(input, exactYes) {
		return true, SourceFallback
	}
	if equalsAny(input, exactNo) {
		return false, SourceFallback
	}

	if resp := i.query(ctx, oracle.KindYesNo, topic, text); resp != "" {
		switch strings.ToLower(resp) {
		case "yes":
			return true, SourceOracle
		case "no":
			return false, SourceOracle
		}
	}

	return InterpretYesNo(text, topic), SourceFallback
}

// Duration extracts a duration in days.
func (i *Interpreter) Duration(ctx context.Context, text string) (int, Source) {
	if text == "" {
		return 0, SourceFallback
	}

	if resp := i.query(ctx, oracle.KindDuration, "", text); resp != "" {
		if days, err := strconv.Atoi(resp); err == nil {
			return days, SourceOracle
		}
	}

	return InterpretDuration(text), SourceFallback
}

// State extracts a US state as its canonical full name.
func (i *Interpreter) State(ctx context.Context, text string) (string, bool, Source) {
	if text == "" {
		return "", false, SourceFallback
	}

	if resp := i.query(ctx, oracle.KindState, "", text); resp != "" && !strings.EqualFold(resp, "unknown") {
		if state, ok := CanonicalState(resp); ok {
			return state, true, SourceOracle
		}
	}

	state, ok := InterpretState(text)
	return state, ok, SourceFallback
}
