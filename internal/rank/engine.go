// Package rank maintains the running case score and derives the review
// priority tier from it.
package rank

import (
	"go.uber.org/zap"

	"github.com/casewise/intake/internal/model"
)

// tiers in descending order; the first tier whose threshold the score meets
// wins. The zero-threshold low tier is the deliberate catch-all.
var tiers = []struct {
	ranking   model.Ranking
	threshold int
}{
	{model.RankingVeryHigh, 80},
	{model.RankingHigh, 65},
	{model.RankingNormal, 40},
	{model.RankingLow, 0},
}

// Engine applies score deltas and keeps the ranking tier current
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a ranking engine
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Apply adds delta to the case score, clamps at zero, and recomputes the
// ranking so it is never stale.
func (e *Engine) Apply(rec *model.CaseRecord, delta int, reason string) {
	rec.Points += delta
	if rec.Points < 0 {
		rec.Points = 0
	}
	rec.Ranking = RankingFor(rec.Points)

	e.logger.Info("points updated",
		zap.Int("delta", delta),
		zap.String("reason", reason),
		zap.Int("total", rec.Points),
		zap.String("ranking", string(rec.Ranking)))
}

// RankingFor returns the tier for a score via the descending threshold scan.
func RankingFor(points int) model.Ranking {
	for _, tier := range tiers {
		if points >= tier.threshold {
			return tier.ranking
		}
	}
	return model.RankingLow
}

// ApplyPregnancy scores gestational age and delivery difficulty. A nil weeks
// value means gestation was not mentioned and carries no delta.
func (e *Engine) ApplyPregnancy(rec *model.CaseRecord, weeks *int, difficultDelivery bool) {
	if weeks != nil {
		rec.WeeksPregnant = *weeks

		switch {
		case *weeks < 30:
			e.Apply(rec, 15, "Very premature birth (< 30 weeks)")
		case *weeks < 36:
			e.Apply(rec, 10, "Premature birth (< 36 weeks)")
		default:
			e.Apply(rec, -5, "Full term birth (>= 36 weeks)")
		}
	}

	rec.DifficultDelivery = difficultDelivery
	if difficultDelivery {
		e.Apply(rec, 15, "Difficult delivery reported")
	} else {
		e.Apply(rec, -10, "No difficult delivery reported")
	}
}

// ApplyNICU scores whether the child stayed in the NICU.
func (e *Engine) ApplyNICU(rec *model.CaseRecord, stayed bool) {
	if stayed {
		e.Apply(rec, 10, "NICU stay required")
	} else {
		e.Apply(rec, -15, "No NICU stay")
	}
}

// ApplyNICUDuration scores the length of a NICU stay. Zero or unknown
// durations carry no delta.
func (e *Engine) ApplyNICUDuration(rec *model.CaseRecord, days int) {
	switch {
	case days <= 0:
	case days > 30:
		e.Apply(rec, 15, "Extended NICU stay (>30 days)")
	case days > 14:
		e.Apply(rec, 10, "Moderate NICU stay (>14 days)")
	case days > 7:
		e.Apply(rec, 5, "Short NICU stay (>7 days)")
	default:
		e.Apply(rec, 3, "Brief NICU stay")
	}
}

// ApplyHIETherapy scores head cooling / HIE therapy, the strongest signal.
func (e *Engine) ApplyHIETherapy(rec *model.CaseRecord, received bool) {
	if received {
		e.Apply(rec, 40, "Received HIE/head cooling therapy")
	}
}

// ApplyBrainScan scores whether brain imaging was performed.
func (e *Engine) ApplyBrainScan(rec *model.CaseRecord, performed bool) {
	if performed {
		e.Apply(rec, 20, "Brain scan/MRI was performed")
	} else {
		e.Apply(rec, -10, "No brain scan/MRI performed")
	}
}

// ApplyMilestones scores developmental delays.
func (e *Engine) ApplyMilestones(rec *model.CaseRecord, hasDelays bool) {
	if hasDelays {
		e.Apply(rec, 15, "Developmental delays reported")
	} else {
		e.Apply(rec, -5, "No developmental delays reported")
	}
}

// ApplyLawyer scores a prior legal consultation.
func (e *Engine) ApplyLawyer(rec *model.CaseRecord, consulted bool) {
	if consulted {
		e.Apply(rec, -5, "Previous legal consultation")
	} else {
		e.Apply(rec, 5, "No previous legal consultation")
	}
}
