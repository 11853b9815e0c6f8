package model

import "time"

// Ranking buckets the running case score into a review-priority tier
type Ranking string

const (
	RankingVeryHigh Ranking = "very_high"
	RankingHigh     Ranking = "high"
	RankingNormal   Ranking = "normal"
	RankingLow      Ranking = "low"
)

// StartingPoints is the baseline score every new case begins with.
const StartingPoints = 50

// CaseRecord holds the working state of one intake interview session
type CaseRecord struct {
	Age               *float64       `json:"age"`            // years, 0.1 precision
	State             string         `json:"state"`          // full US state name
	WeeksPregnant     int            `json:"weeks_pregnant"` // gestational age at birth
	DifficultDelivery bool           `json:"difficult_delivery"`
	Points            int            `json:"points"`
	Ranking           Ranking        `json:"ranking"`
	PhasesCompleted   map[Phase]bool `json:"phases_completed"`
	CreatedAt         time.Time      `json:"created_at"`
}

// NewCaseRecord initializes a case at the baseline score with every phase open
func NewCaseRecord() *CaseRecord {
	completed := make(map[Phase]bool, len(PhaseOrder))
	for _, p := range PhaseOrder {
		completed[p] = false
	}
	return &CaseRecord{
		Points:          StartingPoints,
		Ranking:         RankingNormal,
		PhasesCompleted: completed,
		CreatedAt:       time.Now().UTC(),
	}
}

// MarkPhaseComplete records that a phase has been answered or implied.
func (r *CaseRecord) MarkPhaseComplete(p Phase) {
	if r.PhasesCompleted == nil {
		r.PhasesCompleted = make(map[Phase]bool)
	}
	r.PhasesCompleted[p] = true
}

// ImpliedAnswers collects inferred values for phases that have not been asked
// yet. Fields stay nil until a detection writes them; a later detection in the
// same session overwrites (last-detected-wins).
type ImpliedAnswers struct {
	NICU         *bool
	NICUDuration *int // days
	HIETherapy   *bool
	BrainScan    *bool
	Milestones   *bool
	Lawyer       *bool
	State        string // empty until detected
}

// Has reports whether an implied value exists for the given phase.
func (a *ImpliedAnswers) Has(p Phase) bool {
	switch p {
	case PhaseNICU:
		return a.NICU != nil
	case PhaseNICUDuration:
		return a.NICUDuration != nil
	case PhaseHIETherapy:
		return a.HIETherapy != nil
	case PhaseBrainScan:
		return a.BrainScan != nil
	case PhaseMilestones:
		return a.Milestones != nil
	case PhaseLawyer:
		return a.Lawyer != nil
	case PhaseState:
		return a.State != ""
	}
	return false
}
