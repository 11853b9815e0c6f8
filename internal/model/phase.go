package model

// Phase identifies one step in the fixed intake interview sequence
type Phase string

const (
	PhaseAge          Phase = "age"
	PhasePregnancy    Phase = "pregnancy"
	PhaseNICU         Phase = "nicu"
	PhaseNICUDuration Phase = "nicu_duration"
	PhaseHIETherapy   Phase = "hie_therapy"
	PhaseBrainScan    Phase = "brain_scan"
	PhaseMilestones   Phase = "milestones"
	PhaseLawyer       Phase = "lawyer"
	PhaseState        Phase = "state"
	PhaseComplete     Phase = "complete"
)

// PhaseOrder is the canonical interview sequence, excluding the terminal phase.
// Transitions may skip phases but never reorder them.
var PhaseOrder = []Phase{
	PhaseAge,
	PhasePregnancy,
	PhaseNICU,
	PhaseNICUDuration,
	PhaseHIETherapy,
	PhaseBrainScan,
	PhaseMilestones,
	PhaseLawyer,
	PhaseState,
}

// Index returns the position of the phase in PhaseOrder, or -1 for the
// terminal phase.
func (p Phase) Index() int {
	for i, phase := range PhaseOrder {
		if phase == p {
			return i
		}
	}
	return -1
}

// Prev returns the immediately preceding question phase. The second return
// is false at the first phase and for the terminal phase.
func (p Phase) Prev() (Phase, bool) {
	i := p.Index()
	if i <= 0 {
		return p, false
	}
	return PhaseOrder[i-1], true
}

func (p Phase) String() string {
	return string(p)
}
