package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/casewise/intake/internal/eligibility"
	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/nlu"
	"github.com/casewise/intake/internal/oracle"
	"github.com/casewise/intake/internal/rank"
)

type recordingSaver struct {
	calls   int
	rec     *model.CaseRecord
	answers map[model.Phase]any
}

func (s *recordingSaver) Save(rec *model.CaseRecord, answers map[model.Phase]any) error {
	s.calls++
	s.rec = rec
	s.answers = answers
	return nil
}

func testChecker() *eligibility.Checker {
	return eligibility.NewChecker(&model.CriteriaTable{
		StateSOL: map[string]model.StateRule{
			"Michigan": {MinorSOL: "10th birthday"},
			"Florida":  {MinorSOL: "8th birthday"},
		},
		ExcludedStates: []string{"Guamlandia"},
	})
}

func newTestMachine(saver CaseSaver) *Machine {
	interp := nlu.NewInterpreter(nil, oracle.Config{}, nil)
	return NewMachine(interp, rank.NewEngine(nil), testChecker(), saver, nil)
}

func TestMachine_StartsAtAge(t *testing.T) {
	m := newTestMachine(nil)
	if m.CurrentPhase() != model.PhaseAge {
		t.Errorf("CurrentPhase = %v, want age", m.CurrentPhase())
	}
	question, isControl := m.NextPrompt()
	if isControl {
		t.Error("first prompt must not be a control prompt")
	}
	if !strings.Contains(question, "How old") {
		t.Errorf("unexpected first question: %q", question)
	}
}

func TestMachine_CompoundAnswerConsumesImpliedPhases(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	reply := m.ProcessMessage(ctx, "2")
	if reply.Age == nil || *reply.Age != 2 {
		t.Fatalf("age reply = %+v", reply)
	}
	if m.CurrentPhase() != model.PhasePregnancy {
		t.Fatalf("CurrentPhase = %v, want pregnancy", m.CurrentPhase())
	}

	reply = m.ProcessMessage(ctx, "28 weeks, NICU for a month, cooling therapy, some delays")
	if reply.Sympathy == "" {
		t.Error("difficult delivery should produce a sympathy message")
	}

	// one message answered pregnancy and implied nicu, duration, hie therapy,
	// and milestones; the machine lands on the first unanswered phase
	if m.CurrentPhase() != model.PhaseLawyer {
		t.Fatalf("CurrentPhase = %v, want lawyer", m.CurrentPhase())
	}

	rec := m.Record()
	// 50 +15 premature +15 difficult +10 nicu +10 duration +40 hie +15 delays
	if rec.Points != 155 {
		t.Errorf("Points = %d, want 155", rec.Points)
	}
	if rec.Ranking != model.RankingVeryHigh {
		t.Errorf("Ranking = %q, want very_high", rec.Ranking)
	}
	if rec.WeeksPregnant != 28 {
		t.Errorf("WeeksPregnant = %d, want 28", rec.WeeksPregnant)
	}
	for _, p := range []model.Phase{model.PhaseNICU, model.PhaseNICUDuration, model.PhaseHIETherapy, model.PhaseMilestones} {
		if !rec.PhasesCompleted[p] {
			t.Errorf("phase %v should be marked complete", p)
		}
	}
}

func TestMachine_FullInterviewSavesOnce(t *testing.T) {
	saver := &recordingSaver{}
	m := newTestMachine(saver)
	ctx := context.Background()

	m.ProcessMessage(ctx, "2")
	m.ProcessMessage(ctx, "28 weeks, NICU for a month, cooling therapy, some delays")

	reply := m.ProcessMessage(ctx, "no")
	if m.CurrentPhase() != model.PhaseState {
		t.Fatalf("CurrentPhase = %v, want state", m.CurrentPhase())
	}

	reply = m.ProcessMessage(ctx, "Michigan")
	if reply.Eligible != nil {
		t.Fatalf("eligible case must not produce a verdict reply: %+v", reply)
	}
	if m.CurrentPhase() != model.PhaseComplete {
		t.Fatalf("CurrentPhase = %v, want complete", m.CurrentPhase())
	}

	if saver.calls != 1 {
		t.Fatalf("saver calls = %d, want 1", saver.calls)
	}
	if saver.rec.State != "Michigan" {
		t.Errorf("saved state = %q, want Michigan", saver.rec.State)
	}
	if saver.answers[model.PhaseNICUDuration] != 30 {
		t.Errorf("saved duration = %v, want 30", saver.answers[model.PhaseNICUDuration])
	}

	question, _ := m.NextPrompt()
	if !strings.Contains(question, "strong potential") {
		t.Errorf("high-ranking completion should mention strong potential: %q", question)
	}
	if !strings.Contains(question, "FREE case review") {
		t.Errorf("completion message missing handoff text: %q", question)
	}
}

func TestMachine_LawyerYesEndsWithFarewell(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	m.ProcessMessage(ctx, "3")
	m.ProcessMessage(ctx, "full term, no complications at all")
	m.ProcessMessage(ctx, "no")  // nicu (full term, so hie is still asked)
	m.ProcessMessage(ctx, "no")  // hie therapy
	m.ProcessMessage(ctx, "yes") // milestones
	if m.CurrentPhase() != model.PhaseLawyer {
		t.Fatalf("CurrentPhase = %v, want lawyer", m.CurrentPhase())
	}

	reply := m.ProcessMessage(ctx, "yes")
	if !reply.EndChat {
		t.Fatal("consulted lawyer should end the chat")
	}
	if !strings.Contains(reply.Farewell, "already getting your case reviewed") {
		t.Errorf("unexpected farewell: %q", reply.Farewell)
	}
}

func TestMachine_FullTermNoNICUStillAsksHIE(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	m.ProcessMessage(ctx, "3")
	m.ProcessMessage(ctx, "40 weeks")
	m.ProcessMessage(ctx, "no") // nicu
	if m.CurrentPhase() != model.PhaseHIETherapy {
		t.Fatalf("CurrentPhase = %v, want hie_therapy", m.CurrentPhase())
	}

	m.ProcessMessage(ctx, "no") // hie; no nicu stay skips brain scan
	if m.CurrentPhase() != model.PhaseMilestones {
		t.Fatalf("CurrentPhase = %v, want milestones", m.CurrentPhase())
	}
}

func TestMachine_PretermNoNICUSkipsToMilestones(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	m.ProcessMessage(ctx, "3")
	m.ProcessMessage(ctx, "32 weeks")
	m.ProcessMessage(ctx, "no") // nicu
	if m.CurrentPhase() != model.PhaseMilestones {
		t.Fatalf("CurrentPhase = %v, want milestones", m.CurrentPhase())
	}
}

func TestMachine_FullTermNICUGetsBrainScan(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	m.ProcessMessage(ctx, "3")
	m.ProcessMessage(ctx, "38 weeks")
	m.ProcessMessage(ctx, "yes")     // nicu
	m.ProcessMessage(ctx, "2 weeks") // duration
	m.ProcessMessage(ctx, "no")      // hie
	if m.CurrentPhase() != model.PhaseBrainScan {
		t.Fatalf("CurrentPhase = %v, want brain_scan", m.CurrentPhase())
	}
}

func TestMachine_IneligibleAgeStopsImmediately(t *testing.T) {
	m := newTestMachine(nil)

	reply := m.ProcessMessage(context.Background(), "22")
	if reply.Eligible == nil || *reply.Eligible {
		t.Fatalf("expected ineligible verdict, got %+v", reply)
	}
	if !strings.Contains(reply.Reason, "based on your child's age") {
		t.Errorf("unexpected reason: %q", reply.Reason)
	}
}

func TestMachine_IneligibleStateVerdict(t *testing.T) {
	saver := &recordingSaver{}
	m := newTestMachine(saver)
	ctx := context.Background()

	m.ProcessMessage(ctx, "9")
	m.ProcessMessage(ctx, "40 weeks")
	m.ProcessMessage(ctx, "no") // nicu
	m.ProcessMessage(ctx, "no") // hie
	m.ProcessMessage(ctx, "no") // milestones
	m.ProcessMessage(ctx, "no") // lawyer

	reply := m.ProcessMessage(ctx, "Florida")
	if reply.Eligible == nil || *reply.Eligible {
		t.Fatalf("age 9 in Florida should fail the SOL: %+v", reply)
	}
	if saver.calls != 0 {
		t.Error("ineligible cases must not be saved")
	}
}

func TestMachine_UnparseableAgeReprompts(t *testing.T) {
	m := newTestMachine(nil)

	reply := m.ProcessMessage(context.Background(), "born in springtime")
	if reply.Error == "" {
		t.Fatal("expected an error reply")
	}
	if m.CurrentPhase() != model.PhaseAge {
		t.Error("failed interpretation must not advance the phase")
	}
}

func TestMachine_BackAtFirstPhaseRefused(t *testing.T) {
	m := newTestMachine(nil)

	reply := m.ProcessMessage(context.Background(), "go back")
	if !strings.Contains(reply.Error, "can't go back any further") {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

func TestMachine_BackReopensPreviousPhase(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	m.ProcessMessage(ctx, "4")
	if m.CurrentPhase() != model.PhasePregnancy {
		t.Fatal("setup failed")
	}

	reply := m.ProcessMessage(ctx, "go back")
	if !reply.Back {
		t.Fatalf("expected back reply, got %+v", reply)
	}
	if m.CurrentPhase() != model.PhaseAge {
		t.Errorf("CurrentPhase = %v, want age", m.CurrentPhase())
	}
	if m.Record().PhasesCompleted[model.PhaseAge] {
		// the record keeps its history; only the working phase reopens
		t.Log("age remains recorded as previously completed")
	}
}

func TestMachine_HelpIsPhaseSpecific(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	reply := m.ProcessMessage(ctx, "help")
	if !strings.Contains(reply.Help, "how old your child is") {
		t.Errorf("unexpected age help: %q", reply.Help)
	}

	m.ProcessMessage(ctx, "4")
	reply = m.ProcessMessage(ctx, "I'm confused")
	if !strings.Contains(reply.Help, "pregnancy length") {
		t.Errorf("unexpected pregnancy help: %q", reply.Help)
	}
}

func TestMachine_EmptyMessagesTriggerIdlePrompt(t *testing.T) {
	m := newTestMachine(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		reply := m.ProcessMessage(ctx, "   ")
		if reply != (Reply{}) {
			t.Fatalf("empty message %d produced %+v", i, reply)
		}
	}

	prompt, isControl := m.NextPrompt()
	if !isControl {
		t.Fatal("three empty messages should produce a control prompt")
	}
	if !strings.Contains(prompt, "haven't responded") {
		t.Errorf("unexpected idle prompt: %q", prompt)
	}

	// a real answer resets the counter
	m.ProcessMessage(ctx, "4")
	if _, isControl := m.NextPrompt(); isControl {
		t.Error("counter should reset after a real message")
	}
}
