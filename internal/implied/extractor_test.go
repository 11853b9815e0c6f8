package implied

import (
	"testing"

	"github.com/casewise/intake/internal/model"
)

func TestScan_NICUMention(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("she went straight to the nicu", &answers)
	if answers.NICU == nil || !*answers.NICU {
		t.Error("expected implied NICU = true")
	}
}

func TestScan_NegationWins(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("no nicu, we went home the next day", &answers)
	if answers.NICU == nil || *answers.NICU {
		t.Error("expected implied NICU = false")
	}
}

func TestScan_DurationFromStayStatement(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("he spent 3 weeks in the NICU", &answers)
	if answers.NICU == nil || !*answers.NICU {
		t.Error("expected implied NICU = true")
	}
	if answers.NICUDuration == nil || *answers.NICUDuration != 21 {
		t.Errorf("expected implied duration 21, got %v", answers.NICUDuration)
	}
}

func TestScan_LawyerAndScan(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("they did an MRI and we already have an attorney", &answers)
	if answers.BrainScan == nil || !*answers.BrainScan {
		t.Error("expected implied brain scan = true")
	}
	if answers.Lawyer == nil || !*answers.Lawyer {
		t.Error("expected implied lawyer = true")
	}
}

func TestScan_LawyerNegation(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("we are still looking for a lawyer", &answers)
	if answers.Lawyer == nil || *answers.Lawyer {
		t.Error("expected implied lawyer = false")
	}
}

func TestScan_StateDetection(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("she was born in Michigan at 30 weeks", &answers)
	if answers.State != "Michigan" {
		t.Errorf("State = %q, want Michigan", answers.State)
	}
}

func TestScan_CompoundMessage(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("28 weeks, NICU for a month, cooling therapy, some delays", &answers)

	if answers.NICU == nil || !*answers.NICU {
		t.Error("expected implied NICU = true")
	}
	if answers.NICUDuration == nil || *answers.NICUDuration != 30 {
		t.Errorf("expected implied duration 30, got %v", answers.NICUDuration)
	}
	if answers.HIETherapy == nil || !*answers.HIETherapy {
		t.Error("expected implied HIE therapy = true")
	}
	if answers.Milestones == nil || !*answers.Milestones {
		t.Error("expected implied milestones = true")
	}
	// nothing in the message implies a brain scan
	if answers.BrainScan != nil {
		t.Error("expected no implied brain scan")
	}
}

func TestScan_CompoundOverridesNegation(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	// the per-topic scan reads "no cooling" as a negative, but the compound
	// high-signal shape takes precedence
	e.Scan("28 weeks, nicu for a month, no cooling they said, delays now", &answers)
	if answers.HIETherapy == nil || !*answers.HIETherapy {
		t.Error("compound detection should override the cooling negation")
	}
	if answers.NICUDuration == nil || *answers.NICUDuration != 30 {
		t.Errorf("expected implied duration 30, got %v", answers.NICUDuration)
	}
}

func TestScan_Idempotent(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	msg := "28 weeks, NICU for a month, cooling therapy, some delays"
	e.Scan(msg, &answers)
	first := *answers.NICUDuration
	e.Scan(msg, &answers)
	if *answers.NICUDuration != first {
		t.Error("scanning the same message twice changed the result")
	}
}

func TestScan_EmptyMessage(t *testing.T) {
	e := NewExtractor(nil)
	var answers model.ImpliedAnswers

	e.Scan("", &answers)
	if answers.NICU != nil || answers.State != "" {
		t.Error("empty message must not imply anything")
	}
}
