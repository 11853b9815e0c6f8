package rank

import (
	"testing"

	"github.com/casewise/intake/internal/model"
)

func TestApply_AddsAndRecomputesRanking(t *testing.T) {
	e := NewEngine(nil)
	rec := model.NewCaseRecord()

	e.Apply(rec, 40, "test delta")
	if rec.Points != 90 {
		t.Errorf("Points = %d, want 90", rec.Points)
	}
	if rec.Ranking != model.RankingVeryHigh {
		t.Errorf("Ranking = %q, want very_high", rec.Ranking)
	}
}

func TestApply_ClampsAtZero(t *testing.T) {
	e := NewEngine(nil)
	rec := model.NewCaseRecord()

	e.Apply(rec, -80, "massive penalty")
	if rec.Points != 0 {
		t.Errorf("Points = %d, want 0", rec.Points)
	}
	if rec.Ranking != model.RankingLow {
		t.Errorf("Ranking = %q, want low", rec.Ranking)
	}
}

func TestRankingFor_TierBoundaries(t *testing.T) {
	tests := []struct {
		points int
		want   model.Ranking
	}{
		{100, model.RankingVeryHigh},
		{80, model.RankingVeryHigh},
		{79, model.RankingHigh},
		{65, model.RankingHigh},
		{64, model.RankingNormal},
		{40, model.RankingNormal},
		{39, model.RankingLow},
		{0, model.RankingLow},
	}

	for _, tt := range tests {
		if got := RankingFor(tt.points); got != tt.want {
			t.Errorf("RankingFor(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestApplyPregnancy_GestationBuckets(t *testing.T) {
	tests := []struct {
		weeks int
		want  int // points after starting at 50, no difficulty
	}{
		{28, 50 + 15 - 10},
		{32, 50 + 10 - 10},
		{39, 50 - 5 - 10},
	}

	for _, tt := range tests {
		e := NewEngine(nil)
		rec := model.NewCaseRecord()
		weeks := tt.weeks
		e.ApplyPregnancy(rec, &weeks, false)
		if rec.Points != tt.want {
			t.Errorf("weeks=%d: Points = %d, want %d", tt.weeks, rec.Points, tt.want)
		}
		if rec.WeeksPregnant != tt.weeks {
			t.Errorf("weeks=%d: WeeksPregnant = %d", tt.weeks, rec.WeeksPregnant)
		}
	}
}

func TestApplyPregnancy_NilWeeksOnlyScoresDelivery(t *testing.T) {
	e := NewEngine(nil)
	rec := model.NewCaseRecord()

	e.ApplyPregnancy(rec, nil, true)
	if rec.Points != 65 {
		t.Errorf("Points = %d, want 65", rec.Points)
	}
	if !rec.DifficultDelivery {
		t.Error("DifficultDelivery not recorded")
	}
}

func TestApplyNICUDuration_Buckets(t *testing.T) {
	tests := []struct {
		days  int
		delta int
	}{
		{45, 15},
		{30, 10},
		{10, 5},
		{3, 3},
		{0, 0},
	}

	for _, tt := range tests {
		e := NewEngine(nil)
		rec := model.NewCaseRecord()
		e.ApplyNICUDuration(rec, tt.days)
		if rec.Points != model.StartingPoints+tt.delta {
			t.Errorf("days=%d: Points = %d, want %d", tt.days, rec.Points, model.StartingPoints+tt.delta)
		}
	}
}

func TestApplyHIETherapy_OnlyAwardsOnYes(t *testing.T) {
	e := NewEngine(nil)
	rec := model.NewCaseRecord()

	e.ApplyHIETherapy(rec, false)
	if rec.Points != model.StartingPoints {
		t.Errorf("no therapy must not change points, got %d", rec.Points)
	}

	e.ApplyHIETherapy(rec, true)
	if rec.Points != model.StartingPoints+40 {
		t.Errorf("Points = %d, want %d", rec.Points, model.StartingPoints+40)
	}
}

func TestApplyLawyer(t *testing.T) {
	e := NewEngine(nil)

	rec := model.NewCaseRecord()
	e.ApplyLawyer(rec, true)
	if rec.Points != 45 {
		t.Errorf("consulted: Points = %d, want 45", rec.Points)
	}

	rec = model.NewCaseRecord()
	e.ApplyLawyer(rec, false)
	if rec.Points != 55 {
		t.Errorf("not consulted: Points = %d, want 55", rec.Points)
	}
}
