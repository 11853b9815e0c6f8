package nlu

import "testing"

func TestInterpretAge_PlainForms(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5", 5},
		{"5 years old", 5},
		{"my son is 7", 7},
		{"she just turned 3", 3},
		{"2.5 years", 2.5},
		{"he is 4 yrs old", 4},
	}

	for _, tt := range tests {
		got, ok := InterpretAge(tt.input)
		if !ok {
			t.Errorf("InterpretAge(%q): expected a match", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("InterpretAge(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInterpretAge_SpelledNumbers(t *testing.T) {
	got, ok := InterpretAge("five years old")
	if !ok || got != 5 {
		t.Errorf("InterpretAge(five years old) = %v, %v; want 5, true", got, ok)
	}

	got, ok = InterpretAge("he's twelve")
	if !ok || got != 12 {
		t.Errorf("InterpretAge(he's twelve) = %v, %v; want 12, true", got, ok)
	}
}

func TestInterpretAge_MonthsConvertToYears(t *testing.T) {
	got, ok := InterpretAge("18 months old")
	if !ok || got != 1.5 {
		t.Errorf("InterpretAge(18 months old) = %v, %v; want 1.5, true", got, ok)
	}

	got, ok = InterpretAge("6 mos old")
	if !ok || got != 0.5 {
		t.Errorf("InterpretAge(6 mos old) = %v, %v; want 0.5, true", got, ok)
	}
}

func TestInterpretAge_ApproximateForms(t *testing.T) {
	got, ok := InterpretAge("almost 6")
	if !ok || got != 5.9 {
		t.Errorf("InterpretAge(almost 6) = %v, %v; want 5.9, true", got, ok)
	}

	got, ok = InterpretAge("3 and a half")
	if !ok || got != 3.5 {
		t.Errorf("InterpretAge(3 and a half) = %v, %v; want 3.5, true", got, ok)
	}

	got, ok = InterpretAge("2 and 3/4 years old")
	if !ok || got != 2.75 {
		t.Errorf("InterpretAge(2 and 3/4 years old) = %v, %v; want 2.75, true", got, ok)
	}
}

func TestInterpretAge_NoMatch(t *testing.T) {
	for _, input := range []string{"", "hello there", "born in spring"} {
		if _, ok := InterpretAge(input); ok {
			t.Errorf("InterpretAge(%q): expected no match", input)
		}
	}
}

func TestInterpretAge_OutOfRange(t *testing.T) {
	if _, ok := InterpretAge("47 years old"); ok {
		t.Error("expected ages above 25 to be rejected")
	}
}
