package nlu

import "testing"

func TestInterpretYesNo_ExactTokens(t *testing.T) {
	for _, input := range []string{"yes", "Yeah", "yep", "absolutely"} {
		if !InterpretYesNo(input, "Did the child go to NICU after birth") {
			t.Errorf("InterpretYesNo(%q): expected true", input)
		}
	}
	for _, input := range []string{"no", "Nope", "never"} {
		if InterpretYesNo(input, "Did the child go to NICU after birth") {
			t.Errorf("InterpretYesNo(%q): expected false", input)
		}
	}
}

func TestInterpretYesNo_CoolingTopic(t *testing.T) {
	topic := "Did the child receive head cooling or HIE therapy"

	if !InterpretYesNo("they put him on a cooling blanket", topic) {
		t.Error("cooling blanket: expected true")
	}
	if InterpretYesNo("no cooling was done", topic) {
		t.Error("no cooling: negation should win over the keyword")
	}
}

func TestInterpretYesNo_ScanTopic(t *testing.T) {
	topic := "Did the child receive an MRI or brain scan while in the NICU"

	if !InterpretYesNo("she had an MRI on day two", topic) {
		t.Error("MRI mention: expected true")
	}
	if InterpretYesNo("no mri or anything like that", topic) {
		t.Error("no mri: negation should win over the keyword")
	}
}

func TestInterpretYesNo_MilestonesNormalDevelopment(t *testing.T) {
	topic := "Is the child missing developmental milestones or has delays"

	// normal-development phrases override everything else
	if InterpretYesNo("she is on track and doing great", topic) {
		t.Error("on track: expected false")
	}
	if InterpretYesNo("no delays, meeting milestones", topic) {
		t.Error("no delays: expected false")
	}
	if !InterpretYesNo("he is behind on walking and talking", topic) {
		t.Error("behind: expected true")
	}
}

func TestInterpretYesNo_PositivePhrases(t *testing.T) {
	if !InterpretYesNo("we had to stay, the doctor insisted", "Did the child go to NICU after birth") {
		t.Error("positive phrase: expected true")
	}
}

func TestInterpretYesNo_Uncertainty(t *testing.T) {
	topic := "Has the family previously consulted a lawyer about this case"

	if !InterpretYesNo("maybe, i think so", topic) {
		t.Error("uncertainty without negation: expected true")
	}
	if InterpretYesNo("probably not", topic) {
		t.Error("uncertainty with negation: expected false")
	}
	// "i do" matches inside "i don't" and the positive list runs before the
	// uncertainty and negation checks
	if !InterpretYesNo("i don't think so, maybe not", topic) {
		t.Error("positive phrase before negation: expected true")
	}
}

func TestInterpretYesNo_Default(t *testing.T) {
	if InterpretYesNo("the weather was nice", "Did the child go to NICU after birth") {
		t.Error("unrelated text: expected false")
	}
}
