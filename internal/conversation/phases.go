package conversation

import "github.com/casewise/intake/internal/model"

// phaseQuestions maps each interview phase to the question sent to the family.
var phaseQuestions = map[model.Phase]string{
	model.PhaseAge:          "How old is your child with CP?",
	model.PhasePregnancy:    "How many weeks pregnant were you when your child was born? Did your child have a difficult delivery?",
	model.PhaseNICU:         "Did your child go to the NICU after birth?",
	model.PhaseNICUDuration: "How long was your child in the NICU for after birth?",
	model.PhaseHIETherapy:   "Did your child receive head cooling or HIE therapy while in the NICU?",
	model.PhaseBrainScan:    "Did your child receive an MRI or Brain Scan while in the NICU?",
	model.PhaseMilestones:   "Is your child missing any milestones and or having any delays?",
	model.PhaseLawyer:       "This sounds like it definitely needs to be looked into further. Have you had your case reviewed by a lawyer yet?",
	model.PhaseState:        "In what State was your child born?",
}

// phaseHelp maps each phase to its explanation for a help command.
var phaseHelp = map[model.Phase]string{
	model.PhaseAge:          "I need to know how old your child is. You can provide the age in years, like '5 years old' or just '5'.",
	model.PhasePregnancy:    "I'm asking about your pregnancy length (in weeks) when your child was born, and if there were any complications during delivery.",
	model.PhaseNICU:         "NICU stands for Neonatal Intensive Care Unit. I'm asking if your child needed to stay in the NICU after birth.",
	model.PhaseNICUDuration: "I need to know how long your child stayed in the NICU. You can answer in days, weeks, or months.",
	model.PhaseHIETherapy:   "HIE therapy (also called head cooling) is a treatment used for babies who experienced oxygen deprivation during birth. I'm asking if your child received this treatment.",
	model.PhaseBrainScan:    "I'm asking if your child had a brain imaging test (MRI or other scan) while in the NICU.",
	model.PhaseMilestones:   "Developmental milestones are skills like rolling over, sitting up, walking, or talking that children typically develop at certain ages. I'm asking if your child is delayed in any of these areas.",
	model.PhaseLawyer:       "I'm asking if you've already consulted with a lawyer about your child's case.",
	model.PhaseState:        "I need to know which US state your child was born in. This helps determine eligibility based on state-specific laws.",
}

const (
	genericHelp = "I'm gathering information about your child's case to see if we can help. Please answer the current question as best you can."

	processingErrorMsg = "I'm having trouble processing your response. Could you please try again?"
	backLimitMsg       = "We can't go back any further. Let's continue with the current question."
	idlePromptMsg      = "I notice you haven't responded. Would you like to continue with the consultation? Please type 'yes' to continue or 'quit' to end our conversation."
	sympathyMsg        = "I'm sorry to hear that your delivery was difficult."
	farewellMsg        = "We're glad to hear you're already getting your case reviewed and getting the help you need. We wish you and your family the best."

	ageParseErrorMsg = "I couldn't understand the age provided. Please provide the age in years, like '5' or '5 years old'."
	ageRangeErrorMsg = "Please provide a valid age between 0 and 25 years."
)

var backCommands = []string{"back", "previous", "go back", "return"}

var helpCommands = []string{"help", "confused", "don't understand", "what's this", "explain"}

// yesNoTopics are the interpretation prompts passed to the language layer
// for each yes/no phase.
var yesNoTopics = map[model.Phase]string{
	model.PhaseNICU:       "Did the child go to NICU after birth",
	model.PhaseHIETherapy: "Did the child receive head cooling or HIE therapy",
	model.PhaseBrainScan:  "Did the child receive an MRI or brain scan while in the NICU",
	model.PhaseMilestones: "Is the child missing developmental milestones or has delays",
	model.PhaseLawyer:     "Has the family previously consulted a lawyer about this case",
}
