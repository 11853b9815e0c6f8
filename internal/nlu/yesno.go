package nlu

import "strings"

// normalDevelopmentPhrases force a negative answer on the milestones question
// regardless of any other signal in the message.
var normalDevelopmentPhrases = []string{
	"no delays", "meeting milestones", "on track", "normal development",
	"no major delays", "everything seems normal", "developing normally",
	"no issues", "no problems", "no concerns", "normal", "typical",
}

var (
	exactYes = []string{"yes", "yeah", "yep", "yup", "sure", "definitely", "absolutely", "correct"}
	exactNo  = []string{"no", "nope", "not", "never", "negative"}

	coolingIndicators = []string{"cooling", "hypothermia", "hie therapy", "head cool", "cooling blanket"}
	coolingNegative   = []string{"no cooling", "didn't receive cooling", "without cooling", "no hypothermia"}

	scanIndicators = []string{"mri", "brain scan", "head scan", "cat scan", "ct scan", "ultrasound"}
	scanNegative   = []string{"no scan", "didn't have scan", "no mri", "without scan", "no scans"}

	positivePhrases = []string{
		"i do", "we did", "that is right", "that is correct",
		"that's right", "that's correct", "had to", "did have",
		"we had", "they did", "doctor", "received", "cooling", "blanket",
		"mri", "brain scan", "scan", "behind", "delayed", "delay", "missing",
		"not meeting", "therapy", "treatment", "cool", "attorney", "spoke", "spoken",
	}

	uncertaintyPhrases = []string{"i think", "maybe", "possibly", "probably", "might have", "could have", "not sure"}
	negationTokens     = []string{"no", "not", "never", "don't", "didn't", "doesn't", "don't think"}
)

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func equalsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if text == t {
			return true
		}
	}
	return false
}

// InterpretYesNo classifies a free-text answer as affirmative or negative.
// The topic describes the question being answered; a few topics carry
// keyword pairs of their own, and negation lists always beat keyword lists.
func InterpretYesNo(text, topic string) bool {
	input := strings.ToLower(strings.TrimSpace(text))
	topicLower := strings.ToLower(topic)

	if strings.Contains(topicLower, "developmental milestones") &&
		containsAny(input, normalDevelopmentPhrases) {
		return false
	}

	if equalsAny(input, exactYes) {
		return true
	}
	if equalsAny(input, exactNo) {
		return false
	}

	if strings.Contains(topicLower, "cooling") || strings.Contains(topicLower, "hie therapy") {
		if containsAny(input, coolingIndicators) {
			return !containsAny(input, coolingNegative)
		}
	}

	if strings.Contains(topicLower, "brain scan") || strings.Contains(topicLower, "mri") {
		if containsAny(input, scanIndicators) {
			return !containsAny(input, scanNegative)
		}
	}

	if containsAny(input, positivePhrases) {
		return true
	}

	if containsAny(input, uncertaintyPhrases) {
		return !containsAny(input, negationTokens)
	}

	return false
}
