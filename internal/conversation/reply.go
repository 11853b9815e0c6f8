package conversation

// Reply is the outcome of processing one inbound message. Zero-value fields
// are absent; the caller follows up with NextPrompt for the outgoing question.
type Reply struct {
	// Error is a user-facing re-prompt; the phase did not advance.
	Error string

	// Help is the phase-specific explanation for a help command.
	Help string

	// Back reports a successful single-step back command.
	Back bool

	// Sympathy is an empathetic aside sent before the next question.
	Sympathy string

	// Age echoes the accepted age after the age phase.
	Age *float64

	// Eligible carries an eligibility verdict; Reason explains a failure.
	Eligible *bool
	Reason   string

	// EndChat signals the interview is over; Farewell is the closing message.
	EndChat  bool
	Farewell string
}

// verdictReply builds a terminal eligibility reply.
func verdictReply(eligible bool, reason string) Reply {
	return Reply{Eligible: &eligible, Reason: reason}
}
