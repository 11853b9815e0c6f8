package conversation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/casewise/intake/internal/eligibility"
	"github.com/casewise/intake/internal/implied"
	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/nlu"
	"github.com/casewise/intake/internal/rank"
)

// CaseSaver persists a finished interview.
type CaseSaver interface {
	Save(rec *model.CaseRecord, answers map[model.Phase]any) error
}

// phaseState tracks one phase's captured answer.
type phaseState struct {
	value    any
	complete bool
}

// Machine drives a single intake interview through its ordered phases. It is
// not safe for concurrent use; each session owns one Machine.
type Machine struct {
	interp    *nlu.Interpreter
	ranker    *rank.Engine
	checker   *eligibility.Checker
	extractor *implied.Extractor
	saver     CaseSaver
	logger    *zap.Logger

	current    model.Phase
	record     *model.CaseRecord
	phases     map[model.Phase]*phaseState
	implied    model.ImpliedAnswers
	emptyCount int
	saved      bool
}

// NewMachine starts an interview at the age phase. saver may be nil when the
// caller does not persist finished cases.
func NewMachine(interp *nlu.Interpreter, ranker *rank.Engine, checker *eligibility.Checker, saver CaseSaver, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	phases := make(map[model.Phase]*phaseState, len(model.PhaseOrder))
	for _, p := range model.PhaseOrder {
		phases[p] = &phaseState{}
	}
	return &Machine{
		interp:    interp,
		ranker:    ranker,
		checker:   checker,
		extractor: implied.NewExtractor(logger),
		saver:     saver,
		logger:    logger,
		current:   model.PhaseAge,
		record:    model.NewCaseRecord(),
		phases:    phases,
	}
}

// CurrentPhase returns the phase awaiting an answer.
func (m *Machine) CurrentPhase() model.Phase { return m.current }

// Record exposes the running case state.
func (m *Machine) Record() *model.CaseRecord { return m.record }

// ProcessMessage interprets one inbound message against the current phase,
// applies scoring, consumes any implied answers for later phases, and advances.
func (m *Machine) ProcessMessage(ctx context.Context, message string) (reply Reply) {
	message = strings.TrimSpace(message)

	if message == "" {
		m.emptyCount++
		return Reply{}
	}
	m.emptyCount = 0

	if isCommand(message, backCommands) {
		return m.handleBack()
	}
	if isCommand(message, helpCommands) {
		return m.handleHelp()
	}

	m.extractor.Scan(message, &m.implied)

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic while processing message",
				zap.String("phase", m.current.String()),
				zap.Any("panic", r))
			reply = Reply{Error: processingErrorMsg}
		}
	}()

	switch m.current {
	case model.PhaseAge:
		return m.processAge(ctx, message)
	case model.PhasePregnancy:
		return m.processPregnancy(ctx, message)
	case model.PhaseNICU:
		return m.processNICU(ctx, message)
	case model.PhaseNICUDuration:
		return m.processNICUDuration(ctx, message)
	case model.PhaseHIETherapy:
		return m.processHIETherapy(ctx, message)
	case model.PhaseBrainScan:
		return m.processBrainScan(ctx, message)
	case model.PhaseMilestones:
		return m.processMilestones(ctx, message)
	case model.PhaseLawyer:
		return m.processLawyer(ctx, message)
	case model.PhaseState:
		return m.processState(ctx, message)
	}
	return Reply{}
}

// NextPrompt returns the outgoing message and whether it is an idle-check
// control prompt rather than an interview question.
func (m *Machine) NextPrompt() (string, bool) {
	if m.emptyCount >= 3 {
		return idlePromptMsg, true
	}
	if m.current == model.PhaseComplete {
		return m.completionMessage(), false
	}
	return phaseQuestions[m.current], false
}

func (m *Machine) completionMessage() string {
	rating := ""
	if m.record.Ranking == model.RankingHigh || m.record.Ranking == model.RankingVeryHigh {
		rating = "Based on your answers, your case shows strong potential. "
	}
	return "Thank you! " + rating + "We'll connect you with a representative who will " +
		"ask you a few more questions and schedule a FREE case review call with one of our affiliate lawyers. " +
		"There is no fee or cost to you."
}

func (m *Machine) handleBack() Reply {
	prev, ok := m.current.Prev()
	if !ok {
		return Reply{Error: backLimitMsg}
	}
	m.phases[prev].complete = false
	m.current = prev
	return Reply{Back: true}
}

func (m *Machine) handleHelp() Reply {
	if msg, ok := phaseHelp[m.current]; ok {
		return Reply{Help: msg}
	}
	return Reply{Help: genericHelp}
}

func (m *Machine) setAnswer(p model.Phase, value any) {
	st := m.phases[p]
	st.value = value
	st.complete = true
	m.record.MarkPhaseComplete(p)
}

func (m *Machine) nicuStay() bool {
	v, ok := m.phases[model.PhaseNICU].value.(bool)
	return ok && v
}

// afterNICU picks the phase following a NICU answer. Full-term babies are
// still asked about HIE therapy even without a NICU stay.
func (m *Machine) afterNICU(stayed bool) model.Phase {
	if stayed {
		return model.PhaseNICUDuration
	}
	if m.record.WeeksPregnant >= 36 {
		return model.PhaseHIETherapy
	}
	return model.PhaseMilestones
}

// afterHIE picks the phase following an HIE therapy answer. Brain imaging is
// only asked about for full-term babies who stayed in the NICU.
func (m *Machine) afterHIE() model.Phase {
	if m.nicuStay() && m.record.WeeksPregnant >= 36 {
		return model.PhaseBrainScan
	}
	return model.PhaseMilestones
}

// advanceTo moves to next, first consuming every queued implied answer along
// the way. It stops at the first phase that still needs a real question, at a
// terminal reply, or at completion.
func (m *Machine) advanceTo(next model.Phase, reply Reply) Reply {
	for {
		if next == model.PhaseComplete {
			m.current = model.PhaseComplete
			m.saveCase()
			return reply
		}
		if !m.implied.Has(next) {
			m.current = next
			return reply
		}

		switch next {
		case model.PhaseNICU:
			stayed := *m.implied.NICU
			m.setAnswer(model.PhaseNICU, stayed)
			m.ranker.ApplyNICU(m.record, stayed)
			next = m.afterNICU(stayed)

		case model.PhaseNICUDuration:
			days := *m.implied.NICUDuration
			m.setAnswer(model.PhaseNICUDuration, days)
			m.ranker.ApplyNICUDuration(m.record, days)
			next = model.PhaseHIETherapy

		case model.PhaseHIETherapy:
			received := *m.implied.HIETherapy
			m.setAnswer(model.PhaseHIETherapy, received)
			m.ranker.ApplyHIETherapy(m.record, received)
			next = m.afterHIE()

		case model.PhaseBrainScan:
			performed := *m.implied.BrainScan
			m.setAnswer(model.PhaseBrainScan, performed)
			m.ranker.ApplyBrainScan(m.record, performed)
			next = model.PhaseMilestones

		case model.PhaseMilestones:
			hasDelays := *m.implied.Milestones
			m.setAnswer(model.PhaseMilestones, hasDelays)
			m.ranker.ApplyMilestones(m.record, hasDelays)
			next = model.PhaseLawyer

		case model.PhaseLawyer:
			consulted := *m.implied.Lawyer
			m.setAnswer(model.PhaseLawyer, consulted)
			m.ranker.ApplyLawyer(m.record, consulted)
			if consulted {
				m.current = model.PhaseLawyer
				reply.EndChat = true
				reply.Farewell = farewellMsg
				return reply
			}
			next = model.PhaseState

		case model.PhaseState:
			state := m.implied.State
			m.setAnswer(model.PhaseState, state)
			m.record.State = state
			if eligible, reason := m.checker.Check(m.record.Age, state); !eligible {
				m.current = model.PhaseState
				return verdictReply(false, reason)
			}
			next = model.PhaseComplete

		default:
			m.current = next
			return reply
		}
	}
}

func (m *Machine) processAge(ctx context.Context, message string) Reply {
	age, ok, _ := m.interp.Age(ctx, message)
	if !ok {
		return Reply{Error: ageParseErrorMsg}
	}
	// the fallback interpreter range-gates already; this catches oracle answers
	if age < 0 || age > 25 {
		return Reply{Error: ageRangeErrorMsg}
	}

	normalized := eligibility.NormalizeAge(age)
	m.setAnswer(model.PhaseAge, normalized)
	m.record.Age = &normalized

	if eligible, reason := m.checker.Check(&normalized, ""); !eligible {
		return verdictReply(false, reason)
	}

	return m.advanceTo(model.PhasePregnancy, Reply{Age: &normalized})
}

func (m *Machine) processPregnancy(ctx context.Context, message string) Reply {
	m.setAnswer(model.PhasePregnancy, message)

	details, _ := m.interp.Pregnancy(ctx, message)
	m.ranker.ApplyPregnancy(m.record, details.Weeks, details.DifficultDelivery)

	reply := Reply{}
	if details.DifficultDelivery {
		reply.Sympathy = sympathyMsg
	}
	return m.advanceTo(model.PhaseNICU, reply)
}

func (m *Machine) processNICU(ctx context.Context, message string) Reply {
	stayed, _ := m.interp.YesNo(ctx, message, yesNoTopics[model.PhaseNICU])
	m.setAnswer(model.PhaseNICU, stayed)
	m.ranker.ApplyNICU(m.record, stayed)
	return m.advanceTo(m.afterNICU(stayed), Reply{})
}

func (m *Machine) processNICUDuration(ctx context.Context, message string) Reply {
	days, _ := m.interp.Duration(ctx, message)
	m.setAnswer(model.PhaseNICUDuration, days)
	m.ranker.ApplyNICUDuration(m.record, days)
	return m.advanceTo(model.PhaseHIETherapy, Reply{})
}

func (m *Machine) processHIETherapy(ctx context.Context, message string) Reply {
	received, _ := m.interp.YesNo(ctx, message, yesNoTopics[model.PhaseHIETherapy])
	m.setAnswer(model.PhaseHIETherapy, received)
	m.ranker.ApplyHIETherapy(m.record, received)
	return m.advanceTo(m.afterHIE(), Reply{})
}

func (m *Machine) processBrainScan(ctx context.Context, message string) Reply {
	performed, _ := m.interp.YesNo(ctx, message, yesNoTopics[model.PhaseBrainScan])
	m.setAnswer(model.PhaseBrainScan, performed)
	m.ranker.ApplyBrainScan(m.record, performed)
	return m.advanceTo(model.PhaseMilestones, Reply{})
}

func (m *Machine) processMilestones(ctx context.Context, message string) Reply {
	hasDelays, _ := m.interp.YesNo(ctx, message, yesNoTopics[model.PhaseMilestones])
	m.setAnswer(model.PhaseMilestones, message)
	m.ranker.ApplyMilestones(m.record, hasDelays)
	return m.advanceTo(model.PhaseLawyer, Reply{})
}

func (m *Machine) processLawyer(ctx context.Context, message string) Reply {
	consulted, _ := m.interp.YesNo(ctx, message, yesNoTopics[model.PhaseLawyer])
	m.setAnswer(model.PhaseLawyer, consulted)
	m.ranker.ApplyLawyer(m.record, consulted)

	if consulted {
		return Reply{EndChat: true, Farewell: farewellMsg}
	}
	return m.advanceTo(model.PhaseState, Reply{})
}

func (m *Machine) processState(ctx context.Context, message string) Reply {
	state, ok, _ := m.interp.State(ctx, message)
	if !ok {
		state = strings.TrimSpace(message)
	}

	m.setAnswer(model.PhaseState, state)
	m.record.State = state

	if eligible, reason := m.checker.Check(m.record.Age, state); !eligible {
		return verdictReply(false, reason)
	}
	return m.advanceTo(model.PhaseComplete, Reply{})
}

// saveCase persists the finished interview once.
func (m *Machine) saveCase() {
	if m.saved || m.saver == nil {
		return
	}
	answers := make(map[model.Phase]any, len(m.phases))
	for p, st := range m.phases {
		if st.complete {
			answers[p] = st.value
		}
	}
	if err := m.saver.Save(m.record, answers); err != nil {
		m.logger.Warn("could not save case data", zap.Error(err))
		return
	}
	m.saved = true
}

func isCommand(message string, indicators []string) bool {
	lower := strings.ToLower(message)
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
