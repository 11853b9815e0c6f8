package session

import (
	"testing"
	"time"

	"github.com/casewise/intake/internal/conversation"
	"github.com/casewise/intake/internal/eligibility"
	"github.com/casewise/intake/internal/model"
	"github.com/casewise/intake/internal/nlu"
	"github.com/casewise/intake/internal/oracle"
	"github.com/casewise/intake/internal/rank"
)

func testFactory() Factory {
	interp := nlu.NewInterpreter(nil, oracle.Config{}, nil)
	checker := eligibility.NewChecker(&model.CriteriaTable{})
	return func() *conversation.Machine {
		return conversation.NewMachine(interp, rank.NewEngine(nil), checker, nil, nil)
	}
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	r := NewRegistry(testFactory(), time.Minute, time.Minute, nil)

	first, isNew := r.Get("sender-1")
	if !isNew {
		t.Fatal("first Get should create a session")
	}
	if !first.Active {
		t.Error("new sessions start active")
	}

	second, isNew := r.Get("sender-1")
	if isNew {
		t.Fatal("second Get must reuse the session")
	}
	if first != second {
		t.Error("expected the same session instance")
	}
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	r := NewRegistry(testFactory(), time.Minute, time.Minute, nil)

	a, _ := r.Get("sender-a")
	b, _ := r.Get("sender-b")
	if a.Machine == b.Machine {
		t.Error("each sender needs their own machine")
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
}

func TestRegistry_EndRemovesSession(t *testing.T) {
	r := NewRegistry(testFactory(), time.Minute, time.Minute, nil)

	sess, _ := r.Get("sender-1")
	r.End("sender-1")

	if sess.Active {
		t.Error("ended sessions become inactive")
	}
	if _, isNew := r.Get("sender-1"); !isNew {
		t.Error("a new Get after End starts a fresh session")
	}
}

func TestRegistry_HandOffKeepsSession(t *testing.T) {
	r := NewRegistry(testFactory(), time.Minute, time.Minute, nil)

	r.Get("sender-1")
	r.HandOff("sender-1", "needs human review")

	sess, isNew := r.Get("sender-1")
	if isNew {
		t.Fatal("handoff must keep the session alive")
	}
	if !sess.HandledByAgent {
		t.Error("session should be marked as handled by an agent")
	}
}

func TestRegistry_IdleExpiry(t *testing.T) {
	r := NewRegistry(testFactory(), 20*time.Millisecond, 10*time.Millisecond, nil)

	r.Get("sender-1")
	time.Sleep(50 * time.Millisecond)

	if _, isNew := r.Get("sender-1"); !isNew {
		t.Error("idle session should have expired")
	}
}
