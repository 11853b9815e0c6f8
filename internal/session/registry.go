// Package session maps message senders to their in-flight interviews.
package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/casewise/intake/internal/conversation"
)

// Session is one sender's interview state.
type Session struct {
	SenderID  string
	Machine   *conversation.Machine
	StartedAt time.Time

	// Active flips to false once the interview reached a terminal reply.
	Active bool

	// HandledByAgent marks a session handed off to a human; messages no
	// longer run through the machine.
	HandledByAgent bool
}

// Factory builds a fresh state machine for a new session.
type Factory func() *conversation.Machine

// Registry tracks sessions keyed by sender ID, evicting idle ones.
type Registry struct {
	mu      sync.Mutex
	cache   *gocache.Cache
	factory Factory
	logger  *zap.Logger
}

// NewRegistry builds a registry whose sessions expire after idleTimeout
// without a message. cleanupInterval controls how often expired sessions are
// swept.
func NewRegistry(factory Factory, idleTimeout, cleanupInterval time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		cache:   gocache.New(idleTimeout, cleanupInterval),
		factory: factory,
		logger:  logger,
	}
}

// Get returns the sender's session, creating one when none exists or the
// previous one expired. The second result reports whether the session is new.
func (r *Registry) Get(senderID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(senderID); ok {
		sess := v.(*Session)
		r.cache.SetDefault(senderID, sess) // refresh the idle timer
		return sess, false
	}

	sess := &Session{
		SenderID:  senderID,
		Machine:   r.factory(),
		StartedAt: time.Now(),
		Active:    true,
	}
	r.cache.SetDefault(senderID, sess)
	r.logger.Info("new conversation session", zap.String("sender", senderID))
	return sess, true
}

// End deactivates and drops the sender's session.
func (r *Registry) End(senderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(senderID); ok {
		v.(*Session).Active = false
	}
	r.cache.Delete(senderID)
	r.logger.Info("conversation session ended", zap.String("sender", senderID))
}

// HandOff keeps the session but routes it to a human agent.
func (r *Registry) HandOff(senderID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(senderID); ok {
		v.(*Session).HandledByAgent = true
	}
	r.logger.Info("session handed off to agent",
		zap.String("sender", senderID),
		zap.String("reason", reason))
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	return r.cache.ItemCount()
}
