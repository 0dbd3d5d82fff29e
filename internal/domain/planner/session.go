package planner

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tripmind/internal/domain/itinerary"
)

// SessionContext is the volatile per-conversation dialogue state. It lives
// in memory with a TTL; a conversation whose session expired gets rebuilt
// from its persisted message history on the next turn.
type SessionContext struct {
	State         State
	Slots         Slots
	ClarifyCount  int
	LastItinerary *itinerary.Itinerary
	UpdatedAt     time.Time
}

// NewSessionContext returns a fresh session at the start state.
func NewSessionContext() *SessionContext {
	return &SessionContext{State: StateInitial, UpdatedAt: time.Now()}
}

// SessionStore keeps sessions keyed by conversation public ID with a
// sliding TTL.
type SessionStore struct {
	cache *gocache.Cache
}

// NewSessionStore builds a store whose entries expire ttl after their last
// write. Expired entries are reaped by Sweep, not by a background janitor,
// so the caller controls sweep cadence.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{cache: gocache.New(ttl, 0)}
}

// Get returns the session for a conversation, or nil when absent/expired.
func (s *SessionStore) Get(conversationID string) *SessionContext {
	if v, ok := s.cache.Get(conversationID); ok {
		return v.(*SessionContext)
	}
	return nil
}

// Put stores the session and refreshes its TTL.
func (s *SessionStore) Put(conversationID string, session *SessionContext) {
	session.UpdatedAt = time.Now()
	s.cache.SetDefault(conversationID, session)
}

// Delete drops the session.
func (s *SessionStore) Delete(conversationID string) {
	s.cache.Delete(conversationID)
}

// Sweep evicts expired sessions and returns how many remain.
func (s *SessionStore) Sweep() int {
	s.cache.DeleteExpired()
	return s.cache.ItemCount()
}

// TurnGuard enforces one in-flight turn per conversation. Beginning a new
// turn cancels the previous one: the newer message wins and the superseded
// turn must not persist an assistant reply.
type TurnGuard struct {
	mu     sync.Mutex
	active map[string]*turnToken
}

type turnToken struct {
	cancel context.CancelFunc
}

func NewTurnGuard() *TurnGuard {
	return &TurnGuard{active: make(map[string]*turnToken)}
}

// Begin cancels any in-flight turn for the conversation and registers a new
// one. The returned context is canceled if a later message arrives; done
// must be called when the turn finishes.
func (g *TurnGuard) Begin(ctx context.Context, conversationID string) (turnCtx context.Context, done func()) {
	turnCtx, cancel := context.WithCancel(ctx)
	token := &turnToken{cancel: cancel}

	g.mu.Lock()
	if prev, ok := g.active[conversationID]; ok {
		prev.cancel()
	}
	g.active[conversationID] = token
	g.mu.Unlock()

	return turnCtx, func() {
		g.mu.Lock()
		if g.active[conversationID] == token {
			delete(g.active, conversationID)
		}
		g.mu.Unlock()
		cancel()
	}
}
