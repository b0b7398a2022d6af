package search

import (
	"sync"
	"sync/atomic"
)

// SessionGuard hands out monotonically increasing request tokens for one
// search session and lets only in-order completions commit. A
// slower-resolving earlier search can never overwrite the results of a later
// one from the same session.
type SessionGuard struct {
	counter   atomic.Uint64
	committed atomic.Uint64
}

// Next reserves the token for a new search.
func (g *SessionGuard) Next() uint64 {
	return g.counter.Add(1)
}

// Commit records the completion of the search holding token. It returns
// false when a search issued later has already committed; the caller must
// discard the stale result.
func (g *SessionGuard) Commit(token uint64) bool {
	for {
		cur := g.committed.Load()
		if token <= cur {
			return false
		}
		if g.committed.CompareAndSwap(cur, token) {
			return true
		}
	}
}

// GuardRegistry keys session guards by session id so independent sessions
// never discard each other's results. Guards are created lazily on first use.
type GuardRegistry struct {
	mu     sync.Mutex
	guards map[string]*SessionGuard
}

func NewGuardRegistry() *GuardRegistry {
	return &GuardRegistry{guards: make(map[string]*SessionGuard)}
}

// For returns the guard for the given session, creating it if needed.
func (r *GuardRegistry) For(sessionID string) *SessionGuard {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.guards[sessionID]
	if !ok {
		g = &SessionGuard{}
		r.guards[sessionID] = g
	}
	return g
}
