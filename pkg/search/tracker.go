package search

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// sessionTTL is how long an idle session's generation is remembered.
const sessionTTL = 30 * time.Minute

// Tracker hands out a generation number per search session. Only the latest
// generation of a session is current; anything older has been superseded.
type Tracker struct {
	mu          sync.Mutex
	generations *cache.Cache
}

func NewTracker() *Tracker {
	return &Tracker{
		generations: cache.New(sessionTTL, sessionTTL),
	}
}

// Begin starts a new generation for session, superseding every earlier one.
func (t *Tracker) Begin(session string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var gen uint64
	if v, ok := t.generations.Get(session); ok {
		gen = v.(uint64)
	}
	gen++
	t.generations.SetDefault(session, gen)
	return gen
}

// IsCurrent reports whether gen is still the latest generation of session.
func (t *Tracker) IsCurrent(session string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.generations.Get(session)
	return ok && v.(uint64) == gen
}
