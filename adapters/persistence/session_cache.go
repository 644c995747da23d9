package persistence

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/chirraaggggg/github-roaster/internal/application/service"
	"github.com/chirraaggggg/github-roaster/internal/domain/profile"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

// sessionSlot holds one session's cached profile plus its latest roast.
// The mutex serializes the check-then-fetch-then-store sequence so that two
// concurrent requests for the same stale slot cannot race each other into a
// double fetch or a lost update.
type sessionSlot struct {
	mu        sync.Mutex
	profile   *profile.Profile
	roast     string
	fetchedAt time.Time
}

// SessionCache is an in-memory, per-session profile cache with a freshness
// window. Slots live in an LRU so the process cannot accumulate unbounded
// session state; eviction of a slot only costs a refetch. Nothing is ever
// written to disk.
type SessionCache struct {
	slots *lru.Cache[string, *sessionSlot]
	ttl   time.Duration
	log   logger.Logger
	now   func() time.Time
}

func NewSessionCache(ttl time.Duration, maxSessions int, log logger.Logger) (*SessionCache, error) {
	slots, err := lru.New[string, *sessionSlot](maxSessions)
	if err != nil {
		return nil, err
	}
	return &SessionCache{
		slots: slots,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}, nil
}

var _ service.ProfileCache = (*SessionCache)(nil)

func (c *SessionCache) slot(sessionID string) *sessionSlot {
	if s, ok := c.slots.Get(sessionID); ok {
		return s
	}
	s := &sessionSlot{}
	if prev, ok, _ := c.slots.PeekOrAdd(sessionID, s); ok {
		return prev
	}
	return s
}

// isFresh reports whether the slot holds a profile for username fetched
// within the freshness window. Callers hold the slot mutex.
func (c *SessionCache) isFresh(s *sessionSlot, username string) bool {
	return s.profile != nil &&
		strings.EqualFold(s.profile.Username, username) &&
		c.now().Sub(s.fetchedAt) < c.ttl
}

func (c *SessionCache) GetOrFetch(ctx context.Context, sessionID, username string, fetch func(ctx context.Context) (*profile.Profile, error)) (*profile.Profile, bool, error) {
	s := c.slot(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.isFresh(s, username) {
		c.log.Debug("profile cache hit", zap.String("username", username))
		return s.profile, true, nil
	}

	p, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	s.profile = p
	s.roast = ""
	s.fetchedAt = c.now()
	return p, false, nil
}

func (c *SessionCache) CachedProfile(sessionID string) (*profile.Profile, bool) {
	s, ok := c.slots.Get(sessionID)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil || c.now().Sub(s.fetchedAt) >= c.ttl {
		return nil, false
	}
	return s.profile, true
}

func (c *SessionCache) StoreRoast(sessionID, roast string) {
	s, ok := c.slots.Get(sessionID)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return
	}
	s.roast = roast
}

// LatestRoast returns the roast stored for the session's current profile.
func (c *SessionCache) LatestRoast(sessionID string) (string, bool) {
	s, ok := c.slots.Get(sessionID)
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roast == "" {
		return "", false
	}
	return s.roast, true
}

// WithClock swaps the time source. Intended for tests.
func (c *SessionCache) WithClock(now func() time.Time) *SessionCache {
	c.now = now
	return c
}
