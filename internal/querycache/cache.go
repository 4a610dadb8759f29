package querycache

import (
	"strings"
	"sync"
	"time"

	"github.com/talleraustral/taller/internal/clock"
	"go.uber.org/fx"
)

const defaultTTL = 5 * time.Minute

// Module provides the shared query cache.
var Module = fx.Provide(New)

// Store caches read results under a logical query name plus its parameters.
// A write invalidates every entry registered under the matching names, which
// forces the next read of those queries to hit the database again.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clock.Clock
	ttl     time.Duration
}

type entry struct {
	name      string
	value     any
	expiresAt time.Time
}

type Params struct {
	fx.In

	Clock clock.Clock
}

func New(p Params) *Store {
	return &Store{
		entries: make(map[string]entry),
		clock:   p.Clock,
		ttl:     defaultTTL,
	}
}

// NewWithClock is used by tests that need a controllable clock.
func NewWithClock(c clock.Clock, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		entries: make(map[string]entry),
		clock:   c,
		ttl:     ttl,
	}
}

func (s *Store) Get(name string, params ...string) (any, bool) {
	key := cacheKey(name, params...)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.clock.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(name string, value any, params ...string) {
	key := cacheKey(name, params...)

	s.mu.Lock()
	s.entries[key] = entry{
		name:      name,
		value:     value,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	s.mu.Unlock()
}

// Invalidate removes every cached entry registered under the given names.
func (s *Store) Invalidate(names ...string) {
	if len(names) == 0 {
		return
	}

	s.mu.Lock()
	for key, e := range s.entries {
		for _, name := range names {
			if e.name == name {
				delete(s.entries, key)
				break
			}
		}
	}
	s.mu.Unlock()
}

// TimeParam renders an optional time bound as a cache key parameter.
func TimeParam(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func cacheKey(name string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, name)
	for _, p := range params {
		parts = append(parts, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(parts, "|")
}
