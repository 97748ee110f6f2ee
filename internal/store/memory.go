package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/golf-club-recommender/internal/weather"
)

// ErrNotFound is returned when no data is available for a given location.
var ErrNotFound = weather.ErrNotFound

// SnapshotHistory holds a time-ordered list of wind snapshots for a location.
type SnapshotHistory struct {
	Snapshots []weather.WindSnapshot
}

// MemoryStore is a concurrency-safe in-memory implementation of a wind store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*SnapshotHistory

	// retention configuration
	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots

	clock clockwork.Clock
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the clock used for age retention.
func WithClock(c clockwork.Clock) Option {
	return func(s *MemoryStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveSnapshot appends a new snapshot for a location and enforces retention.
func (s *MemoryStore) SaveSnapshot(loc weather.Location, snapshot weather.WindSnapshot) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age. The newest snapshot is always kept.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots)-1; i++ {
			if !history.Snapshots[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recent snapshot for a location.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.WindSnapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return weather.WindSnapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetRange returns all snapshots for a location between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.WindSnapshot, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.WindSnapshot
	for _, snap := range history.Snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
