package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Service orchestrates fetching wind from multiple providers and persisting snapshots.
type Service struct {
	store     Store
	providers []Provider
	recorder  FetchRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder reports every provider call to r.
func WithRecorder(r FetchRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService creates a new Service.
func NewService(store Store, providers []Provider, opts ...Option) *Service {
	s := &Service{
		store:     store,
		providers: providers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the names of the configured providers.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		p := p
		names = append(names, p.Name())
	}
	return names
}

// FetchAndStore fetches data from all providers concurrently for the given location,
// aggregates successful readings, and stores a snapshot.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
	)

	log.Printf("DEBUG: FetchAndStore called for %s with %d providers", loc.Key(), len(s.providers))
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to fetch wind data for %s", loc.Key())
		return fmt.Errorf("no weather providers configured")
	}

	for _, p := range s.providers {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if s.recorder != nil {
				s.recorder.ObserveFetch(p.Name(), err)
			}
			if err != nil {
				// Log and continue; we want partial success when possible.
				log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(readings) == 0 {
		// No providers succeeded; do not overwrite last good snapshot.
		log.Printf("no successful provider readings for %s; keeping last good snapshot if any", loc.Key())
		return nil
	}

	snapshot := AggregateReadings(loc, readings)
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	s.store.SaveSnapshot(loc, snapshot)
	return nil
}

// CurrentWind returns the latest stored snapshot, fetching once on a miss.
func (s *Service) CurrentWind(ctx context.Context, loc Location) (WindSnapshot, error) {
	snap, err := s.store.GetLatest(loc)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, ErrNotFound) || len(s.providers) == 0 {
		return WindSnapshot{}, err
	}

	if err := s.FetchAndStore(ctx, loc); err != nil {
		return WindSnapshot{}, err
	}
	return s.store.GetLatest(loc)
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (WindSnapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]WindSnapshot, error) {
	return s.store.GetRange(loc, from, to)
}
