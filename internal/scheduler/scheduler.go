package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/golf-club-recommender/internal/weather"
)

// Refresher fetches and stores the wind for one course.
type Refresher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes the wind for configured courses so that
// recommendations can use a stored reading instead of waiting on providers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	courses   []weather.Location
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(courses []weather.Location, interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		courses:   courses,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.courses) == 0 {
		log.Println("scheduler: no courses configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running wind refresh job")
		s.RefreshAll(context.Background())
		log.Println("scheduler: completed wind refresh job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RefreshAll fetches every course concurrently, each bounded by the job timeout.
func (s *Scheduler) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, loc := range s.courses {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := s.service.FetchAndStore(ctx, loc); err != nil {
				log.Printf("scheduler: fetch failed for %s: %v", loc.Key(), err)
			}
		}()
	}
	wg.Wait()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
