package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/golf-club-recommender/internal/weather"
)

type recordingRefresher struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingRefresher) FetchAndStore(ctx context.Context, loc weather.Location) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, loc.Key())
	if loc.City == "Fail" {
		return errors.New("provider down")
	}
	return nil
}

func TestRefreshAll_VisitsEveryCourse(t *testing.T) {
	ref := &recordingRefresher{}
	s := New([]weather.Location{
		{City: "Troon", Country: "GB"},
		{City: "Fail", Country: "XX"},
		{City: "Augusta", Country: "US"},
	}, time.Minute, ref)

	s.RefreshAll(context.Background())

	assert.ElementsMatch(t, []string{"Troon:GB", "Fail:XX", "Augusta:US"}, ref.seen)
}

func TestStart_NoCourses(t *testing.T) {
	s := New(nil, time.Minute, &recordingRefresher{})
	require.NoError(t, s.Start())
	s.Stop()
}
