package shotlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC))
	path := filepath.Join(t.TempDir(), "logs", "shots.csv")
	l := New(path, clock)

	dist := 150.0
	adj := 160.0
	require.NoError(t, l.Append(Record{
		Source:    "api",
		RequestID: "req-1",
		Shot:      club.ShotContext{Distance: &dist, WindSpeed: 10, WindHeading: "E", FlagColor: "Red"},
		Outcome:   "ok",
		Club:      "5",
		Adjusted:  &adj,
	}))

	clock.Advance(time.Minute)
	require.NoError(t, l.Append(Record{Source: "form", RequestID: "req-2", Outcome: "invalid_input"}))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"2026-10-19T09:30:00Z", "api", "req-1",
		"150", "10", "E", "", "0",
		"false", "false", "Red",
		"ok", "5", "160",
	}, rows[1])
	assert.Equal(t, "2026-10-19T09:31:00Z", rows[2][0])
	assert.Equal(t, "", rows[2][3], "missing distance stays blank")
	assert.Equal(t, "invalid_input", rows[2][11])
}

func TestAppend_ExistingFileGetsNoSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.csv")
	require.NoError(t, New(path, nil).Append(Record{Source: "api"}))

	l := New(path, nil)
	assert.Equal(t, path, l.Path())
	require.NoError(t, l.Append(Record{Source: "api"}))

	rows := readRows(t, path)
	assert.Len(t, rows, 3)
}

func TestAppend_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots.csv")
	l := New(path, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append(Record{Source: "api"}))
		}()
	}
	wg.Wait()

	assert.Len(t, readRows(t, path), 21)
}
