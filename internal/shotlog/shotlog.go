// Package shotlog appends one CSV row per recommendation request to a flat
// file. The header is written only when the file is created.
package shotlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

// Header is the first row of every log file.
var Header = []string{
	"timestamp", "source", "request_id",
	"distance", "wind_speed", "wind_heading", "wind_angle", "slope",
	"rough", "sand", "flag",
	"outcome", "club", "adjusted",
}

// Record is one logged request.
type Record struct {
	Source    string // e.g. "api", "form"
	RequestID string
	Shot      club.ShotContext
	Outcome   string // "ok" or an error kind
	Club      string
	Adjusted  *float64
}

// Logger appends Records to a CSV file. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	path  string
	clock clockwork.Clock
}

// New returns a Logger writing to path. A nil clock means wall time.
func New(path string, clock clockwork.Clock) *Logger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Logger{path: path, clock: clock}
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.path }

// Append writes r as a single row, creating the file and its header if needed.
func (l *Logger) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating shot log dir: %w", err)
	}

	needHeader := false
	info, err := os.Stat(l.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		needHeader = true
	case err != nil:
		return fmt.Errorf("stat shot log: %w", err)
	case info.Size() == 0:
		needHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening shot log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("writing shot log header: %w", err)
		}
	}
	if err := w.Write(l.row(r)); err != nil {
		return fmt.Errorf("writing shot log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing shot log: %w", err)
	}
	return nil
}

func (l *Logger) row(r Record) []string {
	return []string{
		l.clock.Now().UTC().Format(time.RFC3339),
		r.Source,
		r.RequestID,
		optFloat(r.Shot.Distance),
		formatFloat(r.Shot.WindSpeed),
		r.Shot.WindHeading,
		optFloat(r.Shot.WindAngle),
		formatFloat(r.Shot.SlopeDegrees),
		strconv.FormatBool(r.Shot.Rough),
		strconv.FormatBool(r.Shot.Sand),
		r.Shot.FlagColor,
		r.Outcome,
		r.Club,
		optFloat(r.Adjusted),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
