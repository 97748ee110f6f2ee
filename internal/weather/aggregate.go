package weather

import (
	"math"
	"time"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

// AggregateReadings combines multiple provider readings into a single WindSnapshot.
// Speeds are averaged; the direction is the circular mean so that 350° and
// 10° average to 0° rather than 180°.
func AggregateReadings(loc Location, readings []ProviderReading) WindSnapshot {
	if len(readings) == 0 {
		return WindSnapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Heading:   club.HeadingForAngle(0),
		}
	}

	var (
		sumSpeed float64
		maxGust  float64
		sumSin   float64
		sumCos   float64
	)

	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumSpeed += r.WindSpeedMPH
		if r.WindGustMPH > maxGust {
			maxGust = r.WindGustMPH
		}

		rad := r.WindDirectionDeg * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(readings))

	dir := math.Atan2(sumSin/n, sumCos/n) * 180 / math.Pi
	if dir < 0 {
		dir += 360
	}
	// Round off float noise so a lone 90° reading stays 90°.
	dir = math.Round(dir*1e6) / 1e6
	if dir >= 360 {
		dir -= 360
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return WindSnapshot{
		Location:     loc,
		Timestamp:    newestTS,
		SpeedMPH:     sumSpeed / n,
		GustMPH:      maxGust,
		DirectionDeg: dir,
		Heading:      club.HeadingForAngle(dir),
		Providers:    providers,
	}
}
