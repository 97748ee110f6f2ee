package club

import (
	"fmt"
	"math"
)

// SlopeModel selects how the slope angle changes the playing distance.
type SlopeModel string

const (
	// SlopeTangent adds base * tan(slope).
	SlopeTangent SlopeModel = "tangent"
	// SlopeLinear adds slope / 4 yards.
	SlopeLinear SlopeModel = "linear"
)

// WindUnit is the unit wind speed is supplied in.
type WindUnit string

const (
	WindMPH WindUnit = "mph"
	WindKMH WindUnit = "kmh"
)

// KMHToMPH converts km/h to mph.
const KMHToMPH = 0.621371

// TerrainMultipliers scale the adjusted distance for a poor lie.
type TerrainMultipliers struct {
	Rough float64 `json:"rough"`
	Sand  float64 `json:"sand"`
}

// Policy collects the deployment-specific choices of the adjuster and the
// validator. Slope is accepted within ±SlopeBoundDegrees.
type Policy struct {
	SlopeBoundDegrees float64            `json:"slopeBoundDegrees"`
	WindUnit          WindUnit           `json:"windUnit"`
	SlopeModel        SlopeModel         `json:"slopeModel"`
	ApplyTerrain      bool               `json:"applyTerrain"`
	Terrain           TerrainMultipliers `json:"terrain"`
}

// DefaultPolicy is the tangent model over ±90° in mph with lie multipliers on.
// Under the tangent model ±90° itself is still rejected by Validate.
func DefaultPolicy() Policy {
	return Policy{
		SlopeBoundDegrees: 90,
		WindUnit:          WindMPH,
		SlopeModel:        SlopeTangent,
		ApplyTerrain:      true,
		Terrain:           TerrainMultipliers{Rough: 0.9, Sand: 0.8},
	}
}

// Check reports whether the policy itself is usable.
func (p Policy) Check() error {
	if math.IsNaN(p.SlopeBoundDegrees) || p.SlopeBoundDegrees < 0 || p.SlopeBoundDegrees > 90 {
		return fmt.Errorf("slope bound must be within [0, 90], got %v", p.SlopeBoundDegrees)
	}
	switch p.WindUnit {
	case WindMPH, WindKMH:
	default:
		return fmt.Errorf("unknown wind unit %q", p.WindUnit)
	}
	switch p.SlopeModel {
	case SlopeTangent, SlopeLinear:
	default:
		return fmt.Errorf("unknown slope model %q", p.SlopeModel)
	}
	if p.ApplyTerrain && (p.Terrain.Rough <= 0 || p.Terrain.Sand <= 0) {
		return fmt.Errorf("terrain multipliers must be positive, got rough=%v sand=%v", p.Terrain.Rough, p.Terrain.Sand)
	}
	return nil
}

// NormalizeWindSpeed converts speed from the policy's unit to mph.
func (p Policy) NormalizeWindSpeed(speed float64) float64 {
	if p.WindUnit == WindKMH {
		return speed * KMHToMPH
	}
	return speed
}
