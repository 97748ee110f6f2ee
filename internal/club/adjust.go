package club

import "math"

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// AdjustDistance returns the effective distance for a shot of base yards.
//
// The wind contributes speed*sin(angle), so a crosswind from the east adds
// its full speed and a wind from due north or south adds nothing. The slope
// term follows p.SlopeModel. Lie multipliers apply only when p.ApplyTerrain
// is set; rough and sand stack if both are given.
//
// Callers must keep slopeDeg away from ±90 under the tangent model; Validate
// enforces that.
func (p Policy) AdjustDistance(base, windSpeed, windAngle, slopeDeg float64, rough, sand bool) float64 {
	windEffect := p.NormalizeWindSpeed(windSpeed) * math.Sin(radians(windAngle))

	var slopeEffect float64
	switch p.SlopeModel {
	case SlopeLinear:
		slopeEffect = slopeDeg / 4
	default:
		slopeEffect = base * math.Tan(radians(slopeDeg))
	}

	adjusted := base + windEffect + slopeEffect
	if p.ApplyTerrain {
		if rough {
			adjusted *= p.Terrain.Rough
		}
		if sand {
			adjusted *= p.Terrain.Sand
		}
	}
	return adjusted
}
