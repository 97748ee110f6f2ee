package club

import (
	"math"
	"strings"
)

var headingDegrees = map[string]float64{
	"N":  0,
	"NE": 45,
	"E":  90,
	"SE": 135,
	"S":  180,
	"SW": 225,
	"W":  270,
	"NW": 315,
}

var headingAliases = map[string]string{
	"NORTH":     "N",
	"NORTHEAST": "NE",
	"EAST":      "E",
	"SOUTHEAST": "SE",
	"SOUTH":     "S",
	"SOUTHWEST": "SW",
	"WEST":      "W",
	"NORTHWEST": "NW",
}

// compass order used by HeadingForAngle; index*45 is the heading angle.
var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// ResolveWindAngle converts a compass heading to degrees (N=0, clockwise).
// Matching is case-insensitive and accepts spelled-out names such as
// "south-west". An unknown heading is an ErrUnresolvedHeading, never 0.
func ResolveWindAngle(heading string) (float64, error) {
	key := strings.ToUpper(strings.TrimSpace(heading))
	key = strings.NewReplacer("-", "", " ", "", "_", "").Replace(key)
	if alias, ok := headingAliases[key]; ok {
		key = alias
	}
	deg, ok := headingDegrees[key]
	if !ok {
		return 0, &Error{Kind: KindUnresolvedHeading, Field: "windHeading"}
	}
	return deg, nil
}

// HeadingForAngle returns the nearest 8-point heading for deg.
func HeadingForAngle(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}
