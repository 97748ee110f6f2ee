// Package club recommends a golf club for a shot. It adjusts the target
// distance for wind, slope and lie, then picks the club whose reference
// carry is nearest. Everything here is pure: tables and policies are passed
// in, nothing is cached, and nothing blocks.
package club

import "fmt"

// maxAlternatives caps Recommendation.Alternatives.
const maxAlternatives = 2

// Recommendation is the result of Selector.Recommend.
type Recommendation struct {
	Club             Club    `json:"club"`
	AdjustedDistance float64 `json:"adjustedDistance"`
	Difference       float64 `json:"difference"`
	WindAngle        float64 `json:"windAngle"`
	FlagNote         string  `json:"flagNote,omitempty"`
	LieNote          string  `json:"lieNote,omitempty"`
	ClubHint         string  `json:"clubHint,omitempty"`
	Alternatives     []Match `json:"alternatives,omitempty"`
}

// Selector binds a policy to a club table.
type Selector struct {
	policy Policy
	table  Table
}

// NewSelector returns a Selector after checking the policy.
func NewSelector(policy Policy, table Table) (*Selector, error) {
	if err := policy.Check(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return &Selector{policy: policy, table: table}, nil
}

// Policy returns the selector's policy.
func (s *Selector) Policy() Policy { return s.policy }

// Table returns the selector's club table.
func (s *Selector) Table() Table { return s.table }

// Recommend validates sc, adjusts its distance and matches a club.
// Errors are *Error values of kind InvalidInput, UnresolvedHeading or
// EmptyTable; on error the returned Recommendation is zero.
func (s *Selector) Recommend(sc ShotContext) (Recommendation, error) {
	if err := s.policy.Validate(sc); err != nil {
		return Recommendation{}, err
	}

	angle, err := windAngle(sc)
	if err != nil {
		return Recommendation{}, err
	}

	adjusted := s.policy.AdjustDistance(*sc.Distance, sc.WindSpeed, angle, sc.SlopeDegrees, sc.Rough, sc.Sand)
	if !finite(adjusted) {
		// Finite but extreme inputs can still overflow.
		return Recommendation{}, invalid("distance")
	}

	ranked, err := Rank(adjusted, s.table)
	if err != nil {
		return Recommendation{}, err
	}
	best := ranked[0]

	alts := ranked[1:]
	if len(alts) > maxAlternatives {
		alts = alts[:maxAlternatives]
	}

	return Recommendation{
		Club:             best.Club,
		AdjustedDistance: adjusted,
		Difference:       best.Difference,
		WindAngle:        angle,
		FlagNote:         FlagNote(sc.FlagColor),
		LieNote:          s.lieNote(sc),
		ClubHint:         ClubHint(best.Club),
		Alternatives:     append([]Match(nil), alts...),
	}, nil
}

func (s *Selector) lieNote(sc ShotContext) string {
	if !s.policy.ApplyTerrain {
		return ""
	}
	return LieNote(sc.Rough, sc.Sand)
}

// windAngle picks the resolved angle if present, otherwise the heading.
// Calm air needs no heading.
func windAngle(sc ShotContext) (float64, error) {
	if sc.WindAngle != nil {
		return *sc.WindAngle, nil
	}
	if sc.WindHeading == "" && sc.WindSpeed == 0 {
		return 0, nil
	}
	return ResolveWindAngle(sc.WindHeading)
}
