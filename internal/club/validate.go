package club

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShotContext is the input for a single recommendation.
type ShotContext struct {
	// Distance is the target carry in yards. nil means the caller never set it.
	Distance *float64 `json:"distance" validate:"required,gte=0"`

	// WindSpeed is in the policy's WindUnit.
	WindSpeed float64 `json:"windSpeed" validate:"gte=0"`

	// WindHeading is a compass point such as "NE". WindAngle, when set,
	// is an already resolved direction in degrees and wins over WindHeading.
	WindHeading string   `json:"windHeading,omitempty"`
	WindAngle   *float64 `json:"windAngle,omitempty"`

	SlopeDegrees float64 `json:"slopeDegrees"`
	Rough        bool    `json:"rough"`
	Sand         bool    `json:"sand"`
	FlagColor    string  `json:"flagColor,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks sc against the policy. It returns an ErrInvalidInput
// naming the first offending field, or nil.
func (p Policy) Validate(sc ShotContext) error {
	if err := validate.Struct(sc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return invalid(verrs[0].Field())
		}
		return invalid("")
	}

	if !finite(*sc.Distance) {
		return invalid("distance")
	}
	if !finite(sc.WindSpeed) {
		return invalid("windSpeed")
	}
	if sc.WindAngle != nil && !finite(*sc.WindAngle) {
		return invalid("windAngle")
	}

	bound := strconv.FormatFloat(p.SlopeBoundDegrees, 'f', -1, 64)
	if err := validate.Var(sc.SlopeDegrees, "gte=-"+bound+",lte="+bound); err != nil {
		return invalid("slopeDegrees")
	}
	// tan diverges at ±90.
	if p.SlopeModel == SlopeTangent && math.Abs(sc.SlopeDegrees) >= 90 {
		return invalid("slopeDegrees")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
