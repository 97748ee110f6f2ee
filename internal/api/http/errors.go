package httpapi

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

// apiError carries a status, a machine-readable kind and a user message.
type apiError struct {
	Code    int
	Kind    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func newAPIError(code int, kind, message string) *apiError {
	return &apiError{Code: code, Kind: kind, Message: message}
}

// ErrorHandler is the centralized Fiber error handler. Every error becomes
// {"error": true, "kind": ..., "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := "internal"
	message := err.Error()

	var ae *apiError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		code, kind, message = ae.Code, ae.Kind, ae.Message
	case errors.As(err, &fe):
		code = fe.Code
		kind = kindForStatus(code)
	default:
		log.Printf("ERROR: unhandled error: %v", err)
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"kind":    kind,
		"message": message,
	})
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusServiceUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// recommendError renders a core failure as a user-facing message.
func recommendError(err error, policy club.Policy) error {
	var ce *club.Error
	if !errors.As(err, &ce) {
		return err
	}

	switch ce.Kind {
	case club.KindUnresolvedHeading:
		return newAPIError(fiber.StatusBadRequest, ce.Kind.String(),
			"Unknown wind direction. Use one of N, NE, E, SE, S, SW, W or NW.")
	case club.KindEmptyTable:
		return newAPIError(fiber.StatusInternalServerError, ce.Kind.String(), "No clubs are configured.")
	}

	var msg string
	switch ce.Field {
	case "distance":
		msg = "Distance is required and must be a finite number of yards, zero or more."
	case "windSpeed":
		msg = "Wind speed must be zero or more."
	case "windAngle":
		msg = "Wind angle must be a number of degrees."
	case "slopeDegrees":
		if policy.SlopeModel == club.SlopeTangent && policy.SlopeBoundDegrees >= 90 {
			msg = "Slope must be strictly between -90 and 90 degrees."
		} else {
			msg = fmt.Sprintf("Slope must be between -%g and %g degrees.", policy.SlopeBoundDegrees, policy.SlopeBoundDegrees)
		}
	default:
		msg = genericInputMessage
	}
	return &apiError{Code: fiber.StatusBadRequest, Kind: ce.Kind.String(), Message: msg}
}

const genericInputMessage = "Invalid input values. Please check your inputs."

// requestError renders a request struct validation failure. Only the first
// failing field is reported.
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newAPIError(fiber.StatusBadRequest, "invalid_input", genericInputMessage)
	}

	msg := genericInputMessage
	switch verrs[0].Field() {
	case "Lie":
		msg = "Lie must be one of fairway, rough or sand."
	case "City", "Country":
		msg = "Course needs both a city and a country."
	}
	return newAPIError(fiber.StatusBadRequest, "invalid_input", msg)
}
