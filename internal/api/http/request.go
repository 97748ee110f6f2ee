package httpapi

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/golf-club-recommender/internal/club"
)

// recommendRequest is the wire form of a shot. Lie is a form-friendly
// alternative to the Rough/Sand flags. When WindSpeed is omitted and Course
// is set, the latest stored wind for the course is used.
type recommendRequest struct {
	Distance     *float64       `json:"distance"`
	WindSpeed    *float64       `json:"windSpeed"`
	WindHeading  string         `json:"windHeading"`
	WindAngle    *float64       `json:"windAngle"`
	SlopeDegrees float64        `json:"slopeDegrees"`
	Rough        bool           `json:"rough"`
	Sand         bool           `json:"sand"`
	Lie          string         `json:"lie" validate:"omitempty,oneof=fairway rough sand"`
	FlagColor    string         `json:"flagColor"`
	Course       *locationQuery `json:"course"`
}

func (r recommendRequest) shotContext() club.ShotContext {
	sc := club.ShotContext{
		Distance:     r.Distance,
		WindHeading:  r.WindHeading,
		WindAngle:    r.WindAngle,
		SlopeDegrees: r.SlopeDegrees,
		Rough:        r.Rough || r.Lie == "rough",
		Sand:         r.Sand || r.Lie == "sand",
		FlagColor:    r.FlagColor,
	}
	if r.WindSpeed != nil {
		sc.WindSpeed = *r.WindSpeed
	}
	return sc
}

// parseRecommendQuery reads the same fields from query parameters, as a
// plain HTML form would submit them.
func parseRecommendQuery(c *fiber.Ctx) (recommendRequest, error) {
	var (
		req recommendRequest
		err error
	)

	if req.Distance, err = queryFloat(c, "distance"); err != nil {
		return req, err
	}
	if req.WindSpeed, err = queryFloat(c, "windSpeed"); err != nil {
		return req, err
	}
	if req.WindAngle, err = queryFloat(c, "windAngle"); err != nil {
		return req, err
	}
	slope, err := queryFloat(c, "slopeDegrees")
	if err != nil {
		return req, err
	}
	if slope != nil {
		req.SlopeDegrees = *slope
	}
	if req.Rough, err = queryBool(c, "rough"); err != nil {
		return req, err
	}
	if req.Sand, err = queryBool(c, "sand"); err != nil {
		return req, err
	}

	req.WindHeading = c.Query("windHeading")
	req.Lie = strings.ToLower(c.Query("lie"))
	req.FlagColor = c.Query("flagColor")

	if city, country := c.Query("city"), c.Query("country"); city != "" || country != "" {
		req.Course = &locationQuery{City: city, Country: country}
	}
	return req, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, newAPIError(fiber.StatusBadRequest, "invalid_input", key+" must be a number")
	}
	return &f, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	if strings.EqualFold(raw, "on") {
		return true, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, newAPIError(fiber.StatusBadRequest, "invalid_input", key+" must be true or false")
	}
	return b, nil
}
