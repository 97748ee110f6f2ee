package httpapi

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/golf-club-recommender/internal/club"
	"github.com/i474232898/golf-club-recommender/internal/observability"
	"github.com/i474232898/golf-club-recommender/internal/shotlog"
	"github.com/i474232898/golf-club-recommender/internal/weather"
)

var validate = validator.New()

// ShotLogger records each recommendation request.
type ShotLogger interface {
	Append(r shotlog.Record) error
}

// Deps are the collaborators behind the routes. Wind, ShotLog and Metrics
// may be nil.
type Deps struct {
	Selector *club.Selector
	Wind     *weather.Service
	ShotLog  ShotLogger
	Metrics  *observability.Metrics
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/clubs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"clubs":  d.Selector.Table().Clubs(),
			"policy": d.Selector.Policy(),
		})
	})

	v1.Post("/recommendations", func(c *fiber.Ctx) error {
		var req recommendRequest
		if err := c.BodyParser(&req); err != nil {
			return newAPIError(fiber.StatusBadRequest, "invalid_input", "request body must be JSON")
		}
		return d.recommend(c, req, "api")
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		req, err := parseRecommendQuery(c)
		if err != nil {
			return err
		}
		return d.recommend(c, req, "form")
	})

	v1.Get("/wind/current", func(c *fiber.Ctx) error {
		if d.Wind == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "wind lookups are not configured")
		}
		locReq, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := d.Wind.CurrentWind(c.UserContext(), locReq.toLocation())
		if err != nil {
			return windError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/wind/history", func(c *fiber.Ctx) error {
		if d.Wind == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "wind lookups are not configured")
		}
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := req.Location.toLocation()
		snapshots, err := d.Wind.GetRange(loc, req.From, req.To)
		if err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no wind history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch wind history")
		}

		return c.JSON(fiber.Map{
			"location":  loc,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})
}

// windUsed reports which wind went into the recommendation.
type windUsed struct {
	Speed   float64       `json:"speed"`
	Unit    club.WindUnit `json:"unit"`
	Angle   *float64      `json:"angle,omitempty"`
	Heading string        `json:"heading,omitempty"`
	Source  string        `json:"source"` // "request" or "course"
}

type recommendResponse struct {
	RequestID      string              `json:"requestId"`
	Recommendation club.Recommendation `json:"recommendation"`
	Wind           windUsed            `json:"wind"`
}

func (d Deps) recommend(c *fiber.Ctx, req recommendRequest, source string) error {
	if err := validate.Struct(req); err != nil {
		return requestError(err)
	}

	shot := req.shotContext()
	wind := windUsed{
		Speed:   shot.WindSpeed,
		Unit:    d.Selector.Policy().WindUnit,
		Angle:   shot.WindAngle,
		Heading: shot.WindHeading,
		Source:  "request",
	}

	if req.WindSpeed == nil && req.Course != nil {
		if d.Wind == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "wind lookups are not configured")
		}
		snap, err := d.Wind.CurrentWind(c.UserContext(), req.Course.toLocation())
		if err != nil {
			return windError(err)
		}
		shot.WindSpeed = speedInUnit(snap.SpeedMPH, d.Selector.Policy().WindUnit)
		angle := snap.DirectionDeg
		shot.WindAngle = &angle
		wind = windUsed{
			Speed:   shot.WindSpeed,
			Unit:    d.Selector.Policy().WindUnit,
			Angle:   &angle,
			Heading: snap.Heading,
			Source:  "course",
		}
	}

	rec, err := d.Selector.Recommend(shot)
	requestID := uuid.NewString()
	d.observe(source, requestID, shot, rec, err)
	if err != nil {
		return recommendError(err, d.Selector.Policy())
	}

	return c.JSON(recommendResponse{
		RequestID:      requestID,
		Recommendation: rec,
		Wind:           wind,
	})
}

func (d Deps) observe(source, requestID string, shot club.ShotContext, rec club.Recommendation, err error) {
	if d.Metrics != nil {
		d.Metrics.ObserveRecommendation(rec, err)
	}
	if d.ShotLog == nil {
		return
	}

	record := shotlog.Record{
		Source:    source,
		RequestID: requestID,
		Shot:      shot,
		Outcome:   "ok",
	}
	var ce *club.Error
	switch {
	case err == nil:
		adjusted := rec.AdjustedDistance
		record.Club = rec.Club.ID
		record.Adjusted = &adjusted
	case errors.As(err, &ce):
		record.Outcome = ce.Kind.String()
	default:
		record.Outcome = "error"
	}

	if logErr := d.ShotLog.Append(record); logErr != nil {
		log.Printf("ERROR: shot log append failed for %s: %v", requestID, logErr)
		if d.Metrics != nil {
			d.Metrics.ShotLogErrors.Inc()
		}
	}
}

func speedInUnit(mph float64, unit club.WindUnit) float64 {
	if unit == club.WindKMH {
		return mph / club.KMHToMPH
	}
	return mph
}

func windError(err error) error {
	if errors.Is(err, weather.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no wind data for requested location")
	}
	log.Printf("ERROR: wind lookup failed: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch wind data")
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
