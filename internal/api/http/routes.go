package httpapi

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/explicasurf/surf-forecast-api/internal/forecast"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *forecast.Service) {
	api := app.Group("/api")

	api.Get("/explain", func(c *fiber.Ctx) error {
		q, err := parseExplainQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "level inválido. Use: "+acceptedLevels())
		}

		// A valid level always answers 200; degraded sources show up as
		// nulls in the payload, not as errors.
		return c.JSON(service.Explain(c.Context(), q.level()))
	})

	api.Get("/tide", func(c *fiber.Ctx) error {
		raw, err := service.Tide(c.Context())
		if err != nil {
			log.Printf("tide fetch failed: %v", err)
		}
		if len(raw) == 0 {
			return c.JSON(fiber.Map{"error": "Sem dados de maré"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(raw)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "surf-forecast-api",
		})
	})
}

// explainQuery holds query parameters for the explanation endpoint.
type explainQuery struct {
	Level string `validate:"required,oneof=beginner intermediate advanced"`
}

func (q explainQuery) level() forecast.Level {
	return forecast.Level(q.Level)
}

func acceptedLevels() string {
	levels := forecast.Levels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}
	return strings.Join(names, "|")
}

func parseExplainQuery(c *fiber.Ctx) (explainQuery, error) {
	var q explainQuery

	q.Level = strings.ToLower(c.Query("level"))
	if q.Level == "" {
		q.Level = string(forecast.LevelBeginner)
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
