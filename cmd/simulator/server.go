package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// wireLayout matches the minute-precision timestamps of the real API
const wireLayout = "2006-01-02T15:04Z"

type generationResponse struct {
	Data []Slot `json:"data"`
}

// NewApp serves GET /generation/{from}/{to}
func NewApp(generator *Generator, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "carbon-intensity-simulator",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/generation/:from/:to", func(c *fiber.Ctx) error {
		from, err := parseWireTime(c.Params("from"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from: " + err.Error()})
		}
		to, err := parseWireTime(c.Params("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to: " + err.Error()})
		}
		if !to.After(from) || to.Sub(from) > MaxRange {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "range must be positive and at most 14 days"})
		}

		slots := generator.Range(from, to)
		log.Debug("Served generation range",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Int("slots", len(slots)),
		)
		return c.JSON(generationResponse{Data: slots})
	})

	return app
}

func parseWireTime(value string) (time.Time, error) {
	t, err := time.Parse(wireLayout, value)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
