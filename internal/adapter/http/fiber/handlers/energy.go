package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/ports"
)

// WindowLimits bounds the ?hours parameter of the optimal window endpoint
type WindowLimits struct {
	MinHours int
	MaxHours int
}

// DefaultWindowLimits allows windows of one to six hours
func DefaultWindowLimits() WindowLimits {
	return WindowLimits{MinHours: 1, MaxHours: 6}
}

// Clamp forces hours into [MinHours, MaxHours]
func (l WindowLimits) Clamp(hours int) int {
	if hours < l.MinHours {
		return l.MinHours
	}
	if hours > l.MaxHours {
		return l.MaxHours
	}
	return hours
}

type EnergyHandler struct {
	service ports.EnergyService
	limits  WindowLimits
	log     *zap.Logger
}

func NewEnergyHandler(service ports.EnergyService, limits WindowLimits, log *zap.Logger) *EnergyHandler {
	if limits.MinHours < 1 || limits.MaxHours < limits.MinHours {
		limits = DefaultWindowLimits()
	}
	return &EnergyHandler{
		service: service,
		limits:  limits,
		log:     log,
	}
}

// RegisterRoutes mounts the energy endpoints under router
func (h *EnergyHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/mix", h.Mix)
	router.Get("/optimal", h.Optimal)
}

// Mix returns the daily generation mix for the forecast horizon
func (h *EnergyHandler) Mix(c *fiber.Ctx) error {
	reports, err := h.service.GetThreeDayForecast(c.UserContext())
	if err != nil {
		return err
	}
	if reports == nil {
		reports = []domain.DailyReport{}
	}
	return c.JSON(reports)
}

// Optimal returns the cleanest charging window of ?hours length, or null
func (h *EnergyHandler) Optimal(c *fiber.Ctx) error {
	raw := c.Query("hours")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'hours' is required")
	}
	hours, err := strconv.Atoi(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'hours' must be an integer")
	}

	clamped := h.limits.Clamp(hours)
	if clamped != hours {
		h.log.Debug("Clamped window length",
			zap.Int("requested", hours),
			zap.Int("hours", clamped),
		)
	}

	window, err := h.service.FindOptimalWindow(c.UserContext(), clamped)
	if err != nil {
		return err
	}
	// A nil window encodes as JSON null
	return c.JSON(window)
}
