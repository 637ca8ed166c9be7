package handler

import (
	"strconv"

	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// GetSummary returns headline occupancy metrics for the filtered catalog.
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.Summary(criteria)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(summary)
}

// GetGroups aggregates along one dimension (zone, product_type, storage_type).
func (h *AnalyticsHandler) GetGroups(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	groups, err := h.service.Groups(c.Params("dimension"), criteria)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"dimension": c.Params("dimension"),
		"groups":    groups,
	})
}

// GetIssues classifies under/overstock conditions against thresholds from
// query params, falling back to configured defaults.
func (h *AnalyticsHandler) GetIssues(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var override service.ThresholdOverride
	if v := c.Query("understock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid understock threshold"})
		}
		override.Understock = &n
	}
	if v := c.Query("overstock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid overstock threshold"})
		}
		override.Overstock = &n
	}

	report, err := h.service.Issues(criteria, override)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(report)
}

// GetBalance reports per-group dispersion statistics along one dimension.
func (h *AnalyticsHandler) GetBalance(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.service.Balance(c.Params("dimension"), criteria)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"dimension": c.Params("dimension"),
		"stats":     stats,
	})
}
