package handler

import (
	"fmt"

	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StocktakeHandler struct {
	service service.StocktakeService
}

func NewStocktakeHandler(s service.StocktakeService) *StocktakeHandler {
	return &StocktakeHandler{service: s}
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateSession starts a new stocktake for the given operator.
func (h *StocktakeHandler) CreateSession(c *fiber.Ctx) error {
	var req service.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	session, err := h.service.CreateSession(&req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stocktake session created", "data": session.ToResponse()})
}

// ListSessions returns every live session, oldest first.
func (h *StocktakeHandler) ListSessions(c *fiber.Ctx) error {
	sessions := h.service.ListSessions()
	out := make([]interface{}, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ToResponse())
	}
	return c.JSON(out)
}

// GetSession returns one session with its verification ledger.
func (h *StocktakeHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.service.GetSession(id)
	if err != nil {
		return errorJSON(c, err)
	}

	records := session.Records()
	out := make([]interface{}, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToResponse(false))
	}
	return c.JSON(fiber.Map{
		"session": session.ToResponse(),
		"records": out,
	})
}

// Verify records a physical count for one location.
func (h *StocktakeHandler) Verify(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var req service.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	record, err := h.service.Verify(id, &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Location verified", "data": record.ToResponse(false)})
}

// GetProgress reports coverage relative to the filtered selection.
func (h *StocktakeHandler) GetProgress(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	progress, err := h.service.Progress(id, criteria)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(progress)
}

// GetDiscrepancies returns the mismatch report for a session.
func (h *StocktakeHandler) GetDiscrepancies(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	report, err := h.service.Discrepancies(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(report)
}

// ExportCSV streams the verification ledger as a CSV download.
func (h *StocktakeHandler) ExportCSV(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	rows, err := h.service.ExportRows(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return sendCSV(c, fmt.Sprintf("stocktake_%s.csv", id), rows)
}

// Reset wipes the session ledger.
func (h *StocktakeHandler) Reset(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if err := h.service.Reset(id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session reset"})
}
