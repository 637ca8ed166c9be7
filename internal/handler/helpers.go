package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/selection"
	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseCriteria builds selection criteria from the shared filter query params
// (?zones=A,B&product_types=Jeans&min_qty=1&max_qty=10&focus=empty_only&sort=zone).
func parseCriteria(c *fiber.Ctx) (selection.Criteria, error) {
	criteria := selection.Criteria{
		FocusMode: selection.FocusMode(c.Query("focus")),
		SortKey:   selection.SortKey(c.Query("sort")),
	}

	for _, z := range splitParam(c.Query("zones")) {
		criteria.Zones = append(criteria.Zones, model.Zone(z))
	}
	for _, pt := range splitParam(c.Query("product_types")) {
		criteria.ProductTypes = append(criteria.ProductTypes, model.ProductType(pt))
	}

	if v := c.Query("min_qty"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("invalid min_qty %q", v)
		}
		criteria.MinQuantity = n
	}
	if v := c.Query("max_qty"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("invalid max_qty %q", v)
		}
		criteria.MaxQuantity = &n
	}
	if v := c.Query("focus_threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return criteria, fmt.Errorf("invalid focus_threshold %q", v)
		}
		criteria.FocusThreshold = n
	}

	return criteria, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// errStatus maps domain errors to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNoCatalog):
		return fiber.StatusConflict
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, service.ErrUnknownLocation):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// sendCSV serializes rows and streams them as a download.
func sendCSV(c *fiber.Ctx, filename string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to encode csv"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
