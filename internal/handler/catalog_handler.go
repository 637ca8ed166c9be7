package handler

import (
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetCatalog returns the current catalog filtered by the query criteria.
func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	catalog, locations, err := h.service.View(criteria)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"version":      catalog.Version,
		"generated_at": catalog.GeneratedAt,
		"total":        catalog.Size(),
		"locations":    locations,
	})
}

// IngestCatalog accepts an externally generated catalog and swaps it in.
func (h *CatalogHandler) IngestCatalog(c *fiber.Ctx) error {
	var body struct {
		Locations []model.Location `json:"locations"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	catalog, err := h.service.Ingest(body.Locations)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":   "Catalog ingested",
		"version":   catalog.Version,
		"locations": catalog.Size(),
	})
}

// Regenerate replaces the catalog with a fresh synthetic layout.
func (h *CatalogHandler) Regenerate(c *fiber.Ctx) error {
	catalog, err := h.service.Regenerate()
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":   "Catalog regenerated",
		"version":   catalog.Version,
		"locations": catalog.Size(),
	})
}

// ExportCSV streams the filtered catalog as a CSV download.
func (h *CatalogHandler) ExportCSV(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	rows, err := h.service.ExportRows(criteria)
	if err != nil {
		return errorJSON(c, err)
	}

	return sendCSV(c, "warehouse_data_export.csv", rows)
}
