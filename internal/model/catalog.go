package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Error definitions
var (
	ErrSchemaViolation = errors.New("catalog schema violation")
	ErrEmptyCatalog    = errors.New("catalog must contain at least one location")
)

// CatalogConfig carries the closed category sets a catalog is validated
// against. Empty sets disable validation for that category, so callers can
// extend the warehouse vocabulary without touching engine logic.
type CatalogConfig struct {
	AllowedZones        []Zone
	AllowedStorageTypes []StorageType
	AllowedProductTypes []ProductType
}

func (c CatalogConfig) zoneAllowed(z Zone) bool {
	if len(c.AllowedZones) == 0 {
		return true
	}
	for _, allowed := range c.AllowedZones {
		if z == allowed {
			return true
		}
	}
	return false
}

func (c CatalogConfig) storageTypeAllowed(st StorageType) bool {
	if len(c.AllowedStorageTypes) == 0 {
		return true
	}
	for _, allowed := range c.AllowedStorageTypes {
		if st == allowed {
			return true
		}
	}
	return false
}

func (c CatalogConfig) productTypeAllowed(pt ProductType) bool {
	if pt == ProductTypeEmpty || len(c.AllowedProductTypes) == 0 {
		return true
	}
	for _, allowed := range c.AllowedProductTypes {
		if pt == allowed {
			return true
		}
	}
	return false
}

// Catalog is one immutable snapshot of the warehouse. It is created wholesale
// by NewCatalog and replaced wholesale on regeneration, never patched.
type Catalog struct {
	Version     uuid.UUID  `json:"version"`
	GeneratedAt time.Time  `json:"generated_at"`
	Locations   []Location `json:"locations"`

	index map[string]int
}

// NewCatalog validates the supplied locations and builds the snapshot.
// Validation is all-or-nothing: any duplicate location_id, negative quantity,
// quantity above capacity, stock on an unassigned location, or tag outside the
// configured category sets rejects the whole catalog with ErrSchemaViolation.
func NewCatalog(locations []Location, cfg CatalogConfig) (*Catalog, error) {
	if len(locations) == 0 {
		return nil, ErrEmptyCatalog
	}

	index := make(map[string]int, len(locations))
	for i, loc := range locations {
		if loc.LocationID == "" {
			return nil, fmt.Errorf("%w: location at index %d has no location_id", ErrSchemaViolation, i)
		}
		if _, exists := index[loc.LocationID]; exists {
			return nil, fmt.Errorf("%w: duplicate location_id %q", ErrSchemaViolation, loc.LocationID)
		}
		if loc.Quantity < 0 {
			return nil, fmt.Errorf("%w: location %q has negative quantity %d", ErrSchemaViolation, loc.LocationID, loc.Quantity)
		}
		if loc.Capacity > 0 && loc.Quantity > loc.Capacity {
			return nil, fmt.Errorf("%w: location %q quantity %d exceeds capacity %d", ErrSchemaViolation, loc.LocationID, loc.Quantity, loc.Capacity)
		}
		if loc.IsUnassigned() && loc.Quantity != 0 {
			return nil, fmt.Errorf("%w: unassigned location %q has quantity %d", ErrSchemaViolation, loc.LocationID, loc.Quantity)
		}
		if !cfg.zoneAllowed(loc.Zone) {
			return nil, fmt.Errorf("%w: location %q has unknown zone %q", ErrSchemaViolation, loc.LocationID, loc.Zone)
		}
		if !cfg.storageTypeAllowed(loc.StorageType) {
			return nil, fmt.Errorf("%w: location %q has unknown storage_type %q", ErrSchemaViolation, loc.LocationID, loc.StorageType)
		}
		if !cfg.productTypeAllowed(loc.ProductType) {
			return nil, fmt.Errorf("%w: location %q has unknown product_type %q", ErrSchemaViolation, loc.LocationID, loc.ProductType)
		}
		index[loc.LocationID] = i
	}

	// Copy so later mutation of the caller's slice cannot reach the snapshot.
	snapshot := make([]Location, len(locations))
	copy(snapshot, locations)

	return &Catalog{
		Version:     uuid.New(),
		GeneratedAt: time.Now(),
		Locations:   snapshot,
		index:       index,
	}, nil
}

// FindByID returns the location with the given id, if present.
func (c *Catalog) FindByID(locationID string) (*Location, bool) {
	i, ok := c.index[locationID]
	if !ok {
		return nil, false
	}
	return &c.Locations[i], true
}

// Size returns the number of locations in the snapshot.
func (c *Catalog) Size() int {
	return len(c.Locations)
}
