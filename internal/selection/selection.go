// Package selection filters and orders location collections ahead of
// analytics and stocktaking. Selection is a pure function of its inputs:
// identical catalog and criteria always yield an identically ordered result.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"go-warehouse-ws/internal/model"
)

// Error definitions
var (
	ErrInvalidFocus   = errors.New("focus mode overstock_only requires a positive threshold")
	ErrUnknownFocus   = errors.New("unknown focus mode")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// FocusMode is the stocktaking-specific pre-filter prioritizing certain
// locations for verification.
type FocusMode string

const (
	FocusAll           FocusMode = "all"
	FocusOverstockOnly FocusMode = "overstock_only"
	FocusEmptyOnly     FocusMode = "empty_only"
)

// SortKey is a total order over locations; location_id is always the final
// tie-break so results are deterministic.
type SortKey string

const (
	SortQuantityDesc SortKey = "quantity_desc"
	SortQuantityAsc  SortKey = "quantity_asc"
	SortZone         SortKey = "zone"
	SortLocationID   SortKey = "location_id"
)

// Criteria are AND-composed filter options. Zero values leave a filter off:
// empty tag sets include everything, a nil MaxQuantity is unbounded and an
// empty FocusMode behaves as FocusAll.
type Criteria struct {
	Zones          []model.Zone        `json:"zones,omitempty"`
	ProductTypes   []model.ProductType `json:"product_types,omitempty"`
	MinQuantity    int                 `json:"min_quantity,omitempty"`
	MaxQuantity    *int                `json:"max_quantity,omitempty"`
	FocusMode      FocusMode           `json:"focus_mode,omitempty"`
	FocusThreshold int                 `json:"focus_threshold,omitempty"`
	SortKey        SortKey             `json:"sort_key,omitempty"`
}

func (c Criteria) zoneIncluded(z model.Zone) bool {
	if len(c.Zones) == 0 {
		return true
	}
	for _, zone := range c.Zones {
		if z == zone {
			return true
		}
	}
	return false
}

func (c Criteria) productTypeIncluded(pt model.ProductType) bool {
	if len(c.ProductTypes) == 0 {
		return true
	}
	for _, t := range c.ProductTypes {
		if pt == t {
			return true
		}
	}
	return false
}

func (c Criteria) validate() error {
	switch c.FocusMode {
	case "", FocusAll, FocusEmptyOnly:
	case FocusOverstockOnly:
		if c.FocusThreshold <= 0 {
			return ErrInvalidFocus
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFocus, c.FocusMode)
	}

	switch c.SortKey {
	case "", SortQuantityDesc, SortQuantityAsc, SortZone, SortLocationID:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, c.SortKey)
	}
	return nil
}

func (c Criteria) matches(loc *model.Location) bool {
	if !c.zoneIncluded(loc.Zone) || !c.productTypeIncluded(loc.ProductType) {
		return false
	}
	if loc.Quantity < c.MinQuantity {
		return false
	}
	if c.MaxQuantity != nil && loc.Quantity > *c.MaxQuantity {
		return false
	}
	switch c.FocusMode {
	case FocusOverstockOnly:
		return loc.Quantity > c.FocusThreshold
	case FocusEmptyOnly:
		return loc.Quantity == 0
	}
	return true
}

// Apply returns a read-only projection of the input: locations matching the
// criteria, in catalog order unless a sort key reorders them. The input slice
// is never modified.
func Apply(locations []model.Location, criteria Criteria) ([]model.Location, error) {
	if err := criteria.validate(); err != nil {
		return nil, err
	}

	out := make([]model.Location, 0, len(locations))
	for i := range locations {
		if criteria.matches(&locations[i]) {
			out = append(out, locations[i])
		}
	}

	switch criteria.SortKey {
	case SortQuantityDesc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity > out[j].Quantity
			}
			return out[i].LocationID < out[j].LocationID
		})
	case SortQuantityAsc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity < out[j].Quantity
			}
			return out[i].LocationID < out[j].LocationID
		})
	case SortZone:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Zone != out[j].Zone {
				return out[i].Zone < out[j].Zone
			}
			return out[i].LocationID < out[j].LocationID
		})
	case SortLocationID:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LocationID < out[j].LocationID
		})
	}

	return out, nil
}
