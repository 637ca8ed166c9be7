package model

// Zone is a warehouse subdivision tag (e.g. "A".."U", "DOCK").
type Zone string

// StorageType describes the physical storage fixture at a location.
type StorageType string

// ProductType identifies the merchandise category stored at a location.
// The empty string is the sentinel for "never assigned".
type ProductType string

const ProductTypeEmpty ProductType = ""

// Position is the coordinate triple used by the rendering collaborator.
// The core treats it as opaque metadata.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Location represents one physical storage slot in the warehouse.
type Location struct {
	LocationID  string      `json:"location_id" validate:"required"`
	Zone        Zone        `json:"zone" validate:"required"`
	StorageType StorageType `json:"storage_type"`
	ProductType ProductType `json:"product_type"`
	ProductID   string      `json:"product_id,omitempty"`
	Quantity    int         `json:"quantity" validate:"min=0"`
	Capacity    int         `json:"capacity,omitempty" validate:"min=0"`
	Position    Position    `json:"position"`
	DepthInfo   string      `json:"depth_info,omitempty"`
}

// IsEmpty reports whether the location currently holds no stock.
// A location with an assigned product and quantity 0 is a stock-out,
// which still counts as empty for occupancy metrics.
func (l *Location) IsEmpty() bool {
	return l.Quantity == 0
}

// IsUnassigned reports whether the location has never been given a product.
func (l *Location) IsUnassigned() bool {
	return l.ProductType == ProductTypeEmpty
}
