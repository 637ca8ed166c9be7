// Package layout generates a realistic clothing-warehouse catalog. It plays
// the external-collaborator role: everything it produces conforms to the
// catalog schema and passes ingestion validation unchanged.
package layout

import (
	"fmt"
	"math/rand"
	"time"

	"go-warehouse-ws/internal/model"
)

type zoneConfig struct {
	Product model.ProductType
	Rows    int
	Cols    int
	Depth   int
	BaseX   float64
	BaseY   float64
	// Block zones use a flat numeric location series instead of the
	// aisle row-column-depth scheme.
	Block    bool
	DeepNote bool
}

// Zone layout of the floor plan, keyed by zone tag. Letters I and O are
// skipped to avoid confusion with 1 and 0 on printed labels.
var zoneConfigs = map[model.Zone]zoneConfig{
	"A": {Product: "T-shirts", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 70},
	"B": {Product: "Jeans", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 60},
	"C": {Product: "Dresses", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 50},
	"D": {Product: "Sweaters", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 40},
	"E": {Product: "Jackets", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 30},
	"F": {Product: "Shoes", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 20},
	"G": {Product: "Accessories", Rows: 2, Cols: 20, Depth: 3, BaseX: 10, BaseY: 10},
	"H": {Product: "Socks", Rows: 1, Cols: 20, Depth: 3, BaseX: 10, BaseY: 5},
	"J": {Product: "Underwear", Rows: 1, Cols: 20, Depth: 3, BaseX: 60, BaseY: 5, DeepNote: true},
	"K": {Product: "Premium Apparel", Rows: 6, Cols: 12, Depth: 2, BaseX: 60, BaseY: 20, Block: true, DeepNote: true},
	"L": {Product: "Seasonal Items", Rows: 6, Cols: 10, Depth: 3, BaseX: 60, BaseY: 50, Block: true, DeepNote: true},
	"M": {Product: "Designer Brands", Rows: 6, Cols: 8, Depth: 2, BaseX: 80, BaseY: 40, Block: true},
	"N": {Product: "New Arrivals", Rows: 4, Cols: 6, Depth: 1, BaseX: 90, BaseY: 70, Block: true},
	"P": {Product: "Sale Items", Rows: 6, Cols: 5, Depth: 1, BaseX: 70, BaseY: 60, Block: true},
	"Q": {Product: "Kids Clothing", Rows: 6, Cols: 5, Depth: 1, BaseX: 80, BaseY: 60, Block: true},
	"R": {Product: "Plus Size Collection", Rows: 12, Cols: 6, Depth: 1, BaseX: 90, BaseY: 40, Block: true},
	"S": {Product: "Athletic Wear", Rows: 7, Cols: 10, Depth: 1, BaseX: 40, BaseY: 80, Block: true},
	"T": {Product: "Returns Processing", Rows: 5, Cols: 3, Depth: 1, BaseX: 5, BaseY: 40},
	"U": {Product: "Outbound Shipping", Rows: 12, Cols: 6, Depth: 2, BaseX: 90, BaseY: 15, Block: true, DeepNote: true},
}

var storageTypes = map[model.ProductType]model.StorageType{
	"T-shirts":             "Folded Shelves",
	"Jeans":                "Folded Shelves",
	"Dresses":              "Hanging Racks",
	"Sweaters":             "Folded Shelves",
	"Jackets":              "Hanging Racks",
	"Shoes":                "Shoe Racks",
	"Accessories":          "Small Item Bins",
	"Socks":                "Small Item Bins",
	"Underwear":            "Small Item Bins",
	"Premium Apparel":      "Secure Storage",
	"Seasonal Items":       "Bulk Storage",
	"Designer Brands":      "Secure Storage",
	"New Arrivals":         "Front-Facing Displays",
	"Sale Items":           "Sale Racks",
	"Kids Clothing":        "Age-Sorted Shelves",
	"Plus Size Collection": "Size-Sorted Racks",
	"Athletic Wear":        "Activity-Sorted Racks",
	"Returns Processing":   "Sorting Area",
	"Outbound Shipping":    "Packing Station",
	"Incoming Shipments":   "Receiving Dock",
}

// zoneOrder keeps generation deterministic; map iteration order is not.
var zoneOrder = []model.Zone{
	"A", "B", "C", "D", "E", "F", "G", "H", "J",
	"K", "L", "M", "N", "P", "Q", "R", "S", "T", "U",
}

var (
	apparelSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}
	shoeSizes    = []string{"6", "7", "8", "9", "10", "11", "12"}
	shoeStyles   = []string{"Running", "Casual", "Dress", "Sport"}
	colors       = []string{"Black", "White", "Blue", "Red", "Green", "Gray"}
)

// Config parametrizes generation. A zero Seed means a time-based seed.
type Config struct {
	Seed        int64
	FillRate    float64
	MaxQuantity int
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.FillRate <= 0 || c.FillRate > 1 {
		c.FillRate = 0.7
	}
	if c.MaxQuantity <= 0 {
		c.MaxQuantity = 20
	}
	return c
}

// Zones returns the closed zone vocabulary, docks included.
func Zones() []model.Zone {
	out := make([]model.Zone, 0, len(zoneOrder)+1)
	out = append(out, zoneOrder...)
	return append(out, "DOCK")
}

// StorageTypes returns the closed storage-type vocabulary.
func StorageTypes() []model.StorageType {
	seen := make(map[model.StorageType]bool)
	out := make([]model.StorageType, 0, len(storageTypes))
	for _, st := range storageTypes {
		if !seen[st] {
			seen[st] = true
			out = append(out, st)
		}
	}
	return out
}

// ProductTypes returns the closed product-type vocabulary.
func ProductTypes() []model.ProductType {
	out := make([]model.ProductType, 0, len(zoneOrder)+1)
	for _, z := range zoneOrder {
		out = append(out, zoneConfigs[z].Product)
	}
	return append(out, "Incoming Shipments")
}

// CatalogConfig returns the validation config matching generated output.
func CatalogConfig() model.CatalogConfig {
	return model.CatalogConfig{
		AllowedZones:        Zones(),
		AllowedStorageTypes: StorageTypes(),
		AllowedProductTypes: ProductTypes(),
	}
}

// Generate produces the full warehouse: every zone grid plus five receiving
// docks. Roughly FillRate of the slots get stock between 1 and MaxQuantity;
// the rest are stock-outs with the zone's product type still assigned.
func Generate(cfg Config) []model.Location {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	var locations []model.Location
	for _, zoneID := range zoneOrder {
		zc := zoneConfigs[zoneID]
		storageType := storageTypes[zc.Product]
		serial := 0

		for row := 1; row <= zc.Rows; row++ {
			for col := 1; col <= zc.Cols; col++ {
				for depth := 1; depth <= zc.Depth; depth++ {
					serial++

					var locID string
					if zc.Block {
						// Block zones run a numeric series: K-101, K-102, ...
						locID = fmt.Sprintf("%s-%d", zoneID, 100+serial)
					} else {
						locID = fmt.Sprintf("%s-%02d-%02d-%d", zoneID, row, col, depth)
					}

					quantity := 0
					productID := ""
					if rng.Float64() < cfg.FillRate {
						quantity = 1 + rng.Intn(cfg.MaxQuantity)
						productID = randomProductID(rng, zc.Product)
					}

					depthInfo := ""
					if zc.DeepNote {
						depthInfo = fmt.Sprintf("%d-Deep", zc.Depth)
					}

					locations = append(locations, model.Location{
						LocationID:  locID,
						Zone:        zoneID,
						StorageType: storageType,
						ProductType: zc.Product,
						ProductID:   productID,
						Quantity:    quantity,
						Capacity:    cfg.MaxQuantity,
						Position: model.Position{
							X: zc.BaseX + float64(col)*1.5,
							Y: zc.BaseY + float64(row)*2,
							Z: float64(depth) * 1.5,
						},
						DepthInfo: depthInfo,
					})
				}
			}
		}
	}

	// Receiving docks hold no stock; they stage incoming shipments.
	for i := 1; i <= 5; i++ {
		locations = append(locations, model.Location{
			LocationID:  fmt.Sprintf("DOCK-%d", i),
			Zone:        "DOCK",
			StorageType: "Receiving Dock",
			ProductType: "Incoming Shipments",
			Quantity:    0,
			Position: model.Position{
				X: 2,
				Y: 30 + float64(i)*5,
				Z: 0,
			},
		})
	}

	return locations
}

func randomProductID(rng *rand.Rand, product model.ProductType) string {
	if product == "Shoes" {
		style := shoeStyles[rng.Intn(len(shoeStyles))]
		size := shoeSizes[rng.Intn(len(shoeSizes))]
		return fmt.Sprintf("%s-%s", style, size)
	}
	color := colors[rng.Intn(len(colors))]
	size := apparelSizes[rng.Intn(len(apparelSizes))]
	return fmt.Sprintf("%s-%s-%s", string(product)[:3], color[:3], size)
}
