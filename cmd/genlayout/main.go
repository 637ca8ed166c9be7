package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"go-warehouse-ws/internal/layout"
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/pkg/validator"

	"github.com/joho/godotenv"
)

// Generated IDs must follow the warehouse label grammar. Ingestion only
// requires unique non-empty IDs, so this is checked here, not in the API.
type labeledID struct {
	LocationID string `validate:"required,loc_id"`
}

// genlayout writes a schema-valid warehouse catalog to a JSON file, in the
// shape the API's POST /api/v1/catalog endpoint accepts.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	var (
		out      = flag.String("out", "warehouse_data.json", "output file path")
		seed     = flag.Int64("seed", 0, "generator seed (0 = time-based)")
		fillRate = flag.Float64("fill", 0.7, "fraction of slots holding stock")
		maxQty   = flag.Int("max-qty", 20, "maximum quantity per slot")
	)
	flag.Parse()

	locations := layout.Generate(layout.Config{
		Seed:        *seed,
		FillRate:    *fillRate,
		MaxQuantity: *maxQty,
	})

	// Run the generated layout through catalog validation so this tool can
	// never hand the API a malformed file.
	if _, err := model.NewCatalog(locations, layout.CatalogConfig()); err != nil {
		log.Fatalf("generated layout failed validation: %v", err)
	}
	for i := range locations {
		if errs := validator.ValidateStruct(&labeledID{LocationID: locations[i].LocationID}); len(errs) > 0 {
			log.Fatalf("generated location id %q does not match the label grammar", locations[i].LocationID)
		}
	}

	payload := map[string]interface{}{"locations": locations}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal catalog: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}

	log.Printf("wrote %d locations to %s", len(locations), *out)
}
