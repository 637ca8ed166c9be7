package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-warehouse-ws/internal/layout"
	"go-warehouse-ws/internal/messaging"
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/selection"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/validator"

	"go.uber.org/zap"
)

type CatalogService interface {
	Ingest(locations []model.Location) (*model.Catalog, error)
	Regenerate() (*model.Catalog, error)
	Current() (*model.Catalog, error)
	View(criteria selection.Criteria) (*model.Catalog, []model.Location, error)
	Select(criteria selection.Criteria) ([]model.Location, error)
	ExportRows(criteria selection.Criteria) ([][]string, error)
}

type catalogService struct {
	repo       repository.CatalogRepository
	catalogCfg model.CatalogConfig
	layoutCfg  layout.Config
	wsHub      *ws.Hub
	producer   messaging.EventProducer
	log        *zap.Logger
}

func NewCatalogService(
	repo repository.CatalogRepository,
	catalogCfg model.CatalogConfig,
	layoutCfg layout.Config,
	hub *ws.Hub,
	producer messaging.EventProducer,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		repo:       repo,
		catalogCfg: catalogCfg,
		layoutCfg:  layoutCfg,
		wsHub:      hub,
		producer:   producer,
		log:        log,
	}
}

// Ingest validates an externally supplied catalog and swaps it in wholesale.
// A rejected catalog leaves the previous snapshot untouched.
func (s *catalogService) Ingest(locations []model.Location) (*model.Catalog, error) {
	// 1. Per-record struct validation
	for i := range locations {
		if errs := validator.ValidateStruct(&locations[i]); len(errs) > 0 {
			first := errs[0]
			return nil, fmt.Errorf("%w: location %d field %q failed on tag %q",
				model.ErrSchemaViolation, i, first.FailedField, first.Tag)
		}
	}

	// 2. Catalog-level invariants (uniqueness, category sets)
	catalog, err := model.NewCatalog(locations, s.catalogCfg)
	if err != nil {
		return nil, err
	}

	s.repo.Replace(catalog)
	s.log.Info("catalog ingested",
		zap.String("version", catalog.Version.String()),
		zap.Int("locations", catalog.Size()),
	)
	s.announce(messaging.EventCatalogIngested, catalog)
	return catalog, nil
}

// Regenerate builds a fresh synthetic layout and swaps it in. Any open
// stocktake sessions keep their snapshotted baselines; their records against
// vanished locations surface as stale, they are not reconciled here.
func (s *catalogService) Regenerate() (*model.Catalog, error) {
	locations := layout.Generate(s.layoutCfg)
	catalog, err := model.NewCatalog(locations, s.catalogCfg)
	if err != nil {
		return nil, err
	}

	s.repo.Replace(catalog)
	s.log.Info("catalog regenerated",
		zap.String("version", catalog.Version.String()),
		zap.Int("locations", catalog.Size()),
	)
	s.announce(messaging.EventCatalogRegenerated, catalog)
	return catalog, nil
}

func (s *catalogService) Current() (*model.Catalog, error) {
	return s.repo.Current()
}

// View reads the catalog once and filters that same snapshot, so callers
// never pair one snapshot's locations with another's version or totals.
func (s *catalogService) View(criteria selection.Criteria) (*model.Catalog, []model.Location, error) {
	catalog, err := s.repo.Current()
	if err != nil {
		return nil, nil, err
	}
	locations, err := selection.Apply(catalog.Locations, criteria)
	if err != nil {
		return nil, nil, err
	}
	return catalog, locations, nil
}

func (s *catalogService) Select(criteria selection.Criteria) ([]model.Location, error) {
	_, locations, err := s.View(criteria)
	return locations, err
}

// ExportRows flattens the (filtered) catalog to one row per location for the
// CSV export boundary.
func (s *catalogService) ExportRows(criteria selection.Criteria) ([][]string, error) {
	locations, err := s.Select(criteria)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(locations)+1)
	rows = append(rows, []string{
		"location_id", "zone", "storage_type", "product_type", "product_id",
		"quantity", "capacity", "x", "y", "z", "depth_info",
	})
	for i := range locations {
		loc := &locations[i]
		rows = append(rows, []string{
			loc.LocationID,
			string(loc.Zone),
			string(loc.StorageType),
			string(loc.ProductType),
			loc.ProductID,
			strconv.Itoa(loc.Quantity),
			strconv.Itoa(loc.Capacity),
			strconv.FormatFloat(loc.Position.X, 'f', -1, 64),
			strconv.FormatFloat(loc.Position.Y, 'f', -1, 64),
			strconv.FormatFloat(loc.Position.Z, 'f', -1, 64),
			loc.DepthInfo,
		})
	}
	return rows, nil
}

func (s *catalogService) announce(eventType string, catalog *model.Catalog) {
	go func() {
		summaryPayload := map[string]interface{}{
			"type":   "catalog_update",
			"action": eventType,
			"catalog": map[string]interface{}{
				"version":   catalog.Version,
				"locations": catalog.Size(),
			},
		}
		s.wsHub.BroadcastEvent(summaryPayload)

		event := &messaging.StockEvent{
			Type:      eventType,
			Key:       catalog.Version.String(),
			Timestamp: time.Now(),
			Payload: map[string]interface{}{
				"locations": catalog.Size(),
			},
		}
		if err := s.producer.PublishStockEvent(context.Background(), event); err != nil {
			s.log.Warn("failed to publish catalog event", zap.Error(err))
		}
	}()
}
