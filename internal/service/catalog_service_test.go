package service

import (
	"testing"

	"go-warehouse-ws/internal/config"
	"go-warehouse-ws/internal/layout"
	"go-warehouse-ws/internal/messaging"
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/selection"
	"go-warehouse-ws/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogService(t *testing.T) CatalogService {
	t.Helper()

	hub := ws.NewHub(zap.NewNop())
	go hub.Run()

	return NewCatalogService(
		repository.NewCatalogRepo(),
		model.CatalogConfig{},
		layout.Config{Seed: 99},
		hub,
		messaging.NewNoopProducer(),
		zap.NewNop(),
	)
}

func TestIngestReplacesCatalogWholesale(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.Current()
	assert.ErrorIs(t, err, repository.ErrNoCatalog)

	first, err := svc.Ingest([]model.Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 2},
	})
	require.NoError(t, err)

	second, err := svc.Ingest([]model.Location{
		{LocationID: "B-01-01-1", Zone: "B", ProductType: "Jeans", Quantity: 4},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.Version, second.Version)

	current, err := svc.Current()
	require.NoError(t, err)
	_, ok := current.FindByID("A-01-01-1")
	assert.False(t, ok, "old snapshot must be gone after the swap")
}

func TestIngestAcceptsForeignIDSchemes(t *testing.T) {
	svc := newCatalogService(t)

	// External systems may use any unique non-empty ID; the warehouse label
	// grammar is a property of the generator, not of ingestion.
	catalog, err := svc.Ingest([]model.Location{
		{LocationID: "3b35ef6e-7f3a-4f32-9f0f-4f39f4a1c9d2", Zone: "A", ProductType: "T-shirts", Quantity: 2},
		{LocationID: "loc_9", Zone: "B", ProductType: "Jeans", Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Size())

	_, err = svc.Ingest([]model.Location{
		{LocationID: "", Zone: "A", ProductType: "T-shirts", Quantity: 2},
	})
	assert.ErrorIs(t, err, model.ErrSchemaViolation)
}

func TestIngestRejectionLeavesPriorCatalog(t *testing.T) {
	svc := newCatalogService(t)

	first, err := svc.Ingest([]model.Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 2},
	})
	require.NoError(t, err)

	_, err = svc.Ingest([]model.Location{
		{LocationID: "B-01-01-1", Zone: "B", ProductType: "Jeans", Quantity: -1},
	})
	assert.ErrorIs(t, err, model.ErrSchemaViolation)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, first.Version, current.Version)
}

func TestRegenerateProducesValidCatalog(t *testing.T) {
	svc := newCatalogService(t)

	catalog, err := svc.Regenerate()
	require.NoError(t, err)
	assert.Greater(t, catalog.Size(), 100)

	again, err := svc.Regenerate()
	require.NoError(t, err)
	assert.NotEqual(t, catalog.Version, again.Version)
}

func TestSelectAndExportRows(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Ingest([]model.Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 2},
		{LocationID: "B-01-01-1", Zone: "B", ProductType: "Jeans", Quantity: 4},
	})
	require.NoError(t, err)

	locations, err := svc.Select(selection.Criteria{Zones: []model.Zone{"B"}})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "B-01-01-1", locations[0].LocationID)

	rows, err := svc.ExportRows(selection.Criteria{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "location_id", rows[0][0])
	assert.Equal(t, "A-01-01-1", rows[1][0])
	assert.Equal(t, "2", rows[1][5])
}

func TestAnalyticsServiceUsesConfiguredDefaults(t *testing.T) {
	catalogSvc := newCatalogService(t)
	_, err := catalogSvc.Ingest([]model.Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 3},
		{LocationID: "A-01-02-1", Zone: "A", ProductType: "T-shirts", Quantity: 30},
		{LocationID: "A-01-03-1", Zone: "A", ProductType: "T-shirts", Quantity: 10},
	})
	require.NoError(t, err)

	svc := NewAnalyticsService(catalogSvc, config.StockConfig{
		UnderstockThreshold: 5,
		OverstockThreshold:  15,
	})

	report, err := svc.Issues(selection.Criteria{}, ThresholdOverride{})
	require.NoError(t, err)
	require.Len(t, report.Understocked, 1)
	require.Len(t, report.Overstocked, 1)
	assert.Equal(t, "A-01-01-1", report.Understocked[0].LocationID)
	assert.Equal(t, "A-01-02-1", report.Overstocked[0].LocationID)

	// Caller-supplied thresholds override the defaults.
	under, over := 1, 100
	report, err = svc.Issues(selection.Criteria{}, ThresholdOverride{Understock: &under, Overstock: &over})
	require.NoError(t, err)
	assert.Empty(t, report.Understocked)
	assert.Empty(t, report.Overstocked)

	summary, err := svc.Summary(selection.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.FilledLocations)
}

func TestViewPairsLocationsWithOneSnapshot(t *testing.T) {
	svc := newCatalogService(t)

	zoneA := []model.Location{{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 2}}
	zoneB := []model.Location{{LocationID: "B-01-01-1", Zone: "B", ProductType: "Jeans", Quantity: 4}}

	_, err := svc.Ingest(zoneA)
	require.NoError(t, err)

	// Ingestions swap disjoint snapshots under the reads; every View must
	// still hand back locations belonging to the catalog it returns.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			var err error
			if i%2 == 0 {
				_, err = svc.Ingest(zoneB)
			} else {
				_, err = svc.Ingest(zoneA)
			}
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 50; i++ {
		catalog, locations, err := svc.View(selection.Criteria{})
		require.NoError(t, err)
		require.Equal(t, catalog.Size(), len(locations))
		for j := range locations {
			_, ok := catalog.FindByID(locations[j].LocationID)
			assert.True(t, ok)
		}
	}
	<-done
}
