package model

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(locationID string, system, actual int) *VerificationRecord {
	return &VerificationRecord{
		LocationID:     locationID,
		SystemQuantity: system,
		ActualQuantity: actual,
		VerifiedBy:     "alex",
		VerifiedAt:     time.Now(),
	}
}

func TestDiscrepancyDerived(t *testing.T) {
	rec := record("A-01-01-1", 5, 8)
	assert.Equal(t, 3, rec.Discrepancy())

	rec.ActualQuantity = 5
	assert.Equal(t, 0, rec.Discrepancy(), "discrepancy is recomputed, not stored")
}

func TestSessionUpsert(t *testing.T) {
	s := NewStocktakeSession("alex")
	require.Equal(t, 0, s.Len())

	s.Upsert(record("A-01-01-1", 5, 8))
	s.Upsert(record("B-01-01-1", 2, 2))
	assert.Equal(t, 2, s.Len())

	// Re-verifying replaces the record, never appends.
	s.Upsert(record("A-01-01-1", 5, 5))
	assert.Equal(t, 2, s.Len())

	rec, ok := s.Record("A-01-01-1")
	require.True(t, ok)
	assert.Equal(t, 5, rec.ActualQuantity)
	assert.Equal(t, 0, rec.Discrepancy())

	// Order is first-insertion, stable across upserts.
	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "A-01-01-1", records[0].LocationID)
	assert.Equal(t, "B-01-01-1", records[1].LocationID)
}

func TestSessionClear(t *testing.T) {
	s := NewStocktakeSession("alex")
	s.Upsert(record("A-01-01-1", 5, 8))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Records())
}

func TestSessionStateFor(t *testing.T) {
	selection := []Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 5},
		{LocationID: "A-01-02-1", Zone: "A", ProductType: "T-shirts", Quantity: 2},
	}

	s := NewStocktakeSession("alex")
	assert.Equal(t, SessionEmpty, s.StateFor(selection))

	s.Upsert(record("A-01-01-1", 5, 5))
	assert.Equal(t, SessionInProgress, s.StateFor(selection))

	s.Upsert(record("A-01-02-1", 2, 3))
	assert.Equal(t, SessionComplete, s.StateFor(selection))

	// Completeness is relative to the visible selection: a shrunk selection
	// covering only verified locations reads as complete.
	assert.Equal(t, SessionComplete, s.StateFor(selection[:1]))
}

func TestSessionConcurrentUpsertAndReads(t *testing.T) {
	s := NewStocktakeSession("alex")
	selection := []Location{
		{LocationID: "A-01-01-1", Zone: "A", ProductType: "T-shirts", Quantity: 5},
		{LocationID: "A-01-02-1", Zone: "A", ProductType: "T-shirts", Quantity: 2},
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Upsert(record(fmt.Sprintf("A-01-%02d-1", n%10+1), 5, n))
		}(i)
		go func() {
			defer wg.Done()
			s.Records()
			s.Len()
			s.StateFor(selection)
			s.ToResponse()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
	assert.Len(t, s.Records(), 10)
}
