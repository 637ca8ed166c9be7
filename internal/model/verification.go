package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationRecord is one operator-recorded physical count for one location.
// SystemQuantity is snapshotted from the catalog at verification time and is
// immutable afterwards, even if the catalog is later regenerated.
type VerificationRecord struct {
	LocationID     string    `json:"location_id"`
	SystemQuantity int       `json:"system_quantity"`
	ActualQuantity int       `json:"actual_quantity"`
	Note           string    `json:"note,omitempty"`
	VerifiedBy     string    `json:"verified_by"`
	VerifiedAt     time.Time `json:"verified_at"`
	CatalogVersion uuid.UUID `json:"catalog_version"`
}

// Discrepancy is derived, never stored: actual minus system quantity.
func (r *VerificationRecord) Discrepancy() int {
	return r.ActualQuantity - r.SystemQuantity
}

// VerificationResponse is the API shape of a record, with the derived
// discrepancy filled in and staleness flagged against the current catalog.
type VerificationResponse struct {
	LocationID     string    `json:"location_id"`
	SystemQuantity int       `json:"system_quantity"`
	ActualQuantity int       `json:"actual_quantity"`
	Discrepancy    int       `json:"discrepancy"`
	Note           string    `json:"note,omitempty"`
	VerifiedBy     string    `json:"verified_by"`
	VerifiedAt     time.Time `json:"verified_at"`
	Stale          bool      `json:"stale"`
}

// ToResponse converts a record, marking it stale when its location no longer
// exists in the catalog the caller resolved it against.
func (r *VerificationRecord) ToResponse(stale bool) VerificationResponse {
	return VerificationResponse{
		LocationID:     r.LocationID,
		SystemQuantity: r.SystemQuantity,
		ActualQuantity: r.ActualQuantity,
		Discrepancy:    r.Discrepancy(),
		Note:           r.Note,
		VerifiedBy:     r.VerifiedBy,
		VerifiedAt:     r.VerifiedAt,
		Stale:          stale,
	}
}
