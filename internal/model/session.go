package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is derived from record counts relative to a selection,
// never stored (a second source of truth would drift).
type SessionState string

const (
	SessionEmpty      SessionState = "EMPTY"
	SessionInProgress SessionState = "IN_PROGRESS"
	SessionComplete   SessionState = "COMPLETE"
)

// StocktakeSession accumulates physical-count verifications against one
// catalog snapshot. Records are an idempotent upsert keyed by location_id;
// order preserves first insertion so exports are deterministic. Handlers
// read progress and reports while verifications land, so the mutable state
// is guarded by an internal RWMutex.
type StocktakeSession struct {
	ID           uuid.UUID `json:"id"`
	OperatorName string    `json:"operator_name"`

	mu        sync.RWMutex
	startedAt time.Time
	records   map[string]*VerificationRecord
	order     []string
}

// NewStocktakeSession creates an empty session for the given operator.
func NewStocktakeSession(operatorName string) *StocktakeSession {
	return &StocktakeSession{
		ID:           uuid.New(),
		OperatorName: operatorName,
		startedAt:    time.Now(),
		records:      make(map[string]*VerificationRecord),
	}
}

// StartedAt returns when the session started, or was last reset.
func (s *StocktakeSession) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}

// Upsert records a verification, replacing any prior record for the same
// location. Re-verifying never appends a duplicate.
func (s *StocktakeSession) Upsert(rec *VerificationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.LocationID]; !exists {
		s.order = append(s.order, rec.LocationID)
	}
	s.records[rec.LocationID] = rec
}

// Record returns the verification for a location, if the location was visited.
func (s *StocktakeSession) Record(locationID string) (*VerificationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[locationID]
	return rec, ok
}

// Records returns all verifications in first-insertion order.
func (s *StocktakeSession) Records() []*VerificationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*VerificationRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Len returns the number of verified locations.
func (s *StocktakeSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear drops every record and restarts the session clock. The catalog is
// untouched; only the reconciliation ledger is wiped.
func (s *StocktakeSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*VerificationRecord)
	s.order = nil
	s.startedAt = time.Now()
}

// StateFor derives the session state relative to a selection of locations.
// "Complete" is always relative to the currently visible selection, so a
// filter that shrinks the selection can complete a session without further
// verification.
func (s *StocktakeSession) StateFor(selection []Location) SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return SessionEmpty
	}
	verified := 0
	for i := range selection {
		if _, ok := s.records[selection[i].LocationID]; ok {
			verified++
		}
	}
	if verified == len(selection) {
		return SessionComplete
	}
	return SessionInProgress
}

// SessionResponse is the API shape of a session.
type SessionResponse struct {
	ID            uuid.UUID    `json:"id"`
	OperatorName  string       `json:"operator_name"`
	StartedAt     time.Time    `json:"started_at"`
	VerifiedCount int          `json:"verified_count"`
	State         SessionState `json:"state,omitempty"`
}

// ToResponse converts the session without resolving state (state depends on a
// selection; callers that have one fill it in).
func (s *StocktakeSession) ToResponse() SessionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionResponse{
		ID:            s.ID,
		OperatorName:  s.OperatorName,
		StartedAt:     s.startedAt,
		VerifiedCount: len(s.records),
	}
}
