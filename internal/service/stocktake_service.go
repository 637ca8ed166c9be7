package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"go-warehouse-ws/internal/messaging"
	"go-warehouse-ws/internal/model"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/selection"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error definitions
var (
	ErrUnknownLocation  = errors.New("location does not exist in the active catalog")
	ErrInvalidQuantity  = errors.New("actual quantity must be non-negative")
	ErrOperatorRequired = errors.New("operator name is required")
)

type CreateSessionRequest struct {
	OperatorName string `json:"operator_name" validate:"required"`
}

type VerifyRequest struct {
	LocationID     string `json:"location_id" validate:"required"`
	ActualQuantity int    `json:"actual_quantity" validate:"min=0"`
	Note           string `json:"note"`
	VerifiedBy     string `json:"verified_by"`
}

// Progress reports verification coverage relative to the currently visible
// selection, plus the derived session state.
type Progress struct {
	VerifiedCount  int                `json:"verified_count"`
	SelectionCount int                `json:"selection_count"`
	State          model.SessionState `json:"state"`
}

// DiscrepancyReport lists mismatches ordered by severity. Records whose
// location vanished in a catalog regeneration are surfaced separately with
// the stale marker, never silently dropped or re-matched.
type DiscrepancyReport struct {
	Discrepancies []model.VerificationResponse `json:"discrepancies"`
	StaleRecords  []model.VerificationResponse `json:"stale_records"`
}

type StocktakeService interface {
	CreateSession(req *CreateSessionRequest) (*model.StocktakeSession, error)
	GetSession(id uuid.UUID) (*model.StocktakeSession, error)
	ListSessions() []*model.StocktakeSession
	Verify(sessionID uuid.UUID, req *VerifyRequest) (*model.VerificationRecord, error)
	Progress(sessionID uuid.UUID, criteria selection.Criteria) (*Progress, error)
	Discrepancies(sessionID uuid.UUID) (*DiscrepancyReport, error)
	ExportRows(sessionID uuid.UUID) ([][]string, error)
	Reset(sessionID uuid.UUID) error
}

type stocktakeService struct {
	sessionRepo repository.SessionRepository
	catalogRepo repository.CatalogRepository
	wsHub       *ws.Hub
	producer    messaging.EventProducer
	log         *zap.Logger

	// Serializes Verify/Reset so concurrent counts of the same location
	// cannot interleave into a corrupted record.
	mu sync.Mutex
}

func NewStocktakeService(
	sessionRepo repository.SessionRepository,
	catalogRepo repository.CatalogRepository,
	hub *ws.Hub,
	producer messaging.EventProducer,
	log *zap.Logger,
) StocktakeService {
	return &stocktakeService{
		sessionRepo: sessionRepo,
		catalogRepo: catalogRepo,
		wsHub:       hub,
		producer:    producer,
		log:         log,
	}
}

func (s *stocktakeService) CreateSession(req *CreateSessionRequest) (*model.StocktakeSession, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrOperatorRequired
	}

	session := model.NewStocktakeSession(req.OperatorName)
	s.sessionRepo.Save(session)
	s.log.Info("stocktake session created",
		zap.String("session_id", session.ID.String()),
		zap.String("operator", session.OperatorName),
	)
	return session, nil
}

func (s *stocktakeService) GetSession(id uuid.UUID) (*model.StocktakeSession, error) {
	return s.sessionRepo.FindByID(id)
}

func (s *stocktakeService) ListSessions() []*model.StocktakeSession {
	return s.sessionRepo.FindAll()
}

// Verify records a physical count. The system quantity is snapshotted from
// the catalog as it stands right now; re-verifying the same location replaces
// the prior record instead of appending a duplicate.
func (s *stocktakeService) Verify(sessionID uuid.UUID, req *VerifyRequest) (*model.VerificationRecord, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		if first.FailedField == "VerifyRequest.ActualQuantity" {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, req.ActualQuantity)
		}
		return nil, fmt.Errorf("validation failed: field %q failed on tag %q", first.FailedField, first.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogRepo.Current()
	if err != nil {
		return nil, err
	}

	location, ok := catalog.FindByID(req.LocationID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, req.LocationID)
	}

	verifiedBy := req.VerifiedBy
	if verifiedBy == "" {
		verifiedBy = session.OperatorName
	}

	record := &model.VerificationRecord{
		LocationID:     location.LocationID,
		SystemQuantity: location.Quantity,
		ActualQuantity: req.ActualQuantity,
		Note:           req.Note,
		VerifiedBy:     verifiedBy,
		VerifiedAt:     time.Now(),
		CatalogVersion: catalog.Version,
	}
	session.Upsert(record)

	s.log.Debug("location verified",
		zap.String("session_id", sessionID.String()),
		zap.String("location_id", record.LocationID),
		zap.Int("discrepancy", record.Discrepancy()),
	)

	go func() {
		s.wsHub.BroadcastEvent(map[string]interface{}{
			"type":   "stocktake_update",
			"action": "location_verified",
			"record": record.ToResponse(false),
			"session": map[string]interface{}{
				"id":       sessionID,
				"operator": session.OperatorName,
			},
			"message": fmt.Sprintf("%s counted %d units at %s (system: %d)",
				verifiedBy, record.ActualQuantity, record.LocationID, record.SystemQuantity),
		})

		event := &messaging.StockEvent{
			Type:      messaging.EventStocktakeVerified,
			Key:       record.LocationID,
			Timestamp: record.VerifiedAt,
			Payload: map[string]interface{}{
				"session_id":      sessionID.String(),
				"system_quantity": record.SystemQuantity,
				"actual_quantity": record.ActualQuantity,
				"discrepancy":     record.Discrepancy(),
			},
		}
		if err := s.producer.PublishStockEvent(context.Background(), event); err != nil {
			s.log.Warn("failed to publish verification event", zap.Error(err))
		}
	}()

	return record, nil
}

// Progress counts verified locations within the given selection of the
// current catalog and derives the session state from that ratio.
func (s *stocktakeService) Progress(sessionID uuid.UUID, criteria selection.Criteria) (*Progress, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogRepo.Current()
	if err != nil {
		return nil, err
	}

	selected, err := selection.Apply(catalog.Locations, criteria)
	if err != nil {
		return nil, err
	}

	verified := 0
	for i := range selected {
		if _, ok := session.Record(selected[i].LocationID); ok {
			verified++
		}
	}

	return &Progress{
		VerifiedCount:  verified,
		SelectionCount: len(selected),
		State:          session.StateFor(selected),
	}, nil
}

// Discrepancies returns every non-zero mismatch ordered by descending
// absolute discrepancy with location_id as tie-break. Stale records are
// reported in their own list.
func (s *stocktakeService) Discrepancies(sessionID uuid.UUID) (*DiscrepancyReport, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogRepo.Current()
	if err != nil {
		return nil, err
	}

	report := &DiscrepancyReport{
		Discrepancies: []model.VerificationResponse{},
		StaleRecords:  []model.VerificationResponse{},
	}
	for _, rec := range session.Records() {
		if _, ok := catalog.FindByID(rec.LocationID); !ok {
			report.StaleRecords = append(report.StaleRecords, rec.ToResponse(true))
			continue
		}
		if rec.Discrepancy() != 0 {
			report.Discrepancies = append(report.Discrepancies, rec.ToResponse(false))
		}
	}

	sort.SliceStable(report.Discrepancies, func(i, j int) bool {
		di, dj := abs(report.Discrepancies[i].Discrepancy), abs(report.Discrepancies[j].Discrepancy)
		if di != dj {
			return di > dj
		}
		return report.Discrepancies[i].LocationID < report.Discrepancies[j].LocationID
	})

	return report, nil
}

// ExportRows flattens the session ledger to one row per verification record.
func (s *stocktakeService) ExportRows(sessionID uuid.UUID) ([][]string, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogRepo.Current()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, session.Len()+1)
	rows = append(rows, []string{
		"location_id", "system_quantity", "actual_quantity", "discrepancy",
		"note", "verified_by", "verified_at", "stale",
	})
	for _, rec := range session.Records() {
		_, present := catalog.FindByID(rec.LocationID)
		rows = append(rows, []string{
			rec.LocationID,
			strconv.Itoa(rec.SystemQuantity),
			strconv.Itoa(rec.ActualQuantity),
			strconv.Itoa(rec.Discrepancy()),
			rec.Note,
			rec.VerifiedBy,
			rec.VerifiedAt.Format(time.RFC3339),
			strconv.FormatBool(!present),
		})
	}
	return rows, nil
}

// Reset wipes the session ledger. Irreversible, and the catalog is untouched.
func (s *stocktakeService) Reset(sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return err
	}
	session.Clear()

	s.log.Info("stocktake session reset", zap.String("session_id", sessionID.String()))

	go func() {
		s.wsHub.BroadcastEvent(map[string]interface{}{
			"type":    "stocktake_update",
			"action":  "session_reset",
			"session": map[string]interface{}{"id": sessionID},
		})

		event := &messaging.StockEvent{
			Type:      messaging.EventStocktakeReset,
			Key:       sessionID.String(),
			Timestamp: time.Now(),
		}
		if err := s.producer.PublishStockEvent(context.Background(), event); err != nil {
			s.log.Warn("failed to publish reset event", zap.Error(err))
		}
	}()

	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
