package repository

import (
	"errors"
	"sort"
	"sync"

	"go-warehouse-ws/internal/model"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("stocktake session not found")

// SessionRepository keeps live stocktake sessions. Multiple sessions can
// coexist (one per operator, plus test fixtures); each is looked up by ID.
type SessionRepository interface {
	Save(session *model.StocktakeSession)
	FindByID(id uuid.UUID) (*model.StocktakeSession, error)
	FindAll() []*model.StocktakeSession
	Delete(id uuid.UUID) error
}

type sessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.StocktakeSession
}

func NewSessionRepo() SessionRepository {
	return &sessionRepo{sessions: make(map[uuid.UUID]*model.StocktakeSession)}
}

func (r *sessionRepo) Save(session *model.StocktakeSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

func (r *sessionRepo) FindByID(id uuid.UUID) (*model.StocktakeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *sessionRepo) FindAll() []*model.StocktakeSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.StocktakeSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt().Before(out[j].StartedAt())
	})
	return out
}

func (r *sessionRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}
