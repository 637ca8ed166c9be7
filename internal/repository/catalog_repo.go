package repository

import (
	"errors"
	"sync"

	"go-warehouse-ws/internal/model"
)

var ErrNoCatalog = errors.New("no catalog loaded")

// CatalogRepository holds the active catalog snapshot. Regeneration is a full
// swap, so readers never observe a half-updated catalog.
type CatalogRepository interface {
	Replace(catalog *model.Catalog)
	Current() (*model.Catalog, error)
}

type catalogRepo struct {
	mu      sync.RWMutex
	current *model.Catalog
}

func NewCatalogRepo() CatalogRepository {
	return &catalogRepo{}
}

func (r *catalogRepo) Replace(catalog *model.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = catalog
}

func (r *catalogRepo) Current() (*model.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, ErrNoCatalog
	}
	return r.current, nil
}
