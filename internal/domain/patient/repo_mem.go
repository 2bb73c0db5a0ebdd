package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
	"github.com/sanvicente/frontdesk/internal/platform/registry"
)

// MemRepository is the in-memory Repository used for the lifetime of one
// run. It performs no validation; services own the invariants.
type MemRepository struct {
	store *registry.Store[*Patient]
}

func NewMemRepository() *MemRepository {
	return &MemRepository{store: registry.NewStore[*Patient]()}
}

func (r *MemRepository) Create(_ context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.store.Add(p)
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.store.Get(id)
	if !ok {
		return nil, apperr.NotFound("patient %s not found", id)
	}
	return p, nil
}

func (r *MemRepository) Update(_ context.Context, p *Patient) error {
	r.store.Update(p)
	return nil
}

func (r *MemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.Remove(id)
	return nil
}

func (r *MemRepository) All(_ context.Context) ([]*Patient, error) {
	return r.store.All(), nil
}
