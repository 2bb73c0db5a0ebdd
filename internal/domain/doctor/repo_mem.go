package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
	"github.com/sanvicente/frontdesk/internal/platform/registry"
)

// MemRepository is the in-memory Repository used for the lifetime of one
// run.
type MemRepository struct {
	store *registry.Store[*Doctor]
}

func NewMemRepository() *MemRepository {
	return &MemRepository{store: registry.NewStore[*Doctor]()}
}

func (r *MemRepository) Create(_ context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.store.Add(d)
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := r.store.Get(id)
	if !ok {
		return nil, apperr.NotFound("doctor %s not found", id)
	}
	return d, nil
}

func (r *MemRepository) Update(_ context.Context, d *Doctor) error {
	r.store.Update(d)
	return nil
}

func (r *MemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.Remove(id)
	return nil
}

func (r *MemRepository) All(_ context.Context) ([]*Doctor, error) {
	return r.store.All(), nil
}
