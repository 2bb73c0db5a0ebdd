// Package identity enforces the uniqueness of identification codes
// across the combined pool of patients and doctors.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Entry is one identification code and the entity that owns it.
type Entry struct {
	OwnerID uuid.UUID
	Code    int
}

// Pool enumerates the identification codes held by one registry.
type Pool interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// PoolFunc adapts a function to the Pool interface.
type PoolFunc func(ctx context.Context) ([]Entry, error)

// Entries implements Pool.
func (f PoolFunc) Entries(ctx context.Context) ([]Entry, error) { return f(ctx) }

// Service answers duplicate-identification questions over a fixed set of
// pools. Registration checks the whole set; updates exclude the entity
// being updated so it does not collide with itself.
type Service struct {
	pools []Pool
}

// NewService creates a Service over the given pools.
func NewService(pools ...Pool) *Service {
	return &Service{pools: pools}
}

// IsDuplicate reports whether any entity in any pool carries code.
func (s *Service) IsDuplicate(ctx context.Context, code int) (bool, error) {
	return s.isDuplicate(ctx, code, uuid.Nil)
}

// IsDuplicateExcluding reports whether any entity other than ownerID
// carries code.
func (s *Service) IsDuplicateExcluding(ctx context.Context, code int, ownerID uuid.UUID) (bool, error) {
	return s.isDuplicate(ctx, code, ownerID)
}

func (s *Service) isDuplicate(ctx context.Context, code int, exclude uuid.UUID) (bool, error) {
	for _, p := range s.pools {
		entries, err := p.Entries(ctx)
		if err != nil {
			return false, err
		}
		for _, e := range entries {
			if e.Code == code && e.OwnerID != exclude {
				return true, nil
			}
		}
	}
	return false, nil
}
