package patient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/domain/person"
	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

// IdentityChecker answers whether an identification code is already in
// use anywhere in the hospital (patients and doctors combined).
type IdentityChecker interface {
	IsDuplicate(ctx context.Context, code int) (bool, error)
	IsDuplicateExcluding(ctx context.Context, code int, ownerID uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	identity IdentityChecker
}

func NewService(repo Repository, identity IdentityChecker) *Service {
	return &Service{repo: repo, identity: identity}
}

// RegisterParams carries the fields for a new patient record.
type RegisterParams struct {
	Name           string `json:"name"`
	Identification int    `json:"identification"`
	Age            int    `json:"age"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// Register validates the demographic fields, enforces identification
// uniqueness across patients and doctors, and stores the new patient.
// Nothing is written when any check fails.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Patient, error) {
	p := &Patient{Person: person.Person{
		ID:             uuid.New(),
		Name:           params.Name,
		Identification: params.Identification,
		Age:            params.Age,
		Address:        params.Address,
		Phone:          params.Phone,
		Email:          params.Email,
	}}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dup, err := s.identity.IsDuplicate(ctx, p.Identification)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperr.Conflict("identification %d is already in use", p.Identification)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.All(ctx)
}

// UpdateParams carries a partial update: nil means leave unchanged, and
// blank strings are also ignored so callers can pass through empty form
// fields untouched.
type UpdateParams struct {
	Name           *string `json:"name"`
	Identification *int    `json:"identification"`
	Age            *int    `json:"age"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
}

// Update applies a partial update. An identification change is checked
// against every other patient and doctor; the update is rejected whole
// when any field fails.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Patient, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing

	if params.Name != nil && strings.TrimSpace(*params.Name) != "" {
		updated.Name = *params.Name
	}
	if params.Identification != nil && *params.Identification != existing.Identification {
		dup, err := s.identity.IsDuplicateExcluding(ctx, *params.Identification, id)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, apperr.Conflict("identification %d is already in use", *params.Identification)
		}
		updated.Identification = *params.Identification
	}
	if params.Age != nil && *params.Age > 0 {
		updated.Age = *params.Age
	}
	if params.Address != nil && strings.TrimSpace(*params.Address) != "" {
		updated.Address = *params.Address
	}
	if params.Phone != nil && strings.TrimSpace(*params.Phone) != "" {
		if !person.ValidPhone(*params.Phone) {
			return nil, apperr.InvalidArgument("phone %q is not a valid phone number", *params.Phone)
		}
		updated.Phone = *params.Phone
	}
	if params.Email != nil && strings.TrimSpace(*params.Email) != "" {
		if !person.ValidEmail(*params.Email) {
			return nil, apperr.InvalidArgument("email %q is not a valid email address", *params.Email)
		}
		updated.Email = *params.Email
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes the patient record. Existing appointments keep their
// patient reference; dangling references are accepted.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
