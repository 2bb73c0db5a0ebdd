package doctor

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

// RegisterParams carries the fields for a new doctor record.
type RegisterParams struct {
	Name           string    `json:"name"`
	Identification int       `json:"identification"`
	Age            int       `json:"age"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Specialty      Specialty `json:"specialty"`
}

// Register validates the demographic fields and specialty, enforces
// identification uniqueness across doctors and patients, and stores the
// new doctor as active.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Doctor, error) {
	d := &Doctor{
		Person: person.Person{
			ID:             uuid.New(),
			Name:           params.Name,
			Identification: params.Identification,
			Age:            params.Age,
			Address:        params.Address,
			Phone:          params.Phone,
			Email:          params.Email,
		},
		Specialty: params.Specialty,
		Active:    true,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if !d.Specialty.Valid() {
		return nil, apperr.InvalidArgument("unknown specialty %q", d.Specialty)
	}
	dup, err := s.identity.IsDuplicate(ctx, d.Identification)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperr.Conflict("identification %d is already in use", d.Identification)
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.All(ctx)
}

// ListActive returns the doctors available for new bookings.
func (s *Service) ListActive(ctx context.Context) ([]*Doctor, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*Doctor, 0, len(all))
	for _, d := range all {
		if d.Active {
			active = append(active, d)
		}
	}
	return active, nil
}

// ListBySpecialty returns doctors with the given specialty.
func (s *Service) ListBySpecialty(ctx context.Context, specialty Specialty) ([]*Doctor, error) {
	if !specialty.Valid() {
		return nil, apperr.InvalidArgument("unknown specialty %q", specialty)
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Doctor
	for _, d := range all {
		if d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out, nil
}

// UpdateParams carries a partial update: nil means leave unchanged, and
// blank strings are also ignored.
type UpdateParams struct {
	Name           *string    `json:"name"`
	Identification *int       `json:"identification"`
	Age            *int       `json:"age"`
	Address        *string    `json:"address"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	Specialty      *Specialty `json:"specialty"`
	Active         *bool      `json:"active"`
}

// Update applies a partial update. An identification change is checked
// against every other doctor and patient; the update is rejected whole
// when any field fails.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Doctor, error) {
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
	if params.Specialty != nil {
		if !params.Specialty.Valid() {
			return nil, apperr.InvalidArgument("unknown specialty %q", *params.Specialty)
		}
		updated.Specialty = *params.Specialty
	}
	if params.Active != nil {
		updated.Active = *params.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes the doctor record. Existing appointments keep their
// doctor reference; dangling references are accepted.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
