package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
	"github.com/sanvicente/frontdesk/internal/platform/registry"
)

// MemRepository is the in-memory appointment ledger. Filters are linear
// scans; data volumes are small by design.
type MemRepository struct {
	store *registry.Store[*Appointment]
}

func NewMemRepository() *MemRepository {
	return &MemRepository{store: registry.NewStore[*Appointment]()}
}

func (r *MemRepository) Create(_ context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.store.Add(a)
	return nil
}

func (r *MemRepository) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.store.Get(id)
	if !ok {
		return nil, apperr.NotFound("appointment %s not found", id)
	}
	return a, nil
}

func (r *MemRepository) Update(_ context.Context, a *Appointment) error {
	r.store.Update(a)
	return nil
}

func (r *MemRepository) All(_ context.Context) ([]*Appointment, error) {
	return sortByStart(r.store.All()), nil
}

func (r *MemRepository) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return r.filter(func(a *Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *MemRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return r.filter(func(a *Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *MemRepository) ListByDate(_ context.Context, date time.Time) ([]*Appointment, error) {
	y, m, d := date.Date()
	return r.filter(func(a *Appointment) bool {
		ay, am, ad := a.StartTime.In(date.Location()).Date()
		return ay == y && am == m && ad == d
	}), nil
}

func (r *MemRepository) ListByStatus(_ context.Context, status AppointmentStatus) ([]*Appointment, error) {
	return r.filter(func(a *Appointment) bool { return a.Status == status }), nil
}

func (r *MemRepository) filter(keep func(*Appointment) bool) []*Appointment {
	out := make([]*Appointment, 0)
	for _, a := range r.store.All() {
		if keep(a) {
			out = append(out, a)
		}
	}
	return sortByStart(out)
}

func sortByStart(appts []*Appointment) []*Appointment {
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].StartTime.Before(appts[j].StartTime)
	})
	return appts
}
