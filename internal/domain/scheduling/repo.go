package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the appointment ledger. There is no delete: cancelled
// appointments stay on record. Every List result is ordered by start
// time ascending.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	All(ctx context.Context) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status AppointmentStatus) ([]*Appointment, error)
}
