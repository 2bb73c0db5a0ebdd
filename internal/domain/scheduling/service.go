package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

// Party identifies one side of an appointment for lookups and
// notifications.
type Party struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// PatientDirectory resolves patient references. Implemented by an
// adapter over the patient service.
type PatientDirectory interface {
	Lookup(ctx context.Context, id uuid.UUID) (Party, error)
}

// DoctorDirectory resolves doctor references. Implemented by an adapter
// over the doctor service.
type DoctorDirectory interface {
	Lookup(ctx context.Context, id uuid.UUID) (Party, error)
}

// BookingNotice carries everything a confirmation message needs.
type BookingNotice struct {
	Patient     Party
	Doctor      Party
	Appointment *Appointment
}

// Notifier is told about successful bookings. Failures are the
// notifier's problem; a booking never rolls back because an email did
// not go out.
type Notifier interface {
	AppointmentBooked(ctx context.Context, notice BookingNotice)
}

// NopNotifier discards booking notices.
type NopNotifier struct{}

func (NopNotifier) AppointmentBooked(context.Context, BookingNotice) {}

// RegisterInput is the request to book a new appointment.
type RegisterInput struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	ServiceType ServiceType
	Reason      string
}

// UpdateInput carries a partial appointment update. Nil fields are left
// unchanged; a blank Reason is ignored.
type UpdateInput struct {
	PatientID   *uuid.UUID
	DoctorID    *uuid.UUID
	StartTime   *time.Time
	EndTime     *time.Time
	ServiceType *ServiceType
	Reason      *string
}

// Service owns the appointment lifecycle: booking with conflict
// detection, rescheduling, cancellation and status transitions.
type Service struct {
	patients     PatientDirectory
	doctors      DoctorDirectory
	appointments Repository
	notifier     Notifier
	now          func() time.Time
}

func NewService(patients PatientDirectory, doctors DoctorDirectory, appointments Repository, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Register books an appointment. Preconditions run in a fixed order:
// patient exists, doctor exists, the time range is well formed, the
// service type is known, then conflict checks for the doctor and the
// patient. Cancelled appointments never block a slot.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Appointment, error) {
	patient, err := s.patients.Lookup(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.doctors.Lookup(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperr.InvalidArgument("end time must be after start time")
	}
	if !in.ServiceType.Valid() {
		return nil, apperr.InvalidArgument("unknown service type %q", in.ServiceType)
	}
	if err := s.checkConflicts(ctx, in.DoctorID, in.PatientID, in.StartTime, in.EndTime, uuid.Nil); err != nil {
		return nil, err
	}

	appt := &Appointment{
		ID:          uuid.New(),
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		ServiceType: in.ServiceType,
		Reason:      in.Reason,
		Status:      StatusScheduled,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.notifier.AppointmentBooked(ctx, BookingNotice{
		Patient:     patient,
		Doctor:      doctor,
		Appointment: appt,
	})
	log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("patient_id", in.PatientID.String()).
		Str("doctor_id", in.DoctorID.String()).
		Time("start", in.StartTime).
		Msg("appointment booked")
	return appt, nil
}

// checkConflicts scans for active appointments overlapping the given
// range, for the doctor first and the patient second. exclude skips one
// appointment so reschedules do not collide with themselves.
func (s *Service) checkConflicts(ctx context.Context, doctorID, patientID uuid.UUID, start, end time.Time, exclude uuid.UUID) error {
	byDoctor, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	for _, a := range byDoctor {
		if a.ID == exclude || a.Status == StatusCancelled {
			continue
		}
		if a.Overlaps(start, end) {
			return apperr.Conflict("the doctor already has an appointment in that time range")
		}
	}
	byPatient, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return err
	}
	for _, a := range byPatient {
		if a.ID == exclude || a.Status == StatusCancelled {
			continue
		}
		if a.Overlaps(start, end) {
			return apperr.Conflict("the patient already has an appointment in that time range")
		}
	}
	return nil
}

// Get returns one appointment by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// List returns every appointment ordered by start time.
func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.All(ctx)
}

// ListByPatient returns the patient's appointments. The patient must
// exist.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	if _, err := s.patients.Lookup(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

// ListByDoctor returns the doctor's appointments. The doctor must
// exist.
func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	if _, err := s.doctors.Lookup(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.appointments.ListByDoctor(ctx, doctorID)
}

// ListByDate returns the appointments starting on the given calendar
// day. An empty result is not an error.
func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*Appointment, error) {
	return s.appointments.ListByDate(ctx, date)
}

// ListByStatus returns the appointments currently in the given status.
func (s *Service) ListByStatus(ctx context.Context, status AppointmentStatus) ([]*Appointment, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArgument("unknown appointment status %q", status)
	}
	return s.appointments.ListByStatus(ctx, status)
}

// Update applies a partial reschedule. When the parties or the time
// range change, the conflict check reruns against the rest of the
// ledger, excluding the appointment itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, apperr.InvalidOperation("cannot modify a cancelled appointment")
	}

	next := *appt
	rangeChanged := false

	if in.PatientID != nil && *in.PatientID != appt.PatientID {
		if _, err := s.patients.Lookup(ctx, *in.PatientID); err != nil {
			return nil, err
		}
		next.PatientID = *in.PatientID
		rangeChanged = true
	}
	if in.DoctorID != nil && *in.DoctorID != appt.DoctorID {
		if _, err := s.doctors.Lookup(ctx, *in.DoctorID); err != nil {
			return nil, err
		}
		next.DoctorID = *in.DoctorID
		rangeChanged = true
	}
	if in.StartTime != nil {
		if in.StartTime.Before(s.now()) {
			return nil, apperr.InvalidArgument("new start time cannot be in the past")
		}
		next.StartTime = *in.StartTime
		rangeChanged = true
	}
	if in.EndTime != nil {
		next.EndTime = *in.EndTime
		rangeChanged = true
	}
	if !next.EndTime.After(next.StartTime) {
		return nil, apperr.InvalidArgument("end time must be after start time")
	}
	if in.ServiceType != nil {
		if !in.ServiceType.Valid() {
			return nil, apperr.InvalidArgument("unknown service type %q", *in.ServiceType)
		}
		next.ServiceType = *in.ServiceType
	}
	if in.Reason != nil && strings.TrimSpace(*in.Reason) != "" {
		next.Reason = *in.Reason
	}

	if rangeChanged {
		if err := s.checkConflicts(ctx, next.DoctorID, next.PatientID, next.StartTime, next.EndTime, appt.ID); err != nil {
			return nil, err
		}
	}

	*appt = next
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks an appointment cancelled, keeping it on record. A blank
// reason gets a placeholder. Cancelling twice is an error.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, apperr.InvalidOperation("appointment is already cancelled")
	}
	if strings.TrimSpace(reason) == "" {
		reason = "No reason provided"
	}
	now := s.now()
	appt.Status = StatusCancelled
	appt.CancellationReason = &reason
	appt.CancellationDate = &now
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("reason", reason).
		Msg("appointment cancelled")
	return appt, nil
}

// ChangeStatus moves an appointment to a new status. Cancelled is a
// dead end: once there, nothing moves out, not even via this path.
// Non-blank notes replace the existing notes.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status AppointmentStatus, notes string) (*Appointment, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArgument("unknown appointment status %q", status)
	}
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == StatusCancelled {
		return nil, apperr.InvalidOperation("cannot change status of a cancelled appointment")
	}
	appt.Status = status
	if status == StatusCancelled {
		now := s.now()
		reason := "No reason provided"
		if strings.TrimSpace(notes) != "" {
			reason = notes
		}
		appt.CancellationReason = &reason
		appt.CancellationDate = &now
	}
	if strings.TrimSpace(notes) != "" {
		appt.Notes = notes
	}
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}
