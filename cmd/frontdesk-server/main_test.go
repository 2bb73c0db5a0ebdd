package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/domain/doctor"
	"github.com/sanvicente/frontdesk/internal/domain/identity"
	"github.com/sanvicente/frontdesk/internal/domain/patient"
	"github.com/sanvicente/frontdesk/internal/domain/scheduling"
	"github.com/sanvicente/frontdesk/internal/platform/apperr"
	"github.com/sanvicente/frontdesk/internal/platform/notification"
)

func TestPatientDirectoryAdapter(t *testing.T) {
	repo := patient.NewMemRepository()
	svc := patient.NewService(repo, identity.NewService())
	p, err := svc.Register(context.Background(), patient.RegisterParams{
		Name:           "Juan Pérez",
		Identification: 12345,
		Age:            34,
		Address:        "Calle 10",
		Phone:          "+573001234567",
		Email:          "juan@mail.com",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	adapter := &PatientDirectoryAdapter{svc: svc}
	party, err := adapter.Lookup(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if party.Name != "Juan Pérez" || party.Email != "juan@mail.com" {
		t.Errorf("party = %+v", party)
	}

	_, err = adapter.Lookup(context.Background(), uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestDoctorDirectoryAdapter(t *testing.T) {
	repo := doctor.NewMemRepository()
	svc := doctor.NewService(repo, identity.NewService())
	d, err := svc.Register(context.Background(), doctor.RegisterParams{
		Name:           "Dra. María Rodríguez",
		Identification: 555,
		Age:            45,
		Address:        "Avenida El Poblado",
		Phone:          "+573015550001",
		Email:          "maria@sanvicente.com",
		Specialty:      doctor.SpecialtyCardiology,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	adapter := &DoctorDirectoryAdapter{svc: svc}
	party, err := adapter.Lookup(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if party.Name != "Dra. María Rodríguez" {
		t.Errorf("party = %+v", party)
	}
}

func sharedIdentity(patientRepo *patient.MemRepository, doctorRepo *doctor.MemRepository) *identity.Service {
	return identity.NewService(
		identity.PoolFunc(func(ctx context.Context) ([]identity.Entry, error) {
			patients, err := patientRepo.All(ctx)
			if err != nil {
				return nil, err
			}
			entries := make([]identity.Entry, 0, len(patients))
			for _, p := range patients {
				entries = append(entries, identity.Entry{OwnerID: p.ID, Code: p.Identification})
			}
			return entries, nil
		}),
		identity.PoolFunc(func(ctx context.Context) ([]identity.Entry, error) {
			doctors, err := doctorRepo.All(ctx)
			if err != nil {
				return nil, err
			}
			entries := make([]identity.Entry, 0, len(doctors))
			for _, d := range doctors {
				entries = append(entries, identity.Entry{OwnerID: d.ID, Code: d.Identification})
			}
			return entries, nil
		}),
	)
}

func TestIdentificationUniqueAcrossPatientsAndDoctors(t *testing.T) {
	ctx := context.Background()
	patientRepo := patient.NewMemRepository()
	doctorRepo := doctor.NewMemRepository()
	identitySvc := sharedIdentity(patientRepo, doctorRepo)
	patientSvc := patient.NewService(patientRepo, identitySvc)
	doctorSvc := doctor.NewService(doctorRepo, identitySvc)

	if _, err := patientSvc.Register(ctx, patient.RegisterParams{
		Name: "Juan", Identification: 12345, Age: 34,
		Address: "Calle 10", Phone: "+573001234567", Email: "juan@mail.com",
	}); err != nil {
		t.Fatalf("register patient: %v", err)
	}

	_, err := doctorSvc.Register(ctx, doctor.RegisterParams{
		Name: "Dra. María", Identification: 12345, Age: 45,
		Address: "Avenida 5", Phone: "+573015550001", Email: "maria@sanvicente.com",
		Specialty: doctor.SpecialtyCardiology,
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("expected Conflict for reused identification, got %v", err)
	}
}

func TestBookingSurvivesDeliveryFailure(t *testing.T) {
	ctx := context.Background()

	patientRepo := patient.NewMemRepository()
	doctorRepo := doctor.NewMemRepository()
	patientSvc := patient.NewService(patientRepo, identity.NewService())
	doctorSvc := doctor.NewService(doctorRepo, identity.NewService())

	p, err := patientSvc.Register(ctx, patient.RegisterParams{
		Name: "Juan", Identification: 12345, Age: 34,
		Address: "Calle 10", Phone: "+573001234567", Email: "juan@mail.com",
	})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}
	d, err := doctorSvc.Register(ctx, doctor.RegisterParams{
		Name: "Dra. María", Identification: 555, Age: 45,
		Address: "Avenida 5", Phone: "+573015550001", Email: "maria@sanvicente.com",
		Specialty: doctor.SpecialtyCardiology,
	})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}

	sender := &notification.MockEmailSender{ShouldFail: true, FailError: "smtp: connection refused"}
	recorder := notification.NewRecorder(sender, notification.NewTemplateEngine())
	svc := scheduling.NewService(
		&PatientDirectoryAdapter{svc: patientSvc},
		&DoctorDirectoryAdapter{svc: doctorSvc},
		scheduling.NewMemRepository(),
		&RecorderNotifier{recorder: recorder},
	)

	appt, err := svc.Register(ctx, scheduling.RegisterInput{
		PatientID:   p.ID,
		DoctorID:    d.ID,
		StartTime:   time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		ServiceType: scheduling.ServiceCardiologyConsultation,
		Reason:      "checkup",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if appt.Status != scheduling.StatusScheduled {
		t.Errorf("status = %q", appt.Status)
	}

	logs := recorder.ListLogs(ctx)
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].Status != notification.StatusNotSent {
		t.Errorf("log status = %q, want %q", logs[0].Status, notification.StatusNotSent)
	}
	if logs[0].Error == "" {
		t.Error("expected delivery error to be recorded")
	}
}

func TestRecorderNotifier(t *testing.T) {
	sender := &notification.MockEmailSender{}
	recorder := notification.NewRecorder(sender, notification.NewTemplateEngine())
	notifier := &RecorderNotifier{recorder: recorder}

	notifier.AppointmentBooked(context.Background(), scheduling.BookingNotice{
		Patient: scheduling.Party{Name: "Juan", Email: "juan@mail.com"},
		Doctor:  scheduling.Party{Name: "Dra. María"},
		Appointment: &scheduling.Appointment{
			StartTime: time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
			Reason:    "checkup",
		},
	})

	calls := sender.Calls()
	if len(calls) != 1 {
		t.Fatalf("sender called %d times, want 1", len(calls))
	}
	if calls[0].To != "juan@mail.com" {
		t.Errorf("recipient = %q", calls[0].To)
	}
	if !strings.Contains(calls[0].Body, "Dra. María") {
		t.Errorf("doctor missing from body:\n%s", calls[0].Body)
	}

	logs := recorder.ListLogs(context.Background())
	if len(logs) != 1 || logs[0].Status != notification.StatusSent {
		t.Errorf("logs = %+v", logs)
	}
}
