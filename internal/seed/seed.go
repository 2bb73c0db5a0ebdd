// Package seed loads a small demo dataset through the real services so
// every invariant check runs on the way in.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sanvicente/frontdesk/internal/domain/doctor"
	"github.com/sanvicente/frontdesk/internal/domain/patient"
	"github.com/sanvicente/frontdesk/internal/domain/scheduling"
)

type Seeder struct {
	patients     *patient.Service
	doctors      *doctor.Service
	appointments *scheduling.Service
}

func New(patients *patient.Service, doctors *doctor.Service, appointments *scheduling.Service) *Seeder {
	return &Seeder{patients: patients, doctors: doctors, appointments: appointments}
}

// Run registers two patients, three doctors and five future appointments.
func (s *Seeder) Run(ctx context.Context) error {
	juan, err := s.patients.Register(ctx, patient.RegisterParams{
		Name:           "Juan Pérez",
		Identification: 12345,
		Age:            34,
		Address:        "Calle 10 #23-45, Medellín",
		Phone:          "+573001234567",
		Email:          "juan.perez@mail.com",
	})
	if err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}
	ana, err := s.patients.Register(ctx, patient.RegisterParams{
		Name:           "Ana Gómez",
		Identification: 67890,
		Age:            28,
		Address:        "Carrera 45 #12-30, Medellín",
		Phone:          "+573007654321",
		Email:          "ana.gomez@mail.com",
	})
	if err != nil {
		return fmt.Errorf("seed patient: %w", err)
	}

	maria, err := s.doctors.Register(ctx, doctor.RegisterParams{
		Name:           "Dra. María Rodríguez",
		Identification: 555,
		Age:            45,
		Address:        "Avenida El Poblado #5-60",
		Phone:          "+573015550001",
		Email:          "maria.rodriguez@sanvicente.com",
		Specialty:      doctor.SpecialtyCardiology,
	})
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}
	carlos, err := s.doctors.Register(ctx, doctor.RegisterParams{
		Name:           "Dr. Carlos Martínez",
		Identification: 777,
		Age:            39,
		Address:        "Calle 33 #74-15",
		Phone:          "+573017770002",
		Email:          "carlos.martinez@sanvicente.com",
		Specialty:      doctor.SpecialtyDermatology,
	})
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}
	laura, err := s.doctors.Register(ctx, doctor.RegisterParams{
		Name:           "Dra. Laura Sánchez",
		Identification: 888,
		Age:            51,
		Address:        "Transversal 39 #71-20",
		Phone:          "+573018880003",
		Email:          "laura.sanchez@sanvicente.com",
		Specialty:      doctor.SpecialtyNeurology,
	})
	if err != nil {
		return fmt.Errorf("seed doctor: %w", err)
	}

	// All slots start tomorrow or later so none is already in the past.
	day := func(offset, hour int) time.Time {
		t := time.Now().AddDate(0, 0, offset)
		return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	}

	bookings := []scheduling.RegisterInput{
		{
			PatientID: juan.ID, DoctorID: maria.ID,
			StartTime: day(1, 9), EndTime: day(1, 10),
			ServiceType: scheduling.ServiceCardiologyConsultation,
			Reason:      "Chest pain follow-up",
		},
		{
			PatientID: ana.ID, DoctorID: maria.ID,
			StartTime: day(1, 10), EndTime: day(1, 11),
			ServiceType: scheduling.ServiceCardiologyConsultation,
			Reason:      "Routine cardiac checkup",
		},
		{
			PatientID: juan.ID, DoctorID: carlos.ID,
			StartTime: day(2, 14), EndTime: day(2, 15),
			ServiceType: scheduling.ServiceDermatologyConsultation,
			Reason:      "Skin rash evaluation",
		},
		{
			PatientID: ana.ID, DoctorID: laura.ID,
			StartTime: day(3, 8), EndTime: day(3, 9),
			ServiceType: scheduling.ServiceNeurologyConsultation,
			Reason:      "Recurring migraines",
		},
		{
			PatientID: juan.ID, DoctorID: laura.ID,
			StartTime: day(4, 11), EndTime: day(4, 12),
			ServiceType: scheduling.ServiceGeneralConsultation,
			Reason:      "Annual physical",
		},
	}
	for _, in := range bookings {
		if _, err := s.appointments.Register(ctx, in); err != nil {
			return fmt.Errorf("seed appointment: %w", err)
		}
	}

	log.Info().
		Int("patients", 2).
		Int("doctors", 3).
		Int("appointments", len(bookings)).
		Msg("demo data loaded")
	return nil
}
