package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/domain/doctor"
	"github.com/sanvicente/frontdesk/internal/domain/identity"
	"github.com/sanvicente/frontdesk/internal/domain/patient"
	"github.com/sanvicente/frontdesk/internal/domain/scheduling"
)

type patientDirectory struct{ svc *patient.Service }

func (d patientDirectory) Lookup(ctx context.Context, id uuid.UUID) (scheduling.Party, error) {
	p, err := d.svc.Get(ctx, id)
	if err != nil {
		return scheduling.Party{}, err
	}
	return scheduling.Party{ID: p.ID, Name: p.Name, Email: p.Email}, nil
}

type doctorDirectory struct{ svc *doctor.Service }

func (d doctorDirectory) Lookup(ctx context.Context, id uuid.UUID) (scheduling.Party, error) {
	doc, err := d.svc.Get(ctx, id)
	if err != nil {
		return scheduling.Party{}, err
	}
	return scheduling.Party{ID: doc.ID, Name: doc.Name, Email: doc.Email}, nil
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	patientRepo := patient.NewMemRepository()
	doctorRepo := doctor.NewMemRepository()

	identitySvc := identity.NewService(
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

	patientSvc := patient.NewService(patientRepo, identitySvc)
	doctorSvc := doctor.NewService(doctorRepo, identitySvc)
	schedulingSvc := scheduling.NewService(
		patientDirectory{svc: patientSvc},
		doctorDirectory{svc: doctorSvc},
		scheduling.NewMemRepository(),
		nil,
	)

	if err := New(patientSvc, doctorSvc, schedulingSvc).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	patients, err := patientSvc.List(ctx)
	if err != nil {
		t.Fatalf("List patients: %v", err)
	}
	if len(patients) != 2 {
		t.Errorf("got %d patients, want 2", len(patients))
	}

	doctors, err := doctorSvc.List(ctx)
	if err != nil {
		t.Fatalf("List doctors: %v", err)
	}
	if len(doctors) != 3 {
		t.Errorf("got %d doctors, want 3", len(doctors))
	}

	appts, err := schedulingSvc.List(ctx)
	if err != nil {
		t.Fatalf("List appointments: %v", err)
	}
	if len(appts) != 5 {
		t.Errorf("got %d appointments, want 5", len(appts))
	}
	for _, a := range appts {
		if a.Status != scheduling.StatusScheduled {
			t.Errorf("appointment %s status = %q", a.ID, a.Status)
		}
	}

	// Running twice trips the identification uniqueness check.
	if err := New(patientSvc, doctorSvc, schedulingSvc).Run(ctx); err == nil {
		t.Error("expected error on second run")
	}
}
