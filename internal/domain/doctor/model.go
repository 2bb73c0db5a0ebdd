package doctor

import (
	"github.com/sanvicente/frontdesk/internal/domain/person"
	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

// Specialty is a doctor's medical specialty.
type Specialty string

const (
	SpecialtyGeneral       Specialty = "general"
	SpecialtySurgery       Specialty = "surgery"
	SpecialtyDermatology   Specialty = "dermatology"
	SpecialtyDentistry     Specialty = "dentistry"
	SpecialtyOphthalmology Specialty = "ophthalmology"
	SpecialtyRadiology     Specialty = "radiology"
	SpecialtyCardiology    Specialty = "cardiology"
	SpecialtyNeurology     Specialty = "neurology"
	SpecialtyOncology      Specialty = "oncology"
	SpecialtyNutrition     Specialty = "nutrition"
	SpecialtyEmergency     Specialty = "emergency"
)

var validSpecialties = map[Specialty]bool{
	SpecialtyGeneral: true, SpecialtySurgery: true, SpecialtyDermatology: true,
	SpecialtyDentistry: true, SpecialtyOphthalmology: true, SpecialtyRadiology: true,
	SpecialtyCardiology: true, SpecialtyNeurology: true, SpecialtyOncology: true,
	SpecialtyNutrition: true, SpecialtyEmergency: true,
}

// Valid reports whether s is a known specialty.
func (s Specialty) Valid() bool { return validSpecialties[s] }

// ParseSpecialty validates a raw specialty value.
func ParseSpecialty(raw string) (Specialty, error) {
	s := Specialty(raw)
	if !s.Valid() {
		return "", apperr.InvalidArgument("unknown specialty %q", raw)
	}
	return s, nil
}

// Doctor is a registered hospital doctor. Active is a soft-delete
// marker: inactive doctors stay stored but are excluded from the
// listings used for new bookings.
type Doctor struct {
	person.Person
	Specialty Specialty `json:"specialty"`
	Active    bool      `json:"active"`
}
