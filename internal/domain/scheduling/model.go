package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

// AppointmentStatus is the lifecycle state of an appointment. Cancelled
// is terminal; every other transition is accepted.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

var validStatuses = map[AppointmentStatus]bool{
	StatusScheduled: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true,
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool { return validStatuses[s] }

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (AppointmentStatus, error) {
	s := AppointmentStatus(raw)
	if !s.Valid() {
		return "", apperr.InvalidArgument("unknown appointment status %q", raw)
	}
	return s, nil
}

// ServiceType is the kind of medical service an appointment books.
type ServiceType string

const (
	ServiceGeneralConsultation     ServiceType = "general_consultation"
	ServiceCardiologyConsultation  ServiceType = "cardiology_consultation"
	ServiceDermatologyConsultation ServiceType = "dermatology_consultation"
	ServiceNeurologyConsultation   ServiceType = "neurology_consultation"
	ServicePediatrics              ServiceType = "pediatrics"
	ServiceSurgery                 ServiceType = "surgery"
	ServiceEmergencyCare           ServiceType = "emergency_care"
	ServiceLaboratoryAnalysis      ServiceType = "laboratory_analysis"
	ServiceRadiology               ServiceType = "radiology"
	ServiceUltrasound              ServiceType = "ultrasound"
	ServiceHospitalization         ServiceType = "hospitalization"
	ServiceNutritionConsultation   ServiceType = "nutrition_consultation"
	ServicePhysicalTherapy         ServiceType = "physical_therapy"
)

var validServiceTypes = map[ServiceType]bool{
	ServiceGeneralConsultation: true, ServiceCardiologyConsultation: true,
	ServiceDermatologyConsultation: true, ServiceNeurologyConsultation: true,
	ServicePediatrics: true, ServiceSurgery: true, ServiceEmergencyCare: true,
	ServiceLaboratoryAnalysis: true, ServiceRadiology: true, ServiceUltrasound: true,
	ServiceHospitalization: true, ServiceNutritionConsultation: true,
	ServicePhysicalTherapy: true,
}

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool { return validServiceTypes[t] }

// ParseServiceType validates a raw service type value.
func ParseServiceType(raw string) (ServiceType, error) {
	t := ServiceType(raw)
	if !t.Valid() {
		return "", apperr.InvalidArgument("unknown service type %q", raw)
	}
	return t, nil
}

// Appointment is one booked time range. It references its patient and
// doctor by ID and owns neither; cancellation is a status value, never a
// removal.
type Appointment struct {
	ID                 uuid.UUID         `json:"id"`
	PatientID          uuid.UUID         `json:"patient_id"`
	DoctorID           uuid.UUID         `json:"doctor_id"`
	StartTime          time.Time         `json:"start_time"`
	EndTime            time.Time         `json:"end_time"`
	ServiceType        ServiceType       `json:"service_type"`
	Reason             string            `json:"reason"`
	Status             AppointmentStatus `json:"status"`
	Notes              string            `json:"notes,omitempty"`
	CancellationReason *string           `json:"cancellation_reason,omitempty"`
	CancellationDate   *time.Time        `json:"cancellation_date,omitempty"`
}

// EntityID implements registry.Entity.
func (a *Appointment) EntityID() uuid.UUID { return a.ID }

// Overlaps reports whether the half-open range [a.StartTime, a.EndTime)
// intersects [start, end). Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}
