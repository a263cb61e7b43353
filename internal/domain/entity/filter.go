package entity

import (
	"time"

	"github.com/google/uuid"
)

// Filters below are domain-level query parameters used by the repository
// layer so it stays decoupled from delivery DTOs.

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type HospitalFilter struct {
	Zone string
}

type DoctorFilter struct {
	Specialization string // ILIKE
	HospitalID     *int
	OnlyAvailable  bool
}

type PatientFilter struct {
	Zone string
	Page Page
}

type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    AppointmentStatus
	From      *time.Time
	To        *time.Time
}

type EquipmentFilter struct {
	HospitalID *int
	Status     string
	Page       Page
}

type MedicineFilter struct {
	HospitalID *int
	Status     string
	Category   string
	Page       Page
}

type OutbreakFilter struct {
	Zone   string
	Status string
	Page   Page
}

type CampaignFilter struct {
	Status string
	Page   Page
}

type AlertFilter struct {
	OnlyActive bool
	Page       Page
}

type MetricsFilter struct {
	From *time.Time
	To   *time.Time
	Zone string
	Page Page
}
