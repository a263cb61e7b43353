package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment types
const (
	AppointmentTypeConsultation = "consultation"
	AppointmentTypeFollowUp     = "follow-up"
	AppointmentTypeEmergency    = "emergency"
)

// Appointment links a patient to a doctor at a point in time
type Appointment struct {
	ID              int               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	AppointmentType string            `gorm:"type:varchar(20);not null;default:'consultation'" json:"appointment_type"`
	Symptoms        string            `gorm:"type:text" json:"symptoms,omitempty"`
	IsTelemedicine  bool              `gorm:"not null;default:false" json:"is_telemedicine"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	MedicalRecord *MedicalRecord `gorm:"foreignKey:AppointmentID" json:"medical_record,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if appointment is still open
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCompleted checks if the patient has been treated
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
