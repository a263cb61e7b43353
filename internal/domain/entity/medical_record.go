package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrescriptionItem is one line of a prescription
type PrescriptionItem struct {
	Medicine  string `json:"medicine"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// MedicalRecord is the outcome of a consultation
type MedicalRecord struct {
	ID               int                                   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID        uuid.UUID                             `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID         uuid.UUID                             `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID    *int                                  `gorm:"uniqueIndex" json:"appointment_id,omitempty"`
	VisitDate        time.Time                             `gorm:"not null;index" json:"visit_date"`
	ChiefComplaint   string                                `gorm:"type:text" json:"chief_complaint,omitempty"`
	Diagnosis        string                                `gorm:"type:varchar(255);not null;index" json:"diagnosis"`
	Symptoms         datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"symptoms"`
	Temperature      *float64                              `json:"temperature,omitempty"`
	BloodPressure    string                                `gorm:"type:varchar(20)" json:"blood_pressure,omitempty"`
	PulseRate        *int                                  `json:"pulse_rate,omitempty"`
	OxygenSaturation *float64                              `json:"oxygen_saturation,omitempty"`
	Prescription     datatypes.JSONSlice[PrescriptionItem] `gorm:"type:jsonb" json:"prescription"`
	TreatmentPlan    string                                `gorm:"type:text" json:"treatment_plan,omitempty"`
	LabTestsOrdered  datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"lab_tests_ordered"`
	FollowUpDate     *time.Time                            `gorm:"type:date" json:"follow_up_date,omitempty"`
	CreatedAt        time.Time                             `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment *Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
