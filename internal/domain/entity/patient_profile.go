package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"user_id"`
	QRCode                string                      `gorm:"column:qr_code;type:varchar(32);uniqueIndex;not null" json:"qr_code"`
	DateOfBirth           time.Time                   `gorm:"type:date;not null" json:"date_of_birth"`
	Gender                string                      `gorm:"type:varchar(10);not null" json:"gender"`
	BloodGroup            string                      `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	Address               string                      `gorm:"type:text" json:"address,omitempty"`
	WardNumber            int                         `gorm:"index" json:"ward_number"`
	Zone                  string                      `gorm:"type:varchar(50);index" json:"zone"`
	AadharNumber          string                      `gorm:"type:char(12);uniqueIndex;not null" json:"aadhar_number"`
	EmergencyContactName  string                      `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string                      `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	Allergies             datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"allergies"`
	ChronicConditions     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"chronic_conditions"`
	CurrentMedications    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"current_medications"`
	VaccinationRecords    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"vaccination_records"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// QRCodePrefix is prepended to the numeric patient code.
const QRCodePrefix = "SAKSHI-PAT"

// Age returns the patient's age in whole years at the given instant.
func (p *PatientProfile) Age(at time.Time) int {
	dob := p.DateOfBirth
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
