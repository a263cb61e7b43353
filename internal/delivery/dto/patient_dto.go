package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	QRCode                string   `json:"qr_code"`
	DateOfBirth           string   `json:"date_of_birth"`
	Age                   int      `json:"age"`
	Gender                string   `json:"gender"`
	BloodGroup            string   `json:"blood_group,omitempty"`
	Address               string   `json:"address,omitempty"`
	WardNumber            int      `json:"ward_number"`
	Zone                  string   `json:"zone"`
	AadharNumber          string   `json:"aadhar_number"`
	EmergencyContactName  string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string   `json:"emergency_contact_phone,omitempty"`
	Allergies             []string `json:"allergies"`
	ChronicConditions     []string `json:"chronic_conditions"`
	CurrentMedications    []string `json:"current_medications"`
	VaccinationRecords    []string `json:"vaccination_records"`
}

// PatientResponse represents a patient user with profile data
type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	PatientProfileResponse
}

// UpdatePatientProfileRequest carries the fields a citizen may edit.
// Nil fields are left unchanged; an empty list clears the list.
type UpdatePatientProfileRequest struct {
	FullName              *string  `json:"full_name" validate:"omitempty,min=2,max=255"`
	Email                 *string  `json:"email" validate:"omitempty,email"`
	Phone                 *string  `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	BloodGroup            *string  `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address               *string  `json:"address" validate:"omitempty,max=1000"`
	WardNumber            *int     `json:"ward_number" validate:"omitempty,gte=1"`
	Zone                  *string  `json:"zone" validate:"omitempty,min=1,max=50"`
	EmergencyContactName  *string  `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone *string  `json:"emergency_contact_phone" validate:"omitempty,numeric,min=10,max=15"`
	Allergies             []string `json:"allergies" validate:"omitempty,dive,required"`
	ChronicConditions     []string `json:"chronic_conditions" validate:"omitempty,dive,required"`
	CurrentMedications    []string `json:"current_medications" validate:"omitempty,dive,required"`
}
