package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"omitempty,oneof=admin doctor patient user citizen"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterPatientRequest is the citizen sign-up form
type RegisterPatientRequest struct {
	Username              string   `json:"username" validate:"required,min=3,max=80"`
	Email                 string   `json:"email" validate:"required,email"`
	Password              string   `json:"password" validate:"required,min=8,max=72"`
	FullName              string   `json:"full_name" validate:"required,min=2,max=255"`
	Phone                 string   `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	DateOfBirth           string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender                string   `json:"gender" validate:"required,oneof=Male Female Other"`
	BloodGroup            string   `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address               string   `json:"address" validate:"omitempty,max=1000"`
	WardNumber            int      `json:"ward_number" validate:"omitempty,gte=1"`
	Zone                  string   `json:"zone" validate:"required,max=50"`
	AadharNumber          string   `json:"aadhar_number" validate:"required,numeric,len=12"`
	EmergencyContactName  string   `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone string   `json:"emergency_contact_phone" validate:"omitempty,numeric,min=10,max=15"`
	Allergies             []string `json:"allergies" validate:"omitempty,dive,required"`
	ChronicConditions     []string `json:"chronic_conditions" validate:"omitempty,dive,required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Username       string                  `json:"username"`
	Email          string                  `json:"email"`
	FullName       string                  `json:"full_name"`
	Phone          string                  `json:"phone,omitempty"`
	Role           string                  `json:"role"`
	IsActive       bool                    `json:"is_active"`
	LastLoginAt    *time.Time              `json:"last_login_at,omitempty"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}
