package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Username           string          `json:"username" validate:"required,min=3,max=80"`
	Email              string          `json:"email" validate:"required,email"`
	Password           string          `json:"password" validate:"required,min=8,max=72"`
	FullName           string          `json:"full_name" validate:"required,min=2,max=255"`
	Phone              string          `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	RegistrationNumber string          `json:"registration_number" validate:"required,max=50"`
	Specialization     string          `json:"specialization" validate:"required,max=100"`
	Qualification      string          `json:"qualification" validate:"omitempty,max=255"`
	HospitalID         *int            `json:"hospital_id" validate:"omitempty,gte=1"`
	ConsultationFee    decimal.Decimal `json:"consultation_fee"`
	AvailableDays      []string        `json:"available_days" validate:"omitempty,dive,weekday"`
	IsAvailable        *bool           `json:"is_available"`
}

type UpdateDoctorRequest struct {
	Email              string           `json:"email" validate:"omitempty,email"`
	Password           string           `json:"password" validate:"omitempty,min=8,max=72"`
	FullName           string           `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone              string           `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	RegistrationNumber string           `json:"registration_number" validate:"omitempty,max=50"`
	Specialization     string           `json:"specialization" validate:"omitempty,max=100"`
	Qualification      string           `json:"qualification" validate:"omitempty,max=255"`
	HospitalID         *int             `json:"hospital_id" validate:"omitempty,gte=1"`
	ConsultationFee    *decimal.Decimal `json:"consultation_fee"`
	AvailableDays      []string         `json:"available_days" validate:"omitempty,dive,weekday"`
	IsAvailable        *bool            `json:"is_available"`
	IsActive           *bool            `json:"is_active"`
}

// UpdateDoctorSelfRequest is what a doctor may change on their own profile
type UpdateDoctorSelfRequest struct {
	Phone           *string          `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	Qualification   *string          `json:"qualification" validate:"omitempty,max=255"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	AvailableDays   []string         `json:"available_days" validate:"omitempty,dive,weekday"`
	IsAvailable     *bool            `json:"is_available"`
}

// Response DTOs

type DoctorProfileResponse struct {
	RegistrationNumber string          `json:"registration_number"`
	Specialization     string          `json:"specialization"`
	Qualification      string          `json:"qualification,omitempty"`
	HospitalID         *int            `json:"hospital_id,omitempty"`
	HospitalName       string          `json:"hospital_name,omitempty"`
	ConsultationFee    decimal.Decimal `json:"consultation_fee"`
	AvailableDays      []string        `json:"available_days"`
	IsAvailable        bool            `json:"is_available"`
}

type DoctorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone,omitempty"`
	IsActive bool      `json:"is_active"`
	DoctorProfileResponse
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
