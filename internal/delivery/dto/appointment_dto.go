package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	AppointmentType string    `json:"appointment_type" validate:"omitempty,oneof=consultation follow-up emergency"`
	Symptoms        string    `json:"symptoms" validate:"omitempty,max=2000"`
	IsTelemedicine  bool      `json:"is_telemedicine"`
	Notes           string    `json:"notes" validate:"omitempty,max=2000"`
}

type PrescriptionItem struct {
	Medicine  string `json:"medicine" validate:"required,max=255"`
	Dosage    string `json:"dosage" validate:"required,max=100"`
	Frequency string `json:"frequency" validate:"omitempty,max=100"`
	Duration  string `json:"duration" validate:"omitempty,max=100"`
}

// TreatPatientRequest is the consultation outcome written by the doctor
type TreatPatientRequest struct {
	ChiefComplaint   string             `json:"chief_complaint" validate:"omitempty,max=1000"`
	Diagnosis        string             `json:"diagnosis" validate:"required,max=255"`
	Symptoms         []string           `json:"symptoms" validate:"omitempty,dive,required"`
	Temperature      *float64           `json:"temperature" validate:"omitempty,gte=30,lte=45"`
	BloodPressure    string             `json:"blood_pressure" validate:"omitempty,max=20"`
	PulseRate        *int               `json:"pulse_rate" validate:"omitempty,gte=20,lte=250"`
	OxygenSaturation *float64           `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	Prescription     []PrescriptionItem `json:"prescription" validate:"omitempty,dive"`
	TreatmentPlan    string             `json:"treatment_plan" validate:"omitempty,max=2000"`
	LabTestsOrdered  []string           `json:"lab_tests_ordered" validate:"omitempty,dive,required"`
	FollowUpDate     string             `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int       `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	AppointmentType string    `json:"appointment_type"`
	Symptoms        string    `json:"symptoms,omitempty"`
	IsTelemedicine  bool      `json:"is_telemedicine"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type MedicalRecordResponse struct {
	ID               int                `json:"id"`
	PatientID        uuid.UUID          `json:"patient_id"`
	PatientName      string             `json:"patient_name,omitempty"`
	DoctorID         uuid.UUID          `json:"doctor_id"`
	DoctorName       string             `json:"doctor_name,omitempty"`
	AppointmentID    *int               `json:"appointment_id,omitempty"`
	VisitDate        time.Time          `json:"visit_date"`
	ChiefComplaint   string             `json:"chief_complaint,omitempty"`
	Diagnosis        string             `json:"diagnosis"`
	Symptoms         []string           `json:"symptoms"`
	Temperature      *float64           `json:"temperature,omitempty"`
	BloodPressure    string             `json:"blood_pressure,omitempty"`
	PulseRate        *int               `json:"pulse_rate,omitempty"`
	OxygenSaturation *float64           `json:"oxygen_saturation,omitempty"`
	Prescription     []PrescriptionItem `json:"prescription"`
	TreatmentPlan    string             `json:"treatment_plan,omitempty"`
	LabTestsOrdered  []string           `json:"lab_tests_ordered"`
	FollowUpDate     string             `json:"follow_up_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

type TreatmentResponse struct {
	Appointment   AppointmentResponse   `json:"appointment"`
	MedicalRecord MedicalRecordResponse `json:"medical_record"`
}

// PatientHistoryResponse is a patient looked up by a doctor with their records
type PatientHistoryResponse struct {
	Patient PatientResponse         `json:"patient"`
	Records []MedicalRecordResponse `json:"records"`
	Total   int64                   `json:"total"`
}
