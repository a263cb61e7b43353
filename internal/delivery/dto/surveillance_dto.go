package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type OutbreakRequest struct {
	DiseaseName       string  `json:"disease_name" validate:"required,max=100"`
	DiseaseType       string  `json:"disease_type" validate:"required,oneof=communicable non-communicable"`
	Zone              string  `json:"zone" validate:"required,max=50"`
	WardNumber        int     `json:"ward_number" validate:"gte=0"`
	TotalCases        int     `json:"total_cases" validate:"gte=0"`
	ActiveCases       int     `json:"active_cases" validate:"gte=0"`
	RecoveredCases    int     `json:"recovered_cases" validate:"gte=0"`
	DeathCases        int     `json:"death_cases" validate:"gte=0"`
	AlertLevel        string  `json:"alert_level" validate:"omitempty,oneof=normal warning critical"`
	OutbreakStatus    string  `json:"outbreak_status" validate:"omitempty,oneof=active monitoring contained"`
	FirstReportedDate string  `json:"first_reported_date" validate:"required,datetime=2006-01-02"`
	PredictedCases    int     `json:"predicted_cases" validate:"gte=0"`
	RiskScore         float64 `json:"risk_score" validate:"gte=0,lte=10"`
}

type CampaignRequest struct {
	CampaignName     string   `json:"campaign_name" validate:"required,max=255"`
	VaccineName      string   `json:"vaccine_name" validate:"required,max=255"`
	TargetGroup      string   `json:"target_group" validate:"omitempty,max=255"`
	StartDate        string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	TargetPopulation int      `json:"target_population" validate:"gte=0"`
	VaccinatedCount  int      `json:"vaccinated_count" validate:"gte=0"`
	Status           string   `json:"status" validate:"omitempty,oneof=planned ongoing completed"`
	Zones            []string `json:"zones" validate:"omitempty,dive,required"`
}

type CampaignProgressRequest struct {
	Vaccinated int `json:"vaccinated" validate:"required,gt=0"`
}

type AlertRequest struct {
	AlertType      string     `json:"alert_type" validate:"required,oneof=outbreak vaccination precaution emergency"`
	Title          string     `json:"title" validate:"required,max=255"`
	Message        string     `json:"message" validate:"required"`
	MessageMarathi string     `json:"message_marathi"`
	Severity       string     `json:"severity" validate:"omitempty,oneof=info warning critical"`
	Zones          []string   `json:"zones" validate:"omitempty,dive,required"`
	WardNumbers    []int      `json:"ward_numbers" validate:"omitempty,dive,gte=1"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// Response DTOs

type OutbreakResponse struct {
	ID                int       `json:"id"`
	DiseaseName       string    `json:"disease_name"`
	DiseaseType       string    `json:"disease_type"`
	Zone              string    `json:"zone"`
	WardNumber        int       `json:"ward_number"`
	TotalCases        int       `json:"total_cases"`
	ActiveCases       int       `json:"active_cases"`
	RecoveredCases    int       `json:"recovered_cases"`
	DeathCases        int       `json:"death_cases"`
	RecoveryRate      float64   `json:"recovery_rate"`
	AlertLevel        string    `json:"alert_level"`
	OutbreakStatus    string    `json:"outbreak_status"`
	FirstReportedDate string    `json:"first_reported_date"`
	PredictedCases    int       `json:"predicted_cases"`
	RiskScore         float64   `json:"risk_score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CampaignResponse struct {
	ID               int      `json:"id"`
	CampaignName     string   `json:"campaign_name"`
	VaccineName      string   `json:"vaccine_name"`
	TargetGroup      string   `json:"target_group,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	TargetPopulation int      `json:"target_population"`
	VaccinatedCount  int      `json:"vaccinated_count"`
	CoverageRate     float64  `json:"coverage_rate"`
	Status           string   `json:"status"`
	Zones            []string `json:"zones"`
}

type AlertResponse struct {
	ID             int        `json:"id"`
	AlertType      string     `json:"alert_type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	MessageMarathi string     `json:"message_marathi,omitempty"`
	Severity       string     `json:"severity"`
	Zones          []string   `json:"zones"`
	WardNumbers    []int      `json:"ward_numbers"`
	IsActive       bool       `json:"is_active"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
