package dto

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
)

// Request DTOs

type UpsertMetricsRequest struct {
	Date                    string `json:"date" validate:"required,datetime=2006-01-02"`
	Zone                    string `json:"zone" validate:"required,max=50"`
	WardNumber              int    `json:"ward_number" validate:"gte=0"`
	TotalConsultations      int    `json:"total_consultations" validate:"gte=0"`
	EmergencyVisits         int    `json:"emergency_visits" validate:"gte=0"`
	NewDiseaseCases         int    `json:"new_disease_cases" validate:"gte=0"`
	VaccinationsGiven       int    `json:"vaccinations_given" validate:"gte=0"`
	CommunicableDiseases    int    `json:"communicable_diseases" validate:"gte=0"`
	NonCommunicableDiseases int    `json:"non_communicable_diseases" validate:"gte=0"`
}

// MetricsRangeRequest selects metrics rows by inclusive date range and zone.
type MetricsRangeRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Zone string `json:"zone" validate:"omitempty,max=50"`
}

// Response DTOs

type MetricsResponse struct {
	ID                      int       `json:"id"`
	Date                    string    `json:"date"`
	Zone                    string    `json:"zone"`
	WardNumber              int       `json:"ward_number"`
	TotalConsultations      int       `json:"total_consultations"`
	EmergencyVisits         int       `json:"emergency_visits"`
	NewDiseaseCases         int       `json:"new_disease_cases"`
	VaccinationsGiven       int       `json:"vaccinations_given"`
	CommunicableDiseases    int       `json:"communicable_diseases"`
	NonCommunicableDiseases int       `json:"non_communicable_diseases"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type MetricsExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MetricsSummaryResponse struct {
	Zones []entity.ZoneMetricsSummary `json:"zones"`
}

type MetricsTrendResponse struct {
	Days []entity.DailyMetrics `json:"days"`
}
