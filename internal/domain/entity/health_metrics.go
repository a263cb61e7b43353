package entity

import (
	"time"

	"gorm.io/datatypes"
)

// HealthMetrics is a daily rollup of activity in one zone/ward
type HealthMetrics struct {
	ID                      int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Date                    datatypes.Date `gorm:"not null;uniqueIndex:idx_health_metrics_day" json:"date"`
	Zone                    string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_health_metrics_day" json:"zone"`
	WardNumber              int            `gorm:"not null;default:0;uniqueIndex:idx_health_metrics_day" json:"ward_number"`
	TotalConsultations      int            `gorm:"not null;default:0" json:"total_consultations"`
	EmergencyVisits         int            `gorm:"not null;default:0" json:"emergency_visits"`
	NewDiseaseCases         int            `gorm:"not null;default:0" json:"new_disease_cases"`
	VaccinationsGiven       int            `gorm:"not null;default:0" json:"vaccinations_given"`
	CommunicableDiseases    int            `gorm:"not null;default:0" json:"communicable_diseases"`
	NonCommunicableDiseases int            `gorm:"not null;default:0" json:"non_communicable_diseases"`
	CreatedAt               time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthMetrics) TableName() string {
	return "health_metrics"
}
