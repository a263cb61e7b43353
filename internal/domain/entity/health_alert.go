package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Alert types
const (
	AlertTypeOutbreak    = "outbreak"
	AlertTypeVaccination = "vaccination"
	AlertTypePrecaution  = "precaution"
	AlertTypeEmergency   = "emergency"
)

// Alert severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// HealthAlert is a public advisory, optionally restricted to zones and wards
type HealthAlert struct {
	ID             int                         `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertType      string                      `gorm:"type:varchar(30);not null;index" json:"alert_type"`
	Title          string                      `gorm:"type:varchar(255);not null" json:"title"`
	Message        string                      `gorm:"type:text;not null" json:"message"`
	MessageMarathi string                      `gorm:"type:text" json:"message_marathi,omitempty"`
	Severity       string                      `gorm:"type:varchar(20);not null;default:'info'" json:"severity"`
	Zones          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"zones"`
	WardNumbers    datatypes.JSONSlice[int]    `gorm:"type:jsonb" json:"ward_numbers"`
	IsActive       bool                        `gorm:"not null;index" json:"is_active"`
	CreatedBy      *uuid.UUID                  `gorm:"type:uuid" json:"created_by,omitempty"`
	ExpiresAt      *time.Time                  `json:"expires_at,omitempty"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthAlert) TableName() string {
	return "health_alerts"
}

// IsLive reports whether the alert is active and not yet expired.
func (a *HealthAlert) IsLive(at time.Time) bool {
	return a.IsActive && (a.ExpiresAt == nil || a.ExpiresAt.After(at))
}

// AppliesToZone reports whether citizens of the zone should see the alert.
func (a *HealthAlert) AppliesToZone(zone string) bool {
	return zoneListContains(a.Zones, zone)
}

func zoneListContains(zones []string, zone string) bool {
	if len(zones) == 0 || zone == "" {
		return true
	}
	for _, z := range zones {
		if strings.EqualFold(strings.TrimSpace(z), strings.TrimSpace(zone)) {
			return true
		}
	}
	return false
}

// AlertEvent is the broadcast payload published when an alert goes live.
type AlertEvent struct {
	AlertID     int        `json:"alert_id"`
	AlertType   string     `json:"alert_type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Severity    string     `json:"severity"`
	Zones       []string   `json:"zones"`
	WardNumbers []int      `json:"ward_numbers"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
}

// NewAlertEvent builds the broadcast payload of an alert.
func NewAlertEvent(a *HealthAlert, at time.Time) AlertEvent {
	return AlertEvent{
		AlertID:     a.ID,
		AlertType:   a.AlertType,
		Title:       a.Title,
		Message:     a.Message,
		Severity:    a.Severity,
		Zones:       a.Zones,
		WardNumbers: a.WardNumbers,
		ExpiresAt:   a.ExpiresAt,
		PublishedAt: at,
	}
}
