package entity

import "time"

// Alert levels shared by outbreaks
const (
	AlertLevelNormal   = "normal"
	AlertLevelWarning  = "warning"
	AlertLevelCritical = "critical"
)

// Outbreak statuses
const (
	OutbreakStatusActive     = "active"
	OutbreakStatusMonitoring = "monitoring"
	OutbreakStatusContained  = "contained"
)

// Disease types
const (
	DiseaseTypeCommunicable    = "communicable"
	DiseaseTypeNonCommunicable = "non-communicable"
)

// DiseaseOutbreak tracks case counts of a disease in a zone
type DiseaseOutbreak struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DiseaseName       string    `gorm:"type:varchar(100);not null;index" json:"disease_name"`
	DiseaseType       string    `gorm:"type:varchar(30);not null" json:"disease_type"`
	Zone              string    `gorm:"type:varchar(50);not null;index" json:"zone"`
	WardNumber        int       `json:"ward_number"`
	TotalCases        int       `gorm:"not null;default:0" json:"total_cases"`
	ActiveCases       int       `gorm:"not null;default:0" json:"active_cases"`
	RecoveredCases    int       `gorm:"not null;default:0" json:"recovered_cases"`
	DeathCases        int       `gorm:"not null;default:0" json:"death_cases"`
	AlertLevel        string    `gorm:"type:varchar(20);not null;default:'normal'" json:"alert_level"`
	OutbreakStatus    string    `gorm:"type:varchar(20);not null;default:'active';index" json:"outbreak_status"`
	FirstReportedDate time.Time `gorm:"type:date;not null" json:"first_reported_date"`
	PredictedCases    int       `gorm:"not null;default:0" json:"predicted_cases"`
	RiskScore         float64   `gorm:"not null;default:0" json:"risk_score"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DiseaseOutbreak) TableName() string {
	return "disease_outbreaks"
}

// CasesValid checks that the case buckets never exceed the total.
func (o *DiseaseOutbreak) CasesValid() bool {
	if o.TotalCases < 0 || o.ActiveCases < 0 || o.RecoveredCases < 0 || o.DeathCases < 0 {
		return false
	}
	return o.ActiveCases+o.RecoveredCases+o.DeathCases <= o.TotalCases
}

// IsContained reports whether the outbreak is closed.
func (o *DiseaseOutbreak) IsContained() bool {
	return o.OutbreakStatus == OutbreakStatusContained
}

// RecoveryRate returns recovered cases as a percentage of total cases.
func (o *DiseaseOutbreak) RecoveryRate() float64 {
	return Percentage(o.RecoveredCases, o.TotalCases)
}
