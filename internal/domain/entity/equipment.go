package entity

import (
	"time"

	"gorm.io/gorm"
)

// Equipment health statuses
const (
	EquipmentStatusGood     = "good"
	EquipmentStatusWarning  = "warning"
	EquipmentStatusCritical = "critical"
)

// workingThreshold is the share of working units below which equipment is flagged.
const workingThreshold = 0.8

// Equipment is hospital-scoped inventory of medical devices
type Equipment struct {
	ID                  int        `gorm:"primaryKey;autoIncrement" json:"id"`
	HospitalID          int        `gorm:"not null;index" json:"hospital_id"`
	EquipmentName       string     `gorm:"type:varchar(255);not null" json:"equipment_name"`
	EquipmentType       string     `gorm:"type:varchar(100);index" json:"equipment_type"`
	Quantity            int        `gorm:"not null;default:0" json:"quantity"`
	WorkingCondition    int        `gorm:"not null;default:0" json:"working_condition"`
	UnderMaintenance    int        `gorm:"not null;default:0" json:"under_maintenance"`
	OutOfService        int        `gorm:"not null;default:0" json:"out_of_service"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time `gorm:"index" json:"next_maintenance_date,omitempty"`
	HealthStatus        string     `gorm:"type:varchar(20);not null;default:'good';index" json:"health_status"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// ComputeHealthStatus derives the health status from the unit counters.
func (e *Equipment) ComputeHealthStatus() string {
	switch {
	case e.Quantity <= 0:
		return EquipmentStatusGood
	case e.WorkingCondition <= 0:
		return EquipmentStatusCritical
	case float64(e.WorkingCondition) >= float64(e.Quantity)*workingThreshold:
		return EquipmentStatusGood
	default:
		return EquipmentStatusWarning
	}
}

// CountsValid checks that the condition buckets do not exceed the quantity.
func (e *Equipment) CountsValid() bool {
	if e.Quantity < 0 || e.WorkingCondition < 0 || e.UnderMaintenance < 0 || e.OutOfService < 0 {
		return false
	}
	return e.WorkingCondition+e.UnderMaintenance+e.OutOfService <= e.Quantity
}

// BeforeSave keeps health_status in step with the counters.
func (e *Equipment) BeforeSave(tx *gorm.DB) error {
	e.HealthStatus = e.ComputeHealthStatus()
	return nil
}
