package entity

import (
	"time"

	"gorm.io/gorm"
)

// Medicine stock statuses
const (
	StockStatusAdequate = "adequate"
	StockStatusLow      = "low"
	StockStatusCritical = "critical"
)

// DefaultReorderLevel applies when a stock entry is created without one.
const DefaultReorderLevel = 100

// MedicineStock is hospital-scoped medicine inventory
type MedicineStock struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	HospitalID   int        `gorm:"not null;index" json:"hospital_id"`
	MedicineName string     `gorm:"type:varchar(255);not null;index" json:"medicine_name"`
	GenericName  string     `gorm:"type:varchar(255)" json:"generic_name,omitempty"`
	Category     string     `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Quantity     int        `gorm:"not null;default:0" json:"quantity"`
	Unit         string     `gorm:"type:varchar(30)" json:"unit,omitempty"`
	ReorderLevel int        `gorm:"not null;default:100" json:"reorder_level"`
	BatchNumber  string     `gorm:"type:varchar(50)" json:"batch_number,omitempty"`
	ExpiryDate   *time.Time `gorm:"type:date;index" json:"expiry_date,omitempty"`
	StockStatus  string     `gorm:"type:varchar(20);not null;default:'adequate';index" json:"stock_status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (MedicineStock) TableName() string {
	return "medicine_stock"
}

// ComputeStockStatus derives the stock status from quantity and reorder level.
func (m *MedicineStock) ComputeStockStatus() string {
	switch {
	case m.Quantity <= 0:
		return StockStatusCritical
	case m.Quantity < m.ReorderLevel:
		return StockStatusLow
	default:
		return StockStatusAdequate
	}
}

// IsExpired reports whether the batch expired before the given instant.
func (m *MedicineStock) IsExpired(at time.Time) bool {
	return m.ExpiryDate != nil && m.ExpiryDate.Before(at)
}

// BeforeSave keeps stock_status in step with the quantity.
func (m *MedicineStock) BeforeSave(tx *gorm.DB) error {
	m.StockStatus = m.ComputeStockStatus()
	return nil
}
