package dto

import (
	"time"
)

// Request DTOs

type EquipmentRequest struct {
	HospitalID          int    `json:"hospital_id" validate:"required,gte=1"`
	EquipmentName       string `json:"equipment_name" validate:"required,max=255"`
	EquipmentType       string `json:"equipment_type" validate:"omitempty,max=100"`
	Quantity            int    `json:"quantity" validate:"gte=0"`
	WorkingCondition    int    `json:"working_condition" validate:"gte=0"`
	UnderMaintenance    int    `json:"under_maintenance" validate:"gte=0"`
	OutOfService        int    `json:"out_of_service" validate:"gte=0"`
	LastMaintenanceDate string `json:"last_maintenance_date" validate:"omitempty,datetime=2006-01-02"`
	NextMaintenanceDate string `json:"next_maintenance_date" validate:"omitempty,datetime=2006-01-02"`
}

type MedicineRequest struct {
	HospitalID   int    `json:"hospital_id" validate:"required,gte=1"`
	MedicineName string `json:"medicine_name" validate:"required,max=255"`
	GenericName  string `json:"generic_name" validate:"omitempty,max=255"`
	Category     string `json:"category" validate:"omitempty,max=100"`
	Quantity     int    `json:"quantity" validate:"gte=0"`
	Unit         string `json:"unit" validate:"omitempty,max=30"`
	ReorderLevel *int   `json:"reorder_level" validate:"omitempty,gte=0"`
	BatchNumber  string `json:"batch_number" validate:"omitempty,max=50"`
	ExpiryDate   string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// AdjustStockRequest adds (positive) or removes (negative) units.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,min=-1000000,max=1000000"`
}

// Response DTOs

type EquipmentResponse struct {
	ID                  int       `json:"id"`
	HospitalID          int       `json:"hospital_id"`
	HospitalName        string    `json:"hospital_name,omitempty"`
	EquipmentName       string    `json:"equipment_name"`
	EquipmentType       string    `json:"equipment_type,omitempty"`
	Quantity            int       `json:"quantity"`
	WorkingCondition    int       `json:"working_condition"`
	UnderMaintenance    int       `json:"under_maintenance"`
	OutOfService        int       `json:"out_of_service"`
	LastMaintenanceDate string    `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate string    `json:"next_maintenance_date,omitempty"`
	HealthStatus        string    `json:"health_status"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type MedicineResponse struct {
	ID           int       `json:"id"`
	HospitalID   int       `json:"hospital_id"`
	HospitalName string    `json:"hospital_name,omitempty"`
	MedicineName string    `json:"medicine_name"`
	GenericName  string    `json:"generic_name,omitempty"`
	Category     string    `json:"category,omitempty"`
	Quantity     int       `json:"quantity"`
	Unit         string    `json:"unit,omitempty"`
	ReorderLevel int       `json:"reorder_level"`
	BatchNumber  string    `json:"batch_number,omitempty"`
	ExpiryDate   string    `json:"expiry_date,omitempty"`
	StockStatus  string    `json:"stock_status"`
	IsExpired    bool      `json:"is_expired"`
	UpdatedAt    time.Time `json:"updated_at"`
}
