package dto

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
)

// Request DTOs

type HospitalRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	HospitalType         string `json:"hospital_type" validate:"omitempty,max=100"`
	Zone                 string `json:"zone" validate:"required,max=50"`
	WardNumber           int    `json:"ward_number" validate:"gte=0"`
	Phone                string `json:"phone" validate:"omitempty,max=20"`
	Email                string `json:"email" validate:"omitempty,email"`
	Address              string `json:"address" validate:"omitempty,max=1000"`
	TotalBeds            int    `json:"total_beds" validate:"gte=0"`
	AvailableBeds        int    `json:"available_beds" validate:"gte=0"`
	ICUBeds              int    `json:"icu_beds" validate:"gte=0"`
	AvailableICUBeds     int    `json:"available_icu_beds" validate:"gte=0"`
	Ventilators          int    `json:"ventilators" validate:"gte=0"`
	AvailableVentilators int    `json:"available_ventilators" validate:"gte=0"`
	AmbulanceCount       int    `json:"ambulance_count" validate:"gte=0"`
}

// UpdateBedsRequest changes capacity counters. Nil fields keep their value.
type UpdateBedsRequest struct {
	TotalBeds            *int `json:"total_beds" validate:"omitempty,gte=0"`
	AvailableBeds        *int `json:"available_beds" validate:"omitempty,gte=0"`
	ICUBeds              *int `json:"icu_beds" validate:"omitempty,gte=0"`
	AvailableICUBeds     *int `json:"available_icu_beds" validate:"omitempty,gte=0"`
	Ventilators          *int `json:"ventilators" validate:"omitempty,gte=0"`
	AvailableVentilators *int `json:"available_ventilators" validate:"omitempty,gte=0"`
	AmbulanceCount       *int `json:"ambulance_count" validate:"omitempty,gte=0"`
}

// Response DTOs

type HospitalResponse struct {
	ID                   int       `json:"id"`
	Name                 string    `json:"name"`
	HospitalType         string    `json:"hospital_type,omitempty"`
	Zone                 string    `json:"zone"`
	WardNumber           int       `json:"ward_number"`
	Phone                string    `json:"phone,omitempty"`
	Email                string    `json:"email,omitempty"`
	Address              string    `json:"address,omitempty"`
	TotalBeds            int       `json:"total_beds"`
	AvailableBeds        int       `json:"available_beds"`
	OccupiedBeds         int       `json:"occupied_beds"`
	OccupancyRate        float64   `json:"occupancy_rate"`
	ICUBeds              int       `json:"icu_beds"`
	AvailableICUBeds     int       `json:"available_icu_beds"`
	Ventilators          int       `json:"ventilators"`
	AvailableVentilators int       `json:"available_ventilators"`
	AmbulanceCount       int       `json:"ambulance_count"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type BedTotalsResponse struct {
	entity.BedTotals
	OccupiedBeds  int64   `json:"occupied_beds"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// BedAvailabilityResponse is the per-hospital occupancy board with city totals
type BedAvailabilityResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Totals    BedTotalsResponse  `json:"totals"`
}
