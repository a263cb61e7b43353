package entity

import (
	"math"
	"time"
)

// Hospital is a municipal health facility with capacity counters
type Hospital struct {
	ID                   int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	HospitalType         string    `gorm:"type:varchar(100)" json:"hospital_type"`
	Zone                 string    `gorm:"type:varchar(50);index" json:"zone"`
	WardNumber           int       `json:"ward_number"`
	Phone                string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email                string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address              string    `gorm:"type:text" json:"address,omitempty"`
	TotalBeds            int       `gorm:"not null;default:0" json:"total_beds"`
	AvailableBeds        int       `gorm:"not null;default:0" json:"available_beds"`
	ICUBeds              int       `gorm:"column:icu_beds;not null;default:0" json:"icu_beds"`
	AvailableICUBeds     int       `gorm:"column:available_icu_beds;not null;default:0" json:"available_icu_beds"`
	Ventilators          int       `gorm:"not null;default:0" json:"ventilators"`
	AvailableVentilators int       `gorm:"not null;default:0" json:"available_ventilators"`
	AmbulanceCount       int       `gorm:"not null;default:0" json:"ambulance_count"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors   []DoctorProfile `gorm:"foreignKey:HospitalID" json:"doctors,omitempty"`
	Equipment []Equipment     `gorm:"foreignKey:HospitalID" json:"equipment,omitempty"`
	Medicines []MedicineStock `gorm:"foreignKey:HospitalID" json:"medicines,omitempty"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// OccupiedBeds returns the number of general beds in use.
func (h *Hospital) OccupiedBeds() int {
	return h.TotalBeds - h.AvailableBeds
}

// OccupancyRate returns the general bed occupancy percentage.
func (h *Hospital) OccupancyRate() float64 {
	return Percentage(h.OccupiedBeds(), h.TotalBeds)
}

// CapacityValid checks that every available counter lies within its total.
func (h *Hospital) CapacityValid() bool {
	return withinCapacity(h.AvailableBeds, h.TotalBeds) &&
		withinCapacity(h.AvailableICUBeds, h.ICUBeds) &&
		withinCapacity(h.AvailableVentilators, h.Ventilators) &&
		h.AmbulanceCount >= 0
}

func withinCapacity(available, total int) bool {
	return total >= 0 && available >= 0 && available <= total
}

// Percentage returns part/whole*100 rounded to two decimals, 0 for an empty whole.
func Percentage[T int | int64](part, whole T) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
