package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"user_id"`
	RegistrationNumber string                      `gorm:"type:varchar(50);uniqueIndex;not null" json:"registration_number"`
	Specialization     string                      `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification      string                      `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	HospitalID         *int                        `gorm:"index" json:"hospital_id,omitempty"`
	ConsultationFee    decimal.Decimal             `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	AvailableDays      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"available_days"`
	IsAvailable        *bool                       `gorm:"not null;default:true" json:"is_available"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital     *Hospital     `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Available reports whether the doctor currently accepts appointments.
func (d *DoctorProfile) Available() bool {
	return (d.IsAvailable == nil || *d.IsAvailable) && d.User.Active()
}

// WorksOn reports whether the doctor consults on the weekday of t.
// An empty list means every day.
func (d *DoctorProfile) WorksOn(t time.Time) bool {
	if len(d.AvailableDays) == 0 {
		return true
	}
	day := t.Weekday().String()
	for _, available := range d.AvailableDays {
		if strings.EqualFold(strings.TrimSpace(available), day) {
			return true
		}
	}
	return false
}
