package repository

import (
	"errors"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

// Create inserts the doctor profile; a non-zero embedded User is inserted
// first through the association.
func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("Hospital").Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Preload("Hospital").Where("user_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Preload("User").
		Preload("Hospital")

	if filter != nil {
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
		if filter.HospitalID != nil {
			query = query.Where("doctor_profiles.hospital_id = ?", *filter.HospitalID)
		}
		if filter.OnlyAvailable {
			query = query.Where("doctor_profiles.is_available = ? AND users.is_active = ?", true, true)
		}
	}

	if err := query.Order("users.full_name ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update saves the profile together with its user row.
func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	if err := db.Omit("Role", "DoctorProfile", "PatientProfile").Save(&profile.User).Error; err != nil {
		return err
	}
	return db.Omit("User", "Hospital", "Appointments").Save(profile).Error
}
