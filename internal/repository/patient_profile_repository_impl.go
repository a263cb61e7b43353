package repository

import (
	"errors"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	return db.Omit("User").Create(profile).Error
}

func (r *patientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) FindByQRCode(db *gorm.DB, code string) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.Preload("User").Where("qr_code = ?", code).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *patientProfileRepository) FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.PatientProfile, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter != nil && filter.Zone != "" {
			db = db.Where("zone = ?", filter.Zone)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.PatientProfile{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var page entity.Page
	if filter != nil {
		page = filter.Page
	}
	var profiles []entity.PatientProfile
	err := db.Scopes(scope, paginate(page)).
		Preload("User").
		Order("qr_code ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Update saves the profile together with its user row.
func (r *patientProfileRepository) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	if err := db.Omit("Role", "DoctorProfile", "PatientProfile").Save(&profile.User).Error; err != nil {
		return err
	}
	return db.Omit("User", "Appointments").Save(profile).Error
}
