package repository

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindByQRCode(db *gorm.DB, code string) (*entity.PatientProfile, error)
	FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.PatientProfile, int64, error)
	Update(db *gorm.DB, profile *entity.PatientProfile) error
}
