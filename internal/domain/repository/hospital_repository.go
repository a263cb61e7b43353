package repository

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindByID(db *gorm.DB, id int) (*entity.Hospital, error)
	FindAll(db *gorm.DB, filter *entity.HospitalFilter) ([]entity.Hospital, error)
	Update(db *gorm.DB, hospital *entity.Hospital) error
	Delete(db *gorm.DB, id int) (int64, error)
	BedTotals(db *gorm.DB) (*entity.BedTotals, error)
	ZoneBedSummary(db *gorm.DB) ([]entity.ZoneBedSummary, error)
}
