package repository

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type DiseaseOutbreakRepository interface {
	Create(db *gorm.DB, outbreak *entity.DiseaseOutbreak) error
	FindByID(db *gorm.DB, id int) (*entity.DiseaseOutbreak, error)
	FindAll(db *gorm.DB, filter *entity.OutbreakFilter) ([]entity.DiseaseOutbreak, int64, error)
	FindOpenByZone(db *gorm.DB, zone string) ([]entity.DiseaseOutbreak, error)
	Update(db *gorm.DB, outbreak *entity.DiseaseOutbreak) error
	Delete(db *gorm.DB, id int) (int64, error)
	ZoneSummary(db *gorm.DB) ([]entity.ZoneCaseCount, error)
}
