package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type VaccinationCampaignRepository interface {
	Create(db *gorm.DB, campaign *entity.VaccinationCampaign) error
	FindByID(db *gorm.DB, id int) (*entity.VaccinationCampaign, error)
	FindAll(db *gorm.DB, filter *entity.CampaignFilter) ([]entity.VaccinationCampaign, int64, error)
	FindOngoing(db *gorm.DB, at time.Time) ([]entity.VaccinationCampaign, error)
	Update(db *gorm.DB, campaign *entity.VaccinationCampaign) error
	AddVaccinated(db *gorm.DB, id int, count int) (int64, error)
	Delete(db *gorm.DB, id int) (int64, error)
	Coverage(db *gorm.DB) (*entity.CampaignCoverage, error)
}
