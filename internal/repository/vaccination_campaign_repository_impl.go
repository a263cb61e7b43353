package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
)

type vaccinationCampaignRepository struct{}

func NewVaccinationCampaignRepository() domainRepo.VaccinationCampaignRepository {
	return &vaccinationCampaignRepository{}
}

func (r *vaccinationCampaignRepository) Create(db *gorm.DB, campaign *entity.VaccinationCampaign) error {
	return db.Create(campaign).Error
}

func (r *vaccinationCampaignRepository) FindByID(db *gorm.DB, id int) (*entity.VaccinationCampaign, error) {
	var campaign entity.VaccinationCampaign
	err := db.Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *vaccinationCampaignRepository) FindAll(db *gorm.DB, filter *entity.CampaignFilter) ([]entity.VaccinationCampaign, int64, error) {
	if filter == nil {
		filter = &entity.CampaignFilter{}
	}
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.VaccinationCampaign{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []entity.VaccinationCampaign
	err := db.Scopes(scope, paginate(filter.Page)).
		Order("start_date DESC, id DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// FindOngoing returns ongoing campaigns that have not ended at the given date.
func (r *vaccinationCampaignRepository) FindOngoing(db *gorm.DB, at time.Time) ([]entity.VaccinationCampaign, error) {
	var campaigns []entity.VaccinationCampaign
	err := db.Where("status = ? AND end_date >= ?", entity.CampaignStatusOngoing, at.Format("2006-01-02")).
		Order("end_date ASC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *vaccinationCampaignRepository) Update(db *gorm.DB, campaign *entity.VaccinationCampaign) error {
	return db.Save(campaign).Error
}

func (r *vaccinationCampaignRepository) AddVaccinated(db *gorm.DB, id int, count int) (int64, error) {
	return rowsAffected(db.Model(&entity.VaccinationCampaign{}).
		Where("id = ?", id).
		Update("vaccinated_count", gorm.Expr("vaccinated_count + ?", count)))
}

func (r *vaccinationCampaignRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.VaccinationCampaign{}))
}

func (r *vaccinationCampaignRepository) Coverage(db *gorm.DB) (*entity.CampaignCoverage, error) {
	var coverage entity.CampaignCoverage
	err := db.Model(&entity.VaccinationCampaign{}).
		Select("COUNT(*) AS campaigns, COALESCE(SUM(target_population), 0) AS target_population, COALESCE(SUM(vaccinated_count), 0) AS vaccinated").
		Scan(&coverage).Error
	if err != nil {
		return nil, err
	}
	return &coverage, nil
}
