package repository

import (
	"errors"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
)

type diseaseOutbreakRepository struct{}

func NewDiseaseOutbreakRepository() domainRepo.DiseaseOutbreakRepository {
	return &diseaseOutbreakRepository{}
}

func (r *diseaseOutbreakRepository) Create(db *gorm.DB, outbreak *entity.DiseaseOutbreak) error {
	return db.Create(outbreak).Error
}

func (r *diseaseOutbreakRepository) FindByID(db *gorm.DB, id int) (*entity.DiseaseOutbreak, error) {
	var outbreak entity.DiseaseOutbreak
	err := db.Where("id = ?", id).First(&outbreak).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &outbreak, nil
}

func (r *diseaseOutbreakRepository) FindAll(db *gorm.DB, filter *entity.OutbreakFilter) ([]entity.DiseaseOutbreak, int64, error) {
	if filter == nil {
		filter = &entity.OutbreakFilter{}
	}
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Zone != "" {
			db = db.Where("zone = ?", filter.Zone)
		}
		if filter.Status != "" {
			db = db.Where("outbreak_status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.DiseaseOutbreak{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var outbreaks []entity.DiseaseOutbreak
	err := db.Scopes(scope, paginate(filter.Page)).
		Order("first_reported_date DESC, id DESC").
		Find(&outbreaks).Error
	if err != nil {
		return nil, 0, err
	}
	return outbreaks, total, nil
}

// FindOpenByZone returns outbreaks that are not contained. An empty zone
// matches every zone.
func (r *diseaseOutbreakRepository) FindOpenByZone(db *gorm.DB, zone string) ([]entity.DiseaseOutbreak, error) {
	var outbreaks []entity.DiseaseOutbreak
	query := db.Where("outbreak_status <> ?", entity.OutbreakStatusContained)
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if err := query.Order("risk_score DESC, active_cases DESC").Find(&outbreaks).Error; err != nil {
		return nil, err
	}
	return outbreaks, nil
}

func (r *diseaseOutbreakRepository) Update(db *gorm.DB, outbreak *entity.DiseaseOutbreak) error {
	return db.Save(outbreak).Error
}

func (r *diseaseOutbreakRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.DiseaseOutbreak{}))
}

func (r *diseaseOutbreakRepository) ZoneSummary(db *gorm.DB) ([]entity.ZoneCaseCount, error) {
	var rows []entity.ZoneCaseCount
	err := db.Model(&entity.DiseaseOutbreak{}).
		Select(`zone, COUNT(*) AS outbreaks,
			COALESCE(SUM(total_cases), 0) AS total_cases,
			COALESCE(SUM(active_cases), 0) AS active_cases,
			COALESCE(SUM(death_cases), 0) AS death_cases`).
		Group("zone").
		Order("total_cases DESC, zone ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
