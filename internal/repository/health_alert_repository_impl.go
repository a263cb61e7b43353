package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
)

type healthAlertRepository struct{}

func NewHealthAlertRepository() domainRepo.HealthAlertRepository {
	return &healthAlertRepository{}
}

func (r *healthAlertRepository) Create(db *gorm.DB, alert *entity.HealthAlert) error {
	return db.Create(alert).Error
}

func (r *healthAlertRepository) FindByID(db *gorm.DB, id int) (*entity.HealthAlert, error) {
	var alert entity.HealthAlert
	err := db.Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *healthAlertRepository) FindAll(db *gorm.DB, filter *entity.AlertFilter) ([]entity.HealthAlert, int64, error) {
	if filter == nil {
		filter = &entity.AlertFilter{}
	}
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.OnlyActive {
			db = db.Where("is_active = ?", true)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.HealthAlert{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []entity.HealthAlert
	err := db.Scopes(scope, paginate(filter.Page)).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// FindLive returns active alerts that have not expired at the given instant.
func (r *healthAlertRepository) FindLive(db *gorm.DB, at time.Time) ([]entity.HealthAlert, error) {
	var alerts []entity.HealthAlert
	err := db.Where("is_active = ? AND (expires_at IS NULL OR expires_at > ?)", true, at).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *healthAlertRepository) Update(db *gorm.DB, alert *entity.HealthAlert) error {
	return db.Save(alert).Error
}

func (r *healthAlertRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.HealthAlert{}))
}
