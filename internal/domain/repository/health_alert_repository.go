package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthAlertRepository interface {
	Create(db *gorm.DB, alert *entity.HealthAlert) error
	FindByID(db *gorm.DB, id int) (*entity.HealthAlert, error)
	FindAll(db *gorm.DB, filter *entity.AlertFilter) ([]entity.HealthAlert, int64, error)
	FindLive(db *gorm.DB, at time.Time) ([]entity.HealthAlert, error)
	Update(db *gorm.DB, alert *entity.HealthAlert) error
	Delete(db *gorm.DB, id int) (int64, error)
}
