package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(db *gorm.DB, equipment *entity.Equipment) error
	FindByID(db *gorm.DB, id int) (*entity.Equipment, error)
	FindAll(db *gorm.DB, filter *entity.EquipmentFilter) ([]entity.Equipment, int64, error)
	FindMaintenanceDue(db *gorm.DB, before time.Time) ([]entity.Equipment, error)
	Update(db *gorm.DB, equipment *entity.Equipment) error
	Delete(db *gorm.DB, id int) (int64, error)
	SummaryByStatus(db *gorm.DB) ([]entity.EquipmentStatusSummary, error)
}
