package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicineStockRepository interface {
	Create(db *gorm.DB, stock *entity.MedicineStock) error
	FindByID(db *gorm.DB, id int) (*entity.MedicineStock, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.MedicineStock, error)
	FindAll(db *gorm.DB, filter *entity.MedicineFilter) ([]entity.MedicineStock, int64, error)
	FindLowStock(db *gorm.DB) ([]entity.MedicineStock, error)
	FindExpiring(db *gorm.DB, before time.Time) ([]entity.MedicineStock, error)
	Update(db *gorm.DB, stock *entity.MedicineStock) error
	Delete(db *gorm.DB, id int) (int64, error)
	CountByStatus(db *gorm.DB) ([]entity.StatusCount, error)
}
