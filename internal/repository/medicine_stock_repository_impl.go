package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicineStockRepository struct{}

func NewMedicineStockRepository() domainRepo.MedicineStockRepository {
	return &medicineStockRepository{}
}

func (r *medicineStockRepository) Create(db *gorm.DB, stock *entity.MedicineStock) error {
	return db.Omit("Hospital").Create(stock).Error
}

func (r *medicineStockRepository) FindByID(db *gorm.DB, id int) (*entity.MedicineStock, error) {
	var stock entity.MedicineStock
	err := db.Preload("Hospital").Where("id = ?", id).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *medicineStockRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.MedicineStock, error) {
	var stock entity.MedicineStock
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *medicineStockRepository) FindAll(db *gorm.DB, filter *entity.MedicineFilter) ([]entity.MedicineStock, int64, error) {
	if filter == nil {
		filter = &entity.MedicineFilter{}
	}
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.HospitalID != nil {
			db = db.Where("hospital_id = ?", *filter.HospitalID)
		}
		if filter.Status != "" {
			db = db.Where("stock_status = ?", filter.Status)
		}
		if filter.Category != "" {
			db = db.Where("category ILIKE ?", filter.Category)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.MedicineStock{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.MedicineStock
	err := db.Scopes(scope, paginate(filter.Page)).
		Preload("Hospital").
		Order("medicine_name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *medicineStockRepository) FindLowStock(db *gorm.DB) ([]entity.MedicineStock, error) {
	var items []entity.MedicineStock
	err := db.Preload("Hospital").
		Where("stock_status IN ?", []string{entity.StockStatusLow, entity.StockStatusCritical}).
		Order("quantity ASC, medicine_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *medicineStockRepository) FindExpiring(db *gorm.DB, before time.Time) ([]entity.MedicineStock, error) {
	var items []entity.MedicineStock
	err := db.Preload("Hospital").
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *medicineStockRepository) Update(db *gorm.DB, stock *entity.MedicineStock) error {
	return db.Omit("Hospital").Save(stock).Error
}

func (r *medicineStockRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.MedicineStock{}))
}

func (r *medicineStockRepository) CountByStatus(db *gorm.DB) ([]entity.StatusCount, error) {
	var rows []entity.StatusCount
	err := db.Model(&entity.MedicineStock{}).
		Select("stock_status AS status, COUNT(*) AS count").
		Group("stock_status").
		Order("stock_status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
