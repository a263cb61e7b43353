package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
)

type equipmentRepository struct{}

func NewEquipmentRepository() domainRepo.EquipmentRepository {
	return &equipmentRepository{}
}

func (r *equipmentRepository) Create(db *gorm.DB, equipment *entity.Equipment) error {
	return db.Omit("Hospital").Create(equipment).Error
}

func (r *equipmentRepository) FindByID(db *gorm.DB, id int) (*entity.Equipment, error) {
	var equipment entity.Equipment
	err := db.Preload("Hospital").Where("id = ?", id).First(&equipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) FindAll(db *gorm.DB, filter *entity.EquipmentFilter) ([]entity.Equipment, int64, error) {
	if filter == nil {
		filter = &entity.EquipmentFilter{}
	}
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.HospitalID != nil {
			db = db.Where("hospital_id = ?", *filter.HospitalID)
		}
		if filter.Status != "" {
			db = db.Where("health_status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := db.Model(&entity.Equipment{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Equipment
	err := db.Scopes(scope, paginate(filter.Page)).
		Preload("Hospital").
		Order("hospital_id ASC, equipment_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *equipmentRepository) FindMaintenanceDue(db *gorm.DB, before time.Time) ([]entity.Equipment, error) {
	var items []entity.Equipment
	err := db.Preload("Hospital").
		Where("next_maintenance_date IS NOT NULL AND next_maintenance_date <= ?", before).
		Order("next_maintenance_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *equipmentRepository) Update(db *gorm.DB, equipment *entity.Equipment) error {
	return db.Omit("Hospital").Save(equipment).Error
}

func (r *equipmentRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.Equipment{}))
}

func (r *equipmentRepository) SummaryByStatus(db *gorm.DB) ([]entity.EquipmentStatusSummary, error) {
	var rows []entity.EquipmentStatusSummary
	err := db.Model(&entity.Equipment{}).
		Select("health_status AS status, COUNT(*) AS items, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(working_condition), 0) AS working").
		Group("health_status").
		Order("health_status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
