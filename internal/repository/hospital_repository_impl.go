package repository

import (
	"errors"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Create(hospital).Error
}

func (r *hospitalRepository) FindByID(db *gorm.DB, id int) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindAll(db *gorm.DB, filter *entity.HospitalFilter) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	query := db
	if filter != nil && filter.Zone != "" {
		query = query.Where("zone = ?", filter.Zone)
	}
	if err := query.Order("zone ASC, name ASC").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) Update(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Omit("Doctors", "Equipment", "Medicines").Save(hospital).Error
}

func (r *hospitalRepository) Delete(db *gorm.DB, id int) (int64, error) {
	return rowsAffected(db.Where("id = ?", id).Delete(&entity.Hospital{}))
}

func (r *hospitalRepository) BedTotals(db *gorm.DB) (*entity.BedTotals, error) {
	var totals entity.BedTotals
	err := db.Model(&entity.Hospital{}).
		Select(`COUNT(*) AS hospitals,
			COALESCE(SUM(total_beds), 0) AS total_beds,
			COALESCE(SUM(available_beds), 0) AS available_beds,
			COALESCE(SUM(icu_beds), 0) AS icu_beds,
			COALESCE(SUM(available_icu_beds), 0) AS available_icu_beds,
			COALESCE(SUM(ventilators), 0) AS ventilators,
			COALESCE(SUM(available_ventilators), 0) AS available_ventilators`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *hospitalRepository) ZoneBedSummary(db *gorm.DB) ([]entity.ZoneBedSummary, error) {
	var rows []entity.ZoneBedSummary
	err := db.Model(&entity.Hospital{}).
		Select("zone, COUNT(*) AS hospitals, COALESCE(SUM(total_beds), 0) AS total_beds, COALESCE(SUM(available_beds), 0) AS available_beds").
		Group("zone").
		Order("zone ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
