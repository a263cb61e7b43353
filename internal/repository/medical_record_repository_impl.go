package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit("Patient", "Doctor", "Appointment").Create(record).Error
}

func (r *medicalRecordRepository) FindByID(db *gorm.DB, id int) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID, page entity.Page) ([]entity.MedicalRecord, int64, error) {
	var total int64
	if err := db.Model(&entity.MedicalRecord{}).Where("patient_id = ?", patientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.MedicalRecord
	err := db.Scopes(paginate(page)).
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("visit_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *medicalRecordRepository) CountByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.MedicalRecord{}).Where("patient_id = ?", patientID).Count(&total).Error
	return total, err
}

func (r *medicalRecordRepository) CountByDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.MedicalRecord{}).
		Where("doctor_id = ? AND visit_date >= ?", doctorID, since).
		Count(&total).Error
	return total, err
}

func (r *medicalRecordRepository) TopDiagnoses(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.DiagnosisCount, error) {
	var rows []entity.DiagnosisCount
	err := db.Model(&entity.MedicalRecord{}).
		Select("diagnosis, COUNT(*) AS count").
		Where("doctor_id = ? AND diagnosis <> ''", doctorID).
		Group("diagnosis").
		Order("count DESC, diagnosis ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
