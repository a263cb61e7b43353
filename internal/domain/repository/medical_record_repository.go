package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(db *gorm.DB, id int) (*entity.MedicalRecord, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID, page entity.Page) ([]entity.MedicalRecord, int64, error)
	CountByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error)
	CountByDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) (int64, error)
	TopDiagnoses(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.DiagnosisCount, error)
}
