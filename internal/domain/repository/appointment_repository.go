package repository

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	ExistsScheduledOnDay(db *gorm.DB, patientID, doctorID uuid.UUID, day time.Time) (bool, error)
	// UpdateStatus moves a scheduled appointment to the given status and
	// returns the number of rows changed (0 when it was no longer scheduled).
	UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error)
	CountByStatusForDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.StatusCount, error)
	CountDistinctPatients(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	MonthlyCompleted(db *gorm.DB, doctorID uuid.UUID, since time.Time) ([]entity.MonthlyCount, error)
}
