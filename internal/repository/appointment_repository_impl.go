package repository

import (
	"errors"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor", "MedicalRecord").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").
		Preload("Doctor.User").
		Preload("MedicalRecord").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Preload("Doctor.User")

	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.From != nil {
			query = query.Where("appointment_date >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("appointment_date < ?", *filter.To)
		}
	}

	if err := query.Order("appointment_date ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// ExistsScheduledOnDay reports whether the patient already holds a scheduled
// appointment with the doctor on the calendar day of the given instant.
func (r *appointmentRepository) ExistsScheduledOnDay(db *gorm.DB, patientID, doctorID uuid.UUID, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND doctor_id = ? AND status = ?", patientID, doctorID, entity.AppointmentStatusScheduled).
		Where("appointment_date >= ? AND appointment_date < ?", start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error) {
	return rowsAffected(db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Update("status", status))
}

func (r *appointmentRepository) CountByStatusForDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.StatusCount, error) {
	var rows []entity.StatusCount
	err := db.Model(&entity.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("doctor_id = ?", doctorID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepository) CountDistinctPatients(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, entity.AppointmentStatusCompleted).
		Distinct("patient_id").
		Count(&total).Error
	return total, err
}

func (r *appointmentRepository) MonthlyCompleted(db *gorm.DB, doctorID uuid.UUID, since time.Time) ([]entity.MonthlyCount, error) {
	var rows []entity.MonthlyCount
	err := db.Model(&entity.Appointment{}).
		Select("to_char(date_trunc('month', appointment_date), 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("doctor_id = ? AND status = ? AND appointment_date >= ?", doctorID, entity.AppointmentStatusCompleted, since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
