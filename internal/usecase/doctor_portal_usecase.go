package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DefaultAnalyticsMonths = 6
	DefaultTopDiagnoses    = 5
	MaxAnalyticsMonths     = 120
	MaxTopDiagnoses        = 50
)

var ErrInvalidFollowUpDate = errors.New("follow-up date must not be before the visit")

type DoctorPortalUsecase interface {
	Dashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
	ListAppointments(ctx context.Context, doctorID uuid.UUID, status entity.AppointmentStatus, day *time.Time) ([]dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, doctorID uuid.UUID, appointmentID int) (*dto.AppointmentResponse, error)
	TreatPatient(ctx context.Context, doctorID uuid.UUID, appointmentID int, req *dto.TreatPatientRequest) (*dto.TreatmentResponse, error)
	PatientRecords(ctx context.Context, patientID uuid.UUID, page entity.Page) (*dto.PatientHistoryResponse, error)
	PatientByQRCode(ctx context.Context, code string, page entity.Page) (*dto.PatientHistoryResponse, error)
	Analytics(ctx context.Context, doctorID uuid.UUID, months, top int) (*dto.DoctorAnalyticsResponse, error)
}

type doctorPortalUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	appointmentRepo    repository.AppointmentRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	outbreakRepo       repository.DiseaseOutbreakRepository
	auditService       service.AuditService
	now                func() time.Time
}

func NewDoctorPortalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	outbreakRepo repository.DiseaseOutbreakRepository,
	auditService service.AuditService,
) DoctorPortalUsecase {
	return &doctorPortalUsecase{
		db:                 db,
		log:                log,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		appointmentRepo:    appointmentRepo,
		medicalRecordRepo:  medicalRecordRepo,
		outbreakRepo:       outbreakRepo,
		auditService:       auditService,
		now:                time.Now,
	}
}

func (u *doctorPortalUsecase) Dashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := u.now()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	var (
		appointments []entity.Appointment
		counts       []entity.StatusCount
		treated      int64
		records      int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		appointments, err = u.appointmentRepo.FindAll(u.db.WithContext(gctx), &entity.AppointmentFilter{
			DoctorID: &doctorID,
			From:     &today,
			To:       &tomorrow,
		})
		return err
	})
	g.Go(func() (err error) {
		counts, err = u.appointmentRepo.CountByStatusForDoctor(u.db.WithContext(gctx), doctorID)
		return err
	})
	g.Go(func() (err error) {
		treated, err = u.appointmentRepo.CountDistinctPatients(u.db.WithContext(gctx), doctorID)
		return err
	})
	g.Go(func() (err error) {
		records, err = u.medicalRecordRepo.CountByDoctorSince(u.db.WithContext(gctx), doctorID, startOfMonth(now))
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to build doctor dashboard: %+v", err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Doctor:            *converter.DoctorProfileToResponse(doctor),
		TodayAppointments: converter.AppointmentsToResponses(appointments),
		AppointmentCounts: nonNilSlice(counts),
		PatientsTreated:   treated,
		RecordsThisMonth:  records,
	}, nil
}

func (u *doctorPortalUsecase) ListAppointments(ctx context.Context, doctorID uuid.UUID, status entity.AppointmentStatus, day *time.Time) ([]dto.AppointmentResponse, error) {
	filter := &entity.AppointmentFilter{DoctorID: &doctorID, Status: status}
	if day != nil {
		from := startOfDay(*day)
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *doctorPortalUsecase) CancelAppointment(ctx context.Context, doctorID uuid.UUID, appointmentID int) (*dto.AppointmentResponse, error) {
	return cancelAppointment(ctx, u.db, u.log, u.appointmentRepo, u.auditService, appointmentID, doctorID, func(a *entity.Appointment) bool {
		return a.DoctorID == doctorID
	})
}

// TreatPatient writes the consultation record and completes the appointment
// in one transaction.
func (u *doctorPortalUsecase) TreatPatient(ctx context.Context, doctorID uuid.UUID, appointmentID int, req *dto.TreatPatientRequest) (*dto.TreatmentResponse, error) {
	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}
	visit := u.now()
	if followUp != nil && followUp.Before(startOfDay(visit)) {
		return nil, ErrInvalidFollowUpDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	record := &entity.MedicalRecord{
		PatientID:        appointment.PatientID,
		DoctorID:         doctorID,
		AppointmentID:    &appointment.ID,
		VisitDate:        visit,
		ChiefComplaint:   req.ChiefComplaint,
		Diagnosis:        req.Diagnosis,
		Symptoms:         req.Symptoms,
		Temperature:      req.Temperature,
		BloodPressure:    req.BloodPressure,
		PulseRate:        req.PulseRate,
		OxygenSaturation: req.OxygenSaturation,
		Prescription:     converter.PrescriptionFromRequest(req.Prescription),
		TreatmentPlan:    req.TreatmentPlan,
		LabTestsOrdered:  req.LabTestsOrdered,
		FollowUpDate:     followUp,
	}
	if record.ChiefComplaint == "" {
		record.ChiefComplaint = appointment.Symptoms
	}

	if err := u.medicalRecordRepo.Create(tx, record); err != nil {
		if isDuplicateKeyError(err, "") {
			return nil, ErrAppointmentNotScheduled
		}
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	affectedRows, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrAppointmentNotScheduled
	}

	appointment.Complete()
	record.Patient = appointment.Patient
	record.Doctor = appointment.Doctor
	response := &dto.TreatmentResponse{
		Appointment:   *converter.AppointmentToResponse(appointment),
		MedicalRecord: *converter.MedicalRecordToResponse(record),
	}
	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionAppointmentTreat, "medical_record", strconv.Itoa(record.ID), response.MedicalRecord); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient treated: appointment=%d, record=%d, doctor=%s", appointmentID, record.ID, doctorID)
	return response, nil
}

func (u *doctorPortalUsecase) PatientRecords(ctx context.Context, patientID uuid.UUID, page entity.Page) (*dto.PatientHistoryResponse, error) {
	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return u.history(ctx, patient, page)
}

func (u *doctorPortalUsecase) PatientByQRCode(ctx context.Context, code string, page entity.Page) (*dto.PatientHistoryResponse, error) {
	patient, err := u.patientProfileRepo.FindByQRCode(u.db.WithContext(ctx), code)
	if err != nil {
		u.log.Warnf("Failed to find patient by QR code: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return u.history(ctx, patient, page)
}

func (u *doctorPortalUsecase) history(ctx context.Context, patient *entity.PatientProfile, page entity.Page) (*dto.PatientHistoryResponse, error) {
	records, total, err := u.medicalRecordRepo.FindByPatient(u.db.WithContext(ctx), patient.UserID, page)
	if err != nil {
		u.log.Warnf("Failed to find medical records for patient %s: %+v", patient.UserID, err)
		return nil, err
	}

	return &dto.PatientHistoryResponse{
		Patient: *converter.PatientProfileToResponse(patient),
		Records: converter.MedicalRecordsToResponses(records),
		Total:   total,
	}, nil
}

func (u *doctorPortalUsecase) Analytics(ctx context.Context, doctorID uuid.UUID, months, top int) (*dto.DoctorAnalyticsResponse, error) {
	if months <= 0 {
		months = DefaultAnalyticsMonths
	}
	months = min(months, MaxAnalyticsMonths)
	if top <= 0 {
		top = DefaultTopDiagnoses
	}
	top = min(top, MaxTopDiagnoses)
	since := startOfMonth(u.now()).AddDate(0, -(months - 1), 0)

	var (
		monthly   []entity.MonthlyCount
		diagnoses []entity.DiagnosisCount
		zoneCases []entity.ZoneCaseCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthly, err = u.appointmentRepo.MonthlyCompleted(u.db.WithContext(gctx), doctorID, since)
		return err
	})
	g.Go(func() (err error) {
		diagnoses, err = u.medicalRecordRepo.TopDiagnoses(u.db.WithContext(gctx), doctorID, top)
		return err
	})
	g.Go(func() (err error) {
		zoneCases, err = u.outbreakRepo.ZoneSummary(u.db.WithContext(gctx))
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to build doctor analytics: %+v", err)
		return nil, err
	}

	return &dto.DoctorAnalyticsResponse{
		MonthlyConsultations: nonNilSlice(monthly),
		TopDiagnoses:         nonNilSlice(diagnoses),
		ZoneCases:            nonNilSlice(zoneCases),
	}, nil
}
