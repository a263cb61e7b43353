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
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrAppointmentNotScheduled = errors.New("appointment is no longer scheduled")
	ErrAppointmentInPast       = errors.New("appointment date must be in the future")
	ErrDoctorUnavailable       = errors.New("doctor is not accepting appointments")
	ErrDoctorNotWorkingOnDay   = errors.New("doctor does not consult on that day")
	ErrDuplicateAppointment    = errors.New("you already have an appointment with this doctor on that day")
	ErrMedicalRecordNotFound   = errors.New("medical record not found")
)

type CitizenPortalUsecase interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.CitizenDashboardResponse, error)
	BookAppointment(ctx context.Context, userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, userID uuid.UUID, status entity.AppointmentStatus) ([]dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, userID uuid.UUID, appointmentID int) (*dto.AppointmentResponse, error)
	ListMedicalRecords(ctx context.Context, userID uuid.UUID, page entity.Page) ([]dto.MedicalRecordResponse, int64, error)
	GetMedicalRecord(ctx context.Context, userID uuid.UUID, recordID int) (*dto.MedicalRecordResponse, error)
	Precautions(ctx context.Context, userID uuid.UUID) (*dto.PrecautionsResponse, error)
	Campaigns(ctx context.Context, userID uuid.UUID) ([]dto.CampaignResponse, error)
}

type citizenPortalUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	appointmentRepo    repository.AppointmentRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	alertRepo          repository.HealthAlertRepository
	outbreakRepo       repository.DiseaseOutbreakRepository
	campaignRepo       repository.VaccinationCampaignRepository
	auditService       service.AuditService
	now                func() time.Time
	loc                *time.Location // calendar day and weekday of bookings
}

func NewCitizenPortalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	alertRepo repository.HealthAlertRepository,
	outbreakRepo repository.DiseaseOutbreakRepository,
	campaignRepo repository.VaccinationCampaignRepository,
	auditService service.AuditService,
) CitizenPortalUsecase {
	return &citizenPortalUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		appointmentRepo:    appointmentRepo,
		medicalRecordRepo:  medicalRecordRepo,
		alertRepo:          alertRepo,
		outbreakRepo:       outbreakRepo,
		campaignRepo:       campaignRepo,
		auditService:       auditService,
		now:                time.Now,
		loc:                time.Local,
	}
}

func (u *citizenPortalUsecase) profile(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	return profile, nil
}

func (u *citizenPortalUsecase) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.CitizenDashboardResponse, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	var (
		upcoming  []entity.Appointment
		alerts    []entity.HealthAlert
		outbreaks []entity.DiseaseOutbreak
		campaigns []entity.VaccinationCampaign
		records   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		upcoming, err = u.appointmentRepo.FindAll(u.db.WithContext(gctx), &entity.AppointmentFilter{
			PatientID: &userID,
			Status:    entity.AppointmentStatusScheduled,
			From:      &now,
		})
		return err
	})
	g.Go(func() (err error) {
		alerts, err = liveAlertsForZone(u.db.WithContext(gctx), u.alertRepo, profile.Zone, now)
		return err
	})
	g.Go(func() (err error) {
		outbreaks, err = u.outbreakRepo.FindOpenByZone(u.db.WithContext(gctx), profile.Zone)
		return err
	})
	g.Go(func() (err error) {
		campaigns, err = u.ongoingCampaigns(u.db.WithContext(gctx), profile.Zone, now)
		return err
	})
	g.Go(func() (err error) {
		records, err = u.medicalRecordRepo.CountByPatient(u.db.WithContext(gctx), userID)
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to build citizen dashboard: %+v", err)
		return nil, err
	}

	return &dto.CitizenDashboardResponse{
		Profile:              *converter.PatientProfileToResponse(profile),
		UpcomingAppointments: converter.AppointmentsToResponses(upcoming),
		Alerts:               converter.AlertsToResponses(alerts),
		Outbreaks:            converter.OutbreaksToResponses(outbreaks),
		Campaigns:            converter.CampaignsToResponses(campaigns),
		MedicalRecordCount:   records,
	}, nil
}

func (u *citizenPortalUsecase) ongoingCampaigns(db *gorm.DB, zone string, at time.Time) ([]entity.VaccinationCampaign, error) {
	campaigns, err := u.campaignRepo.FindOngoing(db, at)
	if err != nil {
		return nil, err
	}

	return lo.Filter(campaigns, func(c entity.VaccinationCampaign, _ int) bool {
		return c.CoversZone(zone)
	}), nil
}

func (u *citizenPortalUsecase) BookAppointment(ctx context.Context, userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !req.AppointmentDate.After(u.now()) {
		return nil, ErrAppointmentInPast
	}
	at := req.AppointmentDate.In(u.loc)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.Available() {
		return nil, ErrDoctorUnavailable
	}
	if !doctor.WorksOn(at) {
		return nil, ErrDoctorNotWorkingOnDay
	}

	exists, err := u.appointmentRepo.ExistsScheduledOnDay(tx, userID, req.DoctorID, at)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAppointment
	}

	appointment := &entity.Appointment{
		PatientID:       userID,
		DoctorID:        req.DoctorID,
		AppointmentDate: at,
		Status:          entity.AppointmentStatusScheduled,
		AppointmentType: req.AppointmentType,
		Symptoms:        req.Symptoms,
		IsTelemedicine:  req.IsTelemedicine,
		Notes:           req.Notes,
	}
	if appointment.AppointmentType == "" {
		appointment.AppointmentType = entity.AppointmentTypeConsultation
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentBook, "appointment", strconv.Itoa(appointment.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, patient=%s, doctor=%s, at=%s", appointment.ID, userID, req.DoctorID, at.Format(time.RFC3339))
	return response, nil
}

func (u *citizenPortalUsecase) ListAppointments(ctx context.Context, userID uuid.UUID, status entity.AppointmentStatus) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{
		PatientID: &userID,
		Status:    status,
	})
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *citizenPortalUsecase) CancelAppointment(ctx context.Context, userID uuid.UUID, appointmentID int) (*dto.AppointmentResponse, error) {
	return cancelAppointment(ctx, u.db, u.log, u.appointmentRepo, u.auditService, appointmentID, userID, func(a *entity.Appointment) bool {
		return a.PatientID == userID
	})
}

// cancelAppointment moves an owned, scheduled appointment to cancelled.
// owns decides whether the caller may touch the appointment.
func cancelAppointment(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	appointmentID int,
	actor uuid.UUID,
	owns func(*entity.Appointment) bool,
) (*dto.AppointmentResponse, error) {
	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !owns(appointment) {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	affectedRows, err := appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCancelled)
	if err != nil {
		log.Warnf("Failed to cancel appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrAppointmentNotScheduled
	}

	oldStatus := string(appointment.Status)
	appointment.Cancel()
	response := converter.AppointmentToResponse(appointment)
	if err := auditService.LogUpdate(ctx, tx, &actor, entity.AuditActionAppointmentCancel, "appointment", strconv.Itoa(appointmentID),
		map[string]interface{}{"status": oldStatus}, map[string]interface{}{"status": response.Status}); err != nil {
		log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	log.Infof("Appointment cancelled: id=%d, by=%s", appointmentID, actor)
	return response, nil
}

func (u *citizenPortalUsecase) ListMedicalRecords(ctx context.Context, userID uuid.UUID, page entity.Page) ([]dto.MedicalRecordResponse, int64, error) {
	records, total, err := u.medicalRecordRepo.FindByPatient(u.db.WithContext(ctx), userID, page)
	if err != nil {
		u.log.Warnf("Failed to find medical records for patient %s: %+v", userID, err)
		return nil, 0, err
	}

	return converter.MedicalRecordsToResponses(records), total, nil
}

// GetMedicalRecord hides records of other patients behind not found.
func (u *citizenPortalUsecase) GetMedicalRecord(ctx context.Context, userID uuid.UUID, recordID int) (*dto.MedicalRecordResponse, error) {
	record, err := u.medicalRecordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record %d: %+v", recordID, err)
		return nil, err
	}
	if record == nil || record.PatientID != userID {
		return nil, ErrMedicalRecordNotFound
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *citizenPortalUsecase) Precautions(ctx context.Context, userID uuid.UUID) (*dto.PrecautionsResponse, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	alerts, err := liveAlertsForZone(db, u.alertRepo, profile.Zone, u.now())
	if err != nil {
		u.log.Warnf("Failed to find live alerts: %+v", err)
		return nil, err
	}

	outbreaks, err := u.outbreakRepo.FindOpenByZone(db, profile.Zone)
	if err != nil {
		u.log.Warnf("Failed to find open outbreaks: %+v", err)
		return nil, err
	}

	return &dto.PrecautionsResponse{
		Zone:      profile.Zone,
		Alerts:    converter.AlertsToResponses(alerts),
		Outbreaks: converter.OutbreaksToResponses(outbreaks),
	}, nil
}

func (u *citizenPortalUsecase) Campaigns(ctx context.Context, userID uuid.UUID) ([]dto.CampaignResponse, error) {
	profile, err := u.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	campaigns, err := u.ongoingCampaigns(u.db.WithContext(ctx), profile.Zone, u.now())
	if err != nil {
		u.log.Warnf("Failed to find ongoing campaigns: %+v", err)
		return nil, err
	}

	return converter.CampaignsToResponses(campaigns), nil
}
