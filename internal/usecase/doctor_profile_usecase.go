package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/cache"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound           = errors.New("doctor not found")
	ErrDoctorRegistrationExists = errors.New("registration number already exists")
	ErrDoctorHasAppointments    = errors.New("doctor still has appointments or records")
	ErrInvalidConsultationFee   = errors.New("consultation fee must not be negative")
)

type DoctorProfileUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateSelfProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorSelfRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	sessions          *cache.SessionStore
	statsCache        *service.StatsCache
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	sessions *cache.SessionStore,
	statsCache *service.StatsCache,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		sessions:          sessions,
		statsCache:        statsCache,
	}
}

func (u *doctorProfileUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidConsultationFee
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Create user with doctor profile in single insert using GORM association
	doctorProfile := &entity.DoctorProfile{
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Specialization:     req.Specialization,
		Qualification:      req.Qualification,
		HospitalID:         req.HospitalID,
		ConsultationFee:    req.ConsultationFee,
		AvailableDays:      normalizeWeekdays(req.AvailableDays),
		IsAvailable:        req.IsAvailable,
		User: entity.User{
			RoleID:   entity.RoleIDDoctor,
			Username: strings.TrimSpace(req.Username),
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			Password: string(hashedPassword),
			FullName: req.FullName,
			Phone:    req.Phone,
		},
	}
	if err := u.doctorProfileRepo.Create(tx, doctorProfile); err != nil {
		if mapped := doctorWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorProfileToResponse(doctorProfile)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionDoctorCreate, "doctor_profile", doctorProfile.UserID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Doctor created: user=%s, registration=%s", doctorProfile.UserID, doctorProfile.RegistrationNumber)
	return response, nil
}

func doctorWriteError(err error) error {
	switch {
	case isDuplicateKeyError(err, "username"):
		return ErrUsernameAlreadyExists
	case isDuplicateKeyError(err, "email"):
		return ErrEmailAlreadyExists
	case isDuplicateKeyError(err, "registration"):
		return ErrDoctorRegistrationExists
	case isForeignKeyError(err, "hospital"):
		return ErrHospitalNotFound
	case isForeignKeyError(err, "role"):
		return ErrRoleNotFound
	case isCheckViolation(err):
		return ErrInvalidConsultationFee
	}
	return nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetAllDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

func (u *doctorProfileUsecase) UpdateDoctor(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidConsultationFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	// Capture old value for audit
	oldValue := converter.DoctorProfileToResponse(profile)
	wasActive := profile.User.Active()

	if req.Email != "" {
		profile.User.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		profile.User.Password = string(hashedPassword)
	}
	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}
	if req.Phone != "" {
		profile.User.Phone = req.Phone
	}
	if req.IsActive != nil {
		profile.User.IsActive = req.IsActive
	}
	if req.RegistrationNumber != "" {
		profile.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		profile.Qualification = req.Qualification
	}
	if req.HospitalID != nil {
		profile.HospitalID = req.HospitalID
		profile.Hospital = nil
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}
	if req.AvailableDays != nil {
		profile.AvailableDays = normalizeWeekdays(req.AvailableDays)
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = req.IsAvailable
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		if mapped := doctorWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	newValue := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionDoctorUpdate, "doctor_profile", userID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// A deactivated doctor loses every open session
	if wasActive && !profile.User.Active() {
		if err := u.sessions.RevokeAll(ctx, userID); err != nil {
			u.log.Warnf("Failed to revoke doctor sessions: %+v", err)
		}
	}
	u.statsCache.Invalidate(ctx)

	return newValue, nil
}

// UpdateSelfProfile updates the doctor's own practice settings.
// Registration number, specialization and hospital stay admin-managed.
func (u *doctorProfileUsecase) UpdateSelfProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorSelfRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidConsultationFee
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorProfileToResponse(profile)

	updated := false
	if req.Phone != nil {
		profile.User.Phone = *req.Phone
		updated = true
	}
	if req.Qualification != nil {
		profile.Qualification = *req.Qualification
		updated = true
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
		updated = true
	}
	if req.AvailableDays != nil {
		profile.AvailableDays = normalizeWeekdays(req.AvailableDays)
		updated = true
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = req.IsAvailable
		updated = true
	}

	if !updated {
		return oldValue, nil
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidConsultationFee
		}
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	newValue := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "doctor_profile", userID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *doctorProfileUsecase) DeleteDoctor(ctx context.Context, userID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Get doctor profile for audit log before delete
	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}
	oldValue := converter.DoctorProfileToResponse(profile)

	affectedRows, err := u.userRepo.Delete(tx, userID)
	if err != nil {
		if isForeignKeyError(err, "") {
			return ErrDoctorHasAppointments
		}
		u.log.Warnf("Failed delete doctor: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrDoctorNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionDoctorDelete, "doctor_profile", userID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.sessions.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke doctor sessions: %+v", err)
	}
	u.statsCache.Invalidate(ctx)
	u.log.Infof("Doctor deleted: user=%s", userID)
	return nil
}

// normalizeWeekdays canonicalizes weekday names ("monday" -> "Monday") and
// drops duplicates.
func normalizeWeekdays(days []string) []string {
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		day = strings.TrimSpace(day)
		if day == "" {
			continue
		}
		canonical := strings.ToUpper(day[:1]) + strings.ToLower(day[1:])
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}
