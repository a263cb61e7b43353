package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient profile not found")
)

type PatientProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	UpdateSelfProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, filter *entity.PatientFilter) ([]dto.PatientResponse, int64, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

// UpdateSelfProfile updates the citizen's own contact and health details.
// Identity fields (aadhar, date of birth, gender, QR code) are not editable.
func (u *patientProfileUsecase) UpdateSelfProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	// Capture old value for audit
	oldValue := converter.PatientProfileToResponse(profile)

	updated := applyPatientUpdate(profile, req)
	if !updated {
		return oldValue, nil
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	newValue := converter.PatientProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", userID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func applyPatientUpdate(profile *entity.PatientProfile, req *dto.UpdatePatientProfileRequest) bool {
	updated := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
			updated = true
		}
	}

	set(&profile.User.FullName, req.FullName)
	set(&profile.User.Phone, req.Phone)
	set(&profile.BloodGroup, req.BloodGroup)
	set(&profile.Address, req.Address)
	set(&profile.Zone, req.Zone)
	set(&profile.EmergencyContactName, req.EmergencyContactName)
	set(&profile.EmergencyContactPhone, req.EmergencyContactPhone)

	if req.Email != nil {
		profile.User.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		updated = true
	}
	if req.WardNumber != nil {
		profile.WardNumber = *req.WardNumber
		updated = true
	}
	if req.Allergies != nil {
		profile.Allergies = req.Allergies
		updated = true
	}
	if req.ChronicConditions != nil {
		profile.ChronicConditions = req.ChronicConditions
		updated = true
	}
	if req.CurrentMedications != nil {
		profile.CurrentMedications = req.CurrentMedications
		updated = true
	}
	return updated
}

func (u *patientProfileUsecase) ListPatients(ctx context.Context, filter *entity.PatientFilter) ([]dto.PatientResponse, int64, error) {
	profiles, total, err := u.patientProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientProfilesToResponses(profiles), total, nil
}
