package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrInvalidCapacity  = errors.New("available counts must be between zero and their totals")
	ErrHospitalInUse    = errors.New("hospital still has doctors or inventory")
)

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	GetHospital(ctx context.Context, id int) (*dto.HospitalResponse, error)
	ListHospitals(ctx context.Context, filter *entity.HospitalFilter) ([]dto.HospitalResponse, error)
	UpdateHospital(ctx context.Context, id int, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	UpdateBeds(ctx context.Context, id int, req *dto.UpdateBedsRequest) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, id int) error
	BedAvailability(ctx context.Context) (*dto.BedAvailabilityResponse, error)
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
	statsCache   *service.StatsCache
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
	statsCache *service.StatsCache,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
		statsCache:   statsCache,
	}
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital := &entity.Hospital{}
	converter.HospitalFromRequest(req, hospital)
	if !hospital.CapacityValid() {
		return nil, ErrInvalidCapacity
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.hospitalRepo.Create(tx, hospital); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidCapacity
		}
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	response := converter.HospitalToResponse(hospital)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionHospitalCreate, "hospital", strconv.Itoa(hospital.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Hospital created: id=%d, zone=%s", hospital.ID, hospital.Zone)
	return response, nil
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, id int) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) ListHospitals(ctx context.Context, filter *entity.HospitalFilter) ([]dto.HospitalResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	return converter.HospitalsToResponses(hospitals), nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, id int, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	return u.update(ctx, id, entity.AuditActionHospitalUpdate, func(h *entity.Hospital) {
		converter.HospitalFromRequest(req, h)
	})
}

func (u *hospitalUsecase) UpdateBeds(ctx context.Context, id int, req *dto.UpdateBedsRequest) (*dto.HospitalResponse, error) {
	return u.update(ctx, id, entity.AuditActionHospitalBeds, func(h *entity.Hospital) {
		setIfPresent(&h.TotalBeds, req.TotalBeds)
		setIfPresent(&h.AvailableBeds, req.AvailableBeds)
		setIfPresent(&h.ICUBeds, req.ICUBeds)
		setIfPresent(&h.AvailableICUBeds, req.AvailableICUBeds)
		setIfPresent(&h.Ventilators, req.Ventilators)
		setIfPresent(&h.AvailableVentilators, req.AvailableVentilators)
		setIfPresent(&h.AmbulanceCount, req.AmbulanceCount)
	})
}

// update loads the hospital, applies the change and saves it when the
// capacity counters remain consistent.
func (u *hospitalUsecase) update(ctx context.Context, id int, action string, apply func(*entity.Hospital)) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	oldValue := converter.HospitalToResponse(hospital)
	apply(hospital)
	if !hospital.CapacityValid() {
		return nil, ErrInvalidCapacity
	}

	if err := u.hospitalRepo.Update(tx, hospital); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidCapacity
		}
		u.log.Warnf("Failed to update hospital: %+v", err)
		return nil, err
	}

	newValue := converter.HospitalToResponse(hospital)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), action, "hospital", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return newValue, nil
}

func (u *hospitalUsecase) DeleteHospital(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	oldValue := converter.HospitalToResponse(hospital)

	affectedRows, err := u.hospitalRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "") {
			return ErrHospitalInUse
		}
		u.log.Warnf("Failed delete hospital: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrHospitalNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionHospitalDelete, "hospital", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Hospital deleted: id=%d", id)
	return nil
}

func (u *hospitalUsecase) BedAvailability(ctx context.Context) (*dto.BedAvailabilityResponse, error) {
	db := u.db.WithContext(ctx)

	hospitals, err := u.hospitalRepo.FindAll(db, &entity.HospitalFilter{})
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	totals, err := u.hospitalRepo.BedTotals(db)
	if err != nil {
		u.log.Warnf("Failed to compute bed totals: %+v", err)
		return nil, err
	}

	return &dto.BedAvailabilityResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Totals:    converter.BedTotalsToResponse(totals),
	}, nil
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
