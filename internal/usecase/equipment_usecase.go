package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

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
	ErrEquipmentNotFound      = errors.New("equipment not found")
	ErrInvalidEquipmentCounts = errors.New("working, maintenance and out-of-service units exceed the quantity")
)

type EquipmentUsecase interface {
	CreateEquipment(ctx context.Context, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error)
	GetEquipment(ctx context.Context, id int) (*dto.EquipmentResponse, error)
	ListEquipment(ctx context.Context, filter *entity.EquipmentFilter) ([]dto.EquipmentResponse, int64, error)
	UpdateEquipment(ctx context.Context, id int, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error)
	DeleteEquipment(ctx context.Context, id int) error
	MaintenanceDue(ctx context.Context, days int) ([]dto.EquipmentResponse, error)
}

type equipmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	equipmentRepo repository.EquipmentRepository
	auditService  service.AuditService
	statsCache    *service.StatsCache
	now           func() time.Time
}

func NewEquipmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	equipmentRepo repository.EquipmentRepository,
	auditService service.AuditService,
	statsCache *service.StatsCache,
) EquipmentUsecase {
	return &equipmentUsecase{
		db:            db,
		log:           log,
		equipmentRepo: equipmentRepo,
		auditService:  auditService,
		statsCache:    statsCache,
		now:           time.Now,
	}
}

func equipmentFromRequest(req *dto.EquipmentRequest, e *entity.Equipment) error {
	last, err := parseOptionalDate(req.LastMaintenanceDate)
	if err != nil {
		return err
	}
	next, err := parseOptionalDate(req.NextMaintenanceDate)
	if err != nil {
		return err
	}

	e.HospitalID = req.HospitalID
	e.EquipmentName = req.EquipmentName
	e.EquipmentType = req.EquipmentType
	e.Quantity = req.Quantity
	e.WorkingCondition = req.WorkingCondition
	e.UnderMaintenance = req.UnderMaintenance
	e.OutOfService = req.OutOfService
	e.LastMaintenanceDate = last
	e.NextMaintenanceDate = next
	e.Hospital = nil

	if !e.CountsValid() {
		return ErrInvalidEquipmentCounts
	}
	return nil
}

func equipmentWriteError(err error) error {
	switch {
	case isForeignKeyError(err, "hospital"):
		return ErrHospitalNotFound
	case isCheckViolation(err):
		return ErrInvalidEquipmentCounts
	}
	return nil
}

func (u *equipmentUsecase) CreateEquipment(ctx context.Context, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	equipment := &entity.Equipment{}
	if err := equipmentFromRequest(req, equipment); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.equipmentRepo.Create(tx, equipment); err != nil {
		if mapped := equipmentWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create equipment: %+v", err)
		return nil, err
	}

	response := converter.EquipmentToResponse(equipment)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionEquipmentCreate, "equipment", strconv.Itoa(equipment.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return response, nil
}

func (u *equipmentUsecase) GetEquipment(ctx context.Context, id int) (*dto.EquipmentResponse, error) {
	equipment, err := u.equipmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find equipment: %+v", err)
		return nil, err
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}

	return converter.EquipmentToResponse(equipment), nil
}

func (u *equipmentUsecase) ListEquipment(ctx context.Context, filter *entity.EquipmentFilter) ([]dto.EquipmentResponse, int64, error) {
	items, total, err := u.equipmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find equipment: %+v", err)
		return nil, 0, err
	}

	return converter.EquipmentListToResponses(items), total, nil
}

func (u *equipmentUsecase) UpdateEquipment(ctx context.Context, id int, req *dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	equipment, err := u.equipmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find equipment: %+v", err)
		return nil, err
	}
	if equipment == nil {
		return nil, ErrEquipmentNotFound
	}

	oldValue := converter.EquipmentToResponse(equipment)
	if err := equipmentFromRequest(req, equipment); err != nil {
		return nil, err
	}

	if err := u.equipmentRepo.Update(tx, equipment); err != nil {
		if mapped := equipmentWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update equipment: %+v", err)
		return nil, err
	}

	newValue := converter.EquipmentToResponse(equipment)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionEquipmentUpdate, "equipment", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	if oldValue.HealthStatus != newValue.HealthStatus {
		u.log.Infof("Equipment health changed: id=%d, %s -> %s", id, oldValue.HealthStatus, newValue.HealthStatus)
	}
	return newValue, nil
}

func (u *equipmentUsecase) DeleteEquipment(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	equipment, err := u.equipmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find equipment: %+v", err)
		return err
	}
	if equipment == nil {
		return ErrEquipmentNotFound
	}
	oldValue := converter.EquipmentToResponse(equipment)

	affectedRows, err := u.equipmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete equipment: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrEquipmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionEquipmentDelete, "equipment", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.statsCache.Invalidate(ctx)
	return nil
}

// MaintenanceDue lists equipment whose next maintenance falls within the
// coming days (overdue items included).
func (u *equipmentUsecase) MaintenanceDue(ctx context.Context, days int) ([]dto.EquipmentResponse, error) {
	before := startOfDay(u.now()).AddDate(0, 0, days)
	items, err := u.equipmentRepo.FindMaintenanceDue(u.db.WithContext(ctx), before)
	if err != nil {
		u.log.Warnf("Failed to find equipment due for maintenance: %+v", err)
		return nil, err
	}

	return converter.EquipmentListToResponses(items), nil
}
