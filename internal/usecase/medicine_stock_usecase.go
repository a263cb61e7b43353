package usecase

import (
	"context"
	"errors"
	"math"
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
	ErrMedicineNotFound  = errors.New("medicine stock not found")
	ErrInsufficientStock = errors.New("stock adjustment would make quantity negative")
	ErrInvalidStock      = errors.New("quantity and reorder level must not be negative")
	ErrStockLimit        = errors.New("stock adjustment would exceed the maximum quantity")
)

// maxStockQuantity is the largest value the integer quantity column holds.
const maxStockQuantity = math.MaxInt32

type MedicineStockUsecase interface {
	CreateMedicine(ctx context.Context, req *dto.MedicineRequest) (*dto.MedicineResponse, error)
	GetMedicine(ctx context.Context, id int) (*dto.MedicineResponse, error)
	ListMedicines(ctx context.Context, filter *entity.MedicineFilter) ([]dto.MedicineResponse, int64, error)
	UpdateMedicine(ctx context.Context, id int, req *dto.MedicineRequest) (*dto.MedicineResponse, error)
	AdjustStock(ctx context.Context, id int, delta int) (*dto.MedicineResponse, error)
	DeleteMedicine(ctx context.Context, id int) error
	LowStock(ctx context.Context) ([]dto.MedicineResponse, error)
	Expiring(ctx context.Context, days int) ([]dto.MedicineResponse, error)
}

type medicineStockUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	medicineRepo repository.MedicineStockRepository
	auditService service.AuditService
	statsCache   *service.StatsCache
	now          func() time.Time
}

func NewMedicineStockUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicineRepo repository.MedicineStockRepository,
	auditService service.AuditService,
	statsCache *service.StatsCache,
) MedicineStockUsecase {
	return &medicineStockUsecase{
		db:           db,
		log:          log,
		medicineRepo: medicineRepo,
		auditService: auditService,
		statsCache:   statsCache,
		now:          time.Now,
	}
}

func medicineFromRequest(req *dto.MedicineRequest, m *entity.MedicineStock) error {
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		return err
	}

	m.HospitalID = req.HospitalID
	m.MedicineName = req.MedicineName
	m.GenericName = req.GenericName
	m.Category = req.Category
	m.Quantity = req.Quantity
	m.Unit = req.Unit
	m.BatchNumber = req.BatchNumber
	m.ExpiryDate = expiry
	m.Hospital = nil
	if req.ReorderLevel != nil {
		m.ReorderLevel = *req.ReorderLevel
	} else if m.ID == 0 {
		m.ReorderLevel = entity.DefaultReorderLevel
	}

	if m.Quantity < 0 || m.ReorderLevel < 0 {
		return ErrInvalidStock
	}
	return nil
}

func medicineWriteError(err error) error {
	switch {
	case isForeignKeyError(err, "hospital"):
		return ErrHospitalNotFound
	case isCheckViolation(err):
		return ErrInvalidStock
	}
	return nil
}

func (u *medicineStockUsecase) CreateMedicine(ctx context.Context, req *dto.MedicineRequest) (*dto.MedicineResponse, error) {
	stock := &entity.MedicineStock{}
	if err := medicineFromRequest(req, stock); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.medicineRepo.Create(tx, stock); err != nil {
		if mapped := medicineWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create medicine stock: %+v", err)
		return nil, err
	}

	response := converter.MedicineToResponse(stock)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionMedicineCreate, "medicine_stock", strconv.Itoa(stock.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	return response, nil
}

func (u *medicineStockUsecase) GetMedicine(ctx context.Context, id int) (*dto.MedicineResponse, error) {
	stock, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medicine stock: %+v", err)
		return nil, err
	}
	if stock == nil {
		return nil, ErrMedicineNotFound
	}

	return converter.MedicineToResponse(stock), nil
}

func (u *medicineStockUsecase) ListMedicines(ctx context.Context, filter *entity.MedicineFilter) ([]dto.MedicineResponse, int64, error) {
	items, total, err := u.medicineRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find medicine stock: %+v", err)
		return nil, 0, err
	}

	return converter.MedicinesToResponses(items), total, nil
}

func (u *medicineStockUsecase) UpdateMedicine(ctx context.Context, id int, req *dto.MedicineRequest) (*dto.MedicineResponse, error) {
	return u.modify(ctx, id, entity.AuditActionMedicineUpdate, func(stock *entity.MedicineStock) error {
		return medicineFromRequest(req, stock)
	})
}

// AdjustStock applies a signed delta under a row lock so concurrent
// dispensing never drives the quantity below zero.
func (u *medicineStockUsecase) AdjustStock(ctx context.Context, id int, delta int) (*dto.MedicineResponse, error) {
	return u.modify(ctx, id, entity.AuditActionMedicineStock, func(stock *entity.MedicineStock) error {
		if stock.Quantity+delta < 0 {
			return ErrInsufficientStock
		}
		if stock.Quantity+delta > maxStockQuantity {
			return ErrStockLimit
		}
		stock.Quantity += delta
		return nil
	})
}

func (u *medicineStockUsecase) modify(ctx context.Context, id int, action string, apply func(*entity.MedicineStock) error) (*dto.MedicineResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	stock, err := u.medicineRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock medicine stock: %+v", err)
		return nil, err
	}
	if stock == nil {
		return nil, ErrMedicineNotFound
	}

	oldValue := converter.MedicineToResponse(stock)
	if err := apply(stock); err != nil {
		return nil, err
	}

	if err := u.medicineRepo.Update(tx, stock); err != nil {
		if mapped := medicineWriteError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update medicine stock: %+v", err)
		return nil, err
	}

	newValue := converter.MedicineToResponse(stock)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), action, "medicine_stock", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	if newValue.StockStatus != oldValue.StockStatus {
		u.log.Infof("Medicine stock status changed: id=%d, %s -> %s", id, oldValue.StockStatus, newValue.StockStatus)
	}
	return newValue, nil
}

func (u *medicineStockUsecase) DeleteMedicine(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	stock, err := u.medicineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine stock: %+v", err)
		return err
	}
	if stock == nil {
		return ErrMedicineNotFound
	}
	oldValue := converter.MedicineToResponse(stock)

	affectedRows, err := u.medicineRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete medicine stock: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrMedicineNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionMedicineDelete, "medicine_stock", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.statsCache.Invalidate(ctx)
	return nil
}

func (u *medicineStockUsecase) LowStock(ctx context.Context) ([]dto.MedicineResponse, error) {
	items, err := u.medicineRepo.FindLowStock(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find low stock: %+v", err)
		return nil, err
	}

	return converter.MedicinesToResponses(items), nil
}

// Expiring lists batches expiring within the coming days, expired ones included.
func (u *medicineStockUsecase) Expiring(ctx context.Context, days int) ([]dto.MedicineResponse, error) {
	before := startOfDay(u.now()).AddDate(0, 0, days)
	items, err := u.medicineRepo.FindExpiring(u.db.WithContext(ctx), before)
	if err != nil {
		u.log.Warnf("Failed to find expiring medicine: %+v", err)
		return nil, err
	}

	return converter.MedicinesToResponses(items), nil
}
