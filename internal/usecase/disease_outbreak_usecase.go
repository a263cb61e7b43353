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
	ErrOutbreakNotFound = errors.New("disease outbreak not found")
	ErrInvalidCaseCount = errors.New("active, recovered and death cases must not exceed total cases")
)

type DiseaseOutbreakUsecase interface {
	CreateOutbreak(ctx context.Context, req *dto.OutbreakRequest) (*dto.OutbreakResponse, error)
	GetOutbreak(ctx context.Context, id int) (*dto.OutbreakResponse, error)
	ListOutbreaks(ctx context.Context, filter *entity.OutbreakFilter) ([]dto.OutbreakResponse, int64, error)
	UpdateOutbreak(ctx context.Context, id int, req *dto.OutbreakRequest) (*dto.OutbreakResponse, error)
	DeleteOutbreak(ctx context.Context, id int) error
	ZoneSummary(ctx context.Context) ([]entity.ZoneCaseCount, error)
}

type diseaseOutbreakUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	outbreakRepo repository.DiseaseOutbreakRepository
	auditService service.AuditService
	statsCache   *service.StatsCache
}

func NewDiseaseOutbreakUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	outbreakRepo repository.DiseaseOutbreakRepository,
	auditService service.AuditService,
	statsCache *service.StatsCache,
) DiseaseOutbreakUsecase {
	return &diseaseOutbreakUsecase{
		db:           db,
		log:          log,
		outbreakRepo: outbreakRepo,
		auditService: auditService,
		statsCache:   statsCache,
	}
}

func outbreakFromRequest(req *dto.OutbreakRequest, o *entity.DiseaseOutbreak) error {
	reported, err := parseDate(req.FirstReportedDate)
	if err != nil {
		return err
	}

	o.DiseaseName = req.DiseaseName
	o.DiseaseType = req.DiseaseType
	o.Zone = req.Zone
	o.WardNumber = req.WardNumber
	o.TotalCases = req.TotalCases
	o.ActiveCases = req.ActiveCases
	o.RecoveredCases = req.RecoveredCases
	o.DeathCases = req.DeathCases
	o.AlertLevel = req.AlertLevel
	o.OutbreakStatus = req.OutbreakStatus
	o.FirstReportedDate = reported
	o.PredictedCases = req.PredictedCases
	o.RiskScore = req.RiskScore

	if o.AlertLevel == "" {
		o.AlertLevel = entity.AlertLevelNormal
	}
	if o.OutbreakStatus == "" {
		o.OutbreakStatus = entity.OutbreakStatusActive
	}
	if !o.CasesValid() {
		return ErrInvalidCaseCount
	}
	return nil
}

func (u *diseaseOutbreakUsecase) CreateOutbreak(ctx context.Context, req *dto.OutbreakRequest) (*dto.OutbreakResponse, error) {
	outbreak := &entity.DiseaseOutbreak{}
	if err := outbreakFromRequest(req, outbreak); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.outbreakRepo.Create(tx, outbreak); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidCaseCount
		}
		u.log.Warnf("Failed to create disease outbreak: %+v", err)
		return nil, err
	}

	response := converter.OutbreakToResponse(outbreak)
	if err := u.auditService.LogCreate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionOutbreakCreate, "disease_outbreak", strconv.Itoa(outbreak.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	u.log.Infof("Disease outbreak reported: %s in %s (%s)", outbreak.DiseaseName, outbreak.Zone, outbreak.AlertLevel)
	return response, nil
}

func (u *diseaseOutbreakUsecase) GetOutbreak(ctx context.Context, id int) (*dto.OutbreakResponse, error) {
	outbreak, err := u.outbreakRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find disease outbreak: %+v", err)
		return nil, err
	}
	if outbreak == nil {
		return nil, ErrOutbreakNotFound
	}

	return converter.OutbreakToResponse(outbreak), nil
}

func (u *diseaseOutbreakUsecase) ListOutbreaks(ctx context.Context, filter *entity.OutbreakFilter) ([]dto.OutbreakResponse, int64, error) {
	items, total, err := u.outbreakRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find disease outbreaks: %+v", err)
		return nil, 0, err
	}

	return converter.OutbreaksToResponses(items), total, nil
}

func (u *diseaseOutbreakUsecase) UpdateOutbreak(ctx context.Context, id int, req *dto.OutbreakRequest) (*dto.OutbreakResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	outbreak, err := u.outbreakRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find disease outbreak: %+v", err)
		return nil, err
	}
	if outbreak == nil {
		return nil, ErrOutbreakNotFound
	}

	oldValue := converter.OutbreakToResponse(outbreak)
	if err := outbreakFromRequest(req, outbreak); err != nil {
		return nil, err
	}

	if err := u.outbreakRepo.Update(tx, outbreak); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidCaseCount
		}
		u.log.Warnf("Failed to update disease outbreak: %+v", err)
		return nil, err
	}

	newValue := converter.OutbreakToResponse(outbreak)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionOutbreakUpdate, "disease_outbreak", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)
	if oldValue.AlertLevel != newValue.AlertLevel || oldValue.OutbreakStatus != newValue.OutbreakStatus {
		u.log.Infof("Disease outbreak %d now %s/%s", id, newValue.OutbreakStatus, newValue.AlertLevel)
	}
	return newValue, nil
}

func (u *diseaseOutbreakUsecase) DeleteOutbreak(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	outbreak, err := u.outbreakRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find disease outbreak: %+v", err)
		return err
	}
	if outbreak == nil {
		return ErrOutbreakNotFound
	}
	oldValue := converter.OutbreakToResponse(outbreak)

	affectedRows, err := u.outbreakRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete disease outbreak: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrOutbreakNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionOutbreakDelete, "disease_outbreak", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.statsCache.Invalidate(ctx)
	return nil
}

func (u *diseaseOutbreakUsecase) ZoneSummary(ctx context.Context) ([]entity.ZoneCaseCount, error) {
	rows, err := u.outbreakRepo.ZoneSummary(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to summarize outbreaks: %+v", err)
		return nil, err
	}

	return nonNilSlice(rows), nil
}
