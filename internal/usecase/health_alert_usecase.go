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

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("health alert not found")

type HealthAlertUsecase interface {
	CreateAlert(ctx context.Context, req *dto.AlertRequest) (*dto.AlertResponse, error)
	GetAlert(ctx context.Context, id int) (*dto.AlertResponse, error)
	ListAlerts(ctx context.Context, filter *entity.AlertFilter) ([]dto.AlertResponse, int64, error)
	UpdateAlert(ctx context.Context, id int, req *dto.AlertRequest) (*dto.AlertResponse, error)
	DeactivateAlert(ctx context.Context, id int) (*dto.AlertResponse, error)
	DeleteAlert(ctx context.Context, id int) error
	// LiveAlerts returns active, unexpired alerts visible in the zone.
	// An empty zone returns every live alert.
	LiveAlerts(ctx context.Context, zone string) ([]dto.AlertResponse, error)
}

type healthAlertUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	alertRepo    repository.HealthAlertRepository
	auditService service.AuditService
	broadcaster  service.AlertBroadcaster
	now          func() time.Time
}

func NewHealthAlertUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	alertRepo repository.HealthAlertRepository,
	auditService service.AuditService,
	broadcaster service.AlertBroadcaster,
) HealthAlertUsecase {
	return &healthAlertUsecase{
		db:           db,
		log:          log,
		alertRepo:    alertRepo,
		auditService: auditService,
		broadcaster:  broadcaster,
		now:          time.Now,
	}
}

func alertFromRequest(req *dto.AlertRequest, a *entity.HealthAlert) {
	a.AlertType = req.AlertType
	a.Title = req.Title
	a.Message = req.Message
	a.MessageMarathi = req.MessageMarathi
	a.Severity = req.Severity
	a.Zones = req.Zones
	a.WardNumbers = req.WardNumbers
	a.ExpiresAt = req.ExpiresAt
	if a.Severity == "" {
		a.Severity = entity.SeverityInfo
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	} else if a.ID == 0 {
		a.IsActive = true
	}
}

func (u *healthAlertUsecase) CreateAlert(ctx context.Context, req *dto.AlertRequest) (*dto.AlertResponse, error) {
	alert := &entity.HealthAlert{CreatedBy: middleware.ActorFromContext(ctx)}
	alertFromRequest(req, alert)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.alertRepo.Create(tx, alert); err != nil {
		u.log.Warnf("Failed to create health alert: %+v", err)
		return nil, err
	}

	response := converter.AlertToResponse(alert)
	if err := u.auditService.LogCreate(ctx, tx, alert.CreatedBy, entity.AuditActionAlertCreate, "health_alert", strconv.Itoa(alert.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.broadcaster.Broadcast(ctx, alert)
	return response, nil
}

func (u *healthAlertUsecase) GetAlert(ctx context.Context, id int) (*dto.AlertResponse, error) {
	alert, err := u.alertRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find health alert: %+v", err)
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}

	return converter.AlertToResponse(alert), nil
}

func (u *healthAlertUsecase) ListAlerts(ctx context.Context, filter *entity.AlertFilter) ([]dto.AlertResponse, int64, error) {
	items, total, err := u.alertRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find health alerts: %+v", err)
		return nil, 0, err
	}

	return converter.AlertsToResponses(items), total, nil
}

func (u *healthAlertUsecase) UpdateAlert(ctx context.Context, id int, req *dto.AlertRequest) (*dto.AlertResponse, error) {
	return u.modify(ctx, id, entity.AuditActionAlertUpdate, func(alert *entity.HealthAlert) {
		alertFromRequest(req, alert)
	})
}

func (u *healthAlertUsecase) DeactivateAlert(ctx context.Context, id int) (*dto.AlertResponse, error) {
	return u.modify(ctx, id, entity.AuditActionAlertDeactivate, func(alert *entity.HealthAlert) {
		alert.IsActive = false
	})
}

// modify saves the alert and re-broadcasts it when the change made it live again.
func (u *healthAlertUsecase) modify(ctx context.Context, id int, action string, apply func(*entity.HealthAlert)) (*dto.AlertResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	alert, err := u.alertRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find health alert: %+v", err)
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}

	now := u.now()
	wasLive := alert.IsLive(now)
	oldValue := converter.AlertToResponse(alert)
	apply(alert)

	if err := u.alertRepo.Update(tx, alert); err != nil {
		u.log.Warnf("Failed to update health alert: %+v", err)
		return nil, err
	}

	newValue := converter.AlertToResponse(alert)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), action, "health_alert", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if !wasLive && alert.IsLive(now) {
		u.broadcaster.Broadcast(ctx, alert)
	}
	return newValue, nil
}

func (u *healthAlertUsecase) DeleteAlert(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	alert, err := u.alertRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find health alert: %+v", err)
		return err
	}
	if alert == nil {
		return ErrAlertNotFound
	}
	oldValue := converter.AlertToResponse(alert)

	affectedRows, err := u.alertRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed delete health alert: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrAlertNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionAlertDelete, "health_alert", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *healthAlertUsecase) LiveAlerts(ctx context.Context, zone string) ([]dto.AlertResponse, error) {
	alerts, err := liveAlertsForZone(u.db.WithContext(ctx), u.alertRepo, zone, u.now())
	if err != nil {
		u.log.Warnf("Failed to find live alerts: %+v", err)
		return nil, err
	}

	return converter.AlertsToResponses(alerts), nil
}

func liveAlertsForZone(db *gorm.DB, repo repository.HealthAlertRepository, zone string, at time.Time) ([]entity.HealthAlert, error) {
	alerts, err := repo.FindLive(db, at)
	if err != nil {
		return nil, err
	}

	return lo.Filter(alerts, func(a entity.HealthAlert, _ int) bool {
		return a.AppliesToZone(zone)
	}), nil
}
