package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNoMetricsToExport = errors.New("no health metrics match the export range")

type HealthMetricsUsecase interface {
	UpsertMetrics(ctx context.Context, req *dto.UpsertMetricsRequest) (*dto.MetricsResponse, error)
	ListMetrics(ctx context.Context, req *dto.MetricsRangeRequest, page entity.Page) ([]dto.MetricsResponse, int64, error)
	Summary(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsSummaryResponse, error)
	Trend(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsTrendResponse, error)
	Export(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsExportResponse, error)
}

type healthMetricsUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	metricsRepo   repository.HealthMetricsRepository
	auditService  service.AuditService
	reportService service.ReportService
}

func NewHealthMetricsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	metricsRepo repository.HealthMetricsRepository,
	auditService service.AuditService,
	reportService service.ReportService,
) HealthMetricsUsecase {
	return &healthMetricsUsecase{
		db:            db,
		log:           log,
		metricsRepo:   metricsRepo,
		auditService:  auditService,
		reportService: reportService,
	}
}

func metricsFilter(req *dto.MetricsRangeRequest, page entity.Page) (*entity.MetricsFilter, error) {
	filter := &entity.MetricsFilter{Page: page}
	if req == nil {
		return filter, nil
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidDateRange
	}

	filter.From = from
	filter.To = to
	filter.Zone = req.Zone
	return filter, nil
}

func (u *healthMetricsUsecase) UpsertMetrics(ctx context.Context, req *dto.UpsertMetricsRequest) (*dto.MetricsResponse, error) {
	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	metrics := &entity.HealthMetrics{
		Date:                    datatypes.Date(day),
		Zone:                    req.Zone,
		WardNumber:              req.WardNumber,
		TotalConsultations:      req.TotalConsultations,
		EmergencyVisits:         req.EmergencyVisits,
		NewDiseaseCases:         req.NewDiseaseCases,
		VaccinationsGiven:       req.VaccinationsGiven,
		CommunicableDiseases:    req.CommunicableDiseases,
		NonCommunicableDiseases: req.NonCommunicableDiseases,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.metricsRepo.Upsert(tx, metrics); err != nil {
		u.log.Warnf("Failed to upsert health metrics: %+v", err)
		return nil, err
	}

	response := converter.MetricsToResponse(metrics)
	entityID := fmt.Sprintf("%s/%s/%d", req.Date, req.Zone, req.WardNumber)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.ActorFromContext(ctx), entity.AuditActionMetricsUpsert, "health_metrics", entityID, nil, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *healthMetricsUsecase) ListMetrics(ctx context.Context, req *dto.MetricsRangeRequest, page entity.Page) ([]dto.MetricsResponse, int64, error) {
	filter, err := metricsFilter(req, page)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := u.metricsRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find health metrics: %+v", err)
		return nil, 0, err
	}

	return converter.MetricsListToResponses(items), total, nil
}

func (u *healthMetricsUsecase) Summary(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsSummaryResponse, error) {
	filter, err := metricsFilter(req, entity.Page{})
	if err != nil {
		return nil, err
	}

	zones, err := u.metricsRepo.SummaryByZone(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to summarize health metrics: %+v", err)
		return nil, err
	}

	return &dto.MetricsSummaryResponse{Zones: nonNilSlice(zones)}, nil
}

func (u *healthMetricsUsecase) Trend(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsTrendResponse, error) {
	filter, err := metricsFilter(req, entity.Page{})
	if err != nil {
		return nil, err
	}

	days, err := u.metricsRepo.DailyTrend(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to build health metrics trend: %+v", err)
		return nil, err
	}

	return &dto.MetricsTrendResponse{Days: nonNilSlice(days)}, nil
}

// Export uploads the matching rows as CSV and returns a presigned link.
func (u *healthMetricsUsecase) Export(ctx context.Context, req *dto.MetricsRangeRequest) (*dto.MetricsExportResponse, error) {
	if !u.reportService.Enabled() {
		return nil, service.ErrStorageNotConfigured
	}

	filter, err := metricsFilter(req, entity.Page{})
	if err != nil {
		return nil, err
	}

	rows, err := u.metricsRepo.FindRange(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find health metrics: %+v", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoMetricsToExport
	}

	result, err := u.reportService.ExportMetrics(ctx, rows)
	if err != nil {
		return nil, err
	}

	// The export itself is not transactional; the audit row is best effort.
	exported := map[string]interface{}{"key": result.Key, "rows": result.Rows}
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), middleware.ActorFromContext(ctx), entity.AuditActionMetricsExport, "health_metrics", result.Key, exported); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Health metrics exported: key=%s, rows=%d", result.Key, result.Rows)
	return &dto.MetricsExportResponse{
		Key:       result.Key,
		URL:       result.URL,
		Rows:      result.Rows,
		ExpiresAt: result.ExpiresAt.In(time.UTC),
	}, nil
}
