package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrStorageNotConfigured = errors.New("report storage is not configured")

// ReportStorage stores generated reports and issues download links.
type ReportStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ExportResult describes an uploaded report.
type ExportResult struct {
	Key       string
	URL       string
	Rows      int
	ExpiresAt time.Time
}

type ReportService interface {
	Enabled() bool
	ExportMetrics(ctx context.Context, rows []entity.HealthMetrics) (*ExportResult, error)
}

type reportService struct {
	storage ReportStorage
	expiry  time.Duration
	log     *logrus.Logger
	now     func() time.Time
}

// NewReportService builds the exporter. A nil storage disables exports.
func NewReportService(storage ReportStorage, expiry time.Duration, log *logrus.Logger) ReportService {
	return &reportService{
		storage: storage,
		expiry:  expiry,
		log:     log,
		now:     time.Now,
	}
}

func (s *reportService) Enabled() bool {
	return s.storage != nil
}

func (s *reportService) ExportMetrics(ctx context.Context, rows []entity.HealthMetrics) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}

	body, err := metricsCSV(rows)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("reports/health-metrics/%s-%s.csv", now.Format("20060102T150405Z"), uuid.NewString()[:8])
	if err := s.storage.Put(ctx, key, "text/csv", body); err != nil {
		s.log.Warnf("Failed to upload metrics report: %+v", err)
		return nil, err
	}

	url, err := s.storage.PresignGet(ctx, key, s.expiry)
	if err != nil {
		s.log.Warnf("Failed to presign metrics report: %+v", err)
		return nil, err
	}

	s.log.Infof("Metrics report exported: key=%s, rows=%d", key, len(rows))
	return &ExportResult{
		Key:       key,
		URL:       url,
		Rows:      len(rows),
		ExpiresAt: now.Add(s.expiry),
	}, nil
}

var metricsCSVHeader = []string{
	"date",
	"zone",
	"ward_number",
	"total_consultations",
	"emergency_visits",
	"new_disease_cases",
	"vaccinations_given",
	"communicable_diseases",
	"non_communicable_diseases",
}

func metricsCSV(rows []entity.HealthMetrics) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(metricsCSVHeader); err != nil {
		return nil, err
	}
	for _, m := range rows {
		record := []string{
			time.Time(m.Date).Format("2006-01-02"),
			m.Zone,
			strconv.Itoa(m.WardNumber),
			strconv.Itoa(m.TotalConsultations),
			strconv.Itoa(m.EmergencyVisits),
			strconv.Itoa(m.NewDiseaseCases),
			strconv.Itoa(m.VaccinationsGiven),
			strconv.Itoa(m.CommunicableDiseases),
			strconv.Itoa(m.NonCommunicableDiseases),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
