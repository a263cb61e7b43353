package repository

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthMetricsRepository interface {
	Upsert(db *gorm.DB, metrics *entity.HealthMetrics) error
	FindAll(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.HealthMetrics, int64, error)
	// FindRange returns every row matching the filter, ignoring its page.
	FindRange(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.HealthMetrics, error)
	SummaryByZone(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.ZoneMetricsSummary, error)
	DailyTrend(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.DailyMetrics, error)
}
