package repository

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	domainRepo "github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const metricsSums = `COALESCE(SUM(total_consultations), 0) AS total_consultations,
	COALESCE(SUM(emergency_visits), 0) AS emergency_visits,
	COALESCE(SUM(new_disease_cases), 0) AS new_disease_cases,
	COALESCE(SUM(vaccinations_given), 0) AS vaccinations_given,
	COALESCE(SUM(communicable_diseases), 0) AS communicable_diseases,
	COALESCE(SUM(non_communicable_diseases), 0) AS non_communicable_diseases`

type healthMetricsRepository struct{}

func NewHealthMetricsRepository() domainRepo.HealthMetricsRepository {
	return &healthMetricsRepository{}
}

// Upsert inserts the daily row or overwrites the counters of the existing
// (date, zone, ward_number) row.
func (r *healthMetricsRepository) Upsert(db *gorm.DB, metrics *entity.HealthMetrics) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "zone"}, {Name: "ward_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_consultations",
			"emergency_visits",
			"new_disease_cases",
			"vaccinations_given",
			"communicable_diseases",
			"non_communicable_diseases",
			"updated_at",
		}),
	}).Create(metrics).Error
}

func metricsScope(filter *entity.MetricsFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == nil {
			return db
		}
		if filter.From != nil {
			db = db.Where("date >= ?", filter.From.Format("2006-01-02"))
		}
		if filter.To != nil {
			db = db.Where("date <= ?", filter.To.Format("2006-01-02"))
		}
		if filter.Zone != "" {
			db = db.Where("zone = ?", filter.Zone)
		}
		return db
	}
}

func (r *healthMetricsRepository) FindAll(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.HealthMetrics, int64, error) {
	if filter == nil {
		filter = &entity.MetricsFilter{}
	}

	var total int64
	if err := db.Model(&entity.HealthMetrics{}).Scopes(metricsScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.HealthMetrics
	err := db.Scopes(metricsScope(filter), paginate(filter.Page)).
		Order("date DESC, zone ASC, ward_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *healthMetricsRepository) FindRange(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.HealthMetrics, error) {
	var rows []entity.HealthMetrics
	err := db.Scopes(metricsScope(filter)).
		Order("date ASC, zone ASC, ward_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *healthMetricsRepository) SummaryByZone(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.ZoneMetricsSummary, error) {
	var rows []entity.ZoneMetricsSummary
	err := db.Model(&entity.HealthMetrics{}).
		Scopes(metricsScope(filter)).
		Select("zone, " + metricsSums).
		Group("zone").
		Order("zone ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *healthMetricsRepository) DailyTrend(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.DailyMetrics, error) {
	var rows []entity.DailyMetrics
	err := db.Model(&entity.HealthMetrics{}).
		Scopes(metricsScope(filter)).
		Select("to_char(date, 'YYYY-MM-DD') AS day, " + metricsSums).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
