package entity

// Rows produced by aggregation queries.

type BedTotals struct {
	Hospitals            int64 `json:"hospitals"`
	TotalBeds            int64 `json:"total_beds"`
	AvailableBeds        int64 `json:"available_beds"`
	ICUBeds              int64 `gorm:"column:icu_beds" json:"icu_beds"`
	AvailableICUBeds     int64 `gorm:"column:available_icu_beds" json:"available_icu_beds"`
	Ventilators          int64 `json:"ventilators"`
	AvailableVentilators int64 `json:"available_ventilators"`
}

// OccupancyRate returns the share of occupied beds as a percentage.
func (t BedTotals) OccupancyRate() float64 {
	return Percentage(t.TotalBeds-t.AvailableBeds, t.TotalBeds)
}

type ZoneBedSummary struct {
	Zone          string `json:"zone"`
	Hospitals     int64  `json:"hospitals"`
	TotalBeds     int64  `json:"total_beds"`
	AvailableBeds int64  `json:"available_beds"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type EquipmentStatusSummary struct {
	Status   string `json:"status"`
	Items    int64  `json:"items"`
	Quantity int64  `json:"quantity"`
	Working  int64  `json:"working"`
}

type ZoneCaseCount struct {
	Zone        string `json:"zone"`
	Outbreaks   int64  `json:"outbreaks"`
	TotalCases  int64  `json:"total_cases"`
	ActiveCases int64  `json:"active_cases"`
	DeathCases  int64  `json:"death_cases"`
}

type CampaignCoverage struct {
	Campaigns        int64 `json:"campaigns"`
	TargetPopulation int64 `json:"target_population"`
	Vaccinated       int64 `json:"vaccinated"`
}

// CoverageRate returns vaccinated people as a percentage of all targets.
func (c CampaignCoverage) CoverageRate() float64 {
	return Percentage(c.Vaccinated, c.TargetPopulation)
}

type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Count     int64  `json:"count"`
}

type MetricsTotals struct {
	TotalConsultations      int64 `json:"total_consultations"`
	EmergencyVisits         int64 `json:"emergency_visits"`
	NewDiseaseCases         int64 `json:"new_disease_cases"`
	VaccinationsGiven       int64 `json:"vaccinations_given"`
	CommunicableDiseases    int64 `json:"communicable_diseases"`
	NonCommunicableDiseases int64 `json:"non_communicable_diseases"`
}

type ZoneMetricsSummary struct {
	Zone string `json:"zone"`
	MetricsTotals
}

type DailyMetrics struct {
	Day string `json:"day"` // YYYY-MM-DD
	MetricsTotals
}
