package dto

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
)

type CitizenDashboardResponse struct {
	Profile              PatientResponse       `json:"profile"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
	Alerts               []AlertResponse       `json:"alerts"`
	Outbreaks            []OutbreakResponse    `json:"outbreaks"`
	Campaigns            []CampaignResponse    `json:"campaigns"`
	MedicalRecordCount   int64                 `json:"medical_record_count"`
}

type PrecautionsResponse struct {
	Zone      string             `json:"zone"`
	Alerts    []AlertResponse    `json:"alerts"`
	Outbreaks []OutbreakResponse `json:"outbreaks"`
}

type DoctorDashboardResponse struct {
	Doctor            DoctorResponse        `json:"doctor"`
	TodayAppointments []AppointmentResponse `json:"today_appointments"`
	AppointmentCounts []entity.StatusCount  `json:"appointment_counts"`
	PatientsTreated   int64                 `json:"patients_treated"`
	RecordsThisMonth  int64                 `json:"records_this_month"`
}

type DoctorAnalyticsResponse struct {
	MonthlyConsultations []entity.MonthlyCount   `json:"monthly_consultations"`
	TopDiagnoses         []entity.DiagnosisCount `json:"top_diagnoses"`
	ZoneCases            []entity.ZoneCaseCount  `json:"zone_cases"`
}

type CampaignCoverageResponse struct {
	entity.CampaignCoverage
	CoverageRate float64 `json:"coverage_rate"`
}

type EntityCounts struct {
	Patients  int64 `json:"patients"`
	Doctors   int64 `json:"doctors"`
	Hospitals int64 `json:"hospitals"`
}

type AdminDashboardResponse struct {
	Beds           BedTotalsResponse               `json:"beds"`
	ZoneBeds       []entity.ZoneBedSummary         `json:"zone_beds"`
	Equipment      []entity.EquipmentStatusSummary `json:"equipment"`
	MedicineStatus []entity.StatusCount            `json:"medicine_status"`
	ZoneCases      []entity.ZoneCaseCount          `json:"zone_cases"`
	Campaigns      CampaignCoverageResponse        `json:"campaigns"`
	Counts         EntityCounts                    `json:"counts"`
	GeneratedAt    time.Time                       `json:"generated_at"`
}
