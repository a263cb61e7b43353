package usecase

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakePool lets the usecases open and finish transactions without a database.
// Repositories are mocked, so no statement ever reaches it.
type fakePool struct {
	mu        sync.Mutex
	begun     int
	committed int
}

func (p *fakePool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, driver.ErrSkip
}

func (p *fakePool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, driver.ErrSkip
}

func (p *fakePool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, driver.ErrSkip
}

func (p *fakePool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (p *fakePool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.begun++
	return &fakeTx{fakePool: p}, nil
}

func (p *fakePool) commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.committed
}

type fakeTx struct {
	*fakePool
	done bool
}

func (t *fakeTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.mu.Lock()
	t.committed++
	t.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	return nil
}

func newTestDB(t *testing.T) (*gorm.DB, *fakePool) {
	t.Helper()
	pool := &fakePool{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, pool
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

// Audit

type auditCall struct {
	action   string
	entityID string
	actor    *uuid.UUID
}

type fakeAuditService struct {
	mu    sync.Mutex
	calls []auditCall
}

func (s *fakeAuditService) record(action, entityID string, actor *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, auditCall{action: action, entityID: entityID, actor: actor})
	return nil
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return s.record(action, entityID, userID)
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return s.record(action, entityID, userID)
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return s.record(action, entityID, userID)
}

func (s *fakeAuditService) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.action)
	}
	return out
}

// Repository mocks embed the interface so only the methods a test needs are set.

type mockUserRepo struct {
	repository.UserRepository
	create          func(u *entity.User) error
	findByID        func(id uuid.UUID) (*entity.User, error)
	findByLogin     func(login string) (*entity.User, error)
	updateLastLogin func(id uuid.UUID, at time.Time) error
	countByRole     func(roleID int) (int64, error)
}

func (m *mockUserRepo) CountByRole(db *gorm.DB, roleID int) (int64, error) {
	return m.countByRole(roleID)
}

func (m *mockUserRepo) Create(db *gorm.DB, u *entity.User) error {
	return m.create(u)
}

func (m *mockUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return m.findByID(id)
}

func (m *mockUserRepo) FindByLogin(db *gorm.DB, login string) (*entity.User, error) {
	return m.findByLogin(login)
}

func (m *mockUserRepo) UpdateLastLogin(db *gorm.DB, id uuid.UUID, at time.Time) error {
	return m.updateLastLogin(id, at)
}

type mockRoleRepo struct {
	repository.RoleRepository
	findByID func(id int) (*entity.Role, error)
}

func (m *mockRoleRepo) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	return m.findByID(id)
}

type mockPatientProfileRepo struct {
	repository.PatientProfileRepository
	create       func(p *entity.PatientProfile) error
	findByUserID func(userID uuid.UUID) (*entity.PatientProfile, error)
	findByQRCode func(code string) (*entity.PatientProfile, error)
}

func (m *mockPatientProfileRepo) Create(db *gorm.DB, p *entity.PatientProfile) error {
	return m.create(p)
}

func (m *mockPatientProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	return m.findByUserID(userID)
}

func (m *mockPatientProfileRepo) FindByQRCode(db *gorm.DB, code string) (*entity.PatientProfile, error) {
	return m.findByQRCode(code)
}

type mockDoctorProfileRepo struct {
	repository.DoctorProfileRepository
	findByUserID func(userID uuid.UUID) (*entity.DoctorProfile, error)
}

func (m *mockDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return m.findByUserID(userID)
}

type mockAppointmentRepo struct {
	repository.AppointmentRepository
	create               func(a *entity.Appointment) error
	findByID             func(id int) (*entity.Appointment, error)
	findAll              func(filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	existsScheduledOnDay func(patientID, doctorID uuid.UUID, day time.Time) (bool, error)
	updateStatus         func(id int, status entity.AppointmentStatus) (int64, error)
	monthlyCompleted     func(doctorID uuid.UUID, since time.Time) ([]entity.MonthlyCount, error)
}

func (m *mockAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	return m.create(a)
}

func (m *mockAppointmentRepo) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	return m.findByID(id)
}

func (m *mockAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return m.findAll(filter)
}

func (m *mockAppointmentRepo) ExistsScheduledOnDay(db *gorm.DB, patientID, doctorID uuid.UUID, day time.Time) (bool, error) {
	return m.existsScheduledOnDay(patientID, doctorID, day)
}

func (m *mockAppointmentRepo) UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error) {
	return m.updateStatus(id, status)
}

func (m *mockAppointmentRepo) MonthlyCompleted(db *gorm.DB, doctorID uuid.UUID, since time.Time) ([]entity.MonthlyCount, error) {
	return m.monthlyCompleted(doctorID, since)
}

type mockMedicalRecordRepo struct {
	repository.MedicalRecordRepository
	create       func(r *entity.MedicalRecord) error
	findByID     func(id int) (*entity.MedicalRecord, error)
	topDiagnoses func(doctorID uuid.UUID, limit int) ([]entity.DiagnosisCount, error)
}

func (m *mockMedicalRecordRepo) Create(db *gorm.DB, r *entity.MedicalRecord) error {
	return m.create(r)
}

func (m *mockMedicalRecordRepo) FindByID(db *gorm.DB, id int) (*entity.MedicalRecord, error) {
	return m.findByID(id)
}

func (m *mockMedicalRecordRepo) TopDiagnoses(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.DiagnosisCount, error) {
	return m.topDiagnoses(doctorID, limit)
}

type mockHealthAlertRepo struct {
	repository.HealthAlertRepository
	create   func(a *entity.HealthAlert) error
	findByID func(id int) (*entity.HealthAlert, error)
	findLive func(at time.Time) ([]entity.HealthAlert, error)
	update   func(a *entity.HealthAlert) error
}

func (m *mockHealthAlertRepo) Create(db *gorm.DB, a *entity.HealthAlert) error {
	return m.create(a)
}

func (m *mockHealthAlertRepo) FindByID(db *gorm.DB, id int) (*entity.HealthAlert, error) {
	return m.findByID(id)
}

func (m *mockHealthAlertRepo) FindLive(db *gorm.DB, at time.Time) ([]entity.HealthAlert, error) {
	return m.findLive(at)
}

func (m *mockHealthAlertRepo) Update(db *gorm.DB, a *entity.HealthAlert) error {
	return m.update(a)
}

type mockOutbreakRepo struct {
	repository.DiseaseOutbreakRepository
	create         func(o *entity.DiseaseOutbreak) error
	findByID       func(id int) (*entity.DiseaseOutbreak, error)
	update         func(o *entity.DiseaseOutbreak) error
	delete         func(id int) (int64, error)
	findOpenByZone func(zone string) ([]entity.DiseaseOutbreak, error)
	zoneSummary    func() ([]entity.ZoneCaseCount, error)
}

func (m *mockOutbreakRepo) Create(db *gorm.DB, o *entity.DiseaseOutbreak) error {
	return m.create(o)
}

func (m *mockOutbreakRepo) FindByID(db *gorm.DB, id int) (*entity.DiseaseOutbreak, error) {
	return m.findByID(id)
}

func (m *mockOutbreakRepo) Update(db *gorm.DB, o *entity.DiseaseOutbreak) error {
	return m.update(o)
}

func (m *mockOutbreakRepo) Delete(db *gorm.DB, id int) (int64, error) {
	return m.delete(id)
}

func (m *mockOutbreakRepo) FindOpenByZone(db *gorm.DB, zone string) ([]entity.DiseaseOutbreak, error) {
	return m.findOpenByZone(zone)
}

func (m *mockOutbreakRepo) ZoneSummary(db *gorm.DB) ([]entity.ZoneCaseCount, error) {
	return m.zoneSummary()
}

type mockCampaignRepo struct {
	repository.VaccinationCampaignRepository
	create        func(c *entity.VaccinationCampaign) error
	findByID      func(id int) (*entity.VaccinationCampaign, error)
	findOngoing   func(at time.Time) ([]entity.VaccinationCampaign, error)
	addVaccinated func(id, count int) (int64, error)
	coverage      func() (*entity.CampaignCoverage, error)
}

func (m *mockCampaignRepo) Coverage(db *gorm.DB) (*entity.CampaignCoverage, error) {
	return m.coverage()
}

func (m *mockCampaignRepo) Create(db *gorm.DB, c *entity.VaccinationCampaign) error {
	return m.create(c)
}

func (m *mockCampaignRepo) FindByID(db *gorm.DB, id int) (*entity.VaccinationCampaign, error) {
	return m.findByID(id)
}

func (m *mockCampaignRepo) FindOngoing(db *gorm.DB, at time.Time) ([]entity.VaccinationCampaign, error) {
	return m.findOngoing(at)
}

func (m *mockCampaignRepo) AddVaccinated(db *gorm.DB, id int, count int) (int64, error) {
	return m.addVaccinated(id, count)
}

type mockMedicineRepo struct {
	repository.MedicineStockRepository
	create            func(s *entity.MedicineStock) error
	findByIDForUpdate func(id int) (*entity.MedicineStock, error)
	update            func(s *entity.MedicineStock) error
	countByStatus     func() ([]entity.StatusCount, error)
}

func (m *mockMedicineRepo) CountByStatus(db *gorm.DB) ([]entity.StatusCount, error) {
	return m.countByStatus()
}

func (m *mockMedicineRepo) Create(db *gorm.DB, s *entity.MedicineStock) error {
	return m.create(s)
}

func (m *mockMedicineRepo) FindByIDForUpdate(db *gorm.DB, id int) (*entity.MedicineStock, error) {
	return m.findByIDForUpdate(id)
}

func (m *mockMedicineRepo) Update(db *gorm.DB, s *entity.MedicineStock) error {
	// Mirrors the BeforeSave hook gorm runs on save.
	s.StockStatus = s.ComputeStockStatus()
	return m.update(s)
}

type mockHospitalRepo struct {
	repository.HospitalRepository
	findByID       func(id int) (*entity.Hospital, error)
	update         func(h *entity.Hospital) error
	bedTotals      func() (*entity.BedTotals, error)
	zoneBedSummary func() ([]entity.ZoneBedSummary, error)
}

func (m *mockHospitalRepo) BedTotals(db *gorm.DB) (*entity.BedTotals, error) {
	return m.bedTotals()
}

func (m *mockHospitalRepo) ZoneBedSummary(db *gorm.DB) ([]entity.ZoneBedSummary, error) {
	return m.zoneBedSummary()
}

func (m *mockHospitalRepo) FindByID(db *gorm.DB, id int) (*entity.Hospital, error) {
	return m.findByID(id)
}

func (m *mockHospitalRepo) Update(db *gorm.DB, h *entity.Hospital) error {
	return m.update(h)
}

type mockEquipmentRepo struct {
	repository.EquipmentRepository
	create             func(e *entity.Equipment) error
	findByID           func(id int) (*entity.Equipment, error)
	findMaintenanceDue func(before time.Time) ([]entity.Equipment, error)
	update             func(e *entity.Equipment) error
	delete             func(id int) (int64, error)
	summaryByStatus    func() ([]entity.EquipmentStatusSummary, error)
}

func (m *mockEquipmentRepo) Create(db *gorm.DB, e *entity.Equipment) error {
	e.HealthStatus = e.ComputeHealthStatus()
	return m.create(e)
}

func (m *mockEquipmentRepo) FindByID(db *gorm.DB, id int) (*entity.Equipment, error) {
	return m.findByID(id)
}

func (m *mockEquipmentRepo) FindMaintenanceDue(db *gorm.DB, before time.Time) ([]entity.Equipment, error) {
	return m.findMaintenanceDue(before)
}

func (m *mockEquipmentRepo) Update(db *gorm.DB, e *entity.Equipment) error {
	e.HealthStatus = e.ComputeHealthStatus()
	return m.update(e)
}

func (m *mockEquipmentRepo) Delete(db *gorm.DB, id int) (int64, error) {
	return m.delete(id)
}

func (m *mockEquipmentRepo) SummaryByStatus(db *gorm.DB) ([]entity.EquipmentStatusSummary, error) {
	return m.summaryByStatus()
}

type mockMetricsRepo struct {
	repository.HealthMetricsRepository
	findRange func(filter *entity.MetricsFilter) ([]entity.HealthMetrics, error)
}

func (m *mockMetricsRepo) FindRange(db *gorm.DB, filter *entity.MetricsFilter) ([]entity.HealthMetrics, error) {
	return m.findRange(filter)
}
