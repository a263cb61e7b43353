package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// 2026-07-01 is a Wednesday.
var citizenNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

type citizenFixture struct {
	usecase      *citizenPortalUsecase
	pool         *fakePool
	audit        *fakeAuditService
	patientID    uuid.UUID
	doctor       *entity.DoctorProfile
	appointments *mockAppointmentRepo
	records      *mockMedicalRecordRepo
	created      []*entity.Appointment
}

func newCitizenFixture(t *testing.T) *citizenFixture {
	t.Helper()
	db, pool := newTestDB(t)
	f := &citizenFixture{
		pool:      pool,
		audit:     &fakeAuditService{},
		patientID: uuid.New(),
		doctor: &entity.DoctorProfile{
			UserID:         uuid.New(),
			Specialization: "General Medicine",
			AvailableDays:  datatypes.JSONSlice[string]{"Monday", "Thursday"},
			IsAvailable:    boolPtr(true),
			User:           entity.User{FullName: "Dr. Kulkarni"},
		},
	}

	patients := &mockPatientProfileRepo{
		findByUserID: func(userID uuid.UUID) (*entity.PatientProfile, error) {
			if userID != f.patientID {
				return nil, nil
			}
			return &entity.PatientProfile{UserID: userID, Zone: "Zone A", User: entity.User{FullName: "Asha Patil"}}, nil
		},
	}
	doctors := &mockDoctorProfileRepo{
		findByUserID: func(userID uuid.UUID) (*entity.DoctorProfile, error) {
			if userID != f.doctor.UserID {
				return nil, nil
			}
			return f.doctor, nil
		},
	}
	f.appointments = &mockAppointmentRepo{
		existsScheduledOnDay: func(patientID, doctorID uuid.UUID, day time.Time) (bool, error) {
			return false, nil
		},
		create: func(a *entity.Appointment) error {
			a.ID = len(f.created) + 1
			f.created = append(f.created, a)
			return nil
		},
	}
	f.records = &mockMedicalRecordRepo{}

	uc := NewCitizenPortalUsecase(db, quietLogger(), patients, doctors, f.appointments, f.records,
		&mockHealthAlertRepo{}, &mockOutbreakRepo{}, &mockCampaignRepo{}, f.audit).(*citizenPortalUsecase)
	uc.now = fixedClock(citizenNow)
	uc.loc = time.UTC
	f.usecase = uc
	return f
}

func (f *citizenFixture) bookingRequest(at time.Time) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{DoctorID: f.doctor.UserID, AppointmentDate: at}
}

func TestBookAppointment_Success(t *testing.T) {
	f := newCitizenFixture(t)
	thursday := time.Date(2026, 7, 2, 10, 30, 0, 0, time.UTC)

	resp, err := f.usecase.BookAppointment(context.Background(), f.patientID, f.bookingRequest(thursday))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("expected scheduled, got %s", resp.Status)
	}
	if resp.AppointmentType != entity.AppointmentTypeConsultation {
		t.Errorf("expected default consultation type, got %s", resp.AppointmentType)
	}
	if resp.DoctorName != "Dr. Kulkarni" || resp.PatientName != "Asha Patil" {
		t.Errorf("expected names on response, got %+v", resp)
	}
	if len(f.created) != 1 || f.created[0].PatientID != f.patientID {
		t.Fatalf("expected appointment to be created for patient, got %+v", f.created)
	}
	if f.pool.commits() != 1 {
		t.Errorf("expected one commit, got %d", f.pool.commits())
	}
	if got := f.audit.actions(); len(got) != 1 || got[0] != entity.AuditActionAppointmentBook {
		t.Errorf("unexpected audit trail %v", got)
	}
}

func TestBookAppointment_DayRulesUseServerZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// Thursday 01:30 in Pune is still Wednesday evening in UTC.
	thursdayIST := time.Date(2026, 7, 2, 1, 30, 0, 0, ist)

	for name, at := range map[string]time.Time{
		"local offset": thursdayIST,
		"utc offset":   thursdayIST.UTC(),
	} {
		t.Run(name, func(t *testing.T) {
			f := newCitizenFixture(t)
			f.usecase.loc = ist
			var checkedDay time.Time
			f.appointments.existsScheduledOnDay = func(patientID, doctorID uuid.UUID, day time.Time) (bool, error) {
				checkedDay = day
				return false, nil
			}

			if _, err := f.usecase.BookAppointment(context.Background(), f.patientID, f.bookingRequest(at)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if checkedDay.Location() != ist || checkedDay.Day() != 2 {
				t.Errorf("expected the duplicate check on 2 July IST, got %s", checkedDay)
			}
			if !f.created[0].AppointmentDate.Equal(thursdayIST) {
				t.Errorf("expected the instant to be kept, got %s", f.created[0].AppointmentDate)
			}
		})
	}
}

func TestBookAppointment_Rejections(t *testing.T) {
	thursday := time.Date(2026, 7, 2, 10, 30, 0, 0, time.UTC)
	friday := time.Date(2026, 7, 3, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(f *citizenFixture) *dto.BookAppointmentRequest
		patient func(f *citizenFixture) uuid.UUID
		wantErr error
	}{
		{
			name:    "date in the past",
			setup:   func(f *citizenFixture) *dto.BookAppointmentRequest { return f.bookingRequest(citizenNow.Add(-time.Hour)) },
			wantErr: ErrAppointmentInPast,
		},
		{
			name:    "date equal to now",
			setup:   func(f *citizenFixture) *dto.BookAppointmentRequest { return f.bookingRequest(citizenNow) },
			wantErr: ErrAppointmentInPast,
		},
		{
			name:    "unknown patient",
			setup:   func(f *citizenFixture) *dto.BookAppointmentRequest { return f.bookingRequest(thursday) },
			patient: func(f *citizenFixture) uuid.UUID { return uuid.New() },
			wantErr: ErrPatientNotFound,
		},
		{
			name: "unknown doctor",
			setup: func(f *citizenFixture) *dto.BookAppointmentRequest {
				return &dto.BookAppointmentRequest{DoctorID: uuid.New(), AppointmentDate: thursday}
			},
			wantErr: ErrDoctorNotFound,
		},
		{
			name: "doctor unavailable",
			setup: func(f *citizenFixture) *dto.BookAppointmentRequest {
				f.doctor.IsAvailable = boolPtr(false)
				return f.bookingRequest(thursday)
			},
			wantErr: ErrDoctorUnavailable,
		},
		{
			name: "doctor account disabled",
			setup: func(f *citizenFixture) *dto.BookAppointmentRequest {
				f.doctor.User.IsActive = boolPtr(false)
				return f.bookingRequest(thursday)
			},
			wantErr: ErrDoctorUnavailable,
		},
		{
			name:    "weekday not offered",
			setup:   func(f *citizenFixture) *dto.BookAppointmentRequest { return f.bookingRequest(friday) },
			wantErr: ErrDoctorNotWorkingOnDay,
		},
		{
			name: "duplicate on the same day",
			setup: func(f *citizenFixture) *dto.BookAppointmentRequest {
				f.appointments.existsScheduledOnDay = func(patientID, doctorID uuid.UUID, day time.Time) (bool, error) {
					return true, nil
				}
				return f.bookingRequest(thursday)
			},
			wantErr: ErrDuplicateAppointment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCitizenFixture(t)
			req := tt.setup(f)
			patientID := f.patientID
			if tt.patient != nil {
				patientID = tt.patient(f)
			}

			_, err := f.usecase.BookAppointment(context.Background(), patientID, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(f.created) != 0 {
				t.Errorf("expected no appointment to be created")
			}
			if f.pool.commits() != 0 {
				t.Errorf("expected no commit")
			}
		})
	}
}

func TestBookAppointment_EmptyAvailableDaysMeansEveryDay(t *testing.T) {
	f := newCitizenFixture(t)
	f.doctor.AvailableDays = nil
	saturday := time.Date(2026, 7, 4, 11, 0, 0, 0, time.UTC)

	if _, err := f.usecase.BookAppointment(context.Background(), f.patientID, f.bookingRequest(saturday)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCitizenCancelAppointment(t *testing.T) {
	tests := []struct {
		name        string
		appointment *entity.Appointment
		owner       bool
		wantErr     error
	}{
		{name: "scheduled and owned", appointment: &entity.Appointment{ID: 5, Status: entity.AppointmentStatusScheduled}, owner: true},
		{name: "someone else's", appointment: &entity.Appointment{ID: 5, Status: entity.AppointmentStatusScheduled}, wantErr: ErrAppointmentNotOwned},
		{name: "already completed", appointment: &entity.Appointment{ID: 5, Status: entity.AppointmentStatusCompleted}, owner: true, wantErr: ErrAppointmentNotScheduled},
		{name: "missing", wantErr: ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCitizenFixture(t)
			if tt.appointment != nil {
				tt.appointment.PatientID = uuid.New()
				if tt.owner {
					tt.appointment.PatientID = f.patientID
				}
			}
			var updatedTo entity.AppointmentStatus
			f.appointments.findByID = func(id int) (*entity.Appointment, error) { return tt.appointment, nil }
			f.appointments.updateStatus = func(id int, status entity.AppointmentStatus) (int64, error) {
				updatedTo = status
				return 1, nil
			}

			resp, err := f.usecase.CancelAppointment(context.Background(), f.patientID, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if resp.Status != string(entity.AppointmentStatusCancelled) || updatedTo != entity.AppointmentStatusCancelled {
				t.Errorf("expected cancelled, got %s / %s", resp.Status, updatedTo)
			}
		})
	}
}

func TestCitizenCancelAppointment_LostRace(t *testing.T) {
	f := newCitizenFixture(t)
	f.appointments.findByID = func(id int) (*entity.Appointment, error) {
		return &entity.Appointment{ID: id, PatientID: f.patientID, Status: entity.AppointmentStatusScheduled}, nil
	}
	f.appointments.updateStatus = func(id int, status entity.AppointmentStatus) (int64, error) {
		return 0, nil
	}

	if _, err := f.usecase.CancelAppointment(context.Background(), f.patientID, 9); !errors.Is(err, ErrAppointmentNotScheduled) {
		t.Fatalf("expected ErrAppointmentNotScheduled, got %v", err)
	}
}

func TestGetMedicalRecord_HidesOtherPatients(t *testing.T) {
	f := newCitizenFixture(t)
	f.records.findByID = func(id int) (*entity.MedicalRecord, error) {
		return &entity.MedicalRecord{ID: id, PatientID: uuid.New(), Diagnosis: "Dengue"}, nil
	}

	if _, err := f.usecase.GetMedicalRecord(context.Background(), f.patientID, 3); !errors.Is(err, ErrMedicalRecordNotFound) {
		t.Fatalf("expected ErrMedicalRecordNotFound, got %v", err)
	}

	f.records.findByID = func(id int) (*entity.MedicalRecord, error) {
		return &entity.MedicalRecord{ID: id, PatientID: f.patientID, Diagnosis: "Dengue"}, nil
	}
	resp, err := f.usecase.GetMedicalRecord(context.Background(), f.patientID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Diagnosis != "Dengue" {
		t.Errorf("unexpected record %+v", resp)
	}
}

func TestPrecautions_FiltersByZone(t *testing.T) {
	f := newCitizenFixture(t)
	expired := citizenNow.Add(-time.Hour)
	f.usecase.alertRepo = &mockHealthAlertRepo{
		findLive: func(at time.Time) ([]entity.HealthAlert, error) {
			return []entity.HealthAlert{
				{ID: 1, IsActive: true, Zones: datatypes.JSONSlice[string]{"Zone A"}},
				{ID: 2, IsActive: true, Zones: datatypes.JSONSlice[string]{"Zone B"}},
				{ID: 3, IsActive: true},
				{ID: 4, IsActive: true, ExpiresAt: &expired, Zones: datatypes.JSONSlice[string]{"zone a"}},
			}, nil
		},
	}
	f.usecase.outbreakRepo = &mockOutbreakRepo{
		findOpenByZone: func(zone string) ([]entity.DiseaseOutbreak, error) {
			if zone != "Zone A" {
				t.Errorf("expected patient zone, got %q", zone)
			}
			return []entity.DiseaseOutbreak{{ID: 7, DiseaseName: "Malaria", Zone: zone}}, nil
		},
	}

	resp, err := f.usecase.Precautions(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The repository already drops expired rows; only the zone filter applies here.
	ids := []int{}
	for _, a := range resp.Alerts {
		ids = append(ids, a.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 4 {
		t.Errorf("unexpected alerts %v", ids)
	}
	if len(resp.Outbreaks) != 1 || resp.Zone != "Zone A" {
		t.Errorf("unexpected precautions %+v", resp)
	}
}

func TestCampaigns_OnlyCoveringZone(t *testing.T) {
	f := newCitizenFixture(t)
	f.usecase.campaignRepo = &mockCampaignRepo{
		findOngoing: func(at time.Time) ([]entity.VaccinationCampaign, error) {
			if !at.Equal(citizenNow) {
				t.Errorf("expected clock time, got %v", at)
			}
			return []entity.VaccinationCampaign{
				{ID: 1, Zones: datatypes.JSONSlice[string]{"Zone B"}},
				{ID: 2},
				{ID: 3, Zones: datatypes.JSONSlice[string]{"Zone B", "Zone A"}},
			}, nil
		},
	}

	campaigns, err := f.usecase.Campaigns(context.Background(), f.patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != 2 || campaigns[0].ID != 2 || campaigns[1].ID != 3 {
		t.Errorf("unexpected campaigns %+v", campaigns)
	}
}
