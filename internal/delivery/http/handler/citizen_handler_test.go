package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/cache"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockCitizenPortal struct {
	usecase.CitizenPortalUsecase
	bookAppointment    func(userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	cancelAppointment  func(userID uuid.UUID, id int) (*dto.AppointmentResponse, error)
	listMedicalRecords func(userID uuid.UUID, page entity.Page) ([]dto.MedicalRecordResponse, int64, error)
	getMedicalRecord   func(userID uuid.UUID, id int) (*dto.MedicalRecordResponse, error)
}

func (m *mockCitizenPortal) BookAppointment(ctx context.Context, userID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.bookAppointment(userID, req)
}

func (m *mockCitizenPortal) CancelAppointment(ctx context.Context, userID uuid.UUID, id int) (*dto.AppointmentResponse, error) {
	return m.cancelAppointment(userID, id)
}

func (m *mockCitizenPortal) ListMedicalRecords(ctx context.Context, userID uuid.UUID, page entity.Page) ([]dto.MedicalRecordResponse, int64, error) {
	return m.listMedicalRecords(userID, page)
}

func (m *mockCitizenPortal) GetMedicalRecord(ctx context.Context, userID uuid.UUID, id int) (*dto.MedicalRecordResponse, error) {
	return m.getMedicalRecord(userID, id)
}

// citizenRouter mounts the handler the way the router does, minus authentication.
func citizenRouter(portal usecase.CitizenPortalUsecase) *mux.Router {
	h := NewCitizenHandler(portal, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/citizen/appointments", h.BookAppointment).Methods(http.MethodPost)
	r.HandleFunc("/citizen/appointments/{id}/cancel", h.CancelAppointment).Methods(http.MethodPatch)
	r.HandleFunc("/citizen/medical-records", h.ListMedicalRecords).Methods(http.MethodGet)
	r.HandleFunc("/citizen/medical-records/{id}", h.GetMedicalRecord).Methods(http.MethodGet)
	return r
}

func asPatient(req *http.Request, userID uuid.UUID) *http.Request {
	session := cache.Session{UserID: userID, Username: "asha", RoleID: entity.RoleIDPatient}
	return req.WithContext(middleware.ContextWithSession(req.Context(), session, "tok"))
}

func TestCitizenHandler_BookAppointment(t *testing.T) {
	userID := uuid.New()
	doctorID := uuid.New()

	tests := []struct {
		name     string
		body     string
		bookErr  error
		want     int
		wantCall bool
	}{
		{
			name:     "booked",
			body:     `{"doctor_id":"` + doctorID.String() + `","appointment_date":"2026-07-02T10:00:00Z","symptoms":"fever"}`,
			want:     http.StatusCreated,
			wantCall: true,
		},
		{
			name: "missing doctor",
			body: `{"appointment_date":"2026-07-02T10:00:00Z"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown appointment type",
			body: `{"doctor_id":"` + doctorID.String() + `","appointment_date":"2026-07-02T10:00:00Z","appointment_type":"surgery"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed json",
			body: `{"doctor_id":`,
			want: http.StatusBadRequest,
		},
		{
			name:     "doctor off that day",
			body:     `{"doctor_id":"` + doctorID.String() + `","appointment_date":"2026-07-04T10:00:00Z"}`,
			bookErr:  usecase.ErrDoctorNotWorkingOnDay,
			want:     http.StatusBadRequest,
			wantCall: true,
		},
		{
			name:     "already booked",
			body:     `{"doctor_id":"` + doctorID.String() + `","appointment_date":"2026-07-02T10:00:00Z"}`,
			bookErr:  usecase.ErrDuplicateAppointment,
			want:     http.StatusConflict,
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			portal := &mockCitizenPortal{
				bookAppointment: func(gotUser uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
					called = true
					if gotUser != userID || req.DoctorID != doctorID {
						t.Errorf("unexpected booking for %s with %s", gotUser, req.DoctorID)
					}
					if tt.bookErr != nil {
						return nil, tt.bookErr
					}
					return &dto.AppointmentResponse{ID: 7, PatientID: gotUser, DoctorID: req.DoctorID, Status: string(entity.AppointmentStatusScheduled)}, nil
				},
			}

			req := asPatient(httptest.NewRequest(http.MethodPost, "/citizen/appointments", strings.NewReader(tt.body)), userID)
			rec := httptest.NewRecorder()
			citizenRouter(portal).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
			if called != tt.wantCall {
				t.Errorf("expected usecase call=%v, got %v", tt.wantCall, called)
			}
		})
	}
}

func TestCitizenHandler_RequiresIdentity(t *testing.T) {
	portal := &mockCitizenPortal{}
	req := httptest.NewRequest(http.MethodGet, "/citizen/medical-records", nil)
	rec := httptest.NewRecorder()
	citizenRouter(portal).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCitizenHandler_CancelAppointment(t *testing.T) {
	userID := uuid.New()
	portal := &mockCitizenPortal{
		cancelAppointment: func(gotUser uuid.UUID, id int) (*dto.AppointmentResponse, error) {
			switch id {
			case 1:
				return &dto.AppointmentResponse{ID: 1, Status: string(entity.AppointmentStatusCancelled)}, nil
			case 2:
				return nil, usecase.ErrAppointmentNotOwned
			case 3:
				return nil, usecase.ErrAppointmentNotScheduled
			}
			return nil, usecase.ErrAppointmentNotFound
		},
	}
	router := citizenRouter(portal)

	tests := []struct {
		path string
		want int
	}{
		{path: "/citizen/appointments/1/cancel", want: http.StatusOK},
		{path: "/citizen/appointments/2/cancel", want: http.StatusForbidden},
		{path: "/citizen/appointments/3/cancel", want: http.StatusConflict},
		{path: "/citizen/appointments/9/cancel", want: http.StatusNotFound},
		{path: "/citizen/appointments/abc/cancel", want: http.StatusBadRequest},
		{path: "/citizen/appointments/0/cancel", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := asPatient(httptest.NewRequest(http.MethodPatch, tt.path, nil), userID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestCitizenHandler_ListMedicalRecordsPaginates(t *testing.T) {
	userID := uuid.New()
	var gotPage entity.Page
	portal := &mockCitizenPortal{
		listMedicalRecords: func(gotUser uuid.UUID, page entity.Page) ([]dto.MedicalRecordResponse, int64, error) {
			gotPage = page
			return []dto.MedicalRecordResponse{{ID: 1}, {ID: 2}}, 12, nil
		},
	}

	req := asPatient(httptest.NewRequest(http.MethodGet, "/citizen/medical-records?page=2&limit=5", nil), userID)
	rec := httptest.NewRecorder()
	citizenRouter(portal).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotPage.Page != 2 || gotPage.Limit != 5 {
		t.Errorf("unexpected page %+v", gotPage)
	}
	body := decodeBody(t, rec)
	if body.Meta == nil || body.Meta.Total != 12 || body.Meta.TotalPages != 3 {
		t.Errorf("unexpected meta %+v", body.Meta)
	}
}

func TestCitizenHandler_OtherPatientsRecordIsNotFound(t *testing.T) {
	userID := uuid.New()
	portal := &mockCitizenPortal{
		getMedicalRecord: func(gotUser uuid.UUID, id int) (*dto.MedicalRecordResponse, error) {
			return nil, usecase.ErrMedicalRecordNotFound
		},
	}

	req := asPatient(httptest.NewRequest(http.MethodGet, "/citizen/medical-records/44", nil), userID)
	rec := httptest.NewRecorder()
	citizenRouter(portal).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
