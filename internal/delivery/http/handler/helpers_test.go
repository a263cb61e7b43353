package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: usecase.ErrAppointmentInPast, want: http.StatusBadRequest},
		{err: usecase.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: usecase.ErrAppointmentNotOwned, want: http.StatusForbidden},
		{err: usecase.ErrMedicalRecordNotFound, want: http.StatusNotFound},
		{err: usecase.ErrDuplicateAppointment, want: http.StatusConflict},
		{err: fmt.Errorf("booking: %w", usecase.ErrDoctorUnavailable), want: http.StatusConflict},
		{err: service.ErrStorageNotConfigured, want: http.StatusServiceUnavailable},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, "Something failed")

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			body := decodeBody(t, rec)
			if body.Success {
				t.Error("expected success=false")
			}
			if tt.want == http.StatusInternalServerError && body.Message != "Something failed" {
				t.Errorf("expected fallback message, got %q", body.Message)
			}
		})
	}
}

func TestWriteError_CapitalisesSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, usecase.ErrHospitalNotFound, "fallback")

	if got := decodeBody(t, rec).Message; got != "Hospital not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{query: "", wantPage: defaultPage, wantLimit: defaultLimit},
		{query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{query: "page=0&limit=-1", wantPage: defaultPage, wantLimit: defaultLimit},
		{query: "page=abc&limit=500", wantPage: defaultPage, wantLimit: maxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			page := pageFromQuery(req)
			if page.Page != tt.wantPage || page.Limit != tt.wantLimit {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantPage, tt.wantLimit, page.Page, page.Limit)
			}
		})
	}
}

func TestBoundedIntQuery(t *testing.T) {
	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{query: "", want: 6, wantOK: true},
		{query: "months=12", want: 12, wantOK: true},
		{query: "months=120", want: 120, wantOK: true},
		{query: "months=121", wantOK: false},
		{query: "months=2147483647", wantOK: false},
		{query: "months=0", wantOK: false},
		{query: "months=six", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, ok := boundedIntQuery(rec, req, "months", 6, 120)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				if rec.Code != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", rec.Code)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestOptionalDateQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?date=2026-07-15", nil)
	day, ok := optionalDateQuery(rec, req, "date")
	if !ok || day == nil || day.Day() != 15 {
		t.Fatalf("expected 15th, got %v %v", day, ok)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/?date=15-07-2026", nil)
	if _, ok := optionalDateQuery(rec, req, "date"); ok || rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
	if !strings.Contains(decodeBody(t, rec).Message, "YYYY-MM-DD") {
		t.Error("expected format hint in message")
	}
}
