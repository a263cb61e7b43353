package handler

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"

	"github.com/gorilla/mux"
)

// DoctorPortalHandler serves the doctor portal.
type DoctorPortalHandler struct {
	portalUsecase usecase.DoctorPortalUsecase
	validator     *validator.CustomValidator
}

func NewDoctorPortalHandler(portalUsecase usecase.DoctorPortalUsecase, validator *validator.CustomValidator) *DoctorPortalHandler {
	return &DoctorPortalHandler{
		portalUsecase: portalUsecase,
		validator:     validator,
	}
}

func (h *DoctorPortalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	dashboard, err := h.portalUsecase.Dashboard(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DoctorPortalHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	day, ok := optionalDateQuery(w, r, "date")
	if !ok {
		return
	}

	status := entity.AppointmentStatus(r.URL.Query().Get("status"))
	appointments, err := h.portalUsecase.ListAppointments(r.Context(), doctorID, status, day)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *DoctorPortalHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	appointmentID, ok := intVar(w, r, "appointment")
	if !ok {
		return
	}

	appointment, err := h.portalUsecase.CancelAppointment(r.Context(), doctorID, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *DoctorPortalHandler) TreatPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	appointmentID, ok := intVar(w, r, "appointment")
	if !ok {
		return
	}

	var req dto.TreatPatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	treatment, err := h.portalUsecase.TreatPatient(r.Context(), doctorID, appointmentID, &req)
	if err != nil {
		writeError(w, err, "Failed to record treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment recorded successfully", treatment)
}

func (h *DoctorPortalHandler) PatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID, ok := uuidVar(w, r, "patient")
	if !ok {
		return
	}

	history, err := h.portalUsecase.PatientRecords(r.Context(), patientID, pageFromQuery(r))
	if err != nil {
		writeError(w, err, "Failed to get patient records")
		return
	}

	response.Success(w, http.StatusOK, "Patient records retrieved successfully", history)
}

func (h *DoctorPortalHandler) PatientByQRCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		response.Error(w, http.StatusBadRequest, "Invalid QR code", nil)
		return
	}

	history, err := h.portalUsecase.PatientByQRCode(r.Context(), code, pageFromQuery(r))
	if err != nil {
		writeError(w, err, "Failed to look up patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", history)
}

func (h *DoctorPortalHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	months, ok := boundedIntQuery(w, r, "months", usecase.DefaultAnalyticsMonths, usecase.MaxAnalyticsMonths)
	if !ok {
		return
	}
	top, ok := boundedIntQuery(w, r, "top", usecase.DefaultTopDiagnoses, usecase.MaxTopDiagnoses)
	if !ok {
		return
	}

	analytics, err := h.portalUsecase.Analytics(r.Context(), doctorID, months, top)
	if err != nil {
		response.InternalServerError(w, "Failed to build analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}
