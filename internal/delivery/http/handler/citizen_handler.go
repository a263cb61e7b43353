package handler

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/http/middleware"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

// CitizenHandler serves the patient portal.
type CitizenHandler struct {
	portalUsecase usecase.CitizenPortalUsecase
	validator     *validator.CustomValidator
}

func NewCitizenHandler(portalUsecase usecase.CitizenPortalUsecase, validator *validator.CustomValidator) *CitizenHandler {
	return &CitizenHandler{
		portalUsecase: portalUsecase,
		validator:     validator,
	}
}

func (h *CitizenHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	dashboard, err := h.portalUsecase.Dashboard(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to build dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *CitizenHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.BookAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.portalUsecase.BookAppointment(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *CitizenHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	status := entity.AppointmentStatus(r.URL.Query().Get("status"))
	appointments, err := h.portalUsecase.ListAppointments(r.Context(), userID, status)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *CitizenHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	appointmentID, ok := intVar(w, r, "appointment")
	if !ok {
		return
	}

	appointment, err := h.portalUsecase.CancelAppointment(r.Context(), userID, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *CitizenHandler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	page := pageFromQuery(r)
	records, total, err := h.portalUsecase.ListMedicalRecords(r.Context(), userID, page)
	if err != nil {
		response.InternalServerError(w, "Failed to get medical records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical records retrieved successfully", records, meta(page, total))
}

func (h *CitizenHandler) GetMedicalRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	recordID, ok := intVar(w, r, "medical record")
	if !ok {
		return
	}

	record, err := h.portalUsecase.GetMedicalRecord(r.Context(), userID, recordID)
	if err != nil {
		writeError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

func (h *CitizenHandler) Precautions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	precautions, err := h.portalUsecase.Precautions(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get precautions")
		return
	}

	response.Success(w, http.StatusOK, "Precautions retrieved successfully", precautions)
}

func (h *CitizenHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	campaigns, err := h.portalUsecase.Campaigns(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get vaccination campaigns")
		return
	}

	response.Success(w, http.StatusOK, "Vaccination campaigns retrieved successfully", campaigns)
}
