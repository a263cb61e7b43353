package handler

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

// SurveillanceHandler serves disease outbreaks, vaccination campaigns and
// health alerts.
type SurveillanceHandler struct {
	outbreakUsecase usecase.DiseaseOutbreakUsecase
	campaignUsecase usecase.VaccinationCampaignUsecase
	alertUsecase    usecase.HealthAlertUsecase
	validator       *validator.CustomValidator
}

func NewSurveillanceHandler(
	outbreakUsecase usecase.DiseaseOutbreakUsecase,
	campaignUsecase usecase.VaccinationCampaignUsecase,
	alertUsecase usecase.HealthAlertUsecase,
	validator *validator.CustomValidator,
) *SurveillanceHandler {
	return &SurveillanceHandler{
		outbreakUsecase: outbreakUsecase,
		campaignUsecase: campaignUsecase,
		alertUsecase:    alertUsecase,
		validator:       validator,
	}
}

// Outbreaks

func (h *SurveillanceHandler) CreateOutbreak(w http.ResponseWriter, r *http.Request) {
	var req dto.OutbreakRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	outbreak, err := h.outbreakUsecase.CreateOutbreak(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create outbreak")
		return
	}

	response.Success(w, http.StatusCreated, "Outbreak created successfully", outbreak)
}

func (h *SurveillanceHandler) GetOutbreak(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "outbreak")
	if !ok {
		return
	}

	outbreak, err := h.outbreakUsecase.GetOutbreak(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get outbreak")
		return
	}

	response.Success(w, http.StatusOK, "Outbreak retrieved successfully", outbreak)
}

func (h *SurveillanceHandler) ListOutbreaks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pageFromQuery(r)
	filter := &entity.OutbreakFilter{
		Zone:   q.Get("zone"),
		Status: q.Get("status"),
		Page:   page,
	}

	outbreaks, total, err := h.outbreakUsecase.ListOutbreaks(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get outbreaks")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Outbreaks retrieved successfully", outbreaks, meta(page, total))
}

func (h *SurveillanceHandler) UpdateOutbreak(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "outbreak")
	if !ok {
		return
	}

	var req dto.OutbreakRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	outbreak, err := h.outbreakUsecase.UpdateOutbreak(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update outbreak")
		return
	}

	response.Success(w, http.StatusOK, "Outbreak updated successfully", outbreak)
}

func (h *SurveillanceHandler) DeleteOutbreak(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "outbreak")
	if !ok {
		return
	}

	if err := h.outbreakUsecase.DeleteOutbreak(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete outbreak")
		return
	}

	response.Success(w, http.StatusOK, "Outbreak deleted successfully", nil)
}

func (h *SurveillanceHandler) OutbreakZoneSummary(w http.ResponseWriter, r *http.Request) {
	zones, err := h.outbreakUsecase.ZoneSummary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to summarize outbreaks")
		return
	}

	response.Success(w, http.StatusOK, "Zone summary retrieved successfully", zones)
}

// Campaigns

func (h *SurveillanceHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req dto.CampaignRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	campaign, err := h.campaignUsecase.CreateCampaign(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create campaign")
		return
	}

	response.Success(w, http.StatusCreated, "Campaign created successfully", campaign)
}

func (h *SurveillanceHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "campaign")
	if !ok {
		return
	}

	campaign, err := h.campaignUsecase.GetCampaign(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get campaign")
		return
	}

	response.Success(w, http.StatusOK, "Campaign retrieved successfully", campaign)
}

func (h *SurveillanceHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	filter := &entity.CampaignFilter{
		Status: r.URL.Query().Get("status"),
		Page:   page,
	}

	campaigns, total, err := h.campaignUsecase.ListCampaigns(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get campaigns")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Campaigns retrieved successfully", campaigns, meta(page, total))
}

func (h *SurveillanceHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "campaign")
	if !ok {
		return
	}

	var req dto.CampaignRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	campaign, err := h.campaignUsecase.UpdateCampaign(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update campaign")
		return
	}

	response.Success(w, http.StatusOK, "Campaign updated successfully", campaign)
}

func (h *SurveillanceHandler) CampaignProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "campaign")
	if !ok {
		return
	}

	var req dto.CampaignProgressRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	campaign, err := h.campaignUsecase.AddProgress(r.Context(), id, req.Vaccinated)
	if err != nil {
		writeError(w, err, "Failed to record campaign progress")
		return
	}

	response.Success(w, http.StatusOK, "Campaign progress recorded successfully", campaign)
}

func (h *SurveillanceHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "campaign")
	if !ok {
		return
	}

	if err := h.campaignUsecase.DeleteCampaign(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete campaign")
		return
	}

	response.Success(w, http.StatusOK, "Campaign deleted successfully", nil)
}

// Alerts

func (h *SurveillanceHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req dto.AlertRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	alert, err := h.alertUsecase.CreateAlert(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create alert")
		return
	}

	response.Success(w, http.StatusCreated, "Alert created successfully", alert)
}

func (h *SurveillanceHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "alert")
	if !ok {
		return
	}

	alert, err := h.alertUsecase.GetAlert(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert retrieved successfully", alert)
}

func (h *SurveillanceHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	filter := &entity.AlertFilter{
		OnlyActive: r.URL.Query().Get("active") == "true",
		Page:       page,
	}

	alerts, total, err := h.alertUsecase.ListAlerts(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get alerts")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Alerts retrieved successfully", alerts, meta(page, total))
}

func (h *SurveillanceHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "alert")
	if !ok {
		return
	}

	var req dto.AlertRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	alert, err := h.alertUsecase.UpdateAlert(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert updated successfully", alert)
}

func (h *SurveillanceHandler) DeactivateAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "alert")
	if !ok {
		return
	}

	alert, err := h.alertUsecase.DeactivateAlert(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to deactivate alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert deactivated successfully", alert)
}

func (h *SurveillanceHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "alert")
	if !ok {
		return
	}

	if err := h.alertUsecase.DeleteAlert(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete alert")
		return
	}

	response.Success(w, http.StatusOK, "Alert deleted successfully", nil)
}

// PublicAlerts lists live alerts, optionally narrowed to a zone.
func (h *SurveillanceHandler) PublicAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertUsecase.LiveAlerts(r.Context(), r.URL.Query().Get("zone"))
	if err != nil {
		response.InternalServerError(w, "Failed to get alerts")
		return
	}

	response.Success(w, http.StatusOK, "Alerts retrieved successfully", alerts)
}
