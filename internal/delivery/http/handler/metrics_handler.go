package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

type MetricsHandler struct {
	metricsUsecase usecase.HealthMetricsUsecase
	validator      *validator.CustomValidator
}

func NewMetricsHandler(metricsUsecase usecase.HealthMetricsUsecase, validator *validator.CustomValidator) *MetricsHandler {
	return &MetricsHandler{
		metricsUsecase: metricsUsecase,
		validator:      validator,
	}
}

// rangeFromQuery reads from, to and zone query parameters.
func (h *MetricsHandler) rangeFromQuery(w http.ResponseWriter, r *http.Request) (*dto.MetricsRangeRequest, bool) {
	q := r.URL.Query()
	req := &dto.MetricsRangeRequest{
		From: q.Get("from"),
		To:   q.Get("to"),
		Zone: q.Get("zone"),
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return req, true
}

func (h *MetricsHandler) UpsertMetrics(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertMetricsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	metrics, err := h.metricsUsecase.UpsertMetrics(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to save health metrics")
		return
	}

	response.Success(w, http.StatusOK, "Health metrics saved successfully", metrics)
}

func (h *MetricsHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	req, ok := h.rangeFromQuery(w, r)
	if !ok {
		return
	}

	page := pageFromQuery(r)
	items, total, err := h.metricsUsecase.ListMetrics(r.Context(), req, page)
	if err != nil {
		writeError(w, err, "Failed to get health metrics")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Health metrics retrieved successfully", items, meta(page, total))
}

func (h *MetricsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.rangeFromQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.metricsUsecase.Summary(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to summarize health metrics")
		return
	}

	response.Success(w, http.StatusOK, "Health metrics summary retrieved successfully", summary)
}

func (h *MetricsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.rangeFromQuery(w, r)
	if !ok {
		return
	}

	trend, err := h.metricsUsecase.Trend(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to build health metrics trend")
		return
	}

	response.Success(w, http.StatusOK, "Health metrics trend retrieved successfully", trend)
}

// Export accepts an empty body, which exports every row.
func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req dto.MetricsRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	export, err := h.metricsUsecase.Export(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to export health metrics")
		return
	}

	response.Success(w, http.StatusCreated, "Health metrics exported successfully", export)
}
