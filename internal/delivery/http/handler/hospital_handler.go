package handler

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.HospitalRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.CreateHospital(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "hospital")
	if !ok {
		return
	}

	hospital, err := h.hospitalUsecase.GetHospital(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

// ListHospitals serves both the public bed board and the admin list.
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	filter := &entity.HospitalFilter{Zone: r.URL.Query().Get("zone")}
	hospitals, err := h.hospitalUsecase.ListHospitals(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "hospital")
	if !ok {
		return
	}

	var req dto.HospitalRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.UpdateHospital(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital updated successfully", hospital)
}

func (h *HospitalHandler) UpdateBeds(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "hospital")
	if !ok {
		return
	}

	var req dto.UpdateBedsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.UpdateBeds(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update beds")
		return
	}

	response.Success(w, http.StatusOK, "Bed availability updated successfully", hospital)
}

func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "hospital")
	if !ok {
		return
	}

	if err := h.hospitalUsecase.DeleteHospital(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital deleted successfully", nil)
}

func (h *HospitalHandler) BedAvailability(w http.ResponseWriter, r *http.Request) {
	beds, err := h.hospitalUsecase.BedAvailability(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bed availability")
		return
	}

	response.Success(w, http.StatusOK, "Bed availability retrieved successfully", beds)
}
