package handler

import (
	"net/http"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/usecase"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/response"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

const (
	defaultMaintenanceDays = 30
	defaultExpiryDays      = 90
	maxLookaheadDays       = 3650
)

// InventoryHandler serves equipment and medicine stock.
type InventoryHandler struct {
	equipmentUsecase usecase.EquipmentUsecase
	medicineUsecase  usecase.MedicineStockUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(
	equipmentUsecase usecase.EquipmentUsecase,
	medicineUsecase usecase.MedicineStockUsecase,
	validator *validator.CustomValidator,
) *InventoryHandler {
	return &InventoryHandler{
		equipmentUsecase: equipmentUsecase,
		medicineUsecase:  medicineUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req dto.EquipmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	equipment, err := h.equipmentUsecase.CreateEquipment(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create equipment")
		return
	}

	response.Success(w, http.StatusCreated, "Equipment created successfully", equipment)
}

func (h *InventoryHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "equipment")
	if !ok {
		return
	}

	equipment, err := h.equipmentUsecase.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get equipment")
		return
	}

	response.Success(w, http.StatusOK, "Equipment retrieved successfully", equipment)
}

func (h *InventoryHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := optionalIntQuery(w, r, "hospital_id")
	if !ok {
		return
	}

	page := pageFromQuery(r)
	filter := &entity.EquipmentFilter{
		HospitalID: hospitalID,
		Status:     r.URL.Query().Get("status"),
		Page:       page,
	}
	items, total, err := h.equipmentUsecase.ListEquipment(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get equipment")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Equipment retrieved successfully", items, meta(page, total))
}

func (h *InventoryHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "equipment")
	if !ok {
		return
	}

	var req dto.EquipmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	equipment, err := h.equipmentUsecase.UpdateEquipment(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update equipment")
		return
	}

	response.Success(w, http.StatusOK, "Equipment updated successfully", equipment)
}

func (h *InventoryHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "equipment")
	if !ok {
		return
	}

	if err := h.equipmentUsecase.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete equipment")
		return
	}

	response.Success(w, http.StatusOK, "Equipment deleted successfully", nil)
}

func (h *InventoryHandler) MaintenanceDue(w http.ResponseWriter, r *http.Request) {
	days, ok := boundedIntQuery(w, r, "days", defaultMaintenanceDays, maxLookaheadDays)
	if !ok {
		return
	}

	items, err := h.equipmentUsecase.MaintenanceDue(r.Context(), days)
	if err != nil {
		response.InternalServerError(w, "Failed to get maintenance schedule")
		return
	}

	response.Success(w, http.StatusOK, "Maintenance due retrieved successfully", items)
}

func (h *InventoryHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicineRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.CreateMedicine(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create medicine stock")
		return
	}

	response.Success(w, http.StatusCreated, "Medicine stock created successfully", medicine)
}

func (h *InventoryHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "medicine")
	if !ok {
		return
	}

	medicine, err := h.medicineUsecase.GetMedicine(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get medicine stock")
		return
	}

	response.Success(w, http.StatusOK, "Medicine stock retrieved successfully", medicine)
}

func (h *InventoryHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := optionalIntQuery(w, r, "hospital_id")
	if !ok {
		return
	}

	q := r.URL.Query()
	page := pageFromQuery(r)
	filter := &entity.MedicineFilter{
		HospitalID: hospitalID,
		Status:     q.Get("status"),
		Category:   q.Get("category"),
		Page:       page,
	}
	items, total, err := h.medicineUsecase.ListMedicines(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get medicine stock")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medicine stock retrieved successfully", items, meta(page, total))
}

func (h *InventoryHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "medicine")
	if !ok {
		return
	}

	var req dto.MedicineRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.UpdateMedicine(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update medicine stock")
		return
	}

	response.Success(w, http.StatusOK, "Medicine stock updated successfully", medicine)
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "medicine")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		writeError(w, err, "Failed to adjust stock")
		return
	}

	response.Success(w, http.StatusOK, "Stock adjusted successfully", medicine)
}

func (h *InventoryHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "medicine")
	if !ok {
		return
	}

	if err := h.medicineUsecase.DeleteMedicine(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete medicine stock")
		return
	}

	response.Success(w, http.StatusOK, "Medicine stock deleted successfully", nil)
}

func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.medicineUsecase.LowStock(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get low stock")
		return
	}

	response.Success(w, http.StatusOK, "Low stock retrieved successfully", items)
}

func (h *InventoryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days, ok := boundedIntQuery(w, r, "days", defaultExpiryDays, maxLookaheadDays)
	if !ok {
		return
	}

	items, err := h.medicineUsecase.Expiring(r.Context(), days)
	if err != nil {
		response.InternalServerError(w, "Failed to get expiring stock")
		return
	}

	response.Success(w, http.StatusOK, "Expiring stock retrieved successfully", items)
}
