package converter

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

func EquipmentToResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}

	response := &dto.EquipmentResponse{
		ID:                  e.ID,
		HospitalID:          e.HospitalID,
		EquipmentName:       e.EquipmentName,
		EquipmentType:       e.EquipmentType,
		Quantity:            e.Quantity,
		WorkingCondition:    e.WorkingCondition,
		UnderMaintenance:    e.UnderMaintenance,
		OutOfService:        e.OutOfService,
		LastMaintenanceDate: formatDate(e.LastMaintenanceDate),
		NextMaintenanceDate: formatDate(e.NextMaintenanceDate),
		HealthStatus:        e.HealthStatus,
		UpdatedAt:           e.UpdatedAt,
	}
	if e.Hospital != nil {
		response.HospitalName = e.Hospital.Name
	}
	return response
}

func EquipmentListToResponses(items []entity.Equipment) []dto.EquipmentResponse {
	return lo.Map(items, func(e entity.Equipment, _ int) dto.EquipmentResponse {
		return *EquipmentToResponse(&e)
	})
}

func MedicineToResponse(m *entity.MedicineStock) *dto.MedicineResponse {
	if m == nil {
		return nil
	}

	response := &dto.MedicineResponse{
		ID:           m.ID,
		HospitalID:   m.HospitalID,
		MedicineName: m.MedicineName,
		GenericName:  m.GenericName,
		Category:     m.Category,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		ReorderLevel: m.ReorderLevel,
		BatchNumber:  m.BatchNumber,
		ExpiryDate:   formatDate(m.ExpiryDate),
		StockStatus:  m.StockStatus,
		IsExpired:    m.IsExpired(time.Now()),
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Hospital != nil {
		response.HospitalName = m.Hospital.Name
	}
	return response
}

func MedicinesToResponses(items []entity.MedicineStock) []dto.MedicineResponse {
	return lo.Map(items, func(m entity.MedicineStock, _ int) dto.MedicineResponse {
		return *MedicineToResponse(&m)
	})
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
