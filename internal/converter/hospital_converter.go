package converter

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

func HospitalToResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:                   h.ID,
		Name:                 h.Name,
		HospitalType:         h.HospitalType,
		Zone:                 h.Zone,
		WardNumber:           h.WardNumber,
		Phone:                h.Phone,
		Email:                h.Email,
		Address:              h.Address,
		TotalBeds:            h.TotalBeds,
		AvailableBeds:        h.AvailableBeds,
		OccupiedBeds:         h.OccupiedBeds(),
		OccupancyRate:        h.OccupancyRate(),
		ICUBeds:              h.ICUBeds,
		AvailableICUBeds:     h.AvailableICUBeds,
		Ventilators:          h.Ventilators,
		AvailableVentilators: h.AvailableVentilators,
		AmbulanceCount:       h.AmbulanceCount,
		UpdatedAt:            h.UpdatedAt,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	return lo.Map(hospitals, func(h entity.Hospital, _ int) dto.HospitalResponse {
		return *HospitalToResponse(&h)
	})
}

func HospitalFromRequest(req *dto.HospitalRequest, h *entity.Hospital) {
	h.Name = req.Name
	h.HospitalType = req.HospitalType
	h.Zone = req.Zone
	h.WardNumber = req.WardNumber
	h.Phone = req.Phone
	h.Email = req.Email
	h.Address = req.Address
	h.TotalBeds = req.TotalBeds
	h.AvailableBeds = req.AvailableBeds
	h.ICUBeds = req.ICUBeds
	h.AvailableICUBeds = req.AvailableICUBeds
	h.Ventilators = req.Ventilators
	h.AvailableVentilators = req.AvailableVentilators
	h.AmbulanceCount = req.AmbulanceCount
}

func BedTotalsToResponse(t *entity.BedTotals) dto.BedTotalsResponse {
	if t == nil {
		t = &entity.BedTotals{}
	}
	return dto.BedTotalsResponse{
		BedTotals:     *t,
		OccupiedBeds:  t.TotalBeds - t.AvailableBeds,
		OccupancyRate: t.OccupancyRate(),
	}
}
