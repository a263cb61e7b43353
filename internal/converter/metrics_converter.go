package converter

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

func MetricsToResponse(m *entity.HealthMetrics) *dto.MetricsResponse {
	if m == nil {
		return nil
	}

	return &dto.MetricsResponse{
		ID:                      m.ID,
		Date:                    time.Time(m.Date).Format(dateLayout),
		Zone:                    m.Zone,
		WardNumber:              m.WardNumber,
		TotalConsultations:      m.TotalConsultations,
		EmergencyVisits:         m.EmergencyVisits,
		NewDiseaseCases:         m.NewDiseaseCases,
		VaccinationsGiven:       m.VaccinationsGiven,
		CommunicableDiseases:    m.CommunicableDiseases,
		NonCommunicableDiseases: m.NonCommunicableDiseases,
		UpdatedAt:               m.UpdatedAt,
	}
}

func MetricsListToResponses(items []entity.HealthMetrics) []dto.MetricsResponse {
	return lo.Map(items, func(m entity.HealthMetrics, _ int) dto.MetricsResponse {
		return *MetricsToResponse(&m)
	})
}
