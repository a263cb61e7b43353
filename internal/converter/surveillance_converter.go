package converter

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

func OutbreakToResponse(o *entity.DiseaseOutbreak) *dto.OutbreakResponse {
	if o == nil {
		return nil
	}

	return &dto.OutbreakResponse{
		ID:                o.ID,
		DiseaseName:       o.DiseaseName,
		DiseaseType:       o.DiseaseType,
		Zone:              o.Zone,
		WardNumber:        o.WardNumber,
		TotalCases:        o.TotalCases,
		ActiveCases:       o.ActiveCases,
		RecoveredCases:    o.RecoveredCases,
		DeathCases:        o.DeathCases,
		RecoveryRate:      o.RecoveryRate(),
		AlertLevel:        o.AlertLevel,
		OutbreakStatus:    o.OutbreakStatus,
		FirstReportedDate: o.FirstReportedDate.Format(dateLayout),
		PredictedCases:    o.PredictedCases,
		RiskScore:         o.RiskScore,
		UpdatedAt:         o.UpdatedAt,
	}
}

func OutbreaksToResponses(items []entity.DiseaseOutbreak) []dto.OutbreakResponse {
	return lo.Map(items, func(o entity.DiseaseOutbreak, _ int) dto.OutbreakResponse {
		return *OutbreakToResponse(&o)
	})
}

func CampaignToResponse(c *entity.VaccinationCampaign) *dto.CampaignResponse {
	if c == nil {
		return nil
	}

	return &dto.CampaignResponse{
		ID:               c.ID,
		CampaignName:     c.CampaignName,
		VaccineName:      c.VaccineName,
		TargetGroup:      c.TargetGroup,
		StartDate:        c.StartDate.Format(dateLayout),
		EndDate:          c.EndDate.Format(dateLayout),
		TargetPopulation: c.TargetPopulation,
		VaccinatedCount:  c.VaccinatedCount,
		CoverageRate:     c.CoverageRate(),
		Status:           c.Status,
		Zones:            nonNil(c.Zones),
	}
}

func CampaignsToResponses(items []entity.VaccinationCampaign) []dto.CampaignResponse {
	return lo.Map(items, func(c entity.VaccinationCampaign, _ int) dto.CampaignResponse {
		return *CampaignToResponse(&c)
	})
}

func AlertToResponse(a *entity.HealthAlert) *dto.AlertResponse {
	if a == nil {
		return nil
	}

	return &dto.AlertResponse{
		ID:             a.ID,
		AlertType:      a.AlertType,
		Title:          a.Title,
		Message:        a.Message,
		MessageMarathi: a.MessageMarathi,
		Severity:       a.Severity,
		Zones:          nonNil(a.Zones),
		WardNumbers:    nonNil(a.WardNumbers),
		IsActive:       a.IsActive,
		CreatedBy:      a.CreatedBy,
		ExpiresAt:      a.ExpiresAt,
		CreatedAt:      a.CreatedAt,
	}
}

func AlertsToResponses(items []entity.HealthAlert) []dto.AlertResponse {
	return lo.Map(items, func(a entity.HealthAlert, _ int) dto.AlertResponse {
		return *AlertToResponse(&a)
	})
}
