package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign statuses
const (
	CampaignStatusPlanned   = "planned"
	CampaignStatusOngoing   = "ongoing"
	CampaignStatusCompleted = "completed"
)

// VaccinationCampaign is a time-boxed vaccination drive over one or more zones
type VaccinationCampaign struct {
	ID               int                         `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignName     string                      `gorm:"type:varchar(255);not null" json:"campaign_name"`
	VaccineName      string                      `gorm:"type:varchar(255);not null" json:"vaccine_name"`
	TargetGroup      string                      `gorm:"type:varchar(255)" json:"target_group,omitempty"`
	StartDate        time.Time                   `gorm:"type:date;not null" json:"start_date"`
	EndDate          time.Time                   `gorm:"type:date;not null" json:"end_date"`
	TargetPopulation int                         `gorm:"not null;default:0" json:"target_population"`
	VaccinatedCount  int                         `gorm:"not null;default:0" json:"vaccinated_count"`
	Status           string                      `gorm:"type:varchar(20);not null;default:'planned';index" json:"status"`
	Zones            datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"zones"`
	CreatedAt        time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VaccinationCampaign) TableName() string {
	return "vaccination_campaigns"
}

// CoverageRate returns vaccinated people as a percentage of the target.
func (c *VaccinationCampaign) CoverageRate() float64 {
	return Percentage(c.VaccinatedCount, c.TargetPopulation)
}

// CoversZone reports whether the campaign runs in the zone. No zones means city-wide.
func (c *VaccinationCampaign) CoversZone(zone string) bool {
	return zoneListContains(c.Zones, zone)
}
