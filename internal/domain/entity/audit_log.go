package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is one entry of the admin write trail
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionUserRegister  = "user.register"
	AuditActionProfileUpdate = "profile.update"

	AuditActionDoctorCreate = "doctor.create"
	AuditActionDoctorUpdate = "doctor.update"
	AuditActionDoctorDelete = "doctor.delete"

	AuditActionAppointmentBook   = "appointment.book"
	AuditActionAppointmentCancel = "appointment.cancel"
	AuditActionAppointmentTreat  = "appointment.treat"

	AuditActionHospitalCreate = "hospital.create"
	AuditActionHospitalUpdate = "hospital.update"
	AuditActionHospitalBeds   = "hospital.beds"
	AuditActionHospitalDelete = "hospital.delete"

	AuditActionEquipmentCreate = "equipment.create"
	AuditActionEquipmentUpdate = "equipment.update"
	AuditActionEquipmentDelete = "equipment.delete"

	AuditActionMedicineCreate = "medicine.create"
	AuditActionMedicineUpdate = "medicine.update"
	AuditActionMedicineStock  = "medicine.stock"
	AuditActionMedicineDelete = "medicine.delete"

	AuditActionOutbreakCreate = "outbreak.create"
	AuditActionOutbreakUpdate = "outbreak.update"
	AuditActionOutbreakDelete = "outbreak.delete"

	AuditActionCampaignCreate   = "campaign.create"
	AuditActionCampaignUpdate   = "campaign.update"
	AuditActionCampaignProgress = "campaign.progress"
	AuditActionCampaignDelete   = "campaign.delete"

	AuditActionAlertCreate     = "alert.create"
	AuditActionAlertUpdate     = "alert.update"
	AuditActionAlertDeactivate = "alert.deactivate"
	AuditActionAlertDelete     = "alert.delete"

	AuditActionMetricsUpsert = "metrics.upsert"
	AuditActionMetricsExport = "metrics.export"
)
