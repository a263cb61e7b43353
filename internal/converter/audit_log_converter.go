package converter

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

// AuditLogToResponse converts a AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		response.Username = log.User.Username
	}
	return response
}

// AuditLogsToResponses converts a slice of AuditLog entities to slice of AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	return lo.Map(logs, func(log entity.AuditLog, _ int) dto.AuditLogResponse {
		return *AuditLogToResponse(&log)
	})
}
