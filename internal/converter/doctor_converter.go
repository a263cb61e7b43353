package converter

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                    profile.UserID,
		Username:              profile.User.Username,
		Email:                 profile.User.Email,
		FullName:              profile.User.FullName,
		Phone:                 profile.User.Phone,
		IsActive:              profile.User.Active(),
		DoctorProfileResponse: doctorProfileFields(profile),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	return lo.Map(profiles, func(profile entity.DoctorProfile, _ int) dto.DoctorResponse {
		return *DoctorProfileToResponse(&profile)
	})
}

func doctorProfileFields(profile *entity.DoctorProfile) dto.DoctorProfileResponse {
	fields := dto.DoctorProfileResponse{
		RegistrationNumber: profile.RegistrationNumber,
		Specialization:     profile.Specialization,
		Qualification:      profile.Qualification,
		HospitalID:         profile.HospitalID,
		ConsultationFee:    profile.ConsultationFee,
		AvailableDays:      nonNil(profile.AvailableDays),
		IsAvailable:        profile.IsAvailable == nil || *profile.IsAvailable,
	}
	if profile.Hospital != nil {
		fields.HospitalName = profile.Hospital.Name
	}
	return fields
}

// nonNil keeps empty JSON lists serialized as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
