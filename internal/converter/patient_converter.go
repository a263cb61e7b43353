package converter

import (
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// PatientProfileToResponse converts a PatientProfile (with its User) to PatientResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                     profile.UserID,
		Username:               profile.User.Username,
		Email:                  profile.User.Email,
		FullName:               profile.User.FullName,
		Phone:                  profile.User.Phone,
		IsActive:               profile.User.Active(),
		CreatedAt:              profile.User.CreatedAt,
		PatientProfileResponse: patientProfileFields(profile),
	}
}

// PatientProfilesToResponses converts a slice of PatientProfile entities to slice of PatientResponse DTOs
func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	return lo.Map(profiles, func(profile entity.PatientProfile, _ int) dto.PatientResponse {
		return *PatientProfileToResponse(&profile)
	})
}

func patientProfileFields(profile *entity.PatientProfile) dto.PatientProfileResponse {
	return dto.PatientProfileResponse{
		QRCode:                profile.QRCode,
		DateOfBirth:           profile.DateOfBirth.Format(dateLayout),
		Age:                   profile.Age(time.Now()),
		Gender:                profile.Gender,
		BloodGroup:            profile.BloodGroup,
		Address:               profile.Address,
		WardNumber:            profile.WardNumber,
		Zone:                  profile.Zone,
		AadharNumber:          MaskAadhar(profile.AadharNumber),
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		Allergies:             nonNil(profile.Allergies),
		ChronicConditions:     nonNil(profile.ChronicConditions),
		CurrentMedications:    nonNil(profile.CurrentMedications),
		VaccinationRecords:    nonNil(profile.VaccinationRecords),
	}
}

// MaskAadhar hides all but the last four digits.
func MaskAadhar(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number))
	for i := range masked {
		if i < len(number)-4 {
			masked[i] = 'X'
		} else {
			masked[i] = number[i]
		}
	}
	return string(masked)
}
