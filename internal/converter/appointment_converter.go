package converter

import (
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/samber/lo"
)

func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		PatientName:     a.Patient.User.FullName,
		DoctorID:        a.DoctorID,
		DoctorName:      a.Doctor.User.FullName,
		Specialization:  a.Doctor.Specialization,
		AppointmentDate: a.AppointmentDate,
		Status:          string(a.Status),
		AppointmentType: a.AppointmentType,
		Symptoms:        a.Symptoms,
		IsTelemedicine:  a.IsTelemedicine,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	return lo.Map(appointments, func(a entity.Appointment, _ int) dto.AppointmentResponse {
		return *AppointmentToResponse(&a)
	})
}

func MedicalRecordToResponse(r *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if r == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:               r.ID,
		PatientID:        r.PatientID,
		PatientName:      r.Patient.User.FullName,
		DoctorID:         r.DoctorID,
		DoctorName:       r.Doctor.User.FullName,
		AppointmentID:    r.AppointmentID,
		VisitDate:        r.VisitDate,
		ChiefComplaint:   r.ChiefComplaint,
		Diagnosis:        r.Diagnosis,
		Symptoms:         nonNil(r.Symptoms),
		Temperature:      r.Temperature,
		BloodPressure:    r.BloodPressure,
		PulseRate:        r.PulseRate,
		OxygenSaturation: r.OxygenSaturation,
		Prescription: lo.Map(r.Prescription, func(item entity.PrescriptionItem, _ int) dto.PrescriptionItem {
			return dto.PrescriptionItem(item)
		}),
		TreatmentPlan:   r.TreatmentPlan,
		LabTestsOrdered: nonNil(r.LabTestsOrdered),
		CreatedAt:       r.CreatedAt,
	}
	if r.FollowUpDate != nil {
		response.FollowUpDate = r.FollowUpDate.Format(dateLayout)
	}
	return response
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	return lo.Map(records, func(r entity.MedicalRecord, _ int) dto.MedicalRecordResponse {
		return *MedicalRecordToResponse(&r)
	})
}

// PrescriptionFromRequest maps request lines to the stored prescription.
func PrescriptionFromRequest(items []dto.PrescriptionItem) []entity.PrescriptionItem {
	return lo.Map(items, func(item dto.PrescriptionItem, _ int) entity.PrescriptionItem {
		return entity.PrescriptionItem(item)
	})
}
