package utils

import (
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/dto/requests"
)

func BuildPatientProfileDataFromCreateRequest(request *requests.CreatePatientProfile) *models.ProfileData {
	return &models.ProfileData{
		Patient: &models.PatientDetails{
			FullName:              request.FullName,
			Age:                   request.Age,
			Gender:                request.Gender,
			BloodGroup:            request.BloodGroup,
			Phone:                 request.Phone,
			Address:               request.Address,
			EmergencyContactName:  request.EmergencyContactName,
			EmergencyContactPhone: request.EmergencyContactPhone,
			MedicalConditions:     request.MedicalConditions,
			Allergies:             request.Allergies,
		},
	}
}

func BuildPatientProfileDataFromUpdateRequest(request *requests.UpdatePatientProfile) *models.ProfileData {
	return &models.ProfileData{
		Patient: &models.PatientDetails{
			FullName:              request.FullName,
			Age:                   request.Age,
			Gender:                request.Gender,
			BloodGroup:            request.BloodGroup,
			Phone:                 request.Phone,
			Address:               request.Address,
			EmergencyContactName:  request.EmergencyContactName,
			EmergencyContactPhone: request.EmergencyContactPhone,
			MedicalConditions:     request.MedicalConditions,
			Allergies:             request.Allergies,
		},
	}
}

func BuildDoctorProfileDataFromCreateRequest(request *requests.CreateDoctorProfile) *models.ProfileData {
	return &models.ProfileData{
		Doctor: &models.DoctorDetails{
			FullName:        request.FullName,
			Specialization:  request.Specialization,
			Degrees:         request.Degrees,
			Phone:           request.Phone,
			HospitalName:    request.HospitalName,
			ExperienceYears: request.ExperienceYears,
			Fee:             request.Fee,
			AvailableDays:   request.AvailableDays,
			AvailableSlots:  request.AvailableSlots,
		},
	}
}

func BuildDoctorProfileDataFromUpdateRequest(request *requests.UpdateDoctorProfile) *models.ProfileData {
	return &models.ProfileData{
		Doctor: &models.DoctorDetails{
			FullName:        request.FullName,
			Specialization:  request.Specialization,
			Degrees:         request.Degrees,
			Phone:           request.Phone,
			HospitalName:    request.HospitalName,
			ExperienceYears: request.ExperienceYears,
			Fee:             request.Fee,
			AvailableDays:   request.AvailableDays,
			AvailableSlots:  request.AvailableSlots,
		},
	}
}
