package utils

import (
	"healthmate-service/internal/pkg/dto/requests"
	"strings"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	if input == nil {
		return nil
	}
	sanitizedArray := make([]string, len(input))
	for i, v := range input {
		sanitizedArray[i] = strings.TrimSpace(v)
	}
	return sanitizedArray
}

func lowerEachStringOfAnArray(input []string) []string {
	for i, v := range input {
		input[i] = strings.ToLower(v)
	}
	return input
}

func SanitizeCreatePatientProfileRequest(input *requests.CreatePatientProfile) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	input.BloodGroup = strings.ToUpper(strings.TrimSpace(input.BloodGroup))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.EmergencyContactName = strings.TrimSpace(input.EmergencyContactName)
	input.EmergencyContactPhone = strings.TrimSpace(input.EmergencyContactPhone)

	input.MedicalConditions = cleanWhiteSpaceFromEachStringOfAnArray(input.MedicalConditions)
	input.Allergies = cleanWhiteSpaceFromEachStringOfAnArray(input.Allergies)
}

func SanitizeUpdatePatientProfileRequest(input *requests.UpdatePatientProfile) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	input.BloodGroup = strings.ToUpper(strings.TrimSpace(input.BloodGroup))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	input.EmergencyContactName = strings.TrimSpace(input.EmergencyContactName)
	input.EmergencyContactPhone = strings.TrimSpace(input.EmergencyContactPhone)

	input.MedicalConditions = cleanWhiteSpaceFromEachStringOfAnArray(input.MedicalConditions)
	input.Allergies = cleanWhiteSpaceFromEachStringOfAnArray(input.Allergies)
}

func SanitizeCreateDoctorProfileRequest(input *requests.CreateDoctorProfile) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Specialization = strings.TrimSpace(input.Specialization)
	input.Degrees = strings.TrimSpace(input.Degrees)
	input.Phone = strings.TrimSpace(input.Phone)
	input.HospitalName = strings.TrimSpace(input.HospitalName)

	input.AvailableDays = lowerEachStringOfAnArray(cleanWhiteSpaceFromEachStringOfAnArray(input.AvailableDays))
	input.AvailableSlots = cleanWhiteSpaceFromEachStringOfAnArray(input.AvailableSlots)
}

func SanitizeUpdateDoctorProfileRequest(input *requests.UpdateDoctorProfile) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Specialization = strings.TrimSpace(input.Specialization)
	input.Degrees = strings.TrimSpace(input.Degrees)
	input.Phone = strings.TrimSpace(input.Phone)
	input.HospitalName = strings.TrimSpace(input.HospitalName)

	input.AvailableDays = lowerEachStringOfAnArray(cleanWhiteSpaceFromEachStringOfAnArray(input.AvailableDays))
	input.AvailableSlots = cleanWhiteSpaceFromEachStringOfAnArray(input.AvailableSlots)
}

func SanitizeAccessCheckRequest(input *requests.AccessCheck) {
	input.ResourceType = strings.ToLower(strings.TrimSpace(input.ResourceType))
	input.Operation = strings.ToLower(strings.TrimSpace(input.Operation))
	input.ResourceID = strings.TrimSpace(input.ResourceID)
	for field, value := range input.Fields {
		input.Fields[field] = strings.TrimSpace(value)
	}
}

func SanitizeAccessCheckBatchRequest(input *requests.AccessCheckBatch) {
	input.ResourceType = strings.ToLower(strings.TrimSpace(input.ResourceType))
	input.Operation = strings.ToLower(strings.TrimSpace(input.Operation))
	input.ResourceIDs = cleanWhiteSpaceFromEachStringOfAnArray(input.ResourceIDs)
	for i := range input.Items {
		input.Items[i].ResourceID = strings.TrimSpace(input.Items[i].ResourceID)
		for field, value := range input.Items[i].Fields {
			input.Items[i].Fields[field] = strings.TrimSpace(value)
		}
	}
}
