package utils

import (
	"healthmate-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCreatePatientProfileRequest(t *testing.T) {
	t.Run("Trims And Normalizes", func(t *testing.T) {
		request := &requests.CreatePatientProfile{
			FullName:   "  Ayu Lestari ",
			Gender:     " Female ",
			BloodGroup: " ab+ ",
			Phone:      " +6281234567890 ",
		}

		SanitizeCreatePatientProfileRequest(request)

		assert.Equal(t, "Ayu Lestari", request.FullName, "full name should be trimmed")
		assert.Equal(t, "female", request.Gender, "gender should be lowercase")
		assert.Equal(t, "AB+", request.BloodGroup, "blood group should be uppercase")
		assert.Equal(t, "+6281234567890", request.Phone, "phone should be trimmed")
	})

	t.Run("Array Entries Are Trimmed", func(t *testing.T) {
		request := &requests.CreatePatientProfile{
			MedicalConditions: []string{"  Asthma ", " Diabetes"},
			Allergies:         []string{" Penicillin  "},
		}

		SanitizeCreatePatientProfileRequest(request)

		assert.Equal(t, []string{"Asthma", "Diabetes"}, request.MedicalConditions)
		assert.Equal(t, []string{"Penicillin"}, request.Allergies)
	})

	t.Run("Nil Arrays Stay Nil", func(t *testing.T) {
		request := &requests.CreatePatientProfile{FullName: "Ayu"}

		SanitizeCreatePatientProfileRequest(request)

		assert.Nil(t, request.MedicalConditions, "absent list must not become an empty list")
		assert.Nil(t, request.Allergies)
	})
}

func TestSanitizeCreateDoctorProfileRequest(t *testing.T) {
	request := &requests.CreateDoctorProfile{
		FullName:       " Dr. Budi ",
		Specialization: " Cardiology",
		AvailableDays:  []string{" Monday", "FRIDAY "},
		AvailableSlots: []string{" 09:00-10:00 "},
	}

	SanitizeCreateDoctorProfileRequest(request)

	assert.Equal(t, "Dr. Budi", request.FullName)
	assert.Equal(t, "Cardiology", request.Specialization)
	assert.Equal(t, []string{"monday", "friday"}, request.AvailableDays, "days should be trimmed and lowercase")
	assert.Equal(t, []string{"09:00-10:00"}, request.AvailableSlots)
}

func TestSanitizeAccessCheckRequest(t *testing.T) {
	request := &requests.AccessCheck{
		ResourceType: " Invoice ",
		Operation:    "READ",
		ResourceID:   " INV1 ",
		Fields:       map[string]string{"patientId": " P7 "},
	}

	SanitizeAccessCheckRequest(request)

	assert.Equal(t, "invoice", request.ResourceType)
	assert.Equal(t, "read", request.Operation)
	assert.Equal(t, "INV1", request.ResourceID)
	assert.Equal(t, "P7", request.Fields["patientId"])
}

func TestSanitizeAccessCheckBatchRequest(t *testing.T) {
	request := &requests.AccessCheckBatch{
		ResourceType: "Appointment",
		Operation:    " read ",
		ResourceIDs:  []string{" A1", "A2 "},
		Items: []requests.AccessCheckItem{
			{ResourceID: " X ", Fields: map[string]string{"doctorId": " D1"}},
		},
	}

	SanitizeAccessCheckBatchRequest(request)

	assert.Equal(t, "appointment", request.ResourceType)
	assert.Equal(t, "read", request.Operation)
	assert.Equal(t, []string{"A1", "A2"}, request.ResourceIDs)
	assert.Equal(t, "X", request.Items[0].ResourceID)
	assert.Equal(t, "D1", request.Items[0].Fields["doctorId"])
}
