package utils

import (
	"healthmate-service/internal/pkg/dto/requests"
	"healthmate-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatient() requests.CreatePatientProfile {
	return requests.CreatePatientProfile{
		FullName:   "Ayu Lestari",
		Age:        34,
		Gender:     "female",
		BloodGroup: "O+",
		Phone:      "+6281234567890",
	}
}

func TestValidateStruct_PatientProfile(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		request := validPatient()
		assert.NoError(t, ValidateStruct(&request))
	})

	t.Run("Age Out Of Range", func(t *testing.T) {
		request := validPatient()
		request.Age = 151
		assert.Error(t, ValidateStruct(&request))
	})

	t.Run("Bad Phone", func(t *testing.T) {
		request := validPatient()
		request.Phone = "0812"
		err := ValidateStruct(&request)
		require.Error(t, err)
		assert.Equal(t, "phone must be a valid phone number in international format", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Bad Blood Group", func(t *testing.T) {
		request := validPatient()
		request.BloodGroup = "C+"
		assert.Error(t, ValidateStruct(&request))
	})
}

func TestValidateStruct_DoctorProfile(t *testing.T) {
	request := requests.CreateDoctorProfile{
		FullName:       "Dr. Budi",
		Specialization: "Cardiology",
		Phone:          "+6281234567890",
		AvailableDays:  []string{"monday"},
		AvailableSlots: []string{"09:00-10:00"},
	}
	assert.NoError(t, ValidateStruct(&request))

	request.AvailableSlots = []string{"10:00-09:00"}
	assert.Error(t, ValidateStruct(&request), "slot must end after it starts")

	request.AvailableSlots = nil
	request.AvailableDays = []string{"someday"}
	assert.Error(t, ValidateStruct(&request))
}

func TestValidateStruct_AccessCheck(t *testing.T) {
	assert.NoError(t, ValidateStruct(&requests.AccessCheck{ResourceType: "invoice", Operation: "read", ResourceID: "INV1"}))
	assert.NoError(t, ValidateStruct(&requests.AccessCheck{ResourceType: "appointment", Operation: "create", Fields: map[string]string{"patientId": "U9"}}))
	assert.Error(t, ValidateStruct(&requests.AccessCheck{ResourceType: "invoice", Operation: "read"}))

	err := ValidateStruct(&requests.AccessCheck{ResourceType: "invoice", Operation: "read", ResourceID: "INV1", Fields: map[string]string{"patientId": "U9"}})
	require.Error(t, err)
	assert.Contains(t, exceptions.FormatFirstValidationError(err), "must be empty when")
}

func TestValidateStruct_AccessCheckBatch(t *testing.T) {
	items := []requests.AccessCheckItem{{Fields: map[string]string{"patientId": "U9"}}}

	assert.NoError(t, ValidateStruct(&requests.AccessCheckBatch{ResourceType: "invoice", Operation: "read", ResourceIDs: []string{"INV1"}}))
	assert.NoError(t, ValidateStruct(&requests.AccessCheckBatch{ResourceType: "appointment", Operation: "create", Items: items}))
	assert.Error(t, ValidateStruct(&requests.AccessCheckBatch{ResourceType: "invoice", Operation: "read"}))
	assert.Error(t, ValidateStruct(&requests.AccessCheckBatch{ResourceType: "appointment", Operation: "create", ResourceIDs: []string{"A1"}, Items: items}))
}
