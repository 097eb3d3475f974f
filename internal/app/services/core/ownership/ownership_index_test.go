package ownership

import (
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartiesOf(t *testing.T) {
	index := NewOwnershipIndex()

	t.Run("Invoice Patient Is A Patient Profile", func(t *testing.T) {
		parties, err := index.PartiesOf(models.ResourceInvoice, models.PartyFields{
			FieldPatientID: "P7",
			FieldDoctorID:  "U1",
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReferenceKindProfile, parties.Patient.Kind())
		assert.Equal(t, models.ProfileKindPatient, parties.Patient.ProfileKind())
		assert.Equal(t, "P7", parties.Patient.ID())
		require.NotNil(t, parties.Practitioner)
		assert.Equal(t, models.ReferenceKindAccount, parties.Practitioner.Kind())
		assert.Equal(t, "U1", parties.Practitioner.ID())
	})

	t.Run("Appointment Practitioner Is A Doctor Profile", func(t *testing.T) {
		parties, err := index.PartiesOf(models.ResourceAppointment, models.PartyFields{
			FieldPatientID: "U9",
			FieldDoctorID:  "D1",
		})

		require.NoError(t, err)
		assert.True(t, parties.Patient.IsAccount())
		require.NotNil(t, parties.Practitioner)
		assert.True(t, parties.Practitioner.IsProfile())
		assert.Equal(t, models.ProfileKindDoctor, parties.Practitioner.ProfileKind())
	})

	t.Run("Clinical Resources Use Account References", func(t *testing.T) {
		for _, resourceType := range []models.ResourceType{models.ResourceMedicalRecord, models.ResourcePrescription} {
			parties, err := index.PartiesOf(resourceType, models.PartyFields{
				FieldPatientID: "U9",
				FieldDoctorID:  "U1",
			})

			require.NoError(t, err)
			assert.True(t, parties.Patient.IsAccount(), string(resourceType))
			assert.True(t, parties.Practitioner.IsAccount(), string(resourceType))
		}
	})

	t.Run("Invoice Practitioner Is Optional", func(t *testing.T) {
		parties, err := index.PartiesOf(models.ResourceInvoice, models.PartyFields{FieldPatientID: "P7"})

		require.NoError(t, err)
		assert.Nil(t, parties.Practitioner)
		assert.Len(t, parties.References(), 1)
	})

	t.Run("Missing Patient Is Rejected", func(t *testing.T) {
		_, err := index.PartiesOf(models.ResourceMedicalRecord, models.PartyFields{FieldDoctorID: "U1"})

		require.Error(t, err)
		assert.Equal(t, 400, exceptions.StatusCodeOf(err))
	})

	t.Run("Missing Mandatory Practitioner Is Rejected", func(t *testing.T) {
		_, err := index.PartiesOf(models.ResourceAppointment, models.PartyFields{FieldPatientID: "U9"})

		assert.Error(t, err)
	})

	t.Run("Malformed Identifier Is Rejected", func(t *testing.T) {
		_, err := index.PartiesOf(models.ResourcePrescription, models.PartyFields{
			FieldPatientID: "U 9",
			FieldDoctorID:  "U1",
		})

		assert.Error(t, err)
	})

	t.Run("Unknown Resource Type", func(t *testing.T) {
		_, err := index.PartiesOf(models.ResourceType("lab_result"), models.PartyFields{FieldPatientID: "U9"})

		require.Error(t, err)
		assert.Equal(t, 400, exceptions.StatusCodeOf(err))
	})
}

func TestPartyFieldNames(t *testing.T) {
	index := NewOwnershipIndex()

	names, err := index.PartyFieldNames(models.ResourceInvoice)
	require.NoError(t, err)
	assert.Equal(t, []string{FieldPatientID, FieldDoctorID}, names)

	_, err = index.PartyFieldNames(models.ResourceType("unknown"))
	assert.Error(t, err)

	assert.Equal(t, []models.ResourceType{
		models.ResourceAppointment,
		models.ResourceInvoice,
		models.ResourceMedicalRecord,
		models.ResourcePrescription,
	}, index.ResourceTypes())
}
