package ownership

import (
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/exceptions"
	"sort"
	"strings"
)

const (
	FieldPatientID = "patientId"
	FieldDoctorID  = "doctorId"
)

// PartyField declares which stored field holds a party and what kind of
// reference it is. The kind is never inferred from the value.
type PartyField struct {
	Field       string
	Reference   models.ReferenceKind
	ProfileKind models.ProfileKind
	Required    bool
}

type Entry struct {
	Patient      PartyField
	Practitioner PartyField
}

// DefaultTable mirrors how each resource type stores its parties.
var DefaultTable = map[models.ResourceType]Entry{
	models.ResourceAppointment: {
		Patient:      PartyField{Field: FieldPatientID, Reference: models.ReferenceKindAccount, Required: true},
		Practitioner: PartyField{Field: FieldDoctorID, Reference: models.ReferenceKindProfile, ProfileKind: models.ProfileKindDoctor, Required: true},
	},
	models.ResourceInvoice: {
		Patient:      PartyField{Field: FieldPatientID, Reference: models.ReferenceKindProfile, ProfileKind: models.ProfileKindPatient, Required: true},
		Practitioner: PartyField{Field: FieldDoctorID, Reference: models.ReferenceKindAccount},
	},
	models.ResourceMedicalRecord: {
		Patient:      PartyField{Field: FieldPatientID, Reference: models.ReferenceKindAccount, Required: true},
		Practitioner: PartyField{Field: FieldDoctorID, Reference: models.ReferenceKindAccount, Required: true},
	},
	models.ResourcePrescription: {
		Patient:      PartyField{Field: FieldPatientID, Reference: models.ReferenceKindAccount, Required: true},
		Practitioner: PartyField{Field: FieldDoctorID, Reference: models.ReferenceKindAccount, Required: true},
	},
}

type ownershipIndex struct {
	table map[models.ResourceType]Entry
}

func NewOwnershipIndex() contracts.OwnershipIndex {
	return NewOwnershipIndexWithTable(DefaultTable)
}

func NewOwnershipIndexWithTable(table map[models.ResourceType]Entry) contracts.OwnershipIndex {
	return &ownershipIndex{table: table}
}

func (i *ownershipIndex) PartiesOf(resourceType models.ResourceType, fields models.PartyFields) (*models.Parties, error) {
	entry, ok := i.table[resourceType]
	if !ok {
		return nil, exceptions.ErrUnknownResourceType(nil, string(resourceType))
	}

	patient, err := buildReference(resourceType, entry.Patient, fields)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrMissingPartyField(nil, string(resourceType), entry.Patient.Field)
	}

	practitioner, err := buildReference(resourceType, entry.Practitioner, fields)
	if err != nil {
		return nil, err
	}

	return &models.Parties{
		Patient:      *patient,
		Practitioner: practitioner,
	}, nil
}

func (i *ownershipIndex) PartyFieldNames(resourceType models.ResourceType) ([]string, error) {
	entry, ok := i.table[resourceType]
	if !ok {
		return nil, exceptions.ErrUnknownResourceType(nil, string(resourceType))
	}
	names := []string{entry.Patient.Field}
	if entry.Practitioner.Field != "" {
		names = append(names, entry.Practitioner.Field)
	}
	return names, nil
}

func (i *ownershipIndex) ResourceTypes() []models.ResourceType {
	resourceTypes := make([]models.ResourceType, 0, len(i.table))
	for resourceType := range i.table {
		resourceTypes = append(resourceTypes, resourceType)
	}
	sort.Slice(resourceTypes, func(a, b int) bool { return resourceTypes[a] < resourceTypes[b] })
	return resourceTypes
}

func buildReference(resourceType models.ResourceType, field PartyField, fields models.PartyFields) (*models.SubjectReference, error) {
	if field.Field == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(fields[field.Field])
	if raw == "" {
		if field.Required {
			return nil, exceptions.ErrMissingPartyField(nil, string(resourceType), field.Field)
		}
		return nil, nil
	}

	ref, err := models.NewSubjectReference(field.Reference, raw, field.ProfileKind)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
