package models

import "healthmate-service/internal/pkg/exceptions"

type ResourceType string

const (
	ResourceAppointment   ResourceType = "appointment"
	ResourceInvoice       ResourceType = "invoice"
	ResourceMedicalRecord ResourceType = "medical_record"
	ResourcePrescription  ResourceType = "prescription"
)

func ParseResourceType(value string) (ResourceType, error) {
	resourceType := ResourceType(value)
	switch resourceType {
	case ResourceAppointment, ResourceInvoice, ResourceMedicalRecord, ResourcePrescription:
		return resourceType, nil
	}
	return "", exceptions.ErrUnknownResourceType(nil, value)
}

func (t ResourceType) String() string {
	return string(t)
}

// IsClinical reports whether the resource carries clinical content.
func (t ResourceType) IsClinical() bool {
	return t == ResourceMedicalRecord || t == ResourcePrescription
}

type Operation string

const (
	OperationCreate      Operation = "create"
	OperationRead        Operation = "read"
	OperationReadOwnList Operation = "read_own_list"
	OperationUpdate      Operation = "update"
	OperationCancel      Operation = "cancel"
	OperationRefill      Operation = "refill"
	OperationDelete      Operation = "delete"
)

func ParseOperation(value string) (Operation, error) {
	operation := Operation(value)
	switch operation {
	case OperationCreate, OperationRead, OperationReadOwnList, OperationUpdate,
		OperationCancel, OperationRefill, OperationDelete:
		return operation, nil
	}
	return "", exceptions.ErrUnknownOperation(nil, value)
}

func (o Operation) String() string {
	return string(o)
}

func (o Operation) IsReadOnly() bool {
	return o == OperationRead || o == OperationReadOwnList
}

// PartyFields holds the raw party identifiers of a resource keyed by stored field name.
type PartyFields map[string]string

// Parties are the declared subject references of a resource.
type Parties struct {
	Patient      SubjectReference  `json:"patient"`
	Practitioner *SubjectReference `json:"practitioner,omitempty"`
}

func (p Parties) References() []SubjectReference {
	refs := []SubjectReference{p.Patient}
	if p.Practitioner != nil {
		refs = append(refs, *p.Practitioner)
	}
	return refs
}

// ResolvedParties are Parties after every reference was mapped to an account id.
type ResolvedParties struct {
	PatientAccountID      string `json:"patientAccountId"`
	PractitionerAccountID string `json:"practitionerAccountId,omitempty"`
}

func (p ResolvedParties) HasPractitioner() bool {
	return p.PractitionerAccountID != ""
}
