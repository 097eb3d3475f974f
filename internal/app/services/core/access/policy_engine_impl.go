package access

import (
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
)

// patientOperations lists what the patient party of a resource may do.
// Anything absent, delete and clinical writes included, is denied.
var patientOperations = map[models.ResourceType]map[models.Operation]bool{
	models.ResourceAppointment: {
		models.OperationRead:        true,
		models.OperationReadOwnList: true,
		models.OperationCreate:      true,
		models.OperationCancel:      true,
	},
	models.ResourceInvoice: {
		models.OperationRead:        true,
		models.OperationReadOwnList: true,
	},
	models.ResourceMedicalRecord: {
		models.OperationRead:        true,
		models.OperationReadOwnList: true,
	},
	models.ResourcePrescription: {
		models.OperationRead:        true,
		models.OperationReadOwnList: true,
		models.OperationRefill:      true,
	},
}

type policyEngine struct{}

func NewPolicyEngine() contracts.AccessPolicyEngine {
	return &policyEngine{}
}

// Evaluate applies the role rules in order: admin, patient party, practitioner party, deny.
// For create the parties are the ones declared on the new resource.
func (e *policyEngine) Evaluate(actor models.Actor, resourceType models.ResourceType, parties models.ResolvedParties, operation models.Operation) models.Decision {
	if actor.AccountID == "" {
		return models.Deny(models.ReasonNotParty)
	}

	switch actor.Role {
	case models.RoleAdmin:
		return models.Allow(models.ReasonAdmin)

	case models.RolePatient:
		if parties.PatientAccountID != actor.AccountID {
			return models.Deny(models.ReasonNotParty)
		}
		if patientOperations[resourceType][operation] {
			return models.Allow(models.ReasonPatientParty)
		}
		return models.Deny(models.ReasonNotParty)

	case models.RoleDoctor:
		if parties.HasPractitioner() && parties.PractitionerAccountID == actor.AccountID {
			return models.Allow(models.ReasonPractitionerParty)
		}
		return models.Deny(models.ReasonNotParty)
	}

	return models.Deny(models.ReasonNotParty)
}

// EvaluateProfile decides access to a profile record owned by ownerAccountID.
func (e *policyEngine) EvaluateProfile(actor models.Actor, ownerAccountID string, kind models.ProfileKind, operation models.Operation) models.Decision {
	if actor.AccountID == "" {
		return models.Deny(models.ReasonNotParty)
	}
	if actor.IsAdmin() {
		return models.Allow(models.ReasonAdmin)
	}

	if actor.AccountID == ownerAccountID {
		switch operation {
		case models.OperationCreate:
			if roleMatchesKind(actor.Role, kind) {
				return models.Allow(models.ReasonProfileOwner)
			}
		case models.OperationRead, models.OperationUpdate, models.OperationDelete:
			return models.Allow(models.ReasonProfileOwner)
		}
		return models.Deny(models.ReasonNotParty)
	}

	if operation == models.OperationRead {
		if kind == models.ProfileKindDoctor {
			return models.Allow(models.ReasonProfileVisible)
		}
		if kind == models.ProfileKindPatient && actor.IsDoctor() {
			return models.Allow(models.ReasonProfileVisible)
		}
	}

	return models.Deny(models.ReasonNotParty)
}

func roleMatchesKind(role models.Role, kind models.ProfileKind) bool {
	return (role == models.RolePatient && kind == models.ProfileKindPatient) ||
		(role == models.RoleDoctor && kind == models.ProfileKindDoctor)
}
