package utils

import (
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/dto/responses"
)

func BuildProfileResponse(profile *models.Profile) *responses.Profile {
	return &responses.Profile{
		ID:        profile.ID,
		AccountID: profile.AccountID,
		Kind:      profile.Kind.String(),
		Patient:   profile.Patient,
		Doctor:    profile.Doctor,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func BuildPublicProfileResponse(profile *models.Profile) *responses.PublicProfile {
	return &responses.PublicProfile{
		ID:      profile.ID,
		Kind:    profile.Kind.String(),
		Patient: profile.Patient,
		Doctor:  profile.Doctor,
	}
}

func BuildAccessDecisionResponse(resourceType models.ResourceType, resourceID string, operation models.Operation, decision models.Decision) *responses.AccessDecision {
	return &responses.AccessDecision{
		ResourceType: string(resourceType),
		ResourceID:   resourceID,
		Operation:    string(operation),
		Allow:        decision.Allow,
		Reason:       string(decision.Reason),
	}
}

// BuildAccessDecisionBatchResponse keeps item order. Item errors carry only
// the client message.
func BuildAccessDecisionBatchResponse(resourceType models.ResourceType, operation models.Operation, items []models.ItemDecision) *responses.AccessDecisionBatch {
	batch := &responses.AccessDecisionBatch{
		ResourceType: string(resourceType),
		Operation:    string(operation),
		Items:        make([]responses.AccessDecisionItem, 0, len(items)),
	}
	for _, item := range items {
		entry := responses.AccessDecisionItem{
			Index:      item.Index,
			ResourceID: item.ResourceID,
			Allow:      item.Decision.Allow,
			Reason:     string(item.Decision.Reason),
		}
		if item.Err != nil {
			entry.Error = clientMessageOf(item.Err)
		}
		if entry.Allow {
			batch.Allowed++
		} else {
			batch.Denied++
		}
		batch.Items = append(batch.Items, entry)
	}
	return batch
}
