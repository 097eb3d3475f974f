package contracts

import (
	"context"
	"healthmate-service/internal/app/models"
)

// AccessPolicyEngine holds the role rules. It never performs I/O.
type AccessPolicyEngine interface {
	Evaluate(actor models.Actor, resourceType models.ResourceType, parties models.ResolvedParties, operation models.Operation) models.Decision
	EvaluateProfile(actor models.Actor, ownerAccountID string, kind models.ProfileKind, operation models.Operation) models.Decision
}

type AccessUsecase interface {
	Authorize(ctx context.Context, actor models.Actor, resourceType models.ResourceType, parties models.Parties, operation models.Operation) (models.Decision, error)
	AuthorizeFields(ctx context.Context, actor models.Actor, resourceType models.ResourceType, fields models.PartyFields, operation models.Operation) (models.Decision, error)
	AuthorizeResource(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceID string, operation models.Operation) (models.Decision, error)
	AuthorizeBatch(ctx context.Context, actor models.Actor, resourceType models.ResourceType, items []models.PartyFields, operation models.Operation) ([]models.ItemDecision, error)
	AuthorizeResources(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceIDs []string, operation models.Operation) ([]models.ItemDecision, error)
}
