package contracts

import (
	"context"
	"healthmate-service/internal/app/models"
)

// ResourceSnapshotRepository reads the stored party fields of a resource.
// FindPartyFields returns nil, nil when the resource does not exist and
// FindPartyFieldsByIDs omits missing ids from its result.
type ResourceSnapshotRepository interface {
	FindPartyFields(ctx context.Context, resourceType models.ResourceType, resourceID string, fieldNames []string) (models.PartyFields, error)
	FindPartyFieldsByIDs(ctx context.Context, resourceType models.ResourceType, resourceIDs []string, fieldNames []string) (map[string]models.PartyFields, error)
}
