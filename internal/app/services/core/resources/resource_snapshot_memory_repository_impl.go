package resources

import (
	"context"
	"healthmate-service/internal/app/models"
	"sync"
)

// ResourceSnapshotMemoryRepository holds party fields in process. It backs
// the memory profile store and handler tests.
type ResourceSnapshotMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[models.ResourceType]map[string]models.PartyFields
}

func NewResourceSnapshotMemoryRepository() *ResourceSnapshotMemoryRepository {
	return &ResourceSnapshotMemoryRepository{
		snapshots: make(map[models.ResourceType]map[string]models.PartyFields),
	}
}

// Put stores a copy of fields as the current snapshot of the resource.
func (repo *ResourceSnapshotMemoryRepository) Put(resourceType models.ResourceType, resourceID string, fields models.PartyFields) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.snapshots[resourceType] == nil {
		repo.snapshots[resourceType] = make(map[string]models.PartyFields)
	}
	repo.snapshots[resourceType][resourceID] = copyFields(fields)
}

func (repo *ResourceSnapshotMemoryRepository) FindPartyFields(ctx context.Context, resourceType models.ResourceType, resourceID string, fieldNames []string) (models.PartyFields, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	fields, ok := repo.snapshots[resourceType][resourceID]
	if !ok {
		return nil, nil
	}
	return selectFields(fields, fieldNames), nil
}

func (repo *ResourceSnapshotMemoryRepository) FindPartyFieldsByIDs(ctx context.Context, resourceType models.ResourceType, resourceIDs []string, fieldNames []string) (map[string]models.PartyFields, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	result := make(map[string]models.PartyFields, len(resourceIDs))
	for _, resourceID := range resourceIDs {
		if fields, ok := repo.snapshots[resourceType][resourceID]; ok {
			result[resourceID] = selectFields(fields, fieldNames)
		}
	}
	return result, nil
}

func selectFields(fields models.PartyFields, fieldNames []string) models.PartyFields {
	selected := make(models.PartyFields, len(fieldNames))
	for _, field := range fieldNames {
		if value, ok := fields[field]; ok {
			selected[field] = value
		}
	}
	return selected
}

func copyFields(fields models.PartyFields) models.PartyFields {
	copied := make(models.PartyFields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return copied
}
