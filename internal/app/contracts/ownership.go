package contracts

import "healthmate-service/internal/app/models"

type OwnershipIndex interface {
	PartiesOf(resourceType models.ResourceType, fields models.PartyFields) (*models.Parties, error)
	PartyFieldNames(resourceType models.ResourceType) ([]string, error)
	ResourceTypes() []models.ResourceType
}
