package requests

// AccessCheck asks whether the caller may perform Operation on a resource.
// Exactly one of ResourceID (stored resource) or Fields (the party fields
// declared by a create payload) must be set.
type AccessCheck struct {
	ResourceType string            `json:"resourceType" validate:"required"`
	Operation    string            `json:"operation" validate:"required"`
	ResourceID   string            `json:"resourceId" validate:"required_without=Fields,excluded_with=Fields"`
	Fields       map[string]string `json:"fields" validate:"required_without=ResourceID,excluded_with=ResourceID"`
}

// AccessCheckBatch carries either stored ResourceIDs or declared Items,
// never both. Items are only accepted for create.
type AccessCheckBatch struct {
	ResourceType string            `json:"resourceType" validate:"required"`
	Operation    string            `json:"operation" validate:"required"`
	ResourceIDs  []string          `json:"resourceIds" validate:"required_without=Items,excluded_with=Items,max=200"`
	Items        []AccessCheckItem `json:"items" validate:"required_without=ResourceIDs,max=200,dive"`
}

type AccessCheckItem struct {
	ResourceID string            `json:"resourceId"`
	Fields     map[string]string `json:"fields" validate:"required"`
}
