package models

import "time"

// IntegrityEvent describes a party reference that no longer resolves.
type IntegrityEvent struct {
	Type         string       `json:"type"`
	Reference    string       `json:"reference"`
	ResourceType ResourceType `json:"resourceType,omitempty"`
	ResourceID   string       `json:"resourceId,omitempty"`
	ActorID      string       `json:"actorId,omitempty"`
	RequestID    string       `json:"requestId,omitempty"`
	Detail       string       `json:"detail,omitempty"`
	OccurredAt   time.Time    `json:"occurredAt"`
}
