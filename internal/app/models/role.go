package models

import (
	"healthmate-service/internal/pkg/exceptions"
	"strings"
)

// Role is fixed when the account is created and never changes afterwards.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", exceptions.ErrInvalidRole(nil, value)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller as established by the authentication collaborator.
type Actor struct {
	AccountID string `json:"accountId"`
	Role      Role   `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
