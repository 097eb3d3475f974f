package models

import (
	"fmt"
	"healthmate-service/internal/pkg/exceptions"
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ReferenceKind string

const (
	ReferenceKindAccount ReferenceKind = "account"
	ReferenceKindProfile ReferenceKind = "profile"
)

var (
	identifierValidator = validator.New()
	identifierPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
)

func init() {
	identifierValidator.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
}

// SubjectReference names a party either by account id or by profile id.
// Two references are equal when kind, profile kind and id are all equal, so
// the value can be compared with == and used as a map key.
type SubjectReference struct {
	kind        ReferenceKind
	profileKind ProfileKind
	id          string
}

func NewAccountRef(id string) (SubjectReference, error) {
	if err := ValidateIdentifier(id); err != nil {
		return SubjectReference{}, err
	}
	return SubjectReference{kind: ReferenceKindAccount, id: id}, nil
}

func NewProfileRef(id string, kind ProfileKind) (SubjectReference, error) {
	if !kind.IsValid() {
		return SubjectReference{}, exceptions.ErrInvalidProfileKind(nil, string(kind))
	}
	if err := ValidateIdentifier(id); err != nil {
		return SubjectReference{}, err
	}
	return SubjectReference{kind: ReferenceKindProfile, profileKind: kind, id: id}, nil
}

// NewSubjectReference builds a reference from its wire form. profileKind is
// ignored for account references.
func NewSubjectReference(kind ReferenceKind, id string, profileKind ProfileKind) (SubjectReference, error) {
	switch kind {
	case ReferenceKindAccount:
		return NewAccountRef(id)
	case ReferenceKindProfile:
		return NewProfileRef(id, profileKind)
	}
	return SubjectReference{}, exceptions.ErrInvalidReferenceKind(nil, string(kind))
}

func ValidateIdentifier(id string) error {
	err := identifierValidator.Var(id, "required,max=128,identifier")
	if err != nil {
		return exceptions.ErrInvalidIdentifier(err, id)
	}
	return nil
}

func (r SubjectReference) Kind() ReferenceKind {
	return r.kind
}

func (r SubjectReference) ProfileKind() ProfileKind {
	return r.profileKind
}

func (r SubjectReference) ID() string {
	return r.id
}

func (r SubjectReference) IsAccount() bool {
	return r.kind == ReferenceKindAccount
}

func (r SubjectReference) IsProfile() bool {
	return r.kind == ReferenceKindProfile
}

func (r SubjectReference) IsZero() bool {
	return r.kind == ""
}

func (r SubjectReference) String() string {
	if r.kind == ReferenceKindProfile {
		return fmt.Sprintf("profile:%s/%s", r.profileKind, r.id)
	}
	return fmt.Sprintf("account:%s", r.id)
}

func (r SubjectReference) MarshalJSON() ([]byte, error) {
	if r.kind == ReferenceKindProfile {
		return []byte(fmt.Sprintf(`{"kind":%q,"profileKind":%q,"id":%q}`, r.kind, r.profileKind, r.id)), nil
	}
	return []byte(fmt.Sprintf(`{"kind":%q,"id":%q}`, r.kind, r.id)), nil
}

// ResolutionResult is one entry of a batch resolution, aligned with the input.
type ResolutionResult struct {
	Reference SubjectReference `json:"reference"`
	AccountID string           `json:"accountId,omitempty"`
	Err       error            `json:"-"`
}

func (r ResolutionResult) Resolved() bool {
	return r.Err == nil && r.AccountID != ""
}
