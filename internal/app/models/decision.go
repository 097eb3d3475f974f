package models

type ReasonCode string

const (
	ReasonAdmin             ReasonCode = "admin"
	ReasonPatientParty      ReasonCode = "patient_party"
	ReasonPractitionerParty ReasonCode = "practitioner_party"
	ReasonProfileOwner      ReasonCode = "profile_owner"
	ReasonProfileVisible    ReasonCode = "profile_visible"
	ReasonNotParty          ReasonCode = "not_party"
	ReasonDataIntegrity     ReasonCode = "data_integrity_error"
)

type Decision struct {
	Allow  bool       `json:"allow"`
	Reason ReasonCode `json:"reason"`
}

func Allow(reason ReasonCode) Decision {
	return Decision{Allow: true, Reason: reason}
}

func Deny(reason ReasonCode) Decision {
	return Decision{Allow: false, Reason: reason}
}

// ItemDecision is one element of a list authorization, aligned with the input.
type ItemDecision struct {
	Index      int      `json:"index"`
	ResourceID string   `json:"resourceId,omitempty"`
	Decision   Decision `json:"decision"`
	Err        error    `json:"-"`
}
