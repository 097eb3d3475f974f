package models

import (
	"healthmate-service/internal/pkg/exceptions"
	"strings"
)

type ProfileKind string

const (
	ProfileKindPatient ProfileKind = "patient"
	ProfileKindDoctor  ProfileKind = "doctor"
)

func ParseProfileKind(value string) (ProfileKind, error) {
	kind := ProfileKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return "", exceptions.ErrInvalidProfileKind(nil, value)
	}
	return kind, nil
}

func (k ProfileKind) IsValid() bool {
	return k == ProfileKindPatient || k == ProfileKindDoctor
}

func (k ProfileKind) String() string {
	return string(k)
}

type PatientDetails struct {
	FullName              string   `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Age                   int      `json:"age,omitempty" bson:"age,omitempty"`
	Gender                string   `json:"gender,omitempty" bson:"gender,omitempty"`
	BloodGroup            string   `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Phone                 string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Address               string   `json:"address,omitempty" bson:"address,omitempty"`
	EmergencyContactName  string   `json:"emergencyContactName,omitempty" bson:"emergencyContactName,omitempty"`
	EmergencyContactPhone string   `json:"emergencyContactPhone,omitempty" bson:"emergencyContactPhone,omitempty"`
	MedicalConditions     []string `json:"medicalConditions,omitempty" bson:"medicalConditions,omitempty"`
	Allergies             []string `json:"allergies,omitempty" bson:"allergies,omitempty"`
}

type DoctorDetails struct {
	FullName        string   `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Specialization  string   `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Degrees         string   `json:"degrees,omitempty" bson:"degrees,omitempty"`
	Phone           string   `json:"phone,omitempty" bson:"phone,omitempty"`
	HospitalName    string   `json:"hospitalName,omitempty" bson:"hospitalName,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty" bson:"experienceYears,omitempty"`
	Fee             int      `json:"fee,omitempty" bson:"fee,omitempty"`
	AvailableDays   []string `json:"availableDays,omitempty" bson:"availableDays,omitempty"`
	AvailableSlots  []string `json:"availableSlots,omitempty" bson:"availableSlots,omitempty"`
}

// ProfileData carries the domain fields of exactly one profile kind.
type ProfileData struct {
	Patient *PatientDetails `json:"patient,omitempty"`
	Doctor  *DoctorDetails  `json:"doctor,omitempty"`
}

func (d *ProfileData) MatchesKind(kind ProfileKind) bool {
	if d == nil {
		return false
	}
	switch kind {
	case ProfileKindPatient:
		return d.Patient != nil && d.Doctor == nil
	case ProfileKindDoctor:
		return d.Doctor != nil && d.Patient == nil
	}
	return false
}

// Profile is the role-specific record of an account. AccountID is set at
// creation and never rewritten.
type Profile struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	Kind      ProfileKind `json:"kind"`
	ProfileData
	TimeModel
}

func (p *Profile) Reference() SubjectReference {
	return SubjectReference{kind: ReferenceKindProfile, profileKind: p.Kind, id: p.ID}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cloned := *p
	if p.Patient != nil {
		patient := *p.Patient
		patient.MedicalConditions = append([]string(nil), p.Patient.MedicalConditions...)
		patient.Allergies = append([]string(nil), p.Patient.Allergies...)
		cloned.Patient = &patient
	}
	if p.Doctor != nil {
		doctor := *p.Doctor
		doctor.AvailableDays = append([]string(nil), p.Doctor.AvailableDays...)
		doctor.AvailableSlots = append([]string(nil), p.Doctor.AvailableSlots...)
		cloned.Doctor = &doctor
	}
	return &cloned
}

// ApplyPatch overwrites every non-zero field of patch onto the profile details.
func (p *Profile) ApplyPatch(patch *ProfileData) {
	if patch == nil {
		return
	}
	if patch.Patient != nil {
		if p.Patient == nil {
			p.Patient = &PatientDetails{}
		}
		mergePatientDetails(p.Patient, patch.Patient)
	}
	if patch.Doctor != nil {
		if p.Doctor == nil {
			p.Doctor = &DoctorDetails{}
		}
		mergeDoctorDetails(p.Doctor, patch.Doctor)
	}
	p.SetUpdatedAt()
}

func mergePatientDetails(dst, src *PatientDetails) {
	if src.FullName != "" {
		dst.FullName = src.FullName
	}
	if src.Age != 0 {
		dst.Age = src.Age
	}
	if src.Gender != "" {
		dst.Gender = src.Gender
	}
	if src.BloodGroup != "" {
		dst.BloodGroup = src.BloodGroup
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.EmergencyContactName != "" {
		dst.EmergencyContactName = src.EmergencyContactName
	}
	if src.EmergencyContactPhone != "" {
		dst.EmergencyContactPhone = src.EmergencyContactPhone
	}
	if src.MedicalConditions != nil {
		dst.MedicalConditions = append([]string(nil), src.MedicalConditions...)
	}
	if src.Allergies != nil {
		dst.Allergies = append([]string(nil), src.Allergies...)
	}
}

func mergeDoctorDetails(dst, src *DoctorDetails) {
	if src.FullName != "" {
		dst.FullName = src.FullName
	}
	if src.Specialization != "" {
		dst.Specialization = src.Specialization
	}
	if src.Degrees != "" {
		dst.Degrees = src.Degrees
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
	if src.HospitalName != "" {
		dst.HospitalName = src.HospitalName
	}
	if src.ExperienceYears != 0 {
		dst.ExperienceYears = src.ExperienceYears
	}
	if src.Fee != 0 {
		dst.Fee = src.Fee
	}
	if src.AvailableDays != nil {
		dst.AvailableDays = append([]string(nil), src.AvailableDays...)
	}
	if src.AvailableSlots != nil {
		dst.AvailableSlots = append([]string(nil), src.AvailableSlots...)
	}
}
