package requests

type CreatePatientProfile struct {
	FullName              string   `json:"fullName" validate:"required,max=100"`
	Age                   int      `json:"age" validate:"min=0,max=150"`
	Gender                string   `json:"gender" validate:"required,oneof=male female other"`
	BloodGroup            string   `json:"bloodGroup" validate:"omitempty,blood_group"`
	Phone                 string   `json:"phone" validate:"required,phone_number"`
	Address               string   `json:"address" validate:"omitempty,max=200"`
	EmergencyContactName  string   `json:"emergencyContactName" validate:"omitempty,max=100"`
	EmergencyContactPhone string   `json:"emergencyContactPhone" validate:"omitempty,phone_number"`
	MedicalConditions     []string `json:"medicalConditions" validate:"omitempty,dive,required,max=100"`
	Allergies             []string `json:"allergies" validate:"omitempty,dive,required,max=100"`
}

type UpdatePatientProfile struct {
	FullName              string   `json:"fullName" validate:"omitempty,max=100"`
	Age                   int      `json:"age" validate:"min=0,max=150"`
	Gender                string   `json:"gender" validate:"omitempty,oneof=male female other"`
	BloodGroup            string   `json:"bloodGroup" validate:"omitempty,blood_group"`
	Phone                 string   `json:"phone" validate:"omitempty,phone_number"`
	Address               string   `json:"address" validate:"omitempty,max=200"`
	EmergencyContactName  string   `json:"emergencyContactName" validate:"omitempty,max=100"`
	EmergencyContactPhone string   `json:"emergencyContactPhone" validate:"omitempty,phone_number"`
	MedicalConditions     []string `json:"medicalConditions" validate:"omitempty,dive,required,max=100"`
	Allergies             []string `json:"allergies" validate:"omitempty,dive,required,max=100"`
}

type CreateDoctorProfile struct {
	FullName        string   `json:"fullName" validate:"required,max=100"`
	Specialization  string   `json:"specialization" validate:"required,max=100"`
	Degrees         string   `json:"degrees" validate:"omitempty,max=200"`
	Phone           string   `json:"phone" validate:"required,phone_number"`
	HospitalName    string   `json:"hospitalName" validate:"omitempty,max=200"`
	ExperienceYears int      `json:"experienceYears" validate:"min=0,max=80"`
	Fee             int      `json:"fee" validate:"min=0"`
	AvailableDays   []string `json:"availableDays" validate:"omitempty,dive,weekday"`
	AvailableSlots  []string `json:"availableSlots" validate:"omitempty,dive,time_slot"`
}

type UpdateDoctorProfile struct {
	FullName        string   `json:"fullName" validate:"omitempty,max=100"`
	Specialization  string   `json:"specialization" validate:"omitempty,max=100"`
	Degrees         string   `json:"degrees" validate:"omitempty,max=200"`
	Phone           string   `json:"phone" validate:"omitempty,phone_number"`
	HospitalName    string   `json:"hospitalName" validate:"omitempty,max=200"`
	ExperienceYears int      `json:"experienceYears" validate:"min=0,max=80"`
	Fee             int      `json:"fee" validate:"min=0"`
	AvailableDays   []string `json:"availableDays" validate:"omitempty,dive,weekday"`
	AvailableSlots  []string `json:"availableSlots" validate:"omitempty,dive,time_slot"`
}
