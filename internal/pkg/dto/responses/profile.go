package responses

import (
	"healthmate-service/internal/app/models"
	"time"
)

type Profile struct {
	ID        string                 `json:"id"`
	AccountID string                 `json:"accountId"`
	Kind      string                 `json:"kind"`
	Patient   *models.PatientDetails `json:"patient,omitempty"`
	Doctor    *models.DoctorDetails  `json:"doctor,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// PublicProfile is what other accounts see. The owning account id is left out.
type PublicProfile struct {
	ID      string                 `json:"id"`
	Kind    string                 `json:"kind"`
	Patient *models.PatientDetails `json:"patient,omitempty"`
	Doctor  *models.DoctorDetails  `json:"doctor,omitempty"`
}
