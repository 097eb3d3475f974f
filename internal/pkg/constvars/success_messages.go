package constvars

const (
	ResponseUnknown = "unknown"

	CreateProfileSuccessMessage = "profile created successfully"
	GetProfileSuccessMessage    = "get profile successfully"
	UpdateProfileSuccessMessage = "profile updated successfully"
	DeleteProfileSuccessMessage = "profile deleted successfully"
	AccessAllowedMessage        = "access allowed"
	AccessDeniedMessage         = "access denied"
	BatchAccessEvaluatedMessage = "batch access evaluated"
	HealthCheckSuccessMessage   = "service is healthy"
)
