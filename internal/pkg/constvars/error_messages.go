package constvars

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"oneof":            "must be one of [%s]",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"printascii":       "must contain only printable ascii characters",
	"excludesall":      "contains forbidden characters",
	"profile_kind":     "must be either patient or doctor",
	"phone_number":     "must be a valid phone number in international format",
	"blood_group":      "must be a valid blood group",
	"weekday":          "must be a day of the week",
	"time_slot":        "must be a time slot in HH:MM-HH:MM format",
	"required_without": "is required when %s is empty",
	"excluded_with":    "must be empty when %s is set",
	"gt":               "must be greater than %s",
	"dive":             "is invalid",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this resource"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientProfileAlreadyExists          = "profile already exists for this account"
	ErrClientProfileNotFound               = "profile not found"
	ErrClientResourceNotFound              = "resource not found"
	ErrClientTooManyItems                  = "too many items in a single request"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevAuthTokenMissing         = "auth token missing"
	ErrDevAuthTokenInvalid         = "auth token invalid"
	ErrDevAuthSigningMethod        = "unexpected token signing method"
	ErrDevAuthClaimsInvalid        = "auth token claims missing subject or role"
	ErrDevActorMissing             = "actor missing from request context"
	ErrDevInvalidRole              = "invalid account role %q"
	ErrDevInvalidProfileKind       = "invalid profile kind %q"
	ErrDevInvalidIdentifier        = "invalid identifier %q"
	ErrDevInvalidReferenceKind     = "invalid reference kind %q"
	ErrDevUnknownResourceType      = "unknown resource type %q"
	ErrDevUnknownOperation         = "unknown operation %q"
	ErrDevMissingPartyField        = "resource %s is missing mandatory party field %s"
	ErrDevStoredCreate             = "create cannot be authorized against a stored resource"
	ErrDevDeclaredNonCreate        = "declared party fields only authorize create, got %s"
	ErrDevInvalidReference         = "declared reference %s does not resolve to an account"
	ErrDevNotParty                 = "actor %s is not permitted to %s %s"
	ErrDevUnresolvableReference    = "reference %s does not resolve to an account"
	ErrDevDataIntegrity            = "data integrity fault while resolving %s"
	ErrDevProfileAlreadyExists     = "%s profile already exists for account %s"
	ErrDevProfileNotFound          = "%s profile not found for account %s"
	ErrDevProfileDetailsMismatch   = "profile details do not match kind %s"
	ErrDevResourceNotFound         = "%s %s not found"
	ErrDevTooManyItems             = "batch of %d exceeds limit %d"

	// Database messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCreateIndex      = "failed to create index"

	// Redis messages
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to rabbitmq"
)
