package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingAccountIDKey    = "account_id"
	LoggingRoleKey         = "role"
	LoggingProfileIDKey    = "profile_id"
	LoggingProfileKindKey  = "profile_kind"
	LoggingReferenceKey    = "reference"
	LoggingResourceTypeKey = "resource_type"
	LoggingResourceIDKey   = "resource_id"
	LoggingOperationKey    = "operation"
	LoggingReasonKey       = "reason"
	LoggingAllowKey        = "allow"
	LoggingCountKey        = "count"
	LoggingRedisKey        = "redis_key"
	LoggingQueueKey        = "queue"
	LoggingErrorTypeKey    = "error_type"
)
