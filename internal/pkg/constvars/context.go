package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "is_client_request_id"
	CONTEXT_USER_ID_KEY              contextKey = "user_id"
	CONTEXT_ROLE_KEY                 contextKey = "role"
	CONTEXT_ACTOR_KEY                contextKey = "actor"
)

// Logging field keys shared across controllers and middlewares.
const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingDateKey           = "date"
	LoggingTimeSlotKey       = "time_slot"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockStoredKey     = "lock_stored_value"
	LoggingLockExpectedKey   = "lock_expected_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingResponseLengthKey = "response_length"
)
