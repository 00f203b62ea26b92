package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingEndpointKey     = "endpoint"
	LoggingMethodKey       = "method"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorTypeKey    = "error_type"
	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"
	LoggingOrderIDKey      = "order_id"
	LoggingBookingIDKey    = "booking_id"
	LoggingDoctorIDKey     = "doctor_id"
	LoggingUserIDKey       = "user_id"
	LoggingRedisKey        = "redis_key"
	LoggingLockValueKey    = "lock_value"
	LoggingLockTTLKey      = "lock_ttl"
	LoggingQueueKey        = "queue"
	LoggingEventKey        = "event"
)
