package constvars

// Client-facing messages. Kept generic on purpose; dev messages carry detail.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientServerLongRespond             = "The server took too long to respond, please try again"
	ErrClientTokenMissing                  = "Authentication token is missing"
	ErrClientTokenInvalid                  = "Authentication token is invalid or expired"
	ErrClientForbidden                     = "You do not have permission to access this resource"

	ErrClientDoctorNotFound       = "Doctor not found"
	ErrClientDoctorUnavailable    = "Doctor is not available"
	ErrClientScheduleNotFound     = "Schedule not found"
	ErrClientScheduleInactive     = "This schedule slot is not active"
	ErrClientScheduleMismatch     = "Schedule does not belong to this doctor"
	ErrClientScheduleDuplicate    = "A schedule already exists for this day and time"
	ErrClientDateDayMismatch      = "Booking date does not fall on the schedule's day of week"
	ErrClientSlotAlreadyBooked    = "This time slot is already booked for this date"
	ErrClientBookingNotFound      = "Booking not found"
	ErrClientBookingInvalidState  = "This action is not allowed for the booking's current status"
	ErrClientPaymentNotFound      = "Payment not found"
	ErrClientPaymentInvalidState  = "Only pending payments can be cancelled"
	ErrClientOrderNotFound        = "Order not found"
	ErrClientOrderInvalidState    = "Order cannot be cancelled at this stage"
	ErrClientProductNotFound      = "Product not found"
	ErrClientProductUnavailable   = "Product is not available"
	ErrClientInsufficientStock    = "Not enough items available in stock"
	ErrClientEmptyOrder           = "Order must contain at least one item"
	ErrClientPaymentGatewayFailed = "Payment provider is currently unavailable, please retry"
)

// Dev-facing messages.
const (
	ErrDevValidationFailed       = "request validation failed"
	ErrDevCannotParseJSON        = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON      = "failed to marshal value to JSON"
	ErrDevCannotParseDate        = "failed to parse date value"
	ErrDevServerDeadlineExceeded = "request deadline exceeded"
	ErrDevMissingRequestID       = "request id not found in context"
	ErrDevTokenMissing           = "authorization header has no bearer token"
	ErrDevTokenInvalid           = "failed to parse or verify JWT"
	ErrDevForbiddenRole          = "authenticated role is not allowed on this route"
	ErrDevInvalidWebhookSig      = "webhook signature verification failed"

	ErrDevDBFailedToFindData   = "postgres: failed to find data"
	ErrDevDBFailedToInsertData = "postgres: failed to insert data"
	ErrDevDBFailedToUpdateData = "postgres: failed to update data"
	ErrDevDBFailedToDeleteData = "postgres: failed to delete data"
	ErrDevDBTransactionFailed  = "postgres: transaction failed"

	ErrDevRedisSet       = "redis: failed to set key"
	ErrDevRedisGet       = "redis: failed to get key"
	ErrDevRedisDelete    = "redis: failed to delete key"
	ErrDevRedisSetNX     = "redis: failed to acquire key with NX"
	ErrDevRedisUnlock    = "redis: failed to release lock"
	ErrDevEventPublish   = "events: failed to publish message"
	ErrDevGatewayRequest = "payment gateway request failed"
)
