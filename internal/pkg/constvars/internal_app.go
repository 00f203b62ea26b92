package constvars

// ContextKey is the type for values this service stores on a request context.
type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_USER_ID_KEY              ContextKey = "user_id"
	CONTEXT_USER_ROLE_KEY            ContextKey = "user_role"
)

const (
	RoleUser   = "USER"
	RoleDoctor = "DOCTOR"
	RoleAdmin  = "ADMIN"
)

const (
	AppDateLayout = "2006-01-02"
	AppTimeLayout = "15:04"
)
