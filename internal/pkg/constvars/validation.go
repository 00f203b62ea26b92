package constvars

// CustomValidationErrorMessages maps validator tags to human sentences. The
// field name is prepended by the formatter.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"uuid":     "must be a valid UUID",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
	"lte":      "must be at most %s",
	"oneof":    "must be one of: %s",
	"datetime": "must match the format %s",
	"len":      "must be exactly %s characters",
	"dive":     "contains an invalid element",
}

// TagsWithParams marks tags whose message carries the tag parameter.
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"gt":       true,
	"gte":      true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
	"len":      true,
}
