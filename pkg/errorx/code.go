package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeInvalid            Code = "INVALID"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"

	// Server errors (5xx)
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeUpstreamError   Code = "UPSTREAM_SERVICE_ERROR"
	CodeUpstreamTimeout Code = "UPSTREAM_TIMEOUT"
)
