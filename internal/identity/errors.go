package identity

// Code classifies provider failures. Raw codes never reach UI callers; the
// session adapter maps them to user-facing messages.
type Code string

const (
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeUserNotFound       Code = "user_not_found"
	CodeEmailInUse         Code = "email_in_use"
	CodeWeakPassword       Code = "weak_password"
	CodeInvalidEmail       Code = "invalid_email"
	CodeTooManyAttempts    Code = "too_many_attempts"
	CodeNetworkError       Code = "network_error"
	CodePopupClosed        Code = "popup_closed"
	CodeUnknown            Code = "unknown"
)

// Error is a coded provider failure.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return string(e.Code) + ": " + e.Msg
	}
	return string(e.Code)
}

// NewError constructs a coded error.
func NewError(code Code, msg string) error { return &Error{Code: code, Msg: msg} }

// CodeOf extracts the code from err, or CodeUnknown for foreign errors.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool { return CodeOf(err) == code }
