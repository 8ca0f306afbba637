package httpapi

import (
	"encoding/json"
	"net/http"

	"glampd/internal/identity"
	"glampd/internal/session"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": msg,
		"code":  status,
	})
}

// authStatus maps provider error codes to HTTP statuses. Callers write the
// normalized user-facing message, never the raw code.
func authStatus(err error) int {
	switch identity.CodeOf(err) {
	case identity.CodeInvalidCredentials, identity.CodeUserNotFound:
		return http.StatusUnauthorized
	case identity.CodeEmailInUse:
		return http.StatusConflict
	case identity.CodeWeakPassword, identity.CodeInvalidEmail:
		return http.StatusBadRequest
	case identity.CodeTooManyAttempts:
		return http.StatusTooManyRequests
	case identity.CodeNetworkError:
		return http.StatusBadGateway
	default:
		if he, ok := err.(HTTPError); ok {
			return he.StatusCode()
		}
		return http.StatusInternalServerError
	}
}

// writeAuthError normalizes and writes a provider failure.
func writeAuthError(w http.ResponseWriter, err error) {
	IncrementAuthFailure(string(identity.CodeOf(err)))
	writeJSONError(w, authStatus(err), session.Message(err))
}
