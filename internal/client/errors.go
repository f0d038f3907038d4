// ABOUTME: Error types surfaced by the API client
// ABOUTME: APIError carries backend messages; SessionExpiredError ends the session

package client

// APIError is a failure reported by the backend. Message is chosen from the
// response body (detail, then message, then validation errors) and is meant
// to be shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// SessionExpiredError means the refresh credential was rejected. The session
// is unrecoverable without a fresh login; local credential state has already
// been cleared by the time this is returned.
type SessionExpiredError struct{}

func (*SessionExpiredError) Error() string {
	return "Session expired. Please login again."
}
