package api

// AuthError is returned when the API rejects the key (HTTP 401).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// APIError is returned for non-2xx responses and for envelope-level failures
// (header.status.code >= 400 inside a 200 body).
type APIError struct {
	Message    string
	StatusCode int
	Response   any
}

func (e *APIError) Error() string { return e.Message }
