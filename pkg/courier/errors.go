package courier

import "errors"

var (
	// ErrNotConfigured is returned when base URL or credentials are missing
	ErrNotConfigured = errors.New("courier API not configured")

	// ErrUnauthorized is returned when the credentials are rejected
	ErrUnauthorized = errors.New("courier API rejected credentials")

	// ErrUpstream is returned for non-2xx responses
	ErrUpstream = errors.New("courier API error")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrNoToken is returned when the login response carries no token
	ErrNoToken = errors.New("courier login returned no token")
)
