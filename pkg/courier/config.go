package courier

import "time"

// Config represents the configuration for the courier API client
type Config struct {
	// BaseURL is the courier API base URL, e.g. https://api.courier.example/v1
	BaseURL string

	// Username and Password are exchanged for a bearer token
	Username string
	Password string

	// Timeout bounds every upstream call; zero means 10s
	Timeout time.Duration
}

// Configured reports whether the upstream can be called at all
func (c *Config) Configured() bool {
	return c.BaseURL != "" && c.Username != "" && c.Password != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return nil
}
