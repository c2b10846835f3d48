package httpclient

import (
	"fmt"
	"time"

	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

// Config configures the guarded HTTP client.
type Config struct {
	// Policy governs which destination URLs the client may contact.
	// Required. Must be non-nil; use urlpolicy.Default() for the standard
	// SSRF protections.
	Policy *urlpolicy.Policy

	// Timeout is the total request timeout (includes retries).
	// Default: 30s. Must be > 0.
	Timeout time.Duration

	// RetryAttempts is the maximum number of retry attempts (0 = no retries).
	// Default: 3. Must be >= 0.
	RetryAttempts int

	// RetryBackoff is the initial backoff delay before the first retry.
	// Default: 100ms. Must be > 0 if RetryAttempts > 0.
	RetryBackoff time.Duration

	// MaxBackoff caps the backoff delay.
	// Default: 30s. Must be >= RetryBackoff.
	MaxBackoff time.Duration

	// UserAgent is the User-Agent header value.
	// Required. Must be non-empty.
	UserAgent string

	// AllowNonIdempotentRetry enables retry for POST, PUT, PATCH, DELETE.
	// Default: false (only GET, HEAD, OPTIONS are retried).
	AllowNonIdempotentRetry bool

	// FollowRedirects enables automatic redirect following. Disabled by
	// default: the policy judges the literal request URL, so every redirect
	// target must be validated as a fresh destination. When enabled, each
	// hop still passes through the policy guard.
	FollowRedirects bool

	// MaxRedirects bounds the redirect chain when FollowRedirects is set.
	// Default: 5. Must be >= 0.
	MaxRedirects int
}

// DefaultConfig returns a Config with the default policy and sensible
// client settings.
func DefaultConfig() Config {
	return Config{
		Policy:                  urlpolicy.Default(),
		Timeout:                 30 * time.Second,
		RetryAttempts:           3,
		RetryBackoff:            100 * time.Millisecond,
		MaxBackoff:              30 * time.Second,
		UserAgent:               "ssrfguard-http-client/1.0",
		AllowNonIdempotentRetry: false,
		FollowRedirects:         false,
		MaxRedirects:            5,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Policy == nil {
		return fmt.Errorf("policy is required")
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0, got %d", c.RetryAttempts)
	}
	if c.RetryAttempts > 0 {
		if c.RetryBackoff <= 0 {
			return fmt.Errorf("retry_backoff must be > 0 when retry_attempts > 0, got %v", c.RetryBackoff)
		}
		if c.MaxBackoff < c.RetryBackoff {
			return fmt.Errorf("max_backoff (%v) must be >= retry_backoff (%v)", c.MaxBackoff, c.RetryBackoff)
		}
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}

	if c.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must be >= 0, got %d", c.MaxRedirects)
	}

	return nil
}
