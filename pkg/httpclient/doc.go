// Package httpclient provides an HTTP client factory whose clients refuse to
// contact destinations forbidden by a urlpolicy.Policy.
//
// Every request, including every redirect hop, passes through a guard
// transport that validates the target URL before any connection is dialed.
// A rejected request fails with the urlpolicy error and never touches the
// network.
//
// # Usage
//
// Create a client with the default policy (http/https only, loopback and
// private addresses blocked, well-known service ports blocked):
//
//	client, err := httpclient.New(httpclient.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Get("https://api.example.com/resource")
//
// Customize the policy and client behavior:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.UserAgent = "my-service/2.0"
//	cfg.Policy.AllowedDomains = []string{"*.example.com"}
//	client, err := httpclient.New(cfg)
//
// # Redirects
//
// Automatic redirect following is disabled by default: the policy validates
// the literal request URL, so a server-issued redirect is a fresh destination
// that must be judged on its own. Set FollowRedirects to opt back in; each
// hop then re-enters the guard transport and is validated independently, and
// MaxRedirects bounds the hop count.
//
// # Retry behavior
//
// The client retries transient failures with exponential backoff and jitter:
// HTTP 5xx, 408, 429 (honoring Retry-After), and network-level errors. Only
// idempotent methods (GET, HEAD, OPTIONS) are retried unless
// AllowNonIdempotentRetry is set.
//
// # Observability
//
// Requests are logged via log/slog with sanitized URLs (sensitive query
// parameters redacted) and an X-Request-ID header is injected when absent.
// Policy decisions are exported as Prometheus counters
// (ssrfguard_requests_total, ssrfguard_rejections_total).
package httpclient
