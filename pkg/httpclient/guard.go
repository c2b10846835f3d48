package httpclient

import (
	"log/slog"
	"net/http"

	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

// guardTransport validates every outgoing request URL against the policy
// before any connection is dialed. Redirect hops re-enter the transport, so
// each hop is validated independently.
type guardTransport struct {
	base   http.RoundTripper
	policy *urlpolicy.Policy
}

// newGuardTransport creates a guard transport wrapping the base transport.
func newGuardTransport(base http.RoundTripper, policy *urlpolicy.Policy) *guardTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &guardTransport{
		base:   base,
		policy: policy,
	}
}

// RoundTrip implements http.RoundTripper. A rejected request returns the
// urlpolicy error unchanged and never reaches the network.
func (t *guardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := urlpolicy.Validate(req.URL.String(), t.policy); err != nil {
		recordRejection(err)
		slog.Warn("outbound request rejected by policy",
			"method", req.Method,
			"url", sanitizeURL(req.URL),
			"reason", string(urlpolicy.ReasonOf(err)),
			"error", err.Error(),
		)
		return nil, err
	}

	recordAllowed()
	return t.base.RoundTrip(req)
}
