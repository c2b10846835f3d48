package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniilVdovin/SSRFGuard/pkg/urlpolicy"
)

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = nil

	client, err := New(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)

	cfg = DefaultConfig()
	cfg.Timeout = 0

	client, err = New(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewReturnsConfiguredClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second

	client, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.NotNil(t, client.Transport)
	assert.NotNil(t, client.CheckRedirect)
}

func TestClientRejectsForbiddenDestination(t *testing.T) {
	client, err := New(DefaultConfig())
	require.NoError(t, err)

	// Fails inside the guard transport, before any dial.
	_, err = client.Get("http://169.254.169.254/latest/meta-data/")
	require.Error(t, err)
	assert.True(t, urlpolicy.IsRejection(err))
	assert.Equal(t, urlpolicy.ReasonReservedIP, urlpolicy.ReasonOf(err))
}

func redirectResponse(location string) *http.Response {
	h := make(http.Header)
	h.Set("Location", location)
	return &http.Response{
		StatusCode: http.StatusFound,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

func TestRedirectsNotFollowedByDefault(t *testing.T) {
	stub := &stubTransport{responses: []*http.Response{
		redirectResponse("http://10.0.0.1/internal"),
	}}

	client := &http.Client{
		Transport: newGuardTransport(stub, urlpolicy.Default()),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get("http://example.com/start")
	require.NoError(t, err)
	defer resp.Body.Close()

	// The 302 is handed back untouched; the redirect target is never fetched.
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Len(t, stub.requests, 1)
}

func TestRedirectHopsAreRevalidated(t *testing.T) {
	stub := &stubTransport{responses: []*http.Response{
		redirectResponse("http://192.168.1.1/admin"),
	}}

	client := &http.Client{
		Transport: newGuardTransport(stub, urlpolicy.Default()),
	}

	_, err := client.Get("http://example.com/start")
	require.Error(t, err)

	// The hop to the private address was rejected by the guard; only the
	// first request reached the base transport.
	assert.Equal(t, urlpolicy.ReasonPrivateIP, urlpolicy.ReasonOf(err))
	assert.Len(t, stub.requests, 1)
}

func TestRedirectChainBounded(t *testing.T) {
	// Every hop redirects back to an allowed host, forever.
	stub := &stubTransport{responses: []*http.Response{
		redirectResponse("http://example.com/loop"),
	}}

	maxRedirects := 3
	client := &http.Client{
		Transport: newGuardTransport(stub, urlpolicy.Default()),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return errors.New("stopped after 3 redirects")
			}
			return nil
		},
	}

	_, err := client.Get("http://example.com/start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 3 redirects")
	// The initial request plus maxRedirects followed hops.
	assert.Len(t, stub.requests, maxRedirects+1)
}
