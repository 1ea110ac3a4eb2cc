package middleware

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okTransport(t *testing.T, check func(req *http.Request)) http.RoundTripper {
	t.Helper()
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		check(req)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("OK")),
			Request:    req,
		}, nil
	})
}

func TestLoggingMiddleware(t *testing.T) {
	transport := Chain(okTransport(t, func(*http.Request) {}), LoggingMiddleware)

	req, err := http.NewRequest("GET", "https://www.youtube.com/watch?v=abc", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHeadersMiddleware(t *testing.T) {
	var seen http.Header
	transport := Chain(
		okTransport(t, func(req *http.Request) { seen = req.Header }),
		LoggingMiddleware,
		HeadersMiddleware(map[string]string{
			"User-Agent":      "test-agent",
			"Accept-Language": "en-US",
		}),
	)

	req, err := http.NewRequest("GET", "https://www.youtube.com/watch?v=abc", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "caller-agent")

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "caller-agent", seen.Get("User-Agent"), "caller User-Agent is kept")
	assert.Equal(t, "en-US", seen.Get("Accept-Language"))
	assert.Empty(t, req.Header.Get("Accept-Language"), "caller's request is left untouched")
}
