package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type Middleware func(next http.RoundTripper) http.RoundTripper

// Chain wraps base so that the first middleware sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

func LoggingMiddleware(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		logger := logrus.WithFields(logrus.Fields{
			"method": req.Method,
			"host":   req.URL.Host,
			"path":   req.URL.Path,
		})

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.WithError(err).WithField("latency", time.Since(start)).Debug("Request failed")
			return nil, err
		}

		logger.WithFields(logrus.Fields{
			"status":  resp.StatusCode,
			"latency": time.Since(start),
		}).Debug("Request completed")
		return resp, nil
	})
}

// HeadersMiddleware sets default headers on requests that do not
// already carry them.
func HeadersMiddleware(headers map[string]string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			var cloned bool
			for key, value := range headers {
				if req.Header.Get(key) != "" {
					continue
				}
				if !cloned {
					req = req.Clone(req.Context())
					cloned = true
				}
				req.Header.Set(key, value)
			}
			return next.RoundTrip(req)
		})
	}
}
