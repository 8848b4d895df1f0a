package httputil

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnresolve/pkg/observability"
)

// DefaultTimeout bounds a whole request, body included, for clients built
// by [NewClient].
const DefaultTimeout = 60 * time.Second

// Transport returns an [http.RoundTripper] that logs every request at
// debug level and reports it to the registered [observability.HTTPHooks].
// Authorization headers never reach the log. A request ID stored with
// [WithRequestID] is sent as [RequestIDHeader].
//
// If next is nil, [http.DefaultTransport] is used. If logger is nil,
// nothing is logged but hooks still fire.
func Transport(next http.RoundTripper, logger *log.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

// NewClient returns an *http.Client with [DefaultTimeout] whose transport
// is wrapped by [Transport]. A timeout of 0 keeps the default; a negative
// timeout disables it.
func NewClient(timeout time.Duration, logger *log.Logger) *http.Client {
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(nil, logger),
	}
}

type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()

	id, ok := RequestID(ctx)
	if ok && req.Header.Get(RequestIDHeader) == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(ctx)
		req.Header.Set(RequestIDHeader, id)
	}

	hooks.OnRequest(ctx, req.Method, host, path)
	if t.logger != nil {
		t.logger.Debug("http request",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"id", id,
			"auth", redactAuthorization(req.Header.Get("Authorization")))
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if t.logger != nil {
			t.logger.Debug("http error", "method", req.Method, "url", req.URL.Redacted(), "err", err)
		}
		return nil, err
	}

	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, elapsed)
	if t.logger != nil {
		t.logger.Debug("http response",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
			"duration", elapsed.Round(time.Millisecond))
	}
	return resp, nil
}

// redactAuthorization keeps only the scheme of an Authorization value.
func redactAuthorization(v string) string {
	if v == "" {
		return "none"
	}
	if kind, _, ok := strings.Cut(v, " "); ok && (kind == "Basic" || kind == "Bearer") {
		return kind + " REDACTED"
	}
	return "REDACTED"
}
