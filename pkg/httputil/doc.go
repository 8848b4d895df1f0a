// Package httputil provides HTTP utilities for the repository client.
//
// # Overview
//
//   - [Transport]: logging RoundTripper that redacts credentials
//   - [NewClient]: *http.Client with a timeout and the logging transport
//   - [Retry]: caller-side retry with exponential backoff
//   - [EnsureRequestID]: per-operation request IDs sent as X-Request-ID
//
// # Transport
//
// [Transport] logs each request and response at debug level through a
// charmbracelet/log logger and reports it to [observability.HTTP] hooks.
// Authorization values are reduced to their scheme ("Basic REDACTED"), so
// verbose logs are safe to share.
//
// # Request IDs
//
// The repository client gives each operation a UUID via [EnsureRequestID].
// Every request of that operation carries it in [RequestIDHeader] and in the
// debug log, so a snapshot lookup can be matched to the latest-version
// lookup that triggered it in repository access logs.
//
// # Retry
//
// The repository client surfaces the first failure it sees. Callers that
// want retries wrap operations with [Retry]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    v, err = client.LatestVersion(ctx)
//	    return err
//	})
//
// Only transport failures and 5xx rejections are retried; a 404 or a
// missing metadata element returns immediately.
//
// [observability.HTTP]: github.com/matzehuels/mvnresolve/pkg/observability.HTTP
package httputil
