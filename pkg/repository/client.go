package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnresolve/pkg/buildinfo"
	"github.com/matzehuels/mvnresolve/pkg/errors"
	"github.com/matzehuels/mvnresolve/pkg/httputil"
	"github.com/matzehuels/mvnresolve/pkg/metadata"
	"github.com/matzehuels/mvnresolve/pkg/observability"
	"github.com/matzehuels/mvnresolve/pkg/version"
)

// Client resolves versions of one artifact family and downloads its files.
//
// A Client never mutates its state after [NewClient], so it can be reused
// across calls and shared between goroutines. Each operation issues its
// requests sequentially and surfaces the first failure; nothing is
// retried or cached.
type Client struct {
	coords Coordinates
	creds  Credentials
	http   *http.Client
	logger *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithCredentials authenticates every request with HTTP Basic auth.
// Credentials with an empty username or token are ignored.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithHTTPClient replaces the HTTP client. Timeouts and proxies are
// configured there; the repository client adds none of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client for the given coordinates.
func NewClient(coords Coordinates, opts ...Option) *Client {
	c := &Client{coords: coords}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if c.http == nil {
		c.http = httputil.NewClient(0, c.logger)
	}
	return c
}

// Coordinates returns the coordinates the client was created with.
func (c *Client) Coordinates() Coordinates { return c.coords }

// LatestReleaseVersion returns versioning/release of the artifact metadata.
//
// Returns:
//   - METADATA_FETCH wrapping TRANSPORT, REMOTE_REJECTION or PARSE if the
//     document could not be retrieved
//   - MISSING_FIELD if the document has no release
func (c *Client) LatestReleaseVersion(ctx context.Context) (version.Version, error) {
	return c.track(ctx, "release", func(ctx context.Context) (version.Version, error) {
		m, err := c.fetchMetadata(ctx, c.coords.BaseURL())
		if err != nil {
			return version.Version{}, err
		}
		release, err := m.Release()
		if err != nil {
			return version.Version{}, c.missing(err, "latest release")
		}
		return version.New(release), nil
	})
}

// LatestVersion returns versioning/latest of the artifact metadata. If
// that is a SNAPSHOT version, the newest build of it is resolved with
// [Client.LatestSnapshotBuild], so the result always names a file that
// exists in the repository.
func (c *Client) LatestVersion(ctx context.Context) (version.Version, error) {
	return c.track(ctx, "latest", func(ctx context.Context) (version.Version, error) {
		m, err := c.fetchMetadata(ctx, c.coords.BaseURL())
		if err != nil {
			return version.Version{}, err
		}
		latest, err := m.Latest()
		if err != nil {
			return version.Version{}, c.missing(err, "latest version")
		}
		v := version.New(latest)
		if v.IsSnapshot() {
			c.logger.Debug("latest version is a snapshot", "artifact", c.coords, "version", v)
			return c.LatestSnapshotBuild(ctx, v)
		}
		return v, nil
	})
}

// LatestSnapshotBuild returns the newest build of a SNAPSHOT version as
// "<snapshot>-<timestamp>-<buildNumber>", read from the metadata in the
// snapshot's directory. Build info already present on snapshot is ignored.
//
// Fails with NO_SNAPSHOT_VERSION if snapshot is not a SNAPSHOT version and
// with MISSING_FIELD if the timestamp or build number is absent.
func (c *Client) LatestSnapshotBuild(ctx context.Context, snapshot version.Version) (version.Version, error) {
	return c.track(ctx, "snapshot", func(ctx context.Context) (version.Version, error) {
		if !snapshot.IsSnapshot() {
			return version.Version{}, errors.New(errors.ErrCodeNoSnapshotVersion,
				"version %s is no SNAPSHOT version", snapshot)
		}
		snapshot = snapshot.WithoutBuildInfo()

		m, err := c.fetchMetadata(ctx, c.coords.BaseURL()+"/"+url.PathEscape(snapshot.String()))
		if err != nil {
			return version.Version{}, err
		}
		timestamp, err := m.SnapshotTimestamp()
		if err != nil {
			return version.Version{}, c.missing(err, "snapshot build of "+snapshot.String())
		}
		buildNumber, err := m.SnapshotBuildNumber()
		if err != nil {
			return version.Version{}, c.missing(err, "snapshot build of "+snapshot.String())
		}
		return version.New(snapshot.String() + "-" + timestamp + "-" + buildNumber), nil
	})
}

// Versions returns every version listed in the artifact metadata in
// ascending order, without duplicates.
func (c *Client) Versions(ctx context.Context) ([]version.Version, error) {
	var out []version.Version
	_, err := c.track(ctx, "versions", func(ctx context.Context) (version.Version, error) {
		m, err := c.fetchMetadata(ctx, c.coords.BaseURL())
		if err != nil {
			return version.Version{}, err
		}
		listed := m.Versions()
		if len(listed) == 0 {
			return version.Version{}, c.missing(&errors.FieldError{Path: metadata.PathVersions}, "versions")
		}
		seen := make(map[string]bool, len(listed))
		for _, s := range listed {
			v := version.New(s)
			if seen[v.Key()] {
				continue
			}
			seen[v.Key()] = true
			out = append(out, v)
		}
		version.Sort(out)
		return version.Max(out...), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fetchMetadata retrieves and parses dir/maven-metadata.xml.
func (c *Client) fetchMetadata(ctx context.Context, dir string) (*metadata.Metadata, error) {
	url := dir + "/" + metadata.FileName
	body, err := c.request(ctx, url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMetadataFetch, err, "fetch metadata of %s", c.coords)
	}
	defer body.Close()

	m, err := metadata.Parse(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMetadataFetch, err, "read metadata of %s", c.coords)
	}
	return m, nil
}

func (c *Client) missing(err error, what string) error {
	return errors.Wrap(errors.ErrCodeMissingField, err, "resolve %s of %s", what, c.coords)
}

// request performs an authenticated GET and returns the body of a 2xx
// response. 4xx and 5xx statuses become *errors.RequestError; everything
// else that goes wrong is a TRANSPORT error.
func (c *Client) request(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if c.creds.Valid() {
		req.Header.Set("Authorization", c.creds.Header())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Transport(err, url)
	}
	if err := errors.Classify(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.Transport(fmt.Errorf("unexpected status %d", resp.StatusCode), url)
	}
	return resp.Body, nil
}

// track reports an operation to the resolve hooks and the debug log. All
// requests of one operation share a request ID; nested operations keep the
// ID of the outermost one.
func (c *Client) track(ctx context.Context, op string, fn func(context.Context) (version.Version, error)) (version.Version, error) {
	ctx, id := httputil.EnsureRequestID(ctx)
	coord := c.coords.String()
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, op, coord)

	start := time.Now()
	v, err := fn(ctx)
	elapsed := time.Since(start)
	hooks.OnResolveComplete(ctx, op, coord, v.String(), elapsed, err)

	if err != nil {
		c.logger.Debug("resolve failed", "op", op, "artifact", coord, "id", id, "err", err)
		return version.Version{}, err
	}
	c.logger.Debug("resolved", "op", op, "artifact", coord, "id", id, "version", v, "duration", elapsed.Round(time.Millisecond))
	return v, nil
}
