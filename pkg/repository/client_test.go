package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/mvnresolve/pkg/errors"
	"github.com/matzehuels/mvnresolve/pkg/httputil"
	"github.com/matzehuels/mvnresolve/pkg/observability"
	"github.com/matzehuels/mvnresolve/pkg/version"
)

const artifactMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>test</groupId>
  <artifactId>test</artifactId>
  <versioning>
    <latest>0.4.5-SNAPSHOT</latest>
    <release>0.4.5</release>
    <versions>
      <version>0.4.4</version>
      <version>0.4.5-SNAPSHOT</version>
      <version>0.4.5</version>
      <version>0.4.4.0</version>
    </versions>
    <lastUpdated>20211215173200</lastUpdated>
  </versioning>
</metadata>`

const snapshotMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>test</groupId>
  <artifactId>test</artifactId>
  <version>0.4.5-SNAPSHOT</version>
  <versioning>
    <snapshot>
      <timestamp>20211215.173200</timestamp>
      <buildNumber>4</buildNumber>
    </snapshot>
    <lastUpdated>20211215173200</lastUpdated>
  </versioning>
</metadata>`

// fakeRepo serves fixed bodies by path and records each request.
type fakeRepo struct {
	mu       sync.Mutex
	files    map[string]string
	status   int
	requests []*http.Request
}

func (f *fakeRepo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	body, ok := f.files[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(body))
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, repo *fakeRepo, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(repo)
	t.Cleanup(server.Close)
	return NewClient(NewCoordinates(server.URL, "test", "test"), opts...)
}

func defaultRepo() *fakeRepo {
	return &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml":                artifactMetadata,
		"/test/test/0.4.5-SNAPSHOT/maven-metadata.xml": snapshotMetadata,
	}}
}

func TestLatestReleaseVersion(t *testing.T) {
	c := newTestClient(t, defaultRepo())
	v, err := c.LatestReleaseVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestReleaseVersion() failed: %v", err)
	}
	if v.String() != "0.4.5" {
		t.Errorf("LatestReleaseVersion() = %q, want 0.4.5", v)
	}
}

func TestLatestVersionResolvesSnapshot(t *testing.T) {
	repo := defaultRepo()
	c := newTestClient(t, repo)
	v, err := c.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion() failed: %v", err)
	}
	if v.String() != "0.4.5-SNAPSHOT-20211215.173200-4" {
		t.Errorf("LatestVersion() = %q", v)
	}
	if repo.count() != 2 {
		t.Errorf("requests = %d, want 2", repo.count())
	}

	ts, _ := v.Timestamp()
	if ts != "20211215.173200" {
		t.Errorf("Timestamp() = %q", ts)
	}
	if v.Compare(version.New("0.4.5-SNAPSHOT-20211215.173200-9")) != 0 {
		t.Error("builds with the same timestamp should compare equal")
	}
}

func TestLatestVersionRelease(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml": `<metadata><versioning><latest>2.1</latest></versioning></metadata>`,
	}}
	c := newTestClient(t, repo)
	v, err := c.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion() failed: %v", err)
	}
	if v.String() != "2.1" {
		t.Errorf("LatestVersion() = %q, want 2.1", v)
	}
	if repo.count() != 1 {
		t.Errorf("requests = %d, want 1", repo.count())
	}
}

func TestLatestSnapshotBuild(t *testing.T) {
	c := newTestClient(t, defaultRepo())
	ctx := context.Background()

	for _, in := range []string{"0.4.5-SNAPSHOT", "0.4.5-SNAPSHOT-20200101.000000-1"} {
		v, err := c.LatestSnapshotBuild(ctx, version.New(in))
		if err != nil {
			t.Fatalf("LatestSnapshotBuild(%q) failed: %v", in, err)
		}
		if v.String() != "0.4.5-SNAPSHOT-20211215.173200-4" {
			t.Errorf("LatestSnapshotBuild(%q) = %q", in, v)
		}
	}

	_, err := c.LatestSnapshotBuild(ctx, version.New("0.4.5"))
	if !errors.Is(err, errors.ErrCodeNoSnapshotVersion) {
		t.Errorf("LatestSnapshotBuild(release) error = %v, want NO_SNAPSHOT_VERSION", err)
	}
}

func TestLatestSnapshotBuildEscapesVersion(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/1.0#rc?1-SNAPSHOT/maven-metadata.xml": snapshotMetadata,
	}}
	c := newTestClient(t, repo)
	v, err := c.LatestSnapshotBuild(context.Background(), version.New("1.0#rc?1-SNAPSHOT"))
	if err != nil {
		t.Fatalf("LatestSnapshotBuild() failed: %v", err)
	}
	if want := "1.0#rc?1-SNAPSHOT-20211215.173200-4"; v.String() != want {
		t.Errorf("LatestSnapshotBuild() = %q, want %q", v, want)
	}
}

func TestLatestSnapshotBuildMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"no snapshot", `<metadata><versioning></versioning></metadata>`, "versioning/snapshot/timestamp"},
		{"no build number", `<metadata><versioning><snapshot><timestamp>1</timestamp></snapshot></versioning></metadata>`, "versioning/snapshot/buildNumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{files: map[string]string{"/test/test/1.0-SNAPSHOT/maven-metadata.xml": tt.body}}
			c := newTestClient(t, repo)
			_, err := c.LatestSnapshotBuild(context.Background(), version.New("1.0-SNAPSHOT"))
			if !errors.Is(err, errors.ErrCodeMissingField) {
				t.Fatalf("error = %v, want MISSING_FIELD", err)
			}
			if path, ok := errors.MissingField(err); !ok || path != tt.path {
				t.Errorf("MissingField() = %q, %v, want %q", path, ok, tt.path)
			}
		})
	}
}

func TestMissingRelease(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml": `<metadata><groupId>test</groupId></metadata>`,
	}}
	c := newTestClient(t, repo)
	_, err := c.LatestReleaseVersion(context.Background())
	if path, ok := errors.MissingField(err); !ok || path != "versioning/release" {
		t.Errorf("MissingField() = %q, %v", path, ok)
	}
	if errors.Is(err, errors.ErrCodeMetadataFetch) {
		t.Error("a missing field is not a fetch failure")
	}
}

func TestVersions(t *testing.T) {
	c := newTestClient(t, defaultRepo())
	vs, err := c.Versions(context.Background())
	if err != nil {
		t.Fatalf("Versions() failed: %v", err)
	}
	var got []string
	for _, v := range vs {
		got = append(got, v.String())
	}
	want := []string{"0.4.4", "0.4.5-SNAPSHOT", "0.4.5"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Versions() = %v, want %v", got, want)
	}
}

func TestVersionsCollapsesEqualSpellings(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml": `<metadata><versioning><versions>
  <version>1.0</version>
  <version>1.0-final</version>
  <version>1..0</version>
  <version>1.0-ga</version>
  <version>1.1</version>
</versions></versioning></metadata>`,
	}}
	c := newTestClient(t, repo)
	vs, err := c.Versions(context.Background())
	if err != nil {
		t.Fatalf("Versions() failed: %v", err)
	}
	var got []string
	for _, v := range vs {
		got = append(got, v.String())
	}
	if want := "1.0,1.1"; strings.Join(got, ",") != want {
		t.Errorf("Versions() = %v, want %s", got, want)
	}
}

func TestVersionsEmpty(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml": `<metadata><versioning><versions/></versioning></metadata>`,
	}}
	c := newTestClient(t, repo)
	_, err := c.Versions(context.Background())
	if path, ok := errors.MissingField(err); !ok || path != "versioning/versions/version" {
		t.Errorf("MissingField() = %q, %v", path, ok)
	}
}

func TestRemoteRejection(t *testing.T) {
	tests := []struct {
		status int
		reason string
	}{
		{http.StatusUnauthorized, "Unauthorized"},
		{http.StatusForbidden, "Forbidden"},
		{http.StatusNotFound, "Not Found"},
		{http.StatusBadGateway, ""},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, &fakeRepo{status: tt.status})
			_, err := c.LatestReleaseVersion(context.Background())
			if !errors.Is(err, errors.ErrCodeMetadataFetch) {
				t.Errorf("error = %v, want METADATA_FETCH", err)
			}
			if !errors.Is(err, errors.ErrCodeRemoteRejection) {
				t.Errorf("error = %v, want REMOTE_REJECTION in chain", err)
			}
			code, ok := errors.StatusCode(err)
			if !ok || code != tt.status {
				t.Errorf("StatusCode() = %d, %v, want %d", code, ok, tt.status)
			}
			if tt.reason != "" && !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q should mention %q", err, tt.reason)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(NewCoordinates(url, "test", "test"))
	_, err := c.LatestReleaseVersion(context.Background())
	if !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("error = %v, want TRANSPORT", err)
	}
	if !errors.IsRetryable(err) {
		t.Error("transport failures should be retryable")
	}
}

func TestMalformedMetadata(t *testing.T) {
	repo := &fakeRepo{files: map[string]string{
		"/test/test/maven-metadata.xml": `<metadata><versioning><release>1.0</versioning>`,
	}}
	c := newTestClient(t, repo)
	_, err := c.LatestReleaseVersion(context.Background())
	if !errors.Is(err, errors.ErrCodeMetadataFetch) || !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error = %v, want PARSE inside METADATA_FETCH", err)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{"anonymous", Credentials{}, ""},
		{"username only", Credentials{Username: "user"}, ""},
		{"token only", Credentials{Token: "tok"}, ""},
		{"both", Credentials{Username: "user", Token: "tok"}, "Basic dXNlcjp0b2s="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := defaultRepo()
			c := newTestClient(t, repo, WithCredentials(tt.creds))
			if _, err := c.LatestVersion(context.Background()); err != nil {
				t.Fatalf("LatestVersion() failed: %v", err)
			}
			for _, r := range repo.requests {
				values := r.Header.Values("Authorization")
				if tt.want == "" {
					if len(values) != 0 {
						t.Errorf("%s: unexpected Authorization %v", r.URL.Path, values)
					}
					continue
				}
				if len(values) != 1 || values[0] != tt.want {
					t.Errorf("%s: Authorization = %v, want [%s]", r.URL.Path, values, tt.want)
				}
			}
		})
	}
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, defaultRepo())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.LatestVersion(ctx); !errors.Is(err, errors.ErrCodeTransport) {
		t.Errorf("error = %v, want TRANSPORT", err)
	}
}

type recordingResolveHooks struct {
	observability.NoopResolveHooks
	mu    sync.Mutex
	ops   []string
	fails int
}

func (h *recordingResolveHooks) OnResolveComplete(_ context.Context, op, _, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op)
	if err != nil {
		h.fails++
	}
}

func TestResolveHooks(t *testing.T) {
	hooks := &recordingResolveHooks{}
	observability.SetResolveHooks(hooks)
	defer observability.Reset()

	c := newTestClient(t, defaultRepo())
	if _, err := c.LatestVersion(context.Background()); err != nil {
		t.Fatalf("LatestVersion() failed: %v", err)
	}
	if got := strings.Join(hooks.ops, ","); got != "snapshot,latest" {
		t.Errorf("ops = %q, want snapshot,latest", got)
	}
	if hooks.fails != 0 {
		t.Errorf("fails = %d", hooks.fails)
	}
}

func TestRequestIDSharedWithinOperation(t *testing.T) {
	repo := defaultRepo()
	c := newTestClient(t, repo)
	ctx := context.Background()
	if _, err := c.LatestVersion(ctx); err != nil {
		t.Fatalf("LatestVersion() failed: %v", err)
	}
	if _, err := c.LatestReleaseVersion(ctx); err != nil {
		t.Fatalf("LatestReleaseVersion() failed: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	ids := make([]string, len(repo.requests))
	for i, r := range repo.requests {
		ids[i] = r.Header.Get(httputil.RequestIDHeader)
	}
	if len(ids) != 3 || ids[0] == "" {
		t.Fatalf("request ids = %q", ids)
	}
	if ids[0] != ids[1] {
		t.Errorf("snapshot lookup should reuse the id of latest: %q", ids)
	}
	if ids[2] == ids[0] {
		t.Errorf("separate operations should get separate ids: %q", ids)
	}
}
