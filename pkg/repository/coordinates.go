package repository

import (
	"encoding/base64"
	"strings"

	"github.com/matzehuels/mvnresolve/pkg/errors"
)

// DefaultRepository is Maven Central.
const DefaultRepository = "https://repo.maven.apache.org/maven2/"

// Coordinates identify an artifact family: a repository plus a
// groupId:artifactId pair.
//
// Coordinates are plain values. Build them with [NewCoordinates] or
// [ParseCoordinates]; a zero Repository is not replaced by a default.
type Coordinates struct {
	Repository string // Repository base URL, always ending in "/" when built by NewCoordinates
	GroupID    string // e.g. "org.statendee"
	ArtifactID string // e.g. "maven-utils"
}

// NewCoordinates builds Coordinates, appending a trailing slash to the
// repository URL if it is missing.
func NewCoordinates(repository, groupID, artifactID string) Coordinates {
	if !strings.HasSuffix(repository, "/") {
		repository += "/"
	}
	return Coordinates{
		Repository: repository,
		GroupID:    groupID,
		ArtifactID: artifactID,
	}
}

// ParseCoordinates builds Coordinates from a "groupId:artifactId" string.
// Extra segments ("groupId:artifactId:version") are rejected.
func ParseCoordinates(repository, coordinate string) (Coordinates, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 2 {
		return Coordinates{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid maven coordinate %q (expected groupId:artifactId)", coordinate)
	}
	c := NewCoordinates(repository, parts[0], parts[1])
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks the repository URL scheme and that groupId and
// artifactId are safe to use as path segments.
func (c Coordinates) Validate() error {
	if err := errors.ValidateURL(c.Repository); err != nil {
		return err
	}
	if err := errors.ValidateIdentifier("groupId", c.GroupID); err != nil {
		return err
	}
	return errors.ValidateIdentifier("artifactId", c.ArtifactID)
}

// GroupPath maps the groupId to its directory: dots become slashes and
// underscores become hyphens.
func (c Coordinates) GroupPath() string {
	return strings.NewReplacer(".", "/", "_", "-").Replace(c.GroupID)
}

// BaseURL returns the artifact directory, without a trailing slash:
// {repository}/{groupPath}/{artifactId}.
func (c Coordinates) BaseURL() string {
	return strings.TrimSuffix(c.Repository, "/") + "/" + c.GroupPath() + "/" + c.ArtifactID
}

// String returns the Maven coordinate string "groupId:artifactId".
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// Credentials authenticate against a repository with HTTP Basic auth.
type Credentials struct {
	Username string
	Token    string // token or password
}

// Valid reports whether both username and token are set. Requests carry
// an Authorization header only for valid credentials.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Token != ""
}

// Header returns the Authorization header value for c.
func (c Credentials) Header() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Token))
}

// String hides the token so credentials can be logged safely.
func (c Credentials) String() string {
	if c.Username == "" {
		return "anonymous"
	}
	return c.Username + ":REDACTED"
}
