// Package metadata parses maven-metadata.xml documents.
//
// Two kinds of document share one schema: the artifact-level document at
// groupPath/artifactId/maven-metadata.xml lists released versions, and the
// snapshot-directory document at groupPath/artifactId/X-SNAPSHOT/ names the
// newest snapshot build. Lookups return [errors.FieldError] for absent
// elements rather than empty strings.
package metadata

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/matzehuels/mvnresolve/pkg/errors"
)

// FileName is the name of the metadata document in every directory.
const FileName = "maven-metadata.xml"

// Element paths understood by the lookups below.
const (
	PathRelease             = "versioning/release"
	PathLatest              = "versioning/latest"
	PathSnapshotTimestamp   = "versioning/snapshot/timestamp"
	PathSnapshotBuildNumber = "versioning/snapshot/buildNumber"
	PathVersions            = "versioning/versions/version"
)

// Metadata is a parsed maven-metadata.xml. It is read-only after [Parse].
type Metadata struct {
	XMLName    xml.Name    `xml:"metadata"`
	GroupID    string      `xml:"groupId"`
	ArtifactID string      `xml:"artifactId"`
	Version    string      `xml:"version"`
	Versioning *versioning `xml:"versioning"`
}

type versioning struct {
	Latest      *string   `xml:"latest"`
	Release     *string   `xml:"release"`
	Snapshot    *snapshot `xml:"snapshot"`
	Versions    []string  `xml:"versions>version"`
	LastUpdated string    `xml:"lastUpdated"`
}

type snapshot struct {
	Timestamp   *string `xml:"timestamp"`
	BuildNumber *string `xml:"buildNumber"`
}

// Parse decodes a metadata document. Malformed XML and documents whose
// root element is not <metadata> fail with PARSE.
func Parse(r io.Reader) (*Metadata, error) {
	var m Metadata
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeParse, "empty metadata document")
		}
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse metadata")
	}
	return &m, nil
}

// Release returns versioning/release.
func (m *Metadata) Release() (string, error) {
	if m.Versioning == nil {
		return "", missing(PathRelease)
	}
	return text(m.Versioning.Release, PathRelease)
}

// Latest returns versioning/latest.
func (m *Metadata) Latest() (string, error) {
	if m.Versioning == nil {
		return "", missing(PathLatest)
	}
	return text(m.Versioning.Latest, PathLatest)
}

// SnapshotTimestamp returns versioning/snapshot/timestamp.
func (m *Metadata) SnapshotTimestamp() (string, error) {
	if m.Versioning == nil || m.Versioning.Snapshot == nil {
		return "", missing(PathSnapshotTimestamp)
	}
	return text(m.Versioning.Snapshot.Timestamp, PathSnapshotTimestamp)
}

// SnapshotBuildNumber returns versioning/snapshot/buildNumber.
func (m *Metadata) SnapshotBuildNumber() (string, error) {
	if m.Versioning == nil || m.Versioning.Snapshot == nil {
		return "", missing(PathSnapshotBuildNumber)
	}
	return text(m.Versioning.Snapshot.BuildNumber, PathSnapshotBuildNumber)
}

// Versions returns versioning/versions/version in document order, skipping
// blank entries. It returns nil if the list is absent.
func (m *Metadata) Versions() []string {
	if m.Versioning == nil {
		return nil
	}
	var out []string
	for _, v := range m.Versioning.Versions {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LastUpdated returns versioning/lastUpdated, or "" if absent.
func (m *Metadata) LastUpdated() string {
	if m.Versioning == nil {
		return ""
	}
	return strings.TrimSpace(m.Versioning.LastUpdated)
}

func text(s *string, path string) (string, error) {
	if s == nil {
		return "", missing(path)
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return "", missing(path)
	}
	return v, nil
}

func missing(path string) error {
	return &errors.FieldError{Path: path}
}
