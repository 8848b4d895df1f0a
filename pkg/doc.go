// Package pkg provides the libraries behind mvnresolve.
//
// # Overview
//
// mvnresolve answers three questions about an artifact in a Maven
// repository: what its latest release is, what its latest version is, and
// which concrete build a SNAPSHOT version currently points at. It can then
// download the matching file. The pkg directory is organized as follows:
//
//  1. [version] - Version values and Maven ordering with SNAPSHOT rules
//  2. [metadata] - maven-metadata.xml parsing
//  3. [repository] - Resolution and download against a repository
//  4. [errors] - Error codes shared by all packages
//  5. [httputil], [observability], [buildinfo] - Transport, hooks, build stamps
//
// # Architecture
//
// The data flow of a resolution:
//
//	groupId:artifactId
//	         ↓
//	    [repository] builds {repo}/{groupPath}/{artifactId}/maven-metadata.xml
//	         ↓
//	    [httputil] transport (logging, redacted credentials)
//	         ↓
//	    [metadata] parses versioning/latest, release, snapshot
//	         ↓
//	    [version] value, e.g. 0.4.5-SNAPSHOT-20211215.173200-4
//
// # Quick Start
//
//	coords, _ := repository.ParseCoordinates(repository.DefaultRepository, "org.statendee:maven-utils")
//	client := repository.NewClient(coords)
//	v, err := client.LatestVersion(ctx)
//
// [version]: github.com/matzehuels/mvnresolve/pkg/version
// [metadata]: github.com/matzehuels/mvnresolve/pkg/metadata
// [repository]: github.com/matzehuels/mvnresolve/pkg/repository
// [errors]: github.com/matzehuels/mvnresolve/pkg/errors
// [httputil]: github.com/matzehuels/mvnresolve/pkg/httputil
// [observability]: github.com/matzehuels/mvnresolve/pkg/observability
// [buildinfo]: github.com/matzehuels/mvnresolve/pkg/buildinfo
package pkg
