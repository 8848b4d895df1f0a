// Package version orders Maven version strings, including SNAPSHOT builds.
//
// # Overview
//
// A [Version] wraps a version string such as "1.4.2", "1.5-SNAPSHOT" or
// "1.5-SNAPSHOT-20211215.173200-4". Hyphen components carry meaning:
//
//	1.5 - SNAPSHOT - 20211215.173200 - 4
//	 |       |             |           |
//	release marker     timestamp   build number
//
// The base ordering is Maven's ComparableVersion, provided by
// github.com/masahiro331/go-mvn-version. On top of it, [Compare] treats
// two snapshot builds with the same release and the same timestamp as the
// same artifact, even when only one of them names a build number.
//
// # Usage
//
//	a := version.New("0.4.5-SNAPSHOT-20211208.182235")
//	b := version.New("0.4.5-SNAPSHOT-20211208.182235-1")
//	a.Equal(b)                      // true
//	version.Compare(version.New("0.4.5-SNAPSHOT"), version.New("0.4.5")) // -1
//
// # Timestamps
//
// [Version.Timestamp] returns a [TimestampStatus] instead of failing, so
// callers can branch on "not a snapshot" and "snapshot without timestamp"
// as ordinary cases. [Version.TimestampErr] offers the same as typed
// errors.
package version
