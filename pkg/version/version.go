package version

import (
	"slices"
	"strconv"
	"strings"

	mvnv "github.com/masahiro331/go-mvn-version"

	"github.com/matzehuels/mvnresolve/pkg/errors"
)

// SnapshotMarker is the second hyphen component of every SNAPSHOT version.
const SnapshotMarker = "SNAPSHOT"

// Version is an immutable Maven version string with SNAPSHOT awareness.
//
// Versions are plain values: copy them freely. Use [Version.Equal] rather
// than == when comparing, since two snapshot builds sharing a timestamp are
// equal regardless of their build numbers.
//
// The zero Version is the empty version.
type Version struct {
	raw string
}

// New wraps s as a Version. No validation is performed; any string is a
// version that sorts somewhere.
func New(s string) Version {
	return Version{raw: s}
}

// String returns the version string as given to [New].
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the empty version.
func (v Version) IsZero() bool { return v.raw == "" }

// components splits the version on hyphens. Trailing empty components are
// dropped so "1.0-SNAPSHOT-" has no timestamp.
func (v Version) components() []string {
	parts := strings.Split(v.raw, "-")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// IsSnapshot reports whether the second hyphen component is exactly
// "SNAPSHOT".
func (v Version) IsSnapshot() bool {
	parts := v.components()
	return len(parts) >= 2 && parts[1] == SnapshotMarker
}

// TimestampStatus tells why [Version.Timestamp] did or did not find a
// build timestamp.
type TimestampStatus int

const (
	// TimestampPresent means the snapshot carries a timestamp component.
	TimestampPresent TimestampStatus = iota
	// NotSnapshot means the version is not a snapshot at all.
	NotSnapshot
	// NoTimestamp means the version is a snapshot without a timestamp,
	// e.g. "1.0-SNAPSHOT".
	NoTimestamp
)

func (s TimestampStatus) String() string {
	switch s {
	case TimestampPresent:
		return "present"
	case NotSnapshot:
		return "not a snapshot"
	case NoTimestamp:
		return "no timestamp"
	default:
		return "unknown"
	}
}

// Timestamp returns the build timestamp of a snapshot build (component 2,
// typically yyyyMMdd.HHmmss). The status is [TimestampPresent] only when
// the returned string is meaningful.
func (v Version) Timestamp() (string, TimestampStatus) {
	if !v.IsSnapshot() {
		return "", NotSnapshot
	}
	parts := v.components()
	if len(parts) < 3 {
		return "", NoTimestamp
	}
	return parts[2], TimestampPresent
}

// TimestampErr is [Version.Timestamp] for callers that prefer error
// values. It fails with NO_SNAPSHOT_VERSION or NO_TIMESTAMP.
func (v Version) TimestampErr() (string, error) {
	ts, status := v.Timestamp()
	switch status {
	case NotSnapshot:
		return "", errors.New(errors.ErrCodeNoSnapshotVersion, "version %s is no SNAPSHOT version", v.raw)
	case NoTimestamp:
		return "", errors.New(errors.ErrCodeNoTimestamp, "version %s has no build timestamp", v.raw)
	}
	return ts, nil
}

// BuildNumber returns the build number of a snapshot build (component 3).
func (v Version) BuildNumber() (string, bool) {
	if !v.IsSnapshot() {
		return "", false
	}
	parts := v.components()
	if len(parts) < 4 {
		return "", false
	}
	return parts[3], true
}

// WithoutBuildInfo strips the timestamp and build number of a snapshot
// build, yielding "<release>-SNAPSHOT". Non-snapshots are returned as is.
func (v Version) WithoutBuildInfo() Version {
	if !v.IsSnapshot() {
		return v
	}
	return New(v.components()[0] + "-" + SnapshotMarker)
}

// ReleaseIdentifier returns the version with every "-SNAPSHOT" removed.
// Unlike [Version.WithoutBuildInfo] it keeps the timestamp and build
// number, which is how snapshot builds are named inside their directory:
// "1.0-SNAPSHOT-20211215.173200-4" becomes "1.0-20211215.173200-4".
func (v Version) ReleaseIdentifier() string {
	return strings.ReplaceAll(v.raw, "-"+SnapshotMarker, "")
}

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
//
// If both are snapshots with equal release portions and equal timestamps
// they are equal, whatever their build numbers. Everything else is
// ordered by Maven's ComparableVersion rules on the full string, so
// "1.0-SNAPSHOT" sorts before "1.0".
func Compare(a, b Version) int {
	if a.IsSnapshot() && b.IsSnapshot() {
		tsA, okA := a.Timestamp()
		tsB, okB := b.Timestamp()
		if okA == TimestampPresent && okB == TimestampPresent &&
			compareBase(a.components()[0], b.components()[0]) == 0 && tsA == tsB {
			return 0
		}
	}
	return compareBase(a.raw, b.raw)
}

// compareBase orders two strings with Maven's ComparableVersion rules.
func compareBase(a, b string) int {
	switch c := parse(a).Compare(parse(b)); {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

// parse wraps mvnv.NewVersion, which accepts any string and never returns
// an error.
func parse(s string) mvnv.Version {
	v, _ := mvnv.NewVersion(s)
	return v
}

// Compare is the method form of [Compare].
func (v Version) Compare(o Version) int { return Compare(v, o) }

// Equal reports whether v and o compare equal.
func (v Version) Equal(o Version) bool { return Compare(v, o) == 0 }

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return Compare(v, o) < 0 }

// Key returns a map key shared by versions that are [Version.Equal].
//
// The key is the parsed ComparableVersion item tree (lowercased, with
// qualifier aliases such as "ga" and "final" already applied) with trailing
// null items dropped, so "1.0", "1.0.0", "1..0" and "1.0-ga" share a key.
// Timestamped snapshots key on their release tree with "snapshot-<timestamp>"
// attached, leaving out the build number.
//
// Equal is not transitive across spellings: "1.0-SNAPSHOT-<ts>-1" and
// "1-snapshot-<ts>" both equal "1.0-SNAPSHOT-<ts>" but not each other, and
// all three share a key.
func (v Version) Key() string {
	items := canonical(parse(v.raw).Items)
	if ts, status := v.Timestamp(); status == TimestampPresent {
		release := canonical(parse(v.components()[0]).Items)
		items = attach(release, canonical(parse(SnapshotMarker+"-"+ts).Items))
	}
	var b strings.Builder
	writeItems(&b, items)
	return b.String()
}

// canonical drops trailing null items at every level. ListItem.Compare
// treats those as absent.
func canonical(items mvnv.ListItem) mvnv.ListItem {
	out := make(mvnv.ListItem, 0, len(items))
	for _, it := range items {
		if l, ok := it.(mvnv.ListItem); ok {
			it = canonical(l)
		}
		out = append(out, it)
	}
	for len(out) > 0 && isNull(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func isNull(it mvnv.Item) bool {
	switch it := it.(type) {
	case mvnv.IntItem:
		return it == 0
	case mvnv.StringItem:
		return it == ""
	case mvnv.ListItem:
		return len(it) == 0
	}
	return false
}

// attach nests child below the innermost list of items, which is where
// the parser puts whatever follows a hyphen.
func attach(items, child mvnv.ListItem) mvnv.ListItem {
	n := len(items)
	if n > 0 {
		if last, ok := items[n-1].(mvnv.ListItem); ok {
			out := append(mvnv.ListItem{}, items[:n-1]...)
			return append(out, attach(last, child))
		}
	}
	return append(append(mvnv.ListItem{}, items...), child)
}

func writeItems(b *strings.Builder, items mvnv.ListItem) {
	for i, it := range items {
		if i > 0 {
			b.WriteByte('.')
		}
		switch it := it.(type) {
		case mvnv.IntItem:
			b.WriteString(strconv.Itoa(int(it)))
		case mvnv.StringItem:
			b.WriteString(strconv.Quote(string(it)))
		case mvnv.ListItem:
			b.WriteByte('[')
			writeItems(b, it)
			b.WriteByte(']')
		}
	}
}

// Sort orders versions ascending. Equal versions keep their input order.
func Sort(vs []Version) {
	slices.SortStableFunc(vs, Compare)
}

// Max returns the greatest of vs, or the zero Version if vs is empty.
func Max(vs ...Version) Version {
	if len(vs) == 0 {
		return Version{}
	}
	return slices.MaxFunc(vs, Compare)
}
