package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// legacyVersion is assumed for documents that carry no version at all.
var legacyVersion = Version{1, 0, 0}

// ParseVersion reads a dotted triple. Missing components are zero and any
// component that is not a non-negative integer counts as zero, so
// ParseVersion never fails: "1.1" is 1.1.0 and "garbage" is 0.0.0.
// Components past the third are ignored.
func ParseVersion(s string) Version {
	var parts [3]int
	for i, field := range strings.Split(strings.TrimSpace(s), ".") {
		if i == len(parts) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 {
			n = 0
		}
		parts[i] = n
	}
	return Version{parts[0], parts[1], parts[2]}
}

// String returns the version as a string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	default:
		return cmpInt(v.Patch, other.Patch)
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// declaredVersion reads the "version" field of a document. A document
// without one predates versioning and is treated as legacyVersion.
func declaredVersion(doc Document) Version {
	raw, ok := doc[VersionKey]
	if !ok || raw == nil {
		return legacyVersion
	}
	if s, ok := raw.(string); ok {
		return ParseVersion(s)
	}
	return ParseVersion(fmt.Sprint(raw))
}
