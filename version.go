package go_cipher

import (
	"strconv"
	"strings"
)

// Version is a parsed dotted version, used to gate optional behavior on
// the library or tool version a caller requires.
type Version struct {
	major, minor, micro, qualifier uint16
	version                        string
}

// ParseVersion parses a version string into Version components.
// Handles the common dotted format: "major.minor.micro[.qualifier]"
//
// Examples:
//   - "0.3.2" → Version{major: 0, minor: 3, micro: 2, qualifier: 0}
//   - "2.10.0" → Version{major: 2, minor: 10, micro: 0, qualifier: 0}
//
// Malformed version strings are handled gracefully:
//   - Invalid segments default to 0 (e.g., "0.3.garbage" → Version{0, 3, 0, 0})
//   - Missing segments default to 0 (e.g., "0.3" → Version{0, 3, 0, 0})
//   - Logs a warning for parsing failures to aid debugging
func ParseVersion(str string) Version {
	v := Version{version: str}
	segments := strings.Split(str, ".")
	parseVersionComponents(&v, segments, str)
	return v
}

// LibVersion returns the parsed version of this library.
func LibVersion() Version {
	return ParseVersion(CIPHER_LIB_VERSION)
}

// String returns the original version string.
func (v Version) String() string {
	return v.version
}

// parseVersionSegment parses a single version segment string into a uint16.
// Returns 0 and logs a warning if parsing fails.
func parseVersionSegment(segment, segmentName, fullVersion string) uint16 {
	i, err := strconv.Atoi(segment)
	if err != nil {
		Warning("Invalid %s version '%s' in version '%s', defaulting to 0", segmentName, segment, fullVersion)
		return 0
	}
	return uint16(i)
}

// parseVersionComponents parses all version segments (major, minor, micro, qualifier).
// Updates the provided Version struct in place.
func parseVersionComponents(v *Version, segments []string, fullVersion string) {
	n := len(segments)

	if n > 0 {
		v.major = parseVersionSegment(segments[0], "major", fullVersion)
	}

	if n > 1 {
		v.minor = parseVersionSegment(segments[1], "minor", fullVersion)
	}

	if n > 2 {
		v.micro = parseVersionSegment(segments[2], "micro", fullVersion)
	}

	if n > 3 {
		v.qualifier = parseVersionSegment(segments[3], "qualifier", fullVersion)
	}
}

// Compare returns 1 if v is newer than other, -1 if older, 0 if equal.
func (v Version) Compare(other Version) int {
	if v.major != other.major {
		if v.major > other.major {
			return 1
		}
		return -1
	}
	if v.minor != other.minor {
		if v.minor > other.minor {
			return 1
		}
		return -1
	}
	if v.micro != other.micro {
		if v.micro > other.micro {
			return 1
		}
		return -1
	}
	if v.qualifier != other.qualifier {
		if v.qualifier > other.qualifier {
			return 1
		}
		return -1
	}
	return 0
}

// AtLeast returns true if v is the same version as other or newer.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}
