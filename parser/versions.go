package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AsyncAPIVersion represents each canonical version of the AsyncAPI Specification
// that may be found at: https://github.com/asyncapi/spec/releases
type AsyncAPIVersion int

const (
	// Unknown represents an unknown or invalid AsyncAPI version
	Unknown AsyncAPIVersion = iota
	// AsyncAPIVersion200 AsyncAPI Specification Version 2.0.0
	AsyncAPIVersion200
	// AsyncAPIVersion210 AsyncAPI Specification Version 2.1.0
	AsyncAPIVersion210
	// AsyncAPIVersion220 AsyncAPI Specification Version 2.2.0
	AsyncAPIVersion220
	// AsyncAPIVersion230 AsyncAPI Specification Version 2.3.0
	AsyncAPIVersion230
	// AsyncAPIVersion240 AsyncAPI Specification Version 2.4.0
	AsyncAPIVersion240
	// AsyncAPIVersion250 AsyncAPI Specification Version 2.5.0
	AsyncAPIVersion250
	// AsyncAPIVersion260 AsyncAPI Specification Version 2.6.0
	AsyncAPIVersion260
	// AsyncAPIVersion300 AsyncAPI Specification Version 3.0.0
	AsyncAPIVersion300
)

// seriesInfo pre-computed info for a major.minor version series
type seriesInfo struct {
	// patches maps patch version -> AsyncAPIVersion for this series
	// e.g., for 3.0.x series: {0: AsyncAPIVersion300}
	patches map[int]AsyncAPIVersion
	// maxPatch is the highest known patch version in this series
	maxPatch int
}

var (
	versionToString = map[AsyncAPIVersion]string{
		AsyncAPIVersion200: "2.0.0",
		AsyncAPIVersion210: "2.1.0",
		AsyncAPIVersion220: "2.2.0",
		AsyncAPIVersion230: "2.3.0",
		AsyncAPIVersion240: "2.4.0",
		AsyncAPIVersion250: "2.5.0",
		AsyncAPIVersion260: "2.6.0",
		AsyncAPIVersion300: "3.0.0",
	}

	stringToVersion = func() map[string]AsyncAPIVersion {
		m := make(map[string]AsyncAPIVersion, len(versionToString))
		for k, v := range versionToString {
			m[v] = k
		}
		return m
	}()

	// versionSeriesLookup maps "major.minor" -> seriesInfo for O(1) future version lookups
	// e.g., "2.6" -> {patches: {0: AsyncAPIVersion260}, maxPatch: 0}
	versionSeriesLookup = func() map[string]seriesInfo {
		m := make(map[string]seriesInfo)
		for aaVer, verStr := range versionToString {
			v, err := parseSemver(verStr)
			if err != nil {
				continue
			}

			key := seriesKey(v.major, v.minor)
			info, exists := m[key]
			if !exists {
				info = seriesInfo{patches: make(map[int]AsyncAPIVersion), maxPatch: -1}
			}
			info.patches[v.patch] = aaVer
			if v.patch > info.maxPatch {
				info.maxPatch = v.patch
			}
			m[key] = info
		}
		return m
	}()
)

// seriesKey returns a string key for major.minor lookup (e.g., "2.6", "3.0")
func seriesKey(major, minor int) string {
	// Pre-allocate for common case of single-digit numbers
	buf := make([]byte, 0, 5)
	if major >= 10 {
		buf = append(buf, byte('0'+major/10))
	}
	buf = append(buf, byte('0'+major%10))
	buf = append(buf, '.')
	if minor >= 10 {
		buf = append(buf, byte('0'+minor/10))
	}
	buf = append(buf, byte('0'+minor%10))
	return string(buf)
}

func (v AsyncAPIVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a known AsyncAPI version
func (v AsyncAPIVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// IsSupported returns true if the document model in this package can decode
// documents of this version. Only the 3.0.x series is supported; 2.x versions
// are recognized so that callers can report them precisely, but their document
// shape is structurally different and is not modeled here.
func (v AsyncAPIVersion) IsSupported() bool {
	return v == AsyncAPIVersion300
}

// Series returns the "major.minor" series for this version (e.g., "3.0"),
// or "unknown" for an invalid version.
func (v AsyncAPIVersion) Series() string {
	s, ok := versionToString[v]
	if !ok {
		return "unknown"
	}
	sv, err := parseSemver(s)
	if err != nil {
		return "unknown"
	}
	return seriesKey(sv.major, sv.minor)
}

// ParseVersion will attempt to parse the string s into an AsyncAPIVersion, and returns false if not valid.
// This function supports:
// 1. Exact version matches (e.g., "2.6.0", "3.0.0")
// 2. Future patch versions in known major.minor series (e.g., "3.0.1" maps to "3.0.0")
// 3. Pre-release versions (e.g., "3.0.0-rc1") map to closest match without exceeding base version
//
// For example:
// - "3.0.1" (not yet released) maps to AsyncAPIVersion300 (3.0.0) - latest in 3.0.x series
// - "3.0.0-rc2" maps to AsyncAPIVersion300 (3.0.0) - the base version
// - "2.6.3" maps to AsyncAPIVersion260 (2.6.0) - latest in 2.6.x series
func ParseVersion(s string) (AsyncAPIVersion, bool) {
	// First try exact match (handles all known versions)
	if v, ok := stringToVersion[s]; ok {
		return v, true
	}

	// Try to parse as semver and map to a known major.minor series
	ver, err := parseSemver(s)
	if err != nil {
		return Unknown, false
	}

	return findClosestVersion(ver.major, ver.minor, ver.patch)
}

// findClosestVersion finds the closest known version that doesn't exceed major.minor.patch
// Uses pre-computed versionSeriesLookup for O(1) lookups
func findClosestVersion(major, minor, patch int) (AsyncAPIVersion, bool) {
	key := seriesKey(major, minor)
	info, exists := versionSeriesLookup[key]
	if !exists {
		return Unknown, false
	}

	// If exact patch exists, return it
	if v, ok := info.patches[patch]; ok {
		return v, true
	}

	// If requested patch exceeds our max, return the max
	if patch > info.maxPatch {
		return info.patches[info.maxPatch], true
	}

	// Find the highest patch version that doesn't exceed the target
	for p := patch; p >= 0; p-- {
		if v, ok := info.patches[p]; ok {
			return v, true
		}
	}

	return Unknown, false
}

// semver is a parsed semantic version with an optional pre-release suffix.
type semver struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseSemver parses a semantic version string.
// Supports "major.minor" and "major.minor.patch" with an optional "-prerelease" suffix.
// Examples: "3.0", "3.0.0", "3.0.0-rc2"
func parseSemver(s string) (*semver, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 || major > math.MaxInt32 {
		return nil, fmt.Errorf("invalid major version: %q", parts[0])
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 || minor > math.MaxInt32 {
		return nil, fmt.Errorf("invalid minor version: %q", parts[1])
	}

	patch := 0
	if len(parts) == 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil || patch < 0 || patch > math.MaxInt32 {
			return nil, fmt.Errorf("invalid patch version: %q", parts[2])
		}
	}

	return &semver{
		major:      major,
		minor:      minor,
		patch:      patch,
		prerelease: prerelease,
	}, nil
}
