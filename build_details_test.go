package asyncapitools

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() returns the version variable.
// In normal builds, this is set via ldflags by GoReleaser.
// In development, it defaults to "dev".
func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result, "Version() should not return empty string")

	// Should be either "dev" (development) or a semantic version (e.g., "v1.2.3")
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

// TestCommit verifies that Commit() returns the commit variable.
func TestCommit(t *testing.T) {
	result := Commit()

	assert.NotEmpty(t, result, "Commit() should not return empty string")

	if result != "unknown" {
		// Git short hash is typically 7+ hex characters
		assert.GreaterOrEqual(t, len(result), 7,
			"Commit() should be at least 7 characters for a git hash, got: %s", result)
		for _, ch := range result {
			assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f'),
				"Commit() should contain only hex characters, got: %s", result)
		}
	}
}

// TestBuildTime verifies that BuildTime() returns the buildTime variable.
func TestBuildTime(t *testing.T) {
	result := BuildTime()

	assert.NotEmpty(t, result, "BuildTime() should not return empty string")

	if result != "unknown" {
		// RFC3339 timestamps contain 'T' separator and include timezone
		assert.Contains(t, result, "T",
			"BuildTime() should be RFC3339 format containing 'T', got: %s", result)
	}
}

// TestGoVersion verifies that GoVersion() returns the runtime Go version.
func TestGoVersion(t *testing.T) {
	result := GoVersion()

	assert.NotEmpty(t, result, "GoVersion() should not return empty string")
	assert.Equal(t, runtime.Version(), result,
		"GoVersion() should match runtime.Version()")
	assert.True(t, strings.HasPrefix(result, "go"),
		"GoVersion() should start with 'go', got: %s", result)
}

// TestUserAgent verifies that UserAgent() returns a properly formatted User-Agent string.
func TestUserAgent(t *testing.T) {
	result := UserAgent()

	assert.NotEmpty(t, result, "UserAgent() should not return empty string")
	assert.True(t, strings.HasPrefix(result, "asyncapitools/"),
		"UserAgent() should start with 'asyncapitools/', got: %s", result)

	version := Version()
	expected := "asyncapitools/" + version
	assert.Equal(t, expected, result,
		"UserAgent() should be 'asyncapitools/%s', got: %s", version, result)
}

// TestUserAgentFormat verifies that the UserAgent string is safe for HTTP headers.
func TestUserAgentFormat(t *testing.T) {
	userAgent := UserAgent()

	assert.NotContains(t, userAgent, " ", "UserAgent() should not contain spaces")
	assert.NotContains(t, userAgent, "\t", "UserAgent() should not contain tabs")
	assert.NotContains(t, userAgent, "\n", "UserAgent() should not contain newlines")
	assert.NotContains(t, userAgent, "\r", "UserAgent() should not contain carriage returns")
}

// TestBuildInfo verifies that BuildInfo() returns a formatted string with all build metadata.
func TestBuildInfo(t *testing.T) {
	result := BuildInfo()

	assert.NotEmpty(t, result, "BuildInfo() should not return empty string")

	assert.Contains(t, result, "Version:", "BuildInfo() should contain 'Version:'")
	assert.Contains(t, result, "Commit:", "BuildInfo() should contain 'Commit:'")
	assert.Contains(t, result, "Build Time:", "BuildInfo() should contain 'Build Time:'")
	assert.Contains(t, result, "Go Version:", "BuildInfo() should contain 'Go Version:'")

	assert.Contains(t, result, Version(), "BuildInfo() should contain Version()")
	assert.Contains(t, result, Commit(), "BuildInfo() should contain Commit()")
	assert.Contains(t, result, GoVersion(), "BuildInfo() should contain GoVersion()")
}
