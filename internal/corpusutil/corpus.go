package corpusutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// SpecInfo contains metadata about a corpus specification.
type SpecInfo struct {
	Name          string // Human-readable name (e.g., "StreetlightsKafka")
	Filename      string // Local filename in testdata/corpus/
	URL           string // Remote source URL
	Format        string // "json" or "yaml"
	ExpectedValid bool   // Whether validation is expected to pass
	SizeBytes     int64  // Approximate file size in bytes
}

// GetLocalPath returns the absolute path to the cached spec file.
func (s SpecInfo) GetLocalPath() string {
	return filepath.Join(CorpusDir(), s.Filename)
}

// IsAvailable checks if the spec is cached locally.
func (s SpecInfo) IsAvailable() bool {
	_, err := os.Stat(s.GetLocalPath())
	return err == nil
}

// Corpus defines the public AsyncAPI 3.0 example documents used for
// integration testing. All of them come from the specification
// repository's examples directory and are ordered by size.
var Corpus = []SpecInfo{
	{
		Name:          "Simple",
		Filename:      "simple-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/simple-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: true,
		SizeBytes:     2_000,
	},
	{
		Name:          "CorrelationID",
		Filename:      "correlation-id-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/correlation-id-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: true,
		SizeBytes:     5_000,
	},
	{
		Name:          "StreetlightsKafka",
		Filename:      "streetlights-kafka-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/streetlights-kafka-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: true,
		SizeBytes:     7_000,
	},
	{
		Name:          "StreetlightsMQTT",
		Filename:      "streetlights-mqtt-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/streetlights-mqtt-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: true,
		SizeBytes:     10_000,
	},
	{
		// Uses Avro schemaFormat payloads, which validation flags
		Name:          "AdeoKafkaRequestReply",
		Filename:      "adeo-kafka-request-reply-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/adeo-kafka-request-reply-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: false,
		SizeBytes:     15_000,
	},
	{
		Name:          "WebsocketGemini",
		Filename:      "websocket-gemini-asyncapi.yml",
		URL:           "https://raw.githubusercontent.com/asyncapi/spec/master/examples/websocket-gemini-asyncapi.yml",
		Format:        "yaml",
		ExpectedValid: false,
		SizeBytes:     20_000,
	},
}

// CorpusDir returns the absolute path to the corpus directory.
func CorpusDir() string {
	// Derive the project root from this source file's location
	_, thisFile, _, ok := runtime.Caller(0)
	if ok {
		projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
		return filepath.Join(projectRoot, "testdata", "corpus")
	}
	// Fallback to relative path
	return filepath.Join("testdata", "corpus")
}

// GetSpecs returns all corpus specs.
func GetSpecs() []SpecInfo {
	result := make([]SpecInfo, len(Corpus))
	copy(result, Corpus)
	return result
}

// GetValidSpecs returns only specs expected to pass validation.
func GetValidSpecs() []SpecInfo {
	result := make([]SpecInfo, 0)
	for _, spec := range Corpus {
		if spec.ExpectedValid {
			result = append(result, spec)
		}
	}
	return result
}

// GetByName returns a spec by name, or nil if not found.
func GetByName(name string) *SpecInfo {
	for i := range Corpus {
		if Corpus[i].Name == name {
			return &Corpus[i]
		}
	}
	return nil
}

// SkipIfNotCached skips the test if the corpus file is not available locally.
func SkipIfNotCached(t testing.TB, spec SpecInfo) {
	t.Helper()
	if !spec.IsAvailable() {
		t.Skipf("Corpus file %s not cached locally; run 'make corpus-download' to fetch", spec.Filename)
	}
}

// SkipIfEnvSet skips the test if the specified environment variable is set to "1".
func SkipIfEnvSet(t testing.TB, envVar string) {
	t.Helper()
	if os.Getenv(envVar) == "1" {
		t.Skipf("Skipping test due to %s=1", envVar)
	}
}
