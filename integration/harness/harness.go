//go:build integration

// Package harness provides the integration test framework for asyncapitools.
// It enables declarative scenario-driven testing via YAML files.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/erraggy/asyncapitools/fixer"
	"github.com/erraggy/asyncapitools/generator"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/validator"
)

// Scenario represents a complete integration test scenario.
type Scenario struct {
	// Name is a short, descriptive name for the scenario
	Name string `yaml:"name"`
	// Description provides additional context about what the scenario tests
	Description string `yaml:"description,omitempty"`
	// Base is the name of the base document from bases/ directory (without path)
	Base string `yaml:"base,omitempty"`
	// Problems defines issues to inject into the base document after parsing
	Problems Problems `yaml:"problems,omitempty"`
	// Pipeline is the sequence of steps to execute
	Pipeline []Step `yaml:"pipeline"`
	// Debug contains optional debug settings
	Debug DebugConfig `yaml:"debug,omitempty"`
	// Skip provides a reason to skip this scenario (if set, scenario is skipped)
	Skip string `yaml:"skip,omitempty"`
	// ExpectedFailure marks this scenario as a known failing case
	ExpectedFailure string `yaml:"expected-failure,omitempty"`

	// filePath is the path to the scenario file (set by loader)
	filePath string
}

// Problems defines the issues to inject into a parsed document.
type Problems struct {
	// Normalizer problems

	// InlineServers adds inline server definitions at the document root
	InlineServers []InlineServer `yaml:"inline-servers,omitempty"`
	// InlineMessages adds inline message definitions to channels
	InlineMessages []InlineMessage `yaml:"inline-messages,omitempty"`
	// InfoTags adds inline tags to the info object
	InfoTags []string `yaml:"info-tags,omitempty"`
	// ConflictingTags adds a same-name tag with differing content to an operation
	ConflictingTags []ConflictingTag `yaml:"conflicting-tags,omitempty"`

	// Validator problems

	// DropInfoTitle clears the required info.title field
	DropInfoTitle bool `yaml:"drop-info-title,omitempty"`
	// InvalidActions overwrites operation actions with invalid verbs
	InvalidActions []InvalidAction `yaml:"invalid-actions,omitempty"`
	// BrokenChannelRefs points operation channel references at missing targets
	BrokenChannelRefs []BrokenChannelRef `yaml:"broken-channel-refs,omitempty"`
}

// InlineServer defines an inline server to add at the document root.
type InlineServer struct {
	// Name is the server map key
	Name string `yaml:"name"`
	// Host is the server host, may include a port
	Host string `yaml:"host"`
	// Protocol is the transport protocol (kafka, mqtt, amqp, ws, ...)
	Protocol string `yaml:"protocol"`
}

// InlineMessage defines an inline message to add to a channel.
type InlineMessage struct {
	// Channel is the root channel key to modify
	Channel string `yaml:"channel"`
	// Name is the message map key
	Name string `yaml:"name"`
}

// ConflictingTag defines a tag that collides with an already-hoisted tag.
type ConflictingTag struct {
	// Name is the tag name; a tag with this name and different content
	// must already exist earlier in hoisting order (e.g. via info-tags)
	Name string `yaml:"name"`
	// Operation is the root operation key to attach the conflicting copy to
	Operation string `yaml:"operation"`
}

// InvalidAction defines an operation action to corrupt.
type InvalidAction struct {
	// Operation is the root operation key to modify
	Operation string `yaml:"operation"`
	// Action is the invalid verb to set (e.g. "publish")
	Action string `yaml:"action"`
}

// BrokenChannelRef points an operation's channel reference at a missing target.
type BrokenChannelRef struct {
	// Operation is the root operation key to modify
	Operation string `yaml:"operation"`
	// Target is the dangling reference to set; defaults to "#/channels/missing"
	Target string `yaml:"target,omitempty"`
}

// Step represents a single step in the test pipeline.
type Step struct {
	// Name is the step type (parse, validate, normalize, resolve, generate)
	Name string `yaml:"step"`
	// Config contains step-specific configuration
	Config map[string]any `yaml:"config,omitempty"`
	// Expect defines the expected outcome (valid, invalid, error, success)
	Expect string `yaml:"expect,omitempty"`
	// Assertions are detailed checks to perform after the step
	Assertions []Assertion `yaml:"assertions,omitempty"`
	// ErrorContains checks that an error message contains this substring
	ErrorContains string `yaml:"error-contains,omitempty"`
}

// Assertion represents a validation check on a step result.
// Only one assertion field should be set per entry.
type Assertion struct {
	// Document shape assertions, evaluated against the current parse result

	ServerCount    *int `yaml:"server-count,omitempty"`
	ChannelCount   *int `yaml:"channel-count,omitempty"`
	OperationCount *int `yaml:"operation-count,omitempty"`
	MessageCount   *int `yaml:"message-count,omitempty"`
	SchemaCount    *int `yaml:"schema-count,omitempty"`
	ComponentCount *int `yaml:"component-count,omitempty"`

	// Component existence assertions, evaluated against the current document

	ComponentServersExist  []string `yaml:"component-servers-exist,omitempty"`
	ComponentMessagesExist []string `yaml:"component-messages-exist,omitempty"`
	ComponentTagsExist     []string `yaml:"component-tags-exist,omitempty"`

	// Validation assertions

	ErrorCount      *int   `yaml:"error-count,omitempty"`
	WarningCount    *int   `yaml:"warning-count,omitempty"`
	ErrorContains   string `yaml:"error-contains,omitempty"`
	WarningContains string `yaml:"warning-contains,omitempty"`

	// Normalize assertions

	FixesApplied       map[string]int `yaml:"fixes-applied,omitempty"`
	NoFixesApplied     []string       `yaml:"no-fixes-applied,omitempty"`
	FixWarningContains string         `yaml:"fix-warning-contains,omitempty"`

	// Resolve assertions

	ResolvedPath  string `yaml:"resolved-path,omitempty"`
	ResolvedDepth *int   `yaml:"resolved-depth,omitempty"`

	// Generate assertions

	GeneratedTypes *int     `yaml:"generated-types,omitempty"`
	FilesGenerated []string `yaml:"files-generated,omitempty"`
}

// DebugConfig contains debug settings for a scenario.
type DebugConfig struct {
	// Verbose enables verbose logging
	Verbose bool `yaml:"verbose,omitempty"`
}

// StepResult contains the result of executing a single step.
type StepResult struct {
	// StepName is the name of the step that was executed
	StepName string
	// Success indicates whether the step completed without error
	Success bool
	// Error contains any error that occurred
	Error error
	// Duration is how long the step took to execute
	Duration time.Duration
	// Output contains step-specific output data
	Output StepOutput
	// AssertionResults contains results of any assertions
	AssertionResults []AssertionResult
}

// StepOutput contains the output data from a step.
type StepOutput struct {
	// ParseResult is set after a parse step
	ParseResult *parser.ParseResult
	// ValidationResult is set after a validate step
	ValidationResult *validator.ValidationResult
	// FixResult is set after a normalize step
	FixResult *fixer.FixResult
	// Resolution is set after a resolve step
	Resolution *parser.Resolution
	// GenerateResult is set after a generate step
	GenerateResult *generator.GenerateResult
}

// AssertionResult contains the result of a single assertion.
type AssertionResult struct {
	// Assertion is the original assertion
	Assertion Assertion
	// Passed indicates whether the assertion passed
	Passed bool
	// Message provides details on failure
	Message string
	// Expected is the expected value
	Expected any
	// Actual is the actual value
	Actual any
}

// PipelineResult contains the result of running a complete pipeline.
type PipelineResult struct {
	// Scenario is the scenario that was executed
	Scenario *Scenario
	// StepResults contains results for each step
	StepResults []StepResult
	// Success indicates whether the entire pipeline passed
	Success bool
	// Duration is the total pipeline execution time
	Duration time.Duration
	// FailedStep is the name of the first step that failed (if any)
	FailedStep string
	// Error is the first error encountered
	Error error
}

// RunScenario executes a complete scenario and returns the result.
func RunScenario(t *testing.T, scenario *Scenario, basesDir string) *PipelineResult {
	t.Helper()

	start := time.Now()
	result := &PipelineResult{
		Scenario:    scenario,
		StepResults: make([]StepResult, 0, len(scenario.Pipeline)),
		Success:     true,
	}

	if scenario.Skip != "" {
		t.Skipf("Skipping: %s", scenario.Skip)
		return result
	}

	// Resolve base document path
	var basePath string
	if scenario.Base != "" {
		basePath = filepath.Join(basesDir, scenario.Base+".yaml")
		if _, err := os.Stat(basePath); os.IsNotExist(err) {
			// Try without appending an extension (in case it was specified)
			basePath = filepath.Join(basesDir, scenario.Base)
			if _, err := os.Stat(basePath); os.IsNotExist(err) {
				result.Success = false
				result.Error = fmt.Errorf("base document not found: %s", scenario.Base)
				return result
			}
		}
	}

	pc := &PipelineContext{
		BasePath: basePath,
		BasesDir: basesDir,
		Scenario: scenario,
		Debug:    scenario.Debug.Verbose || os.Getenv("INTEGRATION_DEBUG") == "1",
	}

	defer func() {
		for _, dir := range pc.TempDirs {
			if err := os.RemoveAll(dir); err != nil {
				t.Logf("warning: failed to clean up temp directory %s: %v", dir, err)
			}
		}
	}()

	for i, step := range scenario.Pipeline {
		stepResult := ExecuteStep(t, pc, &step)
		result.StepResults = append(result.StepResults, stepResult)

		PrintStepResult(t, &step, &stepResult, i+1, len(scenario.Pipeline))

		if !stepResult.Success {
			result.Success = false
			result.FailedStep = step.Name
			result.Error = stepResult.Error
			break // Fail-fast
		}
	}

	result.Duration = time.Since(start)
	return result
}

// PipelineContext holds state during pipeline execution.
type PipelineContext struct {
	// BasePath is the path to the base document
	BasePath string
	// BasesDir is the directory containing base documents
	BasesDir string
	// Scenario is the scenario being executed
	Scenario *Scenario
	// Debug enables debug output
	Debug bool
	// ParseResult is the most recent parse result; normalize steps replace
	// it so subsequent steps see the normalized document
	ParseResult *parser.ParseResult
	// ValidationResult is the most recent validation result
	ValidationResult *validator.ValidationResult
	// FixResult is the most recent normalize result
	FixResult *fixer.FixResult
	// Resolution is the most recent resolve result
	Resolution *parser.Resolution
	// GenerateResult is the most recent generate result
	GenerateResult *generator.GenerateResult
	// TempDirs tracks temporary directories created during the test for cleanup
	TempDirs []string
}
