//go:build integration

// Package integration provides integration tests for asyncapitools.
// These tests exercise the full pipeline from parsing through generation
// using declarative YAML scenarios.
//
// Run with: go test -tags=integration ./integration/... -v
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/integration/harness"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/validator"
)

// getIntegrationDir returns the absolute path to the integration directory.
func getIntegrationDir(t *testing.T) string {
	t.Helper()

	// Works whether running from the repo root or the integration directory
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	if filepath.Base(wd) == "integration" {
		return wd
	}

	integrationDir := filepath.Join(wd, "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	integrationDir = filepath.Join(filepath.Dir(wd), "integration")
	if _, err := os.Stat(integrationDir); err == nil {
		return integrationDir
	}

	require.Failf(t, "could not find integration directory", "from %s", wd)
	return ""
}

// TestBasesAreValid verifies that all base fixtures are valid AsyncAPI documents.
func TestBasesAreValid(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	basesDir := filepath.Join(integrationDir, "bases")

	bases := []struct {
		name       string
		channels   int
		operations int
		messages   int
	}{
		{"inventory-service.yaml", 2, 2, 2},
		{"chat-service.yaml", 2, 2, 3},
	}

	for _, base := range bases {
		t.Run(base.name, func(t *testing.T) {
			basePath := filepath.Join(basesDir, base.name)

			parseResult, err := parser.ParseWithOptions(
				parser.WithFilePath(basePath),
			)
			require.NoError(t, err, "failed to parse %s", base.name)

			harness.AssertNoParseErrors(t, parseResult)
			harness.AssertAsyncAPIVersion(t, parseResult, parser.AsyncAPIVersion300)
			harness.AssertDocumentStats(t, parseResult, base.channels, base.operations, base.messages)

			validationResult, err := validator.ValidateWithOptions(
				validator.WithParsed(*parseResult),
			)
			require.NoError(t, err, "failed to validate %s", base.name)

			assert.True(t, validationResult.Valid, "base fixture %s is not valid: %v", base.name, validationResult.Errors)
			assert.Zero(t, validationResult.WarningCount, "base fixture %s has warnings: %v", base.name, validationResult.Warnings)

			t.Logf("  Version: %s", parseResult.Version)
			t.Logf("  Channels: %d", parseResult.Stats.ChannelCount)
			t.Logf("  Operations: %d", parseResult.Stats.OperationCount)
			t.Logf("  Messages: %d", parseResult.Stats.MessageCount)
		})
	}
}

// TestScenarios runs all scenarios from the scenarios directory.
func TestScenarios(t *testing.T) {
	integrationDir := getIntegrationDir(t)
	scenariosDir := filepath.Join(integrationDir, "scenarios")
	basesDir := filepath.Join(integrationDir, "bases")

	scenarios, err := harness.LoadAllScenarios(scenariosDir)
	require.NoError(t, err, "failed to load scenarios")

	if len(scenarios) == 0 {
		t.Skip("no scenarios found")
	}

	t.Logf("Found %d scenarios", len(scenarios))

	var results []*harness.PipelineResult
	start := time.Now()

	for _, scenario := range scenarios {
		testName := harness.ScenarioTestName(scenario, scenariosDir)
		t.Run(testName, func(t *testing.T) {
			harness.PrintScenarioHeader(t, scenario)
			result := harness.RunScenario(t, scenario, basesDir)
			results = append(results, result)
			harness.PrintPipelineResult(t, result)

			if scenario.ExpectedFailure == "" {
				assert.True(t, result.Success, "scenario failed: %v", result.Error)
			}
		})
	}

	harness.PrintSummary(t, results, time.Since(start))
}
