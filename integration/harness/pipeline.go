//go:build integration

package harness

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/asyncapitools/fixer"
	"github.com/erraggy/asyncapitools/parser"
)

// ExecuteStep executes a single pipeline step and returns the result.
func ExecuteStep(t *testing.T, pc *PipelineContext, step *Step) StepResult {
	t.Helper()

	start := time.Now()
	result := StepResult{
		StepName: step.Name,
		Success:  true,
	}

	var err error
	switch step.Name {
	case "parse":
		err = executeParse(t, pc, step, &result)
	case "validate":
		err = executeValidate(t, pc, step, &result)
	case "normalize":
		err = executeNormalize(t, pc, step, &result)
	case "resolve":
		err = executeResolve(t, pc, step, &result)
	case "generate":
		err = executeGenerate(t, pc, step, &result)
	default:
		err = fmt.Errorf("unknown step type: %s", step.Name)
	}

	result.Duration = time.Since(start)

	// Handle expected errors
	if err != nil {
		if step.Expect == "error" {
			if step.ErrorContains != "" {
				if strings.Contains(err.Error(), step.ErrorContains) {
					result.Success = true
					result.Error = nil
					return result
				}
				result.Success = false
				result.Error = fmt.Errorf("expected error containing %q, got: %v", step.ErrorContains, err)
				return result
			}
			// Any error is acceptable
			result.Success = true
			result.Error = nil
			return result
		}
		result.Success = false
		result.Error = err
		return result
	}

	if step.Expect == "error" {
		result.Success = false
		result.Error = fmt.Errorf("expected error but step succeeded")
		return result
	}

	result.AssertionResults = checkAssertions(t, pc, step)
	for _, ar := range result.AssertionResults {
		if !ar.Passed {
			result.Success = false
			result.Error = fmt.Errorf("assertion failed: %s", ar.Message)
			break
		}
	}

	return result
}

// checkAssertions evaluates all assertions for a step.
func checkAssertions(t *testing.T, pc *PipelineContext, step *Step) []AssertionResult {
	t.Helper()

	results := make([]AssertionResult, 0, len(step.Assertions))
	for _, assertion := range step.Assertions {
		results = append(results, evaluateAssertion(pc, &assertion))
	}
	return results
}

// evaluateAssertion evaluates a single assertion against the pipeline state.
func evaluateAssertion(pc *PipelineContext, assertion *Assertion) AssertionResult {
	ar := AssertionResult{
		Assertion: *assertion,
		Passed:    true,
	}

	if assertion.ServerCount != nil {
		return countAssertion("server-count", *assertion.ServerCount, currentStats(pc).ServerCount)
	}
	if assertion.ChannelCount != nil {
		return countAssertion("channel-count", *assertion.ChannelCount, currentStats(pc).ChannelCount)
	}
	if assertion.OperationCount != nil {
		return countAssertion("operation-count", *assertion.OperationCount, currentStats(pc).OperationCount)
	}
	if assertion.MessageCount != nil {
		return countAssertion("message-count", *assertion.MessageCount, currentStats(pc).MessageCount)
	}
	if assertion.SchemaCount != nil {
		return countAssertion("schema-count", *assertion.SchemaCount, currentStats(pc).SchemaCount)
	}
	if assertion.ComponentCount != nil {
		return countAssertion("component-count", *assertion.ComponentCount, currentStats(pc).ComponentCount)
	}

	if len(assertion.ComponentServersExist) > 0 {
		return componentsExistAssertion(pc, "component-servers-exist", parser.CategoryServers, assertion.ComponentServersExist)
	}
	if len(assertion.ComponentMessagesExist) > 0 {
		return componentsExistAssertion(pc, "component-messages-exist", parser.CategoryMessages, assertion.ComponentMessagesExist)
	}
	if len(assertion.ComponentTagsExist) > 0 {
		return componentsExistAssertion(pc, "component-tags-exist", parser.CategoryTags, assertion.ComponentTagsExist)
	}

	if assertion.ErrorCount != nil {
		actual := 0
		if pc.ValidationResult != nil {
			actual = pc.ValidationResult.ErrorCount
		}
		return countAssertion("error-count", *assertion.ErrorCount, actual)
	}
	if assertion.WarningCount != nil {
		actual := 0
		if pc.ValidationResult != nil {
			actual = pc.ValidationResult.WarningCount
		}
		return countAssertion("warning-count", *assertion.WarningCount, actual)
	}

	if assertion.ErrorContains != "" {
		found := false
		if pc.ValidationResult != nil {
			for _, e := range pc.ValidationResult.Errors {
				if strings.Contains(e.String(), assertion.ErrorContains) {
					found = true
					break
				}
			}
		}
		ar.Expected = assertion.ErrorContains
		ar.Actual = found
		if !found {
			ar.Passed = false
			ar.Message = fmt.Sprintf("error-contains: no error containing %q found", assertion.ErrorContains)
		}
		return ar
	}

	if assertion.WarningContains != "" {
		found := false
		if pc.ValidationResult != nil {
			for _, w := range pc.ValidationResult.Warnings {
				if strings.Contains(w.String(), assertion.WarningContains) {
					found = true
					break
				}
			}
		}
		ar.Expected = assertion.WarningContains
		ar.Actual = found
		if !found {
			ar.Passed = false
			ar.Message = fmt.Sprintf("warning-contains: no warning containing %q found", assertion.WarningContains)
		}
		return ar
	}

	if len(assertion.FixesApplied) > 0 {
		return evaluateFixesApplied(pc, assertion.FixesApplied)
	}
	if len(assertion.NoFixesApplied) > 0 {
		return evaluateNoFixesApplied(pc, assertion.NoFixesApplied)
	}

	if assertion.FixWarningContains != "" {
		found := false
		if pc.FixResult != nil {
			for _, w := range pc.FixResult.Warnings {
				if strings.Contains(w, assertion.FixWarningContains) {
					found = true
					break
				}
			}
		}
		ar.Expected = assertion.FixWarningContains
		ar.Actual = found
		if !found {
			ar.Passed = false
			ar.Message = fmt.Sprintf("fix-warning-contains: no fix warning containing %q found", assertion.FixWarningContains)
		}
		return ar
	}

	if assertion.ResolvedPath != "" {
		var actual string
		if pc.Resolution != nil {
			actual = pc.Resolution.Path
		}
		ar.Expected = assertion.ResolvedPath
		ar.Actual = actual
		if actual != assertion.ResolvedPath {
			ar.Passed = false
			ar.Message = fmt.Sprintf("resolved-path: expected %q, got %q", assertion.ResolvedPath, actual)
		}
		return ar
	}
	if assertion.ResolvedDepth != nil {
		actual := 0
		if pc.Resolution != nil {
			actual = pc.Resolution.Depth
		}
		return countAssertion("resolved-depth", *assertion.ResolvedDepth, actual)
	}

	if assertion.GeneratedTypes != nil {
		actual := 0
		if pc.GenerateResult != nil {
			actual = pc.GenerateResult.GeneratedTypes
		}
		return countAssertion("generated-types", *assertion.GeneratedTypes, actual)
	}

	if len(assertion.FilesGenerated) > 0 {
		var missing []string
		for _, name := range assertion.FilesGenerated {
			if pc.GenerateResult == nil || pc.GenerateResult.GetFile(name) == nil {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			ar.Passed = false
			ar.Expected = assertion.FilesGenerated
			ar.Actual = missing
			ar.Message = fmt.Sprintf("files-generated: missing files: %v", missing)
		}
		return ar
	}

	return ar
}

// countAssertion builds an AssertionResult for an integer comparison.
func countAssertion(name string, expected, actual int) AssertionResult {
	ar := AssertionResult{
		Passed:   true,
		Expected: expected,
		Actual:   actual,
	}
	if actual != expected {
		ar.Passed = false
		ar.Message = fmt.Sprintf("%s: expected %d, got %d", name, expected, actual)
	}
	return ar
}

// componentsExistAssertion checks that each key exists in the named
// component category of the current document.
func componentsExistAssertion(pc *PipelineContext, name, category string, keys []string) AssertionResult {
	ar := AssertionResult{
		Passed:   true,
		Expected: keys,
	}

	var doc *parser.AsyncAPIDocument
	if pc.ParseResult != nil {
		doc = pc.ParseResult.Document
	}

	var missing []string
	for _, key := range keys {
		if doc == nil || doc.Components == nil || !doc.Components.HasKey(category, key) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		ar.Passed = false
		ar.Actual = missing
		ar.Message = fmt.Sprintf("%s: missing %s: %v", name, category, missing)
	}
	return ar
}

// currentStats returns the stats of the current parse result.
func currentStats(pc *PipelineContext) parser.DocumentStats {
	if pc.ParseResult == nil {
		return parser.DocumentStats{}
	}
	return pc.ParseResult.Stats
}

// evaluateFixesApplied checks that the expected number of each fix type was applied.
func evaluateFixesApplied(pc *PipelineContext, expected map[string]int) AssertionResult {
	ar := AssertionResult{
		Assertion: Assertion{FixesApplied: expected},
		Passed:    true,
	}

	if pc.FixResult == nil {
		ar.Passed = false
		ar.Message = "fixes-applied: no normalize result available"
		return ar
	}

	actual := countFixesByType(pc.FixResult)

	for fixType, expectedCount := range expected {
		mappedType := mapFixTypeName(fixType)
		actualCount := actual[string(mappedType)]
		if actualCount != expectedCount {
			ar.Passed = false
			ar.Expected = expected
			ar.Actual = actual
			ar.Message = fmt.Sprintf("fixes-applied: expected %d %s fixes, got %d", expectedCount, fixType, actualCount)
			return ar
		}
	}

	ar.Expected = expected
	ar.Actual = actual
	return ar
}

// evaluateNoFixesApplied checks that none of the specified fix types were applied.
func evaluateNoFixesApplied(pc *PipelineContext, fixTypes []string) AssertionResult {
	ar := AssertionResult{
		Assertion: Assertion{NoFixesApplied: fixTypes},
		Passed:    true,
	}

	if pc.FixResult == nil {
		// No fixes applied means the assertion passes
		return ar
	}

	actual := countFixesByType(pc.FixResult)

	var found []string
	for _, fixType := range fixTypes {
		mappedType := mapFixTypeName(fixType)
		if actual[string(mappedType)] > 0 {
			found = append(found, fixType)
		}
	}

	if len(found) > 0 {
		ar.Passed = false
		ar.Expected = "none of " + fmt.Sprint(fixTypes)
		ar.Actual = found
		ar.Message = fmt.Sprintf("no-fixes-applied: unexpected fixes found: %v", found)
	}

	return ar
}

// countFixesByType counts the number of fixes applied by type.
func countFixesByType(fr *fixer.FixResult) map[string]int {
	counts := make(map[string]int)
	for _, fix := range fr.Fixes {
		counts[string(fix.Type)]++
	}
	return counts
}

// mapFixTypeName maps scenario fix type names to fixer.FixType constants.
func mapFixTypeName(name string) fixer.FixType {
	switch strings.ToLower(name) {
	case "servers", "componentize-servers":
		return fixer.FixTypeComponentizeServers
	case "messages", "componentize-messages":
		return fixer.FixTypeComponentizeMessages
	case "tags", "componentize-tags":
		return fixer.FixTypeComponentizeTags
	default:
		return fixer.FixType(name)
	}
}
