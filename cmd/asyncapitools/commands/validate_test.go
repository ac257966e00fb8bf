package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		assert.False(t, flags.NoWarnings, "expected NoWarnings to be false by default")
		assert.False(t, flags.FailFast, "expected FailFast to be false by default")
		assert.False(t, flags.Quiet, "expected Quiet to be false by default")
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.NoColor, "expected NoColor to be false by default")
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--no-warnings", "--fail-fast", "-q", "--format", "json", "--no-color", "test.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.True(t, flags.NoWarnings, "expected NoWarnings to be true")
		assert.True(t, flags.FailFast, "expected FailFast to be true")
		assert.True(t, flags.Quiet, "expected Quiet to be true")
		assert.Equal(t, "json", flags.Format)
		assert.True(t, flags.NoColor, "expected NoColor to be true")
		assert.Equal(t, "test.yaml", fs.Arg(0))
	})
}

func TestHandleValidate_NoArgs(t *testing.T) {
	err := HandleValidate([]string{})
	assert.Error(t, err)
}

func TestHandleValidate_Help(t *testing.T) {
	err := HandleValidate([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleValidate_InvalidFormat(t *testing.T) {
	err := HandleValidate([]string{"--format", "invalid", "test.yaml"})
	assert.Error(t, err)
}

func TestHandleValidate_FileNotFound(t *testing.T) {
	err := HandleValidate([]string{"does-not-exist.yaml"})
	assert.Error(t, err)
}

func TestHandleValidate_ValidDocument(t *testing.T) {
	// A valid document returns nil and does not exit.
	err := HandleValidate([]string{"-q", "../../../testdata/order-service.yaml"})
	assert.NoError(t, err)
}

func TestHandleValidate_ValidDocumentJSON(t *testing.T) {
	err := HandleValidate([]string{"--format", "json", "../../../testdata/order-service.yaml"})
	assert.NoError(t, err)
}

func TestToFindings(t *testing.T) {
	findings := toFindings(nil)
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}
