package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupResolveFlags(t *testing.T) {
	fs, flags := SetupResolveFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.Quiet, "expected Quiet to be false by default")
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "yaml", "-q", "test.yaml", "#/components/schemas/order"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "yaml", flags.Format)
		assert.True(t, flags.Quiet, "expected Quiet to be true")
		assert.Equal(t, "test.yaml", fs.Arg(0))
		assert.Equal(t, "#/components/schemas/order", fs.Arg(1))
	})
}

func TestHandleResolve_NoArgs(t *testing.T) {
	assert.Error(t, HandleResolve([]string{}))
	assert.Error(t, HandleResolve([]string{"test.yaml"}))
}

func TestHandleResolve_Help(t *testing.T) {
	err := HandleResolve([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleResolve_FileNotFound(t *testing.T) {
	err := HandleResolve([]string{"does-not-exist.yaml", "#/components/schemas/order"})
	assert.Error(t, err)
}

func TestHandleResolve_DirectRef(t *testing.T) {
	err := HandleResolve([]string{"-q", "../../../testdata/order-service.yaml", "#/components/schemas/orderId"})
	assert.NoError(t, err)
}

func TestHandleResolve_ChainedRef(t *testing.T) {
	err := HandleResolve([]string{"-q", "../../../testdata/order-service.yaml", "#/channels/orders/messages/orderCreated"})
	assert.NoError(t, err)
}

func TestHandleResolve_JSONFormat(t *testing.T) {
	err := HandleResolve([]string{"--format", "json", "../../../testdata/payments.json", "#/components/schemas/payment"})
	assert.NoError(t, err)
}

func TestHandleResolve_MissingRef(t *testing.T) {
	err := HandleResolve([]string{"-q", "../../../testdata/order-service.yaml", "#/components/schemas/nope"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resolving")
}

func TestHandleResolve_ExternalRef(t *testing.T) {
	err := HandleResolve([]string{"-q", "../../../testdata/order-service.yaml", "./shared.yaml#/components/schemas/order"})
	assert.Error(t, err)
}

func TestHandleResolve_CircularRef(t *testing.T) {
	err := HandleResolve([]string{"-q", "../../../testdata/circular-refs.yaml", "#/components/schemas/a"})
	assert.Error(t, err)
}
