package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vmsgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/denygate/denygate/pkg/matcher"
)

func TestPromptPreFetch_Violation(t *testing.T) {
	plug, err := New([]string{"badword"}, WithName("test-plugin"))
	require.NoError(t, err)
	defer plug.Close()

	result := plug.PromptPreFetch(map[string]any{
		"prompt": "please BADWORD now",
	})

	assert.False(t, result.ContinueProcessing)
	require.NotNil(t, result.Violation)
	assert.Equal(t, ViolationReason, result.Violation.Reason)
	assert.Equal(t, ViolationDescription, result.Violation.Description)
	assert.Equal(t, ViolationCode, result.Violation.Code)
	assert.Equal(t, "test-plugin", result.Violation.PluginName)
	assert.Zero(t, result.Violation.MCPErrorCode)
}

func TestPromptPreFetch_Clean(t *testing.T) {
	plug, err := New([]string{"badword"})
	require.NoError(t, err)
	defer plug.Close()

	result := plug.PromptPreFetch(map[string]any{
		"prompt": "all good",
		"id":     7,
	})

	assert.True(t, result.ContinueProcessing)
	assert.Nil(t, result.Violation)
}

func TestPromptPreFetch_NonStringValuesSkipped(t *testing.T) {
	plug, err := New([]string{"badword"})
	require.NoError(t, err)
	defer plug.Close()

	result := plug.PromptPreFetch(map[string]any{
		"count": 3,
		"flag":  true,
	})

	assert.True(t, result.ContinueProcessing)
}

func TestPromptPreFetch_DefaultName(t *testing.T) {
	plug, err := New([]string{"badword"})
	require.NoError(t, err)
	defer plug.Close()

	assert.Equal(t, DefaultName, plug.Name())

	result := plug.PromptPreFetch(map[string]any{"p": "badword"})
	require.NotNil(t, result.Violation)
	assert.Equal(t, DefaultName, result.Violation.PluginName)
}

func TestPromptPreFetchBinary(t *testing.T) {
	plug, err := New([]string{"badword"}, WithName("bin-plugin"))
	require.NoError(t, err)
	defer plug.Close()

	payload, err := vmsgpack.Marshal(map[string]any{"user": "a badword here"})
	require.NoError(t, err)

	result := plug.PromptPreFetchBinary(payload)
	assert.False(t, result.ContinueProcessing)
	require.NotNil(t, result.Violation)
	assert.Equal(t, "bin-plugin", result.Violation.PluginName)

	clean, err := vmsgpack.Marshal(map[string]any{"user": "nothing here"})
	require.NoError(t, err)
	result = plug.PromptPreFetchBinary(clean)
	assert.True(t, result.ContinueProcessing)
	assert.Nil(t, result.Violation)
}

func TestPromptPreFetchBinary_MalformedContinues(t *testing.T) {
	plug, err := New([]string{"badword"})
	require.NoError(t, err)
	defer plug.Close()

	result := plug.PromptPreFetchBinary([]byte{0xc1})
	assert.True(t, result.ContinueProcessing)
	assert.Nil(t, result.Violation)
}

func TestScan_InvertedContract(t *testing.T) {
	plug, err := New([]string{"badword"})
	require.NoError(t, err)
	defer plug.Close()

	// Scan reports "clean", not "found".
	assert.False(t, plug.Scan(map[string]any{"p": "badword"}))
	assert.True(t, plug.Scan(map[string]any{"p": "fine"}))
}

func TestNew_WithBackend(t *testing.T) {
	plug, err := New([]string{"badword"}, WithBackend(matcher.BackendDense))
	require.NoError(t, err)
	defer plug.Close()

	result := plug.PromptPreFetch(map[string]any{"p": "badword"})
	assert.False(t, result.ContinueProcessing)
}

func TestNew_HyperscanUnavailable(t *testing.T) {
	_, err := New([]string{"badword"}, WithBackend(matcher.BackendHyperscan))
	assert.Error(t, err)
}
