package serve

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vmsgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/denygate/denygate/pkg/plugin"
)

func newTestPlugin(t *testing.T) *plugin.Plugin {
	t.Helper()
	plug, err := plugin.New([]string{"badword"}, plugin.WithName("serve-test"))
	require.NoError(t, err)
	t.Cleanup(func() { plug.Close() })
	return plug
}

func runServer(t *testing.T, input string) []Response {
	t.Helper()
	in := strings.NewReader(input)
	out := &bytes.Buffer{}

	srv := NewServer(newTestPlugin(t), in, out)
	err := srv.Run(context.Background())
	require.NoError(t, err) // clean exit on EOF or close

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_SendsReadyOnStart(t *testing.T) {
	responses := runServer(t, "")
	require.NotEmpty(t, responses)

	assert.True(t, responses[0].Success)
	assert.Equal(t, "ready", responses[0].Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(responses[0].Data, &ready))
	assert.Equal(t, Version, ready.Version)
	assert.Equal(t, "serve-test", ready.Plugin)
}

func TestServer_Check(t *testing.T) {
	request := `{"type":"check","payload":{"args":{"prompt":"has badword"}}}` + "\n"
	responses := runServer(t, request)
	require.Len(t, responses, 2) // ready + check

	resp := responses[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "check", resp.Type)

	var data CheckData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.False(t, data.ContinueProcessing)
	require.NotNil(t, data.Violation)
	assert.Equal(t, plugin.ViolationCode, data.Violation.Code)
	assert.Equal(t, "serve-test", data.Violation.PluginName)
}

func TestServer_CheckClean(t *testing.T) {
	request := `{"type":"check","payload":{"args":{"prompt":"all fine"}}}` + "\n"
	responses := runServer(t, request)
	require.Len(t, responses, 2)

	var data CheckData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.True(t, data.ContinueProcessing)
	assert.Nil(t, data.Violation)
}

func TestServer_CheckBinary(t *testing.T) {
	payload, err := vmsgpack.Marshal(map[string]any{"user": "badword here"})
	require.NoError(t, err)

	request := fmt.Sprintf(`{"type":"check_binary","payload":{"content":%q}}`,
		base64.StdEncoding.EncodeToString(payload)) + "\n"
	responses := runServer(t, request)
	require.Len(t, responses, 2)

	var data CheckData
	require.NoError(t, json.Unmarshal(responses[1].Data, &data))
	assert.False(t, data.ContinueProcessing)
	require.NotNil(t, data.Violation)
}

func TestServer_UnknownRequestType(t *testing.T) {
	request := `{"type":"bogus","payload":{}}` + "\n"
	responses := runServer(t, request)
	require.Len(t, responses, 2)

	assert.False(t, responses[1].Success)
	assert.Contains(t, responses[1].Error, "unknown request type")
}

func TestServer_Close(t *testing.T) {
	// close terminates the loop; the later request is never answered.
	request := `{"type":"close"}` + "\n" +
		`{"type":"check","payload":{"args":{"prompt":"badword"}}}` + "\n"
	responses := runServer(t, request)
	assert.Len(t, responses, 1) // ready only
}

func TestServer_GracefulShutdownOnContext(t *testing.T) {
	in := strings.NewReader("")
	out := &bytes.Buffer{}

	srv := NewServer(newTestPlugin(t), in, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancelled context and immediate EOF race; either way Run must
	// return promptly and the ready line must have been sent.
	_ = srv.Run(ctx)
	assert.Contains(t, out.String(), `"ready"`)
}
