package serve

import (
	"encoding/json"

	"github.com/denygate/denygate/pkg/plugin"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "check" | "check_binary" | "close"
	Payload json.RawMessage `json:"payload"`
}

// CheckPayload is the payload for "check" requests: a flat mapping of
// request arguments. String values are matched, keys never are.
type CheckPayload struct {
	Args map[string]any `json:"args"`
}

// CheckBinaryPayload is the payload for "check_binary" requests. Content
// is base64-encoded MessagePack.
type CheckBinaryPayload struct {
	Content []byte `json:"content"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "check" | "check_binary" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
	Plugin  string `json:"plugin"`
}

// CheckData is the data field for "check" and "check_binary" responses.
type CheckData struct {
	ContinueProcessing bool              `json:"continue_processing"`
	Violation          *plugin.Violation `json:"violation,omitempty"`
}
