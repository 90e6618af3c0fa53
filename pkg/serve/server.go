// Package serve runs a streaming NDJSON check loop over stdin/stdout so
// the filter can be embedded as a sidecar in a moderation pipeline.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/denygate/denygate/pkg/plugin"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming check loop
type Server struct {
	plug    *plugin.Plugin
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(plug *plugin.Plugin, in io.Reader, out io.Writer) *Server {
	return &Server{
		plug:    plug,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "check":
		s.handleCheck(req.Payload)
	case "check_binary":
		s.handleCheckBinary(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version, Plugin: s.plug.Name()})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleCheck(payload json.RawMessage) {
	var p CheckPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check", err.Error())
		return
	}

	s.sendResult("check", s.plug.PromptPreFetch(p.Args))
}

func (s *Server) handleCheckBinary(payload json.RawMessage) {
	var p CheckBinaryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check_binary", err.Error())
		return
	}

	s.sendResult("check_binary", s.plug.PromptPreFetchBinary(p.Content))
}

func (s *Server) sendResult(reqType string, result *plugin.Result) {
	data, _ := json.Marshal(CheckData{
		ContinueProcessing: result.ContinueProcessing,
		Violation:          result.Violation,
	})
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
