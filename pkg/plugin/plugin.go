// Package plugin wraps a compiled matcher as a gateway plugin: it scans
// a flat request-argument mapping and converts the first hit into a
// structured violation carrying the reason, code, and plugin identity.
package plugin

import (
	"fmt"

	"github.com/denygate/denygate/pkg/matcher"
	"github.com/denygate/denygate/pkg/msgpack"
)

// Violation constants reported on a deny-list hit.
const (
	ViolationReason      = "Denied word found in prompt"
	ViolationDescription = "The prompt contains words from the deny list"
	ViolationCode        = "DENY_LIST_VIOLATION"
)

// DefaultName identifies the plugin when the host does not name it.
const DefaultName = "DenyListPlugin"

// Violation describes a single deny-list hit. Immutable once created.
type Violation struct {
	Reason      string         `json:"reason"`
	Description string         `json:"description"`
	Code        string         `json:"code"`
	Details     map[string]any `json:"details,omitempty"`
	PluginName  string         `json:"plugin_name"`
	// MCPErrorCode is the optional numeric error code surfaced to MCP
	// hosts; zero means unset.
	MCPErrorCode int `json:"mcp_error_code,omitempty"`
}

// Result tells the host whether to continue processing the payload.
type Result struct {
	ContinueProcessing bool           `json:"continue_processing"`
	ModifiedPayload    map[string]any `json:"modified_payload,omitempty"`
	Violation          *Violation     `json:"violation,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Plugin evaluates request arguments against a deny list.
type Plugin struct {
	m       matcher.Matcher
	binary  *msgpack.Scanner
	name    string
	backend matcher.Backend
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithName sets the plugin identity reported on violations.
func WithName(name string) Option {
	return func(p *Plugin) {
		p.name = name
	}
}

// WithBackend selects the matcher backend. Zero value is the
// Aho-Corasick automaton.
func WithBackend(b matcher.Backend) Option {
	return func(p *Plugin) {
		p.backend = b
	}
}

// New compiles words and returns a ready plugin.
func New(words []string, opts ...Option) (*Plugin, error) {
	p := &Plugin{name: DefaultName}
	for _, opt := range opts {
		opt(p)
	}

	m, err := matcher.New(matcher.Config{Words: words, Backend: p.backend})
	if err != nil {
		return nil, fmt.Errorf("compiling deny list: %w", err)
	}
	p.m = m
	p.binary = msgpack.NewScanner(m, 0)
	return p, nil
}

// Name returns the plugin identity.
func (p *Plugin) Name() string { return p.name }

// PromptPreFetch scans the flat argument mapping before the prompt is
// fetched. String values are matched, everything else is skipped, keys
// are never matched. The first hit stops processing and reports a
// violation; a clean payload continues unmodified.
func (p *Plugin) PromptPreFetch(args map[string]any) *Result {
	if matcher.ScanArgs(p.m, args) {
		return &Result{
			ContinueProcessing: false,
			Violation: &Violation{
				Reason:      ViolationReason,
				Description: ViolationDescription,
				Code:        ViolationCode,
				PluginName:  p.name,
			},
		}
	}
	return &Result{ContinueProcessing: true}
}

// PromptPreFetchBinary scans a MessagePack-encoded payload with the
// same contract as PromptPreFetch. Map keys are never matched.
// Malformed or over-deep input degrades to "continue": the plugin does
// not assert a banned pattern is present in a document it cannot parse.
func (p *Plugin) PromptPreFetchBinary(buf []byte) *Result {
	found, err := p.binary.Scan(buf)
	if err != nil || !found {
		return &Result{ContinueProcessing: true}
	}
	return &Result{
		ContinueProcessing: false,
		Violation: &Violation{
			Reason:      ViolationReason,
			Description: ViolationDescription,
			Code:        ViolationCode,
			PluginName:  p.name,
		},
	}
}

// Scan reports whether the argument mapping is clean of deny words.
// Kept for hosts that only want the boolean, not the violation record.
func (p *Plugin) Scan(args map[string]any) bool {
	return !matcher.ScanArgs(p.m, args)
}

// Close releases the underlying matcher.
func (p *Plugin) Close() error { return p.m.Close() }
