// Package mcp implements a minimal JSON-RPC 2.0 client for storefront
// Model Context Protocol endpoints, abstracted behind an interface for
// testability.
package mcp

import (
	"context"
	"encoding/json"
)

// ProtocolVersion is the MCP protocol revision sent in the initialize
// handshake.
const ProtocolVersion = "2024-11-05"

// Caller performs a single JSON-RPC request/response exchange. Calls are
// strictly sequential; implementations do not need to be safe for
// concurrent use.
type Caller interface {
	Call(ctx context.Context, method string, params any) CallResult
}

// CallResult is the tagged outcome of one JSON-RPC exchange. Every failure
// mode of the transport (non-200 status, empty body, malformed JSON,
// connection errors) collapses into the failed state; the reason string is
// kept so callers can log or assert on why a call yielded nothing.
type CallResult struct {
	body   json.RawMessage
	reason string
	ok     bool
}

// Ok wraps a successfully parsed response body.
func Ok(body json.RawMessage) CallResult {
	return CallResult{body: body, ok: true}
}

// Failed records a call that produced no usable result.
func Failed(reason string) CallResult {
	return CallResult{reason: reason}
}

// OK reports whether the call produced a result.
func (r CallResult) OK() bool {
	return r.ok
}

// Body returns the raw JSON response body. Nil unless OK.
func (r CallResult) Body() json.RawMessage {
	return r.body
}

// Reason returns the failure description. Empty when OK.
func (r CallResult) Reason() string {
	return r.reason
}

// ClientInfo identifies this client in the initialize handshake.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams is the parameter object for the "initialize" method.
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	Capabilities    struct{}   `json:"capabilities"`
	ClientInfo      ClientInfo `json:"clientInfo"`
}

// NewInitializeParams builds the handshake parameters for the given client
// name and version.
func NewInitializeParams(name, version string) InitializeParams {
	return InitializeParams{
		ProtocolVersion: ProtocolVersion,
		ClientInfo:      ClientInfo{Name: name, Version: version},
	}
}

// ToolCallParams is the parameter object for the "tools/call" method.
type ToolCallParams struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// rpcRequest is the JSON-RPC 2.0 request envelope. The id is constant: no
// correlation is needed because calls never overlap.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// contentBlock is one entry of a tool result's content array.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolEnvelope is the subset of a tools/call response body this client
// inspects.
type toolEnvelope struct {
	Result struct {
		Content []contentBlock `json:"content"`
	} `json:"result"`
}

// FirstContentText extracts the text payload of the first content block in
// a tools/call response body. The second return is false when the body has
// no content blocks.
func FirstContentText(body json.RawMessage) (string, bool) {
	var env toolEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", false
	}
	if len(env.Result.Content) == 0 {
		return "", false
	}
	return env.Result.Content[0].Text, true
}
