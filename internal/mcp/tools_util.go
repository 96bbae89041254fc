// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because MCP tools should be forgiving - an LLM omitting
// an optional parameter shouldn't cause cryptic errors. Required parameters
// still fail with a clear message naming the missing field.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// getString extracts a string parameter from the MCP request, returning the
// provided default if the parameter is missing or cannot be parsed as a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the MCP request arguments.
//
// JSON booleans decode as Go bool values, so a simple type assertion
// suffices. Returns the default if the parameter is missing or not a boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getBoolPtr is getBool for tri-state parameters: nil means the parameter was
// not provided, letting the service apply its configured default.
func getBoolPtr(req mcp.CallToolRequest, name string) *bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[name].(bool); ok {
		return &v
	}
	return nil
}

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON numbers decode as float64 in Go's encoding/json, so we type assert to
// float64 first and then convert. Returns the default if the parameter is
// missing or not a number.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result for return to the LLM client. LLMs parse structured output
// more reliably when it is formatted for readability.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
