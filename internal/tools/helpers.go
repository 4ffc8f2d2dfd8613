package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg extracts a required string argument from a tool request.
func stringArg(req mcp.CallToolRequest, key string) (string, error) {
	v, ok := req.GetArguments()[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// optStringArg extracts an optional string argument, returning
// defaultVal when the key is missing or not a string.
func optStringArg(req mcp.CallToolRequest, key, defaultVal string) string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return defaultVal
	}
	return v
}

// floatArg extracts a required numeric argument. JSON numbers arrive
// as float64.
func floatArg(req mcp.CallToolRequest, key string) (float64, error) {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return 0, fmt.Errorf("missing required numeric argument %q", key)
	}
	return v, nil
}

// intArg extracts a required integer argument, rejecting fractional
// values.
func intArg(req mcp.CallToolRequest, key string) (int64, error) {
	v, err := floatArg(req, key)
	if err != nil {
		return 0, err
	}
	n := int64(v)
	if float64(n) != v {
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
	return n, nil
}

// jsonResult serializes v and returns it as a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
