package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

var errEndBeforeStart = errors.New("end must not be before start")

// textResult wraps text in a single content block.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// prettyJSON indents a JSON body with two spaces. Bodies that are empty or
// not JSON are returned unchanged.
func prettyJSON(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

// respond shapes an upstream body into a tool result.
func respond(body []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	return textResult(prettyJSON(body)), nil, nil
}

// deleted returns the plain confirmation used by every delete tool.
func deleted(entity, id string, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("%s %s deleted", entity, id)), nil, nil
}

// requireField rejects blank required identifiers before any request is made.
func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// timestampLayouts lists accepted input formats, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime accepts RFC3339 or a zone-less date/time (read as UTC).
// The result is truncated to whole seconds, the precision Clockify stores.
func parseTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: cannot parse %q as an RFC3339 timestamp (e.g. 2026-01-15T09:00:00Z)", field, value)
}

// parseTimestamp renders a parseTime result in the layout Clockify expects.
func parseTimestamp(field, value string) (string, error) {
	parsed, err := parseTime(field, value)
	if err != nil {
		return "", err
	}
	return clockify.FormatTime(parsed), nil
}

// optionalTimestamp is parseTimestamp that lets a blank value through.
func optionalTimestamp(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return parseTimestamp(field, value)
}

// timestampOr is parseTimestamp with fallback used for a blank value.
func timestampOr(field, value string, fallback time.Time) (string, error) {
	if strings.TrimSpace(value) == "" {
		return clockify.FormatTime(fallback), nil
	}
	return parseTimestamp(field, value)
}

// loggingMiddleware logs each tool call with its duration and outcome.
func loggingMiddleware(log zerolog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			call, ok := req.(*mcp.CallToolRequest)
			if !ok {
				return next(ctx, method, req)
			}

			started := time.Now()
			result, err := next(ctx, method, req)

			event := log.Debug()
			if err != nil {
				event = log.Warn().Err(err)
			} else if res, ok := result.(*mcp.CallToolResult); ok && res.IsError {
				event = log.Info().Bool("tool_error", true)
			}
			event.
				Str("tool", call.Params.Name).
				Dur("elapsed", time.Since(started)).
				Msg("tool call")
			return result, err
		}
	}
}
