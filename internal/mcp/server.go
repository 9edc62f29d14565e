// Package mcp exposes the Clockify API as Model Context Protocol tools.
// Each tool validates its typed input, issues one upstream request through
// the clockify client and returns the response body as text.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "clockify"

const instructions = `Tools for the Clockify time tracker. Most tools accept an optional
workspaceId; when omitted the configured default workspace or the user's active
workspace is used. Timestamps are RFC3339 (e.g. 2026-01-15T09:00:00Z).`

// Options configures a tool server.
type Options struct {
	// Version is reported to clients.
	Version string
	// DefaultWorkspace is used when a tool call omits workspaceId.
	DefaultWorkspace string
	// Logger receives one debug line per tool call.
	Logger zerolog.Logger
}

// backend carries what every handler needs for a call.
type backend struct {
	client    *clockify.Client
	workspace string
	log       zerolog.Logger
}

// NewServer creates an MCP server with all Clockify tools, resources and
// prompts registered against client.
func NewServer(client *clockify.Client, opts Options) *mcp.Server {
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	b := &backend{
		client:    client,
		workspace: opts.DefaultWorkspace,
		log:       opts.Logger,
	}

	server.AddReceivingMiddleware(loggingMiddleware(opts.Logger))
	registerTools(server, b)
	registerResources(server, b)
	registerPrompts(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for tools that only fetch data.
func readOnlyAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:          title,
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations returns annotations for tools that create or update records.
func writeAnnotations(title string, idempotent bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		DestructiveHint: boolPtr(false),
		IdempotentHint:  idempotent,
		OpenWorldHint:   boolPtr(true),
	}
}

// destructiveAnnotations returns annotations for delete tools.
func destructiveAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:           title,
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds every tool group to the server.
func registerTools(server *mcp.Server, b *backend) {
	registerUserTools(server, b)
	registerWorkspaceTools(server, b)
	registerProjectTools(server, b)
	registerTimeEntryTools(server, b)
	registerClientTools(server, b)
	registerTagTools(server, b)
	registerTaskTools(server, b)
}
