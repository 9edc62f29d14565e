package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ConnectInProcess runs server over in-memory transports and returns a
// client session connected to it. Closing the session stops the server.
func ConnectInProcess(ctx context.Context, server *mcp.Server, version string) (*mcp.ClientSession, error) {
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, serverTransport, nil); err != nil {
		return nil, fmt.Errorf("connecting server: %w", err)
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    ServerName + "-cli",
		Version: version,
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting client: %w", err)
	}
	return session, nil
}

// ResultText joins the text content blocks of a tool result.
func ResultText(res *mcp.CallToolResult) string {
	var text string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			if text != "" {
				text += "\n"
			}
			text += tc.Text
		}
	}
	return text
}
