package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	clockifymcp "github.com/patrikmichi/clockify-mcp/internal/mcp"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio or HTTP transport)",
		Long: `Run clockify-mcp as a Model Context Protocol (MCP) server.

By default the server speaks MCP over stdio, which is what desktop clients
launch. Configure it in your agent's MCP settings:
  {
    "mcpServers": {
      "clockify": {
        "command": "clockify-mcp",
        "args": ["serve"],
        "env": {"CLOCKIFY_API_KEY": "..."}
      }
    }
  }

With --http the server listens for streamable HTTP requests on /mcp instead.
Each request may carry its own key in X-Api-Key or "Authorization: Bearer";
the configured key is used when neither header is present.

Examples:
  clockify-mcp serve
  clockify-mcp serve --http 127.0.0.1:8080
  clockify-mcp serve --http :8080 --workspace 5f1d...`,
		RunE: runServe,
	}

	cmd.Flags().String("http", "", "Serve streamable HTTP on this address instead of stdio")
	cmd.Flags().Lookup("http").NoOptDefVal = "127.0.0.1:8080"

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)
	client := newClient(cfg, log)
	opts := serverOptions(cfg, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cmd.Flags().Changed("http") {
		if !client.HasAPIKey() {
			log.Warn().Msg("no API key configured; tool calls will fail until CLOCKIFY_API_KEY is set")
		}
		log.Info().Str("transport", "stdio").Msg("starting MCP server")
		server := clockifymcp.NewServer(client, opts)
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return output.NewSystemErrorWithCause("MCP server stopped: "+err.Error(), err)
		}
		return nil
	}

	handler := clockifymcp.HTTPHandler(client, opts)
	if err := clockifymcp.ServeHTTP(ctx, cfg.HTTPAddr, handler, log); err != nil {
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	return nil
}
