package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
	"github.com/patrikmichi/clockify-mcp/internal/config"
	"github.com/patrikmichi/clockify-mcp/internal/logging"
	clockifymcp "github.com/patrikmichi/clockify-mcp/internal/mcp"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// configPath returns --config, falling back to the default location.
func configPath(cmd *cobra.Command) string {
	if flag := cmd.Flags().Lookup("config"); flag != nil && flag.Value.String() != "" {
		return flag.Value.String()
	}
	return config.Path()
}

// loadConfig resolves and validates settings for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath(cmd), cmd.Flags())
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger described by cfg.
func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	if cfg.LogFormat == "json" {
		return logging.NewJSON(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
}

// newClient builds the upstream client described by cfg.
func newClient(cfg *config.Config, log zerolog.Logger) *clockify.Client {
	return clockify.New(cfg.APIKey,
		clockify.WithBaseURL(cfg.BaseURL),
		clockify.WithTimeout(cfg.Timeout),
		clockify.WithLogger(log),
	)
}

// serverOptions maps cfg onto tool server options.
func serverOptions(cfg *config.Config, log zerolog.Logger) clockifymcp.Options {
	return clockifymcp.Options{
		Version:          version,
		DefaultWorkspace: cfg.WorkspaceID,
		Logger:           log,
	}
}

// newToolServer loads config and returns a tool server for in-process use.
func newToolServer(cmd *cobra.Command) (*mcp.Server, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := newLogger(cmd, cfg)
	return clockifymcp.NewServer(newClient(cfg, log), serverOptions(cfg, log)), nil
}
