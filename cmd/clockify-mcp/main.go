// Package main provides the entry point for the clockify-mcp CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/config"
	"github.com/patrikmichi/clockify-mcp/internal/envfile"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against whether stdout is a terminal.
func useColor(cmd *cobra.Command) bool {
	mode := output.ColorAuto
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer for cmd honoring --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the clockify-mcp CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clockify-mcp",
		Short: "Clockify time tracking for MCP clients",
		Long: `clockify-mcp - A Model Context Protocol server for the Clockify time tracker.

It exposes Clockify users, workspaces, projects, clients, tags, tasks and
time entries as MCP tools that any MCP-capable agent can call:
  - serve over stdio for desktop clients, or over HTTP for shared deployments
  - inspect and invoke the same tools from the command line
  - register the server with Claude Desktop, Cursor or a project .mcp.json

Settings come from flags, CLOCKIFY_* environment variables, .env files and
the config file, in that order. All commands support --json.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'clockify-mcp --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", output.ColorAuto, "Color output: auto, always or never")
	flags.String("config", "", "Config file (default "+displayPath(config.Path())+")")
	flags.String("api-key", "", "Clockify API key (env CLOCKIFY_API_KEY)")
	flags.String("base-url", "", "Clockify API base URL (env CLOCKIFY_BASE_URL)")
	flags.String("workspace", "", "Default workspace ID (env CLOCKIFY_WORKSPACE_ID)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Duration("timeout", 0, "Upstream request timeout (e.g. 15s)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/clockify-mcp/env
func loadEnvFiles() {
	_ = envfile.Load(".env.local", ".env", config.EnvFilePath())
}

func displayPath(path string) string {
	if path == "" {
		return "none"
	}
	return path
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "server", Title: "Server Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "tools", Title: "Tool Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newServeCmd(), "server")

	addGroupedCommand(cmd, newToolsCmd(), "tools")
	addGroupedCommand(cmd, newCallCmd(), "tools")
	addGroupedCommand(cmd, newWhoamiCmd(), "tools")

	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
	addGroupedCommand(cmd, newSetupCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
