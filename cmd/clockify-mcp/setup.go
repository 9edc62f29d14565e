package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/output"
	"github.com/patrikmichi/clockify-mcp/internal/setup"
)

type setupFlags struct {
	remove     bool
	includeKey bool
	name       string
	path       string
	command    string
}

// newSetupCmd creates the setup command.
func newSetupCmd() *cobra.Command {
	flags := &setupFlags{}

	cmd := &cobra.Command{
		Use:   "setup [target]",
		Short: "Register the server with an MCP client",
		Long: `Register clockify-mcp in an MCP client's configuration file.

Targets:
  claude   - Claude Desktop (claude_desktop_config.json)
  cursor   - Cursor (~/.cursor/mcp.json)
  project  - .mcp.json in the current directory

Other servers and settings in the file are preserved. Without a target the
command lists each target and whether the server is registered there.

Examples:
  clockify-mcp setup                     # Show registration status
  clockify-mcp setup claude              # Register with Claude Desktop
  clockify-mcp setup cursor --include-key
  clockify-mcp setup project --remove`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: setup.TargetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runSetupStatus(cmd)
			}
			return runSetup(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.remove, "remove", false, "Remove the server entry instead of adding it")
	cmd.Flags().BoolVar(&flags.includeKey, "include-key", false, "Write the resolved API key into the entry's env")
	cmd.Flags().StringVar(&flags.name, "name", setup.DefaultServerName, "Server name in the client config")
	cmd.Flags().StringVar(&flags.path, "path", "", "Config file to edit instead of the target's default")
	cmd.Flags().StringVar(&flags.command, "command", "", "Executable to register (default: this binary)")

	return cmd
}

func runSetup(cmd *cobra.Command, targetName string, flags *setupFlags) error {
	printer := newPrinter(cmd)

	target := setup.GetTarget(targetName)
	if target == nil {
		err := output.NewUserError(fmt.Sprintf("unknown target %q (valid: %s)",
			targetName, strings.Join(setup.TargetNames(), ", ")))
		printer.Error(err)
		return err
	}

	path := flags.path
	if path == "" {
		var err error
		if path, err = target.ConfigPath(); err != nil {
			err = output.NewSystemErrorWithCause(err.Error(), err)
			printer.Error(err)
			return err
		}
	}

	if flags.remove {
		removed, err := setup.Remove(path, flags.name)
		if err != nil {
			printer.Error(err)
			return err
		}
		message := fmt.Sprintf("%s was not registered in %s", flags.name, target.DisplayName())
		if removed {
			message = fmt.Sprintf("Removed %s from %s", flags.name, target.DisplayName())
		}
		return printer.Success(map[string]any{
			"message": message,
			"target":  target.Name(),
			"path":    path,
			"removed": removed,
		})
	}

	entry, err := serverEntry(cmd, flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	if err := setup.Install(path, flags.name, entry); err != nil {
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Registered %s with %s (%s). Restart the client to load it.",
			flags.name, target.DisplayName(), path),
		"target":  target.Name(),
		"path":    path,
		"command": entry.Command,
	})
}

// serverEntry describes how the client should launch this binary.
func serverEntry(cmd *cobra.Command, flags *setupFlags) (setup.ServerEntry, error) {
	command := flags.command
	if command == "" {
		exe, err := os.Executable()
		if err != nil {
			return setup.ServerEntry{}, output.NewSystemErrorWithCause("locating executable: "+err.Error(), err)
		}
		command = exe
	}
	entry := setup.ServerEntry{Command: command, Args: []string{"serve"}}

	if !flags.includeKey {
		return entry, nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return setup.ServerEntry{}, err
	}
	if cfg.APIKey == "" {
		return setup.ServerEntry{}, output.NewUserError("--include-key given but no API key is configured")
	}
	entry.Env = map[string]string{"CLOCKIFY_API_KEY": cfg.APIKey}
	if cfg.WorkspaceID != "" {
		entry.Env["CLOCKIFY_WORKSPACE_ID"] = cfg.WorkspaceID
	}
	return entry, nil
}

func runSetupStatus(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	type targetStatus struct {
		Name       string `json:"name"`
		Display    string `json:"display"`
		Path       string `json:"path"`
		Registered bool   `json:"registered"`
	}

	var statuses []targetStatus
	for _, name := range setup.TargetNames() {
		target := setup.GetTarget(name)
		path, err := target.ConfigPath()
		if err != nil {
			path = ""
		}
		statuses = append(statuses, targetStatus{
			Name:       name,
			Display:    target.DisplayName(),
			Path:       path,
			Registered: path != "" && setup.IsInstalled(path, setup.DefaultServerName),
		})
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"targets": statuses})
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		registered := "no"
		if s.Registered {
			registered = "yes"
		}
		rows = append(rows, []string{s.Name, s.Display, registered, s.Path})
	}
	printer.Table([]string{"TARGET", "CLIENT", "REGISTERED", "PATH"}, rows)
	return nil
}
