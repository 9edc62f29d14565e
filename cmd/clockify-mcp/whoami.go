package main

import (
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// newWhoamiCmd creates the whoami command.
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the Clockify user behind the configured API key",
		Long: `Show the Clockify user that owns the configured API key and the workspace
tools fall back to when a call omits workspaceId.

Examples:
  clockify-mcp whoami
  clockify-mcp whoami --json`,
		Args: cobra.NoArgs,
		RunE: runWhoami,
	}
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	client := newClient(cfg, newLogger(cmd, cfg))

	user, err := client.CurrentUser(cmd.Context())
	if err != nil {
		err = output.FromUpstream(err)
		printer.Error(err)
		return err
	}

	workspace, source := cfg.WorkspaceID, "config"
	if workspace == "" {
		workspace, source = user.Workspace(), "user"
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"id":               user.ID,
			"name":             user.Name,
			"email":            user.Email,
			"activeWorkspace":  user.ActiveWorkspace,
			"defaultWorkspace": user.DefaultWorkspace,
			"workspace":        workspace,
			"workspaceSource":  source,
		})
	}

	printer.Section(user.Name)
	printer.KeyValue("ID", user.ID)
	printer.KeyValue("Email", user.Email)
	printer.KeyValue("Workspace", workspace+" ("+source+")")
	return nil
}
