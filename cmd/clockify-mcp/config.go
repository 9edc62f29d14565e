package main

import (
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/config"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change stored settings",
		Long: `Show or change the settings stored in the config file.

Keys: api_key, base_url, workspace_id, log_level, log_format, timeout, http_addr.

Examples:
  clockify-mcp config path
  clockify-mcp config show            # Effective settings, key redacted
  clockify-mcp config set api_key abc123
  clockify-mcp config set workspace_id ""   # Clear a value`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			path := configPath(cmd)
			if path == "" {
				err := output.NewSystemError("cannot determine a config directory; pass --config")
				printer.Error(err)
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path})
			}
			printer.Println(path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings after merging the config file, the environment and flags.
The API key is redacted to its last four characters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := config.Load(configPath(cmd), cmd.Flags())
			if err != nil {
				err = output.NewUserErrorWithCause(err.Error(), err)
				printer.Error(err)
				return err
			}
			redacted := cfg.Redacted()

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"api_key":      redacted.APIKey,
					"base_url":     redacted.BaseURL,
					"workspace_id": redacted.WorkspaceID,
					"log_level":    redacted.LogLevel,
					"log_format":   redacted.LogFormat,
					"timeout":      redacted.Timeout.String(),
					"http_addr":    redacted.HTTPAddr,
				})
			}

			printer.KeyValue("api_key", orNone(redacted.APIKey))
			printer.KeyValue("base_url", redacted.BaseURL)
			printer.KeyValue("workspace_id", orNone(redacted.WorkspaceID))
			printer.KeyValue("log_level", redacted.LogLevel)
			printer.KeyValue("log_format", redacted.LogFormat)
			printer.KeyValue("timeout", redacted.Timeout.String())
			printer.KeyValue("http_addr", redacted.HTTPAddr)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			path := configPath(cmd)
			if path == "" {
				err := output.NewSystemError("cannot determine a config directory; pass --config")
				printer.Error(err)
				return err
			}

			cfg, err := config.ReadFile(path)
			if err != nil {
				err = output.NewUserErrorWithCause(err.Error(), err)
				printer.Error(err)
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				err = output.NewUserErrorWithCause(err.Error(), err)
				printer.Error(err)
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				err = output.NewSystemErrorWithCause(err.Error(), err)
				printer.Error(err)
				return err
			}

			value := args[1]
			if args[0] == "api_key" {
				value = config.RedactKey(value)
			}
			return printer.Success(map[string]any{
				"message": "Set " + args[0] + " in " + path,
				"key":     args[0],
				"value":   value,
				"path":    path,
			})
		},
	}
}

func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}
