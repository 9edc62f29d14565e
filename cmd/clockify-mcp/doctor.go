package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
	"github.com/patrikmichi/clockify-mcp/internal/config"
	"github.com/patrikmichi/clockify-mcp/internal/output"
	"github.com/patrikmichi/clockify-mcp/internal/setup"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version  string         `json:"version"`
	Config   []checkResult  `json:"config"`
	Clockify []checkResult  `json:"clockify"`
	Clients  []checkResult  `json:"clients"`
	Summary  *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and connectivity",
		Long: `Check clockify-mcp configuration and suggest fixes.

Runs health checks across three categories:
  CONFIG   - Config file, API key and base URL
  CLOCKIFY - Authentication against the API and the default workspace
  CLIENTS  - Registration with Claude Desktop, Cursor and the project

Examples:
  clockify-mcp doctor            # Run all health checks
  clockify-mcp doctor --quiet    # Only show failures and warnings
  clockify-mcp doctor --json     # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, quiet)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

func runDoctor(cmd *cobra.Command, quiet bool) error {
	printer := newPrinter(cmd)
	result := gatherDoctorChecks(cmd)

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	outputDoctorHuman(printer, result, quiet)
	return nil
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command) *doctorResult {
	path := configPath(cmd)
	cfg, configChecks := runConfigChecks(cmd, path)

	result := &doctorResult{
		Version:  version,
		Config:   configChecks,
		Clockify: runClockifyChecks(cmd, cfg),
		Clients:  runClientChecks(),
		Summary:  &doctorSummary{},
	}

	allChecks := append(append(append([]checkResult{}, result.Config...), result.Clockify...), result.Clients...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}
	return result
}

// runConfigChecks loads settings and reports on them. The returned config
// is nil when loading or validation failed.
func runConfigChecks(cmd *cobra.Command, path string) (*config.Config, []checkResult) {
	var checks []checkResult

	switch _, err := os.Stat(path); {
	case err == nil:
		checks = append(checks, checkResult{Name: "config file", Status: checkPass, Message: path})
	case errors.Is(err, fs.ErrNotExist):
		checks = append(checks, checkResult{
			Name:    "config file",
			Status:  checkWarn,
			Message: "not found, using environment and defaults",
			Hint:    "clockify-mcp config set api_key <key>",
		})
	default:
		checks = append(checks, checkResult{Name: "config file", Status: checkFail, Message: err.Error()})
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "settings",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "clockify-mcp config show",
		})
		return nil, checks
	}

	if cfg.APIKey == "" {
		checks = append(checks, checkResult{
			Name:    "API key",
			Status:  checkFail,
			Message: "not set",
			Hint:    "export CLOCKIFY_API_KEY=... or clockify-mcp config set api_key <key>",
		})
	} else {
		checks = append(checks, checkResult{Name: "API key", Status: checkPass, Message: config.RedactKey(cfg.APIKey)})
	}
	checks = append(checks, checkResult{Name: "base URL", Status: checkPass, Message: cfg.BaseURL})

	return cfg, checks
}

// runClockifyChecks authenticates against the API and resolves the
// workspace tools fall back to.
func runClockifyChecks(cmd *cobra.Command, cfg *config.Config) []checkResult {
	if cfg == nil || cfg.APIKey == "" {
		return []checkResult{{
			Name:    "authentication",
			Status:  checkWarn,
			Message: "skipped, no usable API key",
		}}
	}

	client := newClient(cfg, newLogger(cmd, cfg))
	user, err := client.CurrentUser(cmd.Context())
	if err != nil {
		check := checkResult{Name: "authentication", Status: checkFail, Message: err.Error()}
		switch {
		case clockify.IsUnauthorized(err):
			check.Message = "API key rejected"
			check.Hint = "generate a new key under Profile settings > API in Clockify"
		case clockify.StatusCode(err) == 0:
			check.Hint = "check network access to " + cfg.BaseURL
		}
		return []checkResult{check}
	}

	checks := []checkResult{{
		Name:    "authentication",
		Status:  checkPass,
		Message: fmt.Sprintf("%s <%s>", user.Name, user.Email),
	}}

	switch {
	case cfg.WorkspaceID != "":
		checks = append(checks, checkResult{Name: "workspace", Status: checkPass, Message: cfg.WorkspaceID + " (configured)"})
	case user.Workspace() != "":
		checks = append(checks, checkResult{Name: "workspace", Status: checkPass, Message: user.Workspace() + " (active workspace)"})
	default:
		checks = append(checks, checkResult{
			Name:    "workspace",
			Status:  checkWarn,
			Message: "no default workspace, tools need an explicit workspaceId",
			Hint:    "clockify-mcp config set workspace_id <id>",
		})
	}
	return checks
}

// runClientChecks reports which MCP clients have the server registered.
func runClientChecks() []checkResult {
	checks := make([]checkResult, 0, len(setup.TargetNames()))
	for _, name := range setup.TargetNames() {
		target := setup.GetTarget(name)
		path, err := target.ConfigPath()
		if err != nil {
			checks = append(checks, checkResult{Name: target.DisplayName(), Status: checkWarn, Message: err.Error()})
			continue
		}
		if setup.IsInstalled(path, setup.DefaultServerName) {
			checks = append(checks, checkResult{Name: target.DisplayName(), Status: checkPass, Message: "registered in " + path})
			continue
		}
		checks = append(checks, checkResult{
			Name:    target.DisplayName(),
			Status:  checkWarn,
			Message: "not registered",
			Hint:    "clockify-mcp setup " + name,
		})
	}
	return checks
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	styles := printer.Styles()

	printer.Println()
	printer.Print("clockify-mcp doctor %s\n", result.Version)

	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "CLOCKIFY", result.Clockify, quiet)
	printCheckSection(printer, "CLIENTS", result.Clients, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		styles.Success.Render(statusIcon(checkPass)), result.Summary.Passed,
		styles.Warning.Render(statusIcon(checkWarn)), result.Summary.Warnings,
		styles.Error.Render(statusIcon(checkFail)), result.Summary.Failed)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		var visible []checkResult
		for _, check := range checks {
			if check.Status != checkPass {
				visible = append(visible, check)
			}
		}
		checks = visible
	}
	if len(checks) == 0 {
		return
	}

	styles := printer.Styles()
	printer.Println()
	printer.Println(styles.Bold.Render(title))
	for _, check := range checks {
		icon := statusIcon(check.Status)
		switch check.Status {
		case checkPass:
			icon = styles.Success.Render(icon)
		case checkWarn:
			icon = styles.Warning.Render(icon)
		case checkFail:
			icon = styles.Error.Render(icon)
		}
		printer.Print("  %s  %s %s\n", icon, check.Name, styles.Muted.Render(check.Message))
		if check.Hint != "" {
			printer.Print("     %s %s\n", hintPrefix(), check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}

// hintPrefix returns the prefix for hint lines.
func hintPrefix() string {
	return "->"
}
