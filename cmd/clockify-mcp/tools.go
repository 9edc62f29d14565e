package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/catalog"
	clockifymcp "github.com/patrikmichi/clockify-mcp/internal/mcp"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// markdownWrap is the column width for rendered markdown.
const markdownWrap = 100

type toolsFlags struct {
	markdown bool
	group    string
}

// newToolsCmd creates the tools command.
func newToolsCmd() *cobra.Command {
	flags := &toolsFlags{}

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools the server exposes",
		Long: `List every tool the server registers, grouped by resource.

Examples:
  clockify-mcp tools                     # Table of tools
  clockify-mcp tools --group "Time entries"
  clockify-mcp tools --markdown          # Reference with parameters
  clockify-mcp tools --json              # Machine-readable catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTools(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Print a markdown reference including parameters")
	cmd.Flags().StringVar(&flags.group, "group", "", "Only list tools in this group (e.g. Projects)")

	return cmd
}

func runTools(cmd *cobra.Command, flags *toolsFlags) error {
	printer := newPrinter(cmd)

	entries, err := loadCatalog(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	if flags.group != "" {
		entries = filterGroup(entries, flags.group)
		if len(entries) == 0 {
			err := output.NewUserError("no tools in group " + flags.group)
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count": len(entries),
			"tools": entries,
		})
	}

	if flags.markdown {
		return printMarkdown(printer, catalog.Markdown(entries))
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, e.Group, e.Access, e.Title})
	}
	printer.Table([]string{"NAME", "GROUP", "ACCESS", "TITLE"}, rows)
	return nil
}

// loadCatalog lists the registered tools through an in-process session.
func loadCatalog(cmd *cobra.Command) ([]catalog.Entry, error) {
	server, err := newToolServer(cmd)
	if err != nil {
		return nil, err
	}
	session, err := clockifymcp.ConnectInProcess(cmd.Context(), server, version)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("starting tool server: "+err.Error(), err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(cmd.Context(), nil)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing tools: "+err.Error(), err)
	}
	entries, err := catalog.FromTools(res.Tools)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	return entries, nil
}

func filterGroup(entries []catalog.Entry, group string) []catalog.Entry {
	var filtered []catalog.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Group, group) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// printMarkdown renders md with glamour on a color terminal and prints it
// verbatim otherwise.
func printMarkdown(printer *output.Printer, md string) error {
	if !printer.Color() {
		printer.Print("%s", md)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return output.NewSystemErrorWithCause("creating markdown renderer: "+err.Error(), err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return output.NewSystemErrorWithCause("rendering markdown: "+err.Error(), err)
	}
	printer.Print("%s", rendered)
	return nil
}
