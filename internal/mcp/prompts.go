package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "log-work",
		Description: "Record a finished piece of work as a Clockify time entry",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "description",
				Description: "What was worked on",
				Required:    true,
			},
			{
				Name:        "project",
				Description: "Project name to file the entry under",
			},
		},
	}, getLogWorkPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "weekly-summary",
		Description: "Summarize tracked time for a week, grouped by project",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "week_start",
				Description: "First day of the week (YYYY-MM-DD); defaults to the current week",
			},
		},
	}, getWeeklySummaryPrompt)
}

func getLogWorkPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description := strings.TrimSpace(req.Params.Arguments["description"])
	if description == "" {
		return nil, errors.New("description argument is required")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Log this work in Clockify: %q.\n\n", description)
	if project := strings.TrimSpace(req.Params.Arguments["project"]); project != "" {
		fmt.Fprintf(&sb, "1. Call list_projects with name %q and pick the matching project ID.\n", project)
	} else {
		sb.WriteString("1. Ask which project this belongs to if it is not obvious, using list_projects to look it up.\n")
	}
	sb.WriteString("2. Work out start and end times (RFC3339). Ask if the duration is unclear.\n")
	sb.WriteString("3. Call create_time_entry with the description, projectId, start and end.\n")
	sb.WriteString("4. Confirm the created entry's ID and duration.")

	return userPrompt(sb.String()), nil
}

func getWeeklySummaryPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	week := "the current week (Monday to Sunday)"
	if start := strings.TrimSpace(req.Params.Arguments["week_start"]); start != "" {
		week = fmt.Sprintf("the seven days starting %s", start)
	}

	text := fmt.Sprintf(`Summarize my tracked time for %s.

1. Call list_time_entries with start and end covering that range and pageSize 200.
2. Call list_projects to map project IDs to names.
3. Report total hours, hours per project and the longest entries.
4. Point out days with no tracked time.`, week)

	return userPrompt(text), nil
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
