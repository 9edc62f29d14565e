package catalog

import (
	"fmt"
	"strings"
)

// Markdown renders entries as a reference document with one section per
// group and a parameter table per tool.
func Markdown(entries []Entry) string {
	var builder strings.Builder
	builder.WriteString("# Clockify MCP tools\n\n")
	fmt.Fprintf(&builder, "%d tools. Omitted `workspaceId` and `userId` resolve to the configured default or the API key's user.\n", len(entries))

	group := ""
	for _, entry := range entries {
		if entry.Group != group {
			group = entry.Group
			fmt.Fprintf(&builder, "\n## %s\n", group)
		}
		writeEntry(&builder, entry)
	}
	return builder.String()
}

func writeEntry(builder *strings.Builder, entry Entry) {
	fmt.Fprintf(builder, "\n### `%s`\n\n", entry.Name)
	if entry.Description != "" {
		builder.WriteString(entry.Description)
		builder.WriteString("\n\n")
	}
	fmt.Fprintf(builder, "*Access: %s*\n", entry.Access)

	if len(entry.Parameters) == 0 {
		builder.WriteString("\nNo parameters.\n")
		return
	}

	builder.WriteString("\n| Parameter | Type | Required | Description |\n")
	builder.WriteString("|---|---|---|---|\n")
	for _, p := range entry.Parameters {
		required := "no"
		if p.Required {
			required = "yes"
		}
		fmt.Fprintf(builder, "| `%s` | %s | %s | %s |\n", p.Name, p.Type, required, escapeCell(p.Description))
	}
}

// escapeCell keeps pipes and newlines from breaking a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
