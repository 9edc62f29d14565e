// Package catalog describes the registered MCP tools for humans.
//
// It turns the tool list a server advertises into Entries with a flat
// parameter list, groups them by the Clockify record they operate on, and
// renders them as a markdown reference:
//
//	entries, err := catalog.FromTools(tools)
//	md := catalog.Markdown(entries)
package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Access levels derived from tool annotations.
const (
	AccessRead   = "read"
	AccessWrite  = "write"
	AccessDelete = "delete"
)

// groupOrder fixes the section order in rendered output.
var groupOrder = []string{
	"Users", "Workspaces", "Projects", "Time entries", "Timers", "Clients", "Tags", "Tasks", "Other",
}

// Entry is one tool in the catalog.
type Entry struct {
	Name        string  `json:"name"`
	Title       string  `json:"title,omitempty"`
	Group       string  `json:"group"`
	Access      string  `json:"access"`
	Description string  `json:"description"`
	Parameters  []Param `json:"parameters"`
}

// Param is one input property of a tool.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type inputSchema struct {
	Properties map[string]schemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

type schemaProperty struct {
	Type        any             `json:"type"`
	Description string          `json:"description"`
	Items       *schemaProperty `json:"items"`
}

// FromTools builds catalog entries sorted by group, then name.
func FromTools(tools []*mcp.Tool) ([]Entry, error) {
	entries := make([]Entry, 0, len(tools))
	for _, tool := range tools {
		params, err := parameters(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		entry := Entry{
			Name:        tool.Name,
			Group:       GroupOf(tool.Name),
			Access:      accessOf(tool.Annotations),
			Description: tool.Description,
			Parameters:  params,
		}
		if tool.Annotations != nil {
			entry.Title = tool.Annotations.Title
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := slices.Index(groupOrder, a.Group) - slices.Index(groupOrder, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// GroupOf names the record family a tool works on.
func GroupOf(tool string) string {
	switch {
	case strings.HasSuffix(tool, "_timer"):
		return "Timers"
	case strings.HasSuffix(tool, "_user") || strings.HasSuffix(tool, "_users"):
		return "Users"
	case strings.HasSuffix(tool, "_workspace") || strings.HasSuffix(tool, "_workspaces"):
		return "Workspaces"
	case strings.HasSuffix(tool, "_project") || strings.HasSuffix(tool, "_projects"):
		return "Projects"
	case strings.HasSuffix(tool, "_time_entry") || strings.HasSuffix(tool, "_time_entries"):
		return "Time entries"
	case strings.HasSuffix(tool, "_client") || strings.HasSuffix(tool, "_clients"):
		return "Clients"
	case strings.HasSuffix(tool, "_tag") || strings.HasSuffix(tool, "_tags"):
		return "Tags"
	case strings.HasSuffix(tool, "_task") || strings.HasSuffix(tool, "_tasks"):
		return "Tasks"
	default:
		return "Other"
	}
}

func accessOf(a *mcp.ToolAnnotations) string {
	switch {
	case a == nil:
		return AccessWrite
	case a.ReadOnlyHint:
		return AccessRead
	case a.DestructiveHint != nil && *a.DestructiveHint:
		return AccessDelete
	default:
		return AccessWrite
	}
}

// parameters flattens a tool's JSON input schema. The schema arrives as
// whatever the SDK holds (a typed schema on the server, a map on the client),
// so it is round-tripped through JSON.
func parameters(schema any) ([]Param, error) {
	if schema == nil {
		return nil, nil
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encoding input schema: %w", err)
	}
	var s inputSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding input schema: %w", err)
	}

	params := make([]Param, 0, len(s.Properties))
	for name, prop := range s.Properties {
		params = append(params, Param{
			Name:        name,
			Type:        prop.typeName(),
			Required:    slices.Contains(s.Required, name),
			Description: prop.Description,
		})
	}
	// Required first, then alphabetical.
	slices.SortFunc(params, func(a, b Param) int {
		if a.Required != b.Required {
			if a.Required {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return params, nil
}

func (p schemaProperty) typeName() string {
	var name string
	switch t := p.Type.(type) {
	case string:
		name = t
	case []any:
		var parts []string
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				parts = append(parts, s)
			}
		}
		name = strings.Join(parts, "|")
	}
	if name == "array" && p.Items != nil {
		if inner := p.Items.typeName(); inner != "" {
			return inner + "[]"
		}
	}
	if name == "" {
		return "any"
	}
	return name
}
