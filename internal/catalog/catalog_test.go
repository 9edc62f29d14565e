package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
	clockifymcp "github.com/patrikmichi/clockify-mcp/internal/mcp"
)

func boolPtr(b bool) *bool { return &b }

func testTools() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "delete_tag",
			Description: "Delete a tag.",
			Annotations: &mcp.ToolAnnotations{Title: "Delete tag", DestructiveHint: boolPtr(true)},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"workspaceId": map[string]any{"type": "string", "description": "workspace ID"},
					"tagId":       map[string]any{"type": "string", "description": "tag ID"},
				},
				"required": []any{"tagId"},
			},
		},
		{
			Name:        "list_projects",
			Description: "List projects.",
			Annotations: &mcp.ToolAnnotations{Title: "List projects", ReadOnlyHint: true},
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"archived":  map[string]any{"type": []any{"null", "boolean"}},
					"clientIds": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		{
			Name:        "get_current_user",
			Description: "Get the user.",
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
			InputSchema: map[string]any{"type": "object"},
		},
	}
}

func TestFromTools(t *testing.T) {
	entries, err := FromTools(testTools())
	if err != nil {
		t.Fatalf("FromTools() error = %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := "get_current_user,list_projects,delete_tag"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}

	tag := entries[2]
	if tag.Access != AccessDelete || tag.Group != "Tags" || tag.Title != "Delete tag" {
		t.Errorf("delete_tag entry = %+v", tag)
	}
	if len(tag.Parameters) != 2 || tag.Parameters[0].Name != "tagId" || !tag.Parameters[0].Required {
		t.Errorf("required parameter should sort first: %+v", tag.Parameters)
	}

	projects := entries[1]
	if projects.Access != AccessRead {
		t.Errorf("list_projects access = %s", projects.Access)
	}
	types := map[string]string{}
	for _, p := range projects.Parameters {
		types[p.Name] = p.Type
	}
	if types["archived"] != "boolean" || types["clientIds"] != "string[]" {
		t.Errorf("parameter types = %v", types)
	}

	if len(entries[0].Parameters) != 0 {
		t.Errorf("get_current_user should have no parameters, got %+v", entries[0].Parameters)
	}
}

func TestGroupOf(t *testing.T) {
	tests := map[string]string{
		"get_current_user":     "Users",
		"list_workspace_users": "Users",
		"get_workspace":        "Workspaces",
		"list_projects":        "Projects",
		"create_time_entry":    "Time entries",
		"list_time_entries":    "Time entries",
		"start_timer":          "Timers",
		"get_running_timer":    "Timers",
		"update_client":        "Clients",
		"list_tags":            "Tags",
		"delete_task":          "Tasks",
		"frobnicate":           "Other",
	}
	for tool, want := range tests {
		if got := GroupOf(tool); got != want {
			t.Errorf("GroupOf(%q) = %q, want %q", tool, got, want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	entries, err := FromTools(testTools())
	if err != nil {
		t.Fatal(err)
	}
	md := Markdown(entries)

	for _, want := range []string{
		"# Clockify MCP tools",
		"3 tools.",
		"## Users",
		"### `get_current_user`",
		"No parameters.",
		"## Tags",
		"*Access: delete*",
		"| `tagId` | string | yes | tag ID |",
		"| `workspaceId` | string | no | workspace ID |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Index(md, "## Users") > strings.Index(md, "## Projects") {
		t.Error("Users section should precede Projects")
	}
}

func TestEscapeCell(t *testing.T) {
	if got := escapeCell("a|b\nc"); got != `a\|b c` {
		t.Errorf("escapeCell() = %q", got)
	}
}

func TestFromTools_RegisteredServer(t *testing.T) {
	server := clockifymcp.NewServer(clockify.New(""), clockifymcp.Options{})
	session, err := clockifymcp.ConnectInProcess(context.Background(), server, "test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := FromTools(res.Tools)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(res.Tools) {
		t.Fatalf("entries = %d, tools = %d", len(entries), len(res.Tools))
	}

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
		if e.Group == "Other" {
			t.Errorf("%s has no group", e.Name)
		}
	}

	create := byName["create_time_entry"]
	if create.Access != AccessWrite {
		t.Errorf("create_time_entry access = %s", create.Access)
	}
	var sawStart bool
	for _, p := range create.Parameters {
		if p.Name == "start" {
			sawStart = true
			if !p.Required || p.Type != "string" {
				t.Errorf("start parameter = %+v", p)
			}
		}
		if p.Name == "tagIds" && p.Type != "string[]" {
			t.Errorf("tagIds type = %s", p.Type)
		}
	}
	if !sawStart {
		t.Error("create_time_entry should expose start")
	}
}
