package mcp

import (
	"context"
	"net/http"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadResource_CurrentUser(t *testing.T) {
	up := newFakeUpstream(t)
	session := newSession(t, up)

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: currentUserURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	assert.Equal(t, currentUserURI, res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.JSONEq(t, testUserJSON, res.Contents[0].Text)
}

func TestReadResource_WorkspaceProjects(t *testing.T) {
	up := newFakeUpstream(t)
	up.handle(http.MethodGet, "/workspaces/ws1/projects", http.StatusOK, `[{"id":"p1"}]`)
	session := newSession(t, up)

	uri := "clockify://workspaces/ws1/projects"
	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	assert.JSONEq(t, `[{"id":"p1"}]`, res.Contents[0].Text)
	assert.Equal(t, 0, up.count(http.MethodGet, "/user"))
}

func TestWorkspaceFromProjectsURI(t *testing.T) {
	tests := []struct {
		uri    string
		want   string
		wantOK bool
	}{
		{uri: "clockify://workspaces/ws1/projects", want: "ws1", wantOK: true},
		{uri: "clockify://workspaces//projects"},
		{uri: "clockify://workspaces/ws1/tags"},
		{uri: "clockify://workspaces/a/b/projects"},
		{uri: "memo://workspaces/ws1/projects"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, ok := workspaceFromProjectsURI(tt.uri)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("workspaceFromProjectsURI(%q) = (%q, %v), want (%q, %v)", tt.uri, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestListPrompts(t *testing.T) {
	up := newFakeUpstream(t)
	session := newSession(t, up)

	res, err := session.ListPrompts(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Prompts))
	for _, p := range res.Prompts {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"log-work", "weekly-summary"}, names)
}

func TestGetPrompt_LogWork(t *testing.T) {
	up := newFakeUpstream(t)
	session := newSession(t, up)

	res, err := session.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "log-work",
		Arguments: map[string]string{"description": "fixed login bug", "project": "Website"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"fixed login bug"`)
	assert.Contains(t, text.Text, `list_projects with name "Website"`)
	assert.Contains(t, text.Text, "create_time_entry")
	assert.Empty(t, up.all())
}

func TestGetPrompt_WeeklySummary(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		want string
	}{
		{name: "default week", args: map[string]string{}, want: "the current week"},
		{name: "explicit start", args: map[string]string{"week_start": "2026-03-02"}, want: "starting 2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := getWeeklySummaryPrompt(context.Background(), &mcp.GetPromptRequest{
				Params: &mcp.GetPromptParams{Name: "weekly-summary", Arguments: tt.args},
			})
			require.NoError(t, err)
			text := res.Messages[0].Content.(*mcp.TextContent).Text
			assert.Contains(t, text, tt.want)
			assert.Contains(t, text, "list_time_entries")
		})
	}
}

func TestGetPrompt_LogWorkRequiresDescription(t *testing.T) {
	_, err := getLogWorkPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: "log-work", Arguments: map[string]string{}},
	})
	require.Error(t, err)
}
