package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// --- Users ---

// GetCurrentUserInput takes no parameters.
type GetCurrentUserInput struct{}

// ListWorkspaceUsersInput filters the members of a workspace.
type ListWorkspaceUsersInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Email       string `json:"email,omitempty"       jsonschema:"filter by email address"`
	Name        string `json:"name,omitempty"        jsonschema:"filter by name"`
	Status      string `json:"status,omitempty"      jsonschema:"membership status: PENDING, ACTIVE, DECLINED, INACTIVE or ALL"`
	Page        int    `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int    `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// --- Workspaces ---

// ListWorkspacesInput takes no parameters.
type ListWorkspacesInput struct{}

// GetWorkspaceInput identifies a workspace.
type GetWorkspaceInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
}

func registerUserTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_user",
		Description: "Get the Clockify user that owns the API key, including their active and default workspace IDs.",
		Annotations: readOnlyAnnotations("Get current user"),
	}, handleGetCurrentUser(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_workspace_users",
		Description: "List the members of a workspace, optionally filtered by email, name or status.",
		Annotations: readOnlyAnnotations("List workspace users"),
	}, handleListWorkspaceUsers(b))
}

func registerWorkspaceTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_workspaces",
		Description: "List all workspaces the user belongs to.",
		Annotations: readOnlyAnnotations("List workspaces"),
	}, handleListWorkspaces(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_workspace",
		Description: "Get a single workspace with its settings.",
		Annotations: readOnlyAnnotations("Get workspace"),
	}, handleGetWorkspace(b))
}

func handleGetCurrentUser(b *backend) mcp.ToolHandlerFor[GetCurrentUserInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetCurrentUserInput) (*mcp.CallToolResult, any, error) {
		return respond(b.client.Get(ctx, "/user", nil))
	}
}

func handleListWorkspaceUsers(b *backend) mcp.ToolHandlerFor[ListWorkspaceUsersInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListWorkspaceUsersInput) (*mcp.CallToolResult, any, error) {
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("email", input.Email).
			Set("name", input.Name).
			Set("status", input.Status).
			Page(input.Page, input.PageSize)
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "users"), query.Values()))
	}
}

func handleListWorkspaces(b *backend) mcp.ToolHandlerFor[ListWorkspacesInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListWorkspacesInput) (*mcp.CallToolResult, any, error) {
		return respond(b.client.Get(ctx, "/workspaces", nil))
	}
}

func handleGetWorkspace(b *backend) mcp.ToolHandlerFor[GetWorkspaceInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetWorkspaceInput) (*mcp.CallToolResult, any, error) {
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws), nil))
	}
}
