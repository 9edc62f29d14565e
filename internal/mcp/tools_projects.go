package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ListProjectsInput filters the projects of a workspace.
type ListProjectsInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string   `json:"name,omitempty"        jsonschema:"filter by project name"`
	Archived    *bool    `json:"archived,omitempty"    jsonschema:"only archived (true) or only active (false) projects"`
	Billable    *bool    `json:"billable,omitempty"    jsonschema:"only billable (true) or non-billable (false) projects"`
	ClientIDs   []string `json:"clientIds,omitempty"   jsonschema:"only projects of these clients"`
	Page        int      `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int      `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// ProjectRefInput identifies a project.
type ProjectRefInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string `json:"projectId"             jsonschema:"project ID"`
}

// CreateProjectInput describes a new project.
type CreateProjectInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string `json:"name"                  jsonschema:"project name"`
	ClientID    string `json:"clientId,omitempty"    jsonschema:"client the project belongs to"`
	IsPublic    *bool  `json:"isPublic,omitempty"    jsonschema:"visible to all workspace members"`
	Billable    *bool  `json:"billable,omitempty"    jsonschema:"time on this project is billable"`
	Color       string `json:"color,omitempty"       jsonschema:"hex color such as #03A9F4"`
	Note        string `json:"note,omitempty"        jsonschema:"free-form project note"`
}

// UpdateProjectInput changes an existing project. Omitted fields are not sent.
type UpdateProjectInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string `json:"projectId"             jsonschema:"project ID"`
	Name        string `json:"name,omitempty"        jsonschema:"new project name"`
	ClientID    string `json:"clientId,omitempty"    jsonschema:"new client ID"`
	IsPublic    *bool  `json:"isPublic,omitempty"    jsonschema:"visible to all workspace members"`
	Billable    *bool  `json:"billable,omitempty"    jsonschema:"time on this project is billable"`
	Color       string `json:"color,omitempty"       jsonschema:"hex color such as #03A9F4"`
	Note        string `json:"note,omitempty"        jsonschema:"free-form project note"`
	Archived    *bool  `json:"archived,omitempty"    jsonschema:"archive (true) or restore (false) the project"`
}

// projectBody is the JSON payload for project create and update.
type projectBody struct {
	Name     string `json:"name,omitempty"`
	ClientID string `json:"clientId,omitempty"`
	IsPublic *bool  `json:"isPublic,omitempty"`
	Billable *bool  `json:"billable,omitempty"`
	Color    string `json:"color,omitempty"`
	Note     string `json:"note,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
}

func registerProjectTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List projects in a workspace. Filters: name, archived, billable, clientIds; supports page/pageSize.",
		Annotations: readOnlyAnnotations("List projects"),
	}, handleListProjects(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by ID.",
		Annotations: readOnlyAnnotations("Get project"),
	}, handleGetProject(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a project in a workspace.",
		Annotations: writeAnnotations("Create project", false),
	}, handleCreateProject(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_project",
		Description: "Update a project's name, client, visibility, billing, color, note or archived state.",
		Annotations: writeAnnotations("Update project", true),
	}, handleUpdateProject(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project. Clockify only deletes archived projects.",
		Annotations: destructiveAnnotations("Delete project"),
	}, handleDeleteProject(b))
}

func handleListProjects(b *backend) mcp.ToolHandlerFor[ListProjectsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, any, error) {
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("name", input.Name).
			SetBool("archived", input.Archived).
			SetBool("billable", input.Billable).
			SetList("clients", input.ClientIDs).
			Page(input.Page, input.PageSize)
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "projects"), query.Values()))
	}
}

func handleGetProject(b *backend) mcp.ToolHandlerFor[ProjectRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("projectId", input.ProjectID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "projects", clockify.ID(input.ProjectID)), nil))
	}
}

func handleCreateProject(b *backend) mcp.ToolHandlerFor[CreateProjectInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("name", input.Name); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := projectBody{
			Name:     input.Name,
			ClientID: input.ClientID,
			IsPublic: input.IsPublic,
			Billable: input.Billable,
			Color:    input.Color,
			Note:     input.Note,
		}
		return respond(b.client.Post(ctx, clockify.WorkspacePath(ws, "projects"), body))
	}
}

func handleUpdateProject(b *backend) mcp.ToolHandlerFor[UpdateProjectInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateProjectInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("projectId", input.ProjectID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := projectBody{
			Name:     input.Name,
			ClientID: input.ClientID,
			IsPublic: input.IsPublic,
			Billable: input.Billable,
			Color:    input.Color,
			Note:     input.Note,
			Archived: input.Archived,
		}
		return respond(b.client.Put(ctx, clockify.WorkspacePath(ws, "projects", clockify.ID(input.ProjectID)), body))
	}
}

func handleDeleteProject(b *backend) mcp.ToolHandlerFor[ProjectRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("projectId", input.ProjectID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		_, err = b.client.Delete(ctx, clockify.WorkspacePath(ws, "projects", clockify.ID(input.ProjectID)))
		return deleted("Project", input.ProjectID, err)
	}
}
