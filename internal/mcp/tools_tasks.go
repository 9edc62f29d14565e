package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ListTasksInput filters the tasks of a project.
type ListTasksInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string `json:"projectId"             jsonschema:"project ID"`
	Name        string `json:"name,omitempty"        jsonschema:"filter by task name"`
	IsActive    *bool  `json:"isActive,omitempty"    jsonschema:"only active (true) or only done (false) tasks"`
	Page        int    `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int    `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// TaskRefInput identifies a task within its project.
type TaskRefInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string `json:"projectId"             jsonschema:"project ID"`
	TaskID      string `json:"taskId"                jsonschema:"task ID"`
}

// CreateTaskInput describes a new task.
type CreateTaskInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string   `json:"projectId"             jsonschema:"project ID"`
	Name        string   `json:"name"                  jsonschema:"task name"`
	AssigneeIDs []string `json:"assigneeIds,omitempty" jsonschema:"user IDs assigned to the task"`
	Estimate    string   `json:"estimate,omitempty"    jsonschema:"ISO 8601 duration estimate such as PT2H30M"`
	Status      string   `json:"status,omitempty"      jsonschema:"ACTIVE or DONE"`
}

// UpdateTaskInput changes an existing task.
type UpdateTaskInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ProjectID   string   `json:"projectId"             jsonschema:"project ID"`
	TaskID      string   `json:"taskId"                jsonschema:"task ID"`
	Name        string   `json:"name"                  jsonschema:"task name (Clockify requires it on update)"`
	AssigneeIDs []string `json:"assigneeIds,omitempty" jsonschema:"user IDs assigned to the task"`
	Estimate    string   `json:"estimate,omitempty"    jsonschema:"ISO 8601 duration estimate such as PT2H30M"`
	Status      string   `json:"status,omitempty"      jsonschema:"ACTIVE or DONE"`
}

type taskBody struct {
	Name        string   `json:"name"`
	AssigneeIDs []string `json:"assigneeIds,omitempty"`
	Estimate    string   `json:"estimate,omitempty"`
	Status      string   `json:"status,omitempty"`
}

func registerTaskTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks of a project, optionally filtered by name or active state.",
		Annotations: readOnlyAnnotations("List tasks"),
	}, handleListTasks(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by ID.",
		Annotations: readOnlyAnnotations("Get task"),
	}, handleGetTask(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task in a project.",
		Annotations: writeAnnotations("Create task", false),
	}, handleCreateTask(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update a task's name, assignees, estimate or status.",
		Annotations: writeAnnotations("Update task", true),
	}, handleUpdateTask(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task from a project.",
		Annotations: destructiveAnnotations("Delete task"),
	}, handleDeleteTask(b))
}

// taskPath builds /workspaces/{ws}/projects/{pid}/tasks[/{id}].
func taskPath(ws, projectID, taskID string) string {
	if taskID == "" {
		return clockify.WorkspacePath(ws, "projects", clockify.ID(projectID), "tasks")
	}
	return clockify.WorkspacePath(ws, "projects", clockify.ID(projectID), "tasks", clockify.ID(taskID))
}

func handleListTasks(b *backend) mcp.ToolHandlerFor[ListTasksInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("projectId", input.ProjectID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("name", input.Name).
			SetBool("is-active", input.IsActive).
			Page(input.Page, input.PageSize)
		return respond(b.client.Get(ctx, taskPath(ws, input.ProjectID, ""), query.Values()))
	}
}

func handleGetTask(b *backend) mcp.ToolHandlerFor[TaskRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireTaskRef(input.ProjectID, input.TaskID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, taskPath(ws, input.ProjectID, input.TaskID), nil))
	}
}

func handleCreateTask(b *backend) mcp.ToolHandlerFor[CreateTaskInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("projectId", input.ProjectID); err != nil {
			return nil, nil, err
		}
		if err := requireField("name", input.Name); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := taskBody{
			Name:        input.Name,
			AssigneeIDs: input.AssigneeIDs,
			Estimate:    input.Estimate,
			Status:      input.Status,
		}
		return respond(b.client.Post(ctx, taskPath(ws, input.ProjectID, ""), body))
	}
}

func handleUpdateTask(b *backend) mcp.ToolHandlerFor[UpdateTaskInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, any, error) {
		if err := requireTaskRef(input.ProjectID, input.TaskID); err != nil {
			return nil, nil, err
		}
		if err := requireField("name", input.Name); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := taskBody{
			Name:        input.Name,
			AssigneeIDs: input.AssigneeIDs,
			Estimate:    input.Estimate,
			Status:      input.Status,
		}
		return respond(b.client.Put(ctx, taskPath(ws, input.ProjectID, input.TaskID), body))
	}
}

func handleDeleteTask(b *backend) mcp.ToolHandlerFor[TaskRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireTaskRef(input.ProjectID, input.TaskID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		_, err = b.client.Delete(ctx, taskPath(ws, input.ProjectID, input.TaskID))
		return deleted("Task", input.TaskID, err)
	}
}

func requireTaskRef(projectID, taskID string) error {
	if err := requireField("projectId", projectID); err != nil {
		return err
	}
	return requireField("taskId", taskID)
}
