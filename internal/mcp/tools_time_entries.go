package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ListTimeEntriesInput filters a user's time entries.
type ListTimeEntriesInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	UserID      string   `json:"userId,omitempty"      jsonschema:"user ID (defaults to the current user)"`
	Start       string   `json:"start,omitempty"       jsonschema:"only entries starting at or after this RFC3339 time"`
	End         string   `json:"end,omitempty"         jsonschema:"only entries starting before this RFC3339 time"`
	Description string   `json:"description,omitempty" jsonschema:"filter by description text"`
	ProjectID   string   `json:"projectId,omitempty"   jsonschema:"filter by project"`
	TaskID      string   `json:"taskId,omitempty"      jsonschema:"filter by task"`
	TagIDs      []string `json:"tagIds,omitempty"      jsonschema:"filter by tags"`
	InProgress  *bool    `json:"inProgress,omitempty"  jsonschema:"only the running entry (true)"`
	Page        int      `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int      `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// TimeEntryRefInput identifies a time entry.
type TimeEntryRefInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	TimeEntryID string `json:"timeEntryId"           jsonschema:"time entry ID"`
}

// CreateTimeEntryInput describes a new time entry. Omitting end starts a timer.
type CreateTimeEntryInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Start       string   `json:"start"                 jsonschema:"start time (RFC3339)"`
	End         string   `json:"end,omitempty"         jsonschema:"end time (RFC3339); omit to leave the timer running"`
	Description string   `json:"description,omitempty" jsonschema:"what was worked on"`
	ProjectID   string   `json:"projectId,omitempty"   jsonschema:"project ID"`
	TaskID      string   `json:"taskId,omitempty"      jsonschema:"task ID"`
	TagIDs      []string `json:"tagIds,omitempty"      jsonschema:"tag IDs"`
	Billable    *bool    `json:"billable,omitempty"    jsonschema:"mark the entry billable"`
}

// UpdateTimeEntryInput replaces a time entry. Clockify requires start on update.
type UpdateTimeEntryInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	TimeEntryID string   `json:"timeEntryId"           jsonschema:"time entry ID"`
	Start       string   `json:"start"                 jsonschema:"start time (RFC3339)"`
	End         string   `json:"end,omitempty"         jsonschema:"end time (RFC3339)"`
	Description string   `json:"description,omitempty" jsonschema:"what was worked on"`
	ProjectID   string   `json:"projectId,omitempty"   jsonschema:"project ID"`
	TaskID      string   `json:"taskId,omitempty"      jsonschema:"task ID"`
	TagIDs      []string `json:"tagIds,omitempty"      jsonschema:"tag IDs"`
	Billable    *bool    `json:"billable,omitempty"    jsonschema:"mark the entry billable"`
}

// StartTimerInput starts a running time entry.
type StartTimerInput struct {
	WorkspaceID string   `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Start       string   `json:"start,omitempty"       jsonschema:"start time (RFC3339); defaults to now"`
	Description string   `json:"description,omitempty" jsonschema:"what is being worked on"`
	ProjectID   string   `json:"projectId,omitempty"   jsonschema:"project ID"`
	TaskID      string   `json:"taskId,omitempty"      jsonschema:"task ID"`
	TagIDs      []string `json:"tagIds,omitempty"      jsonschema:"tag IDs"`
	Billable    *bool    `json:"billable,omitempty"    jsonschema:"mark the entry billable"`
}

// StopTimerInput stops the running time entry of a user.
type StopTimerInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	UserID      string `json:"userId,omitempty"      jsonschema:"user ID (defaults to the current user)"`
	End         string `json:"end,omitempty"         jsonschema:"end time (RFC3339); defaults to now"`
}

// RunningTimerInput identifies whose running timer to fetch.
type RunningTimerInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	UserID      string `json:"userId,omitempty"      jsonschema:"user ID (defaults to the current user)"`
}

// timeEntryBody is the JSON payload for time entry create and update.
type timeEntryBody struct {
	Start       string   `json:"start"`
	End         string   `json:"end,omitempty"`
	Billable    *bool    `json:"billable,omitempty"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	TaskID      string   `json:"taskId,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

// stopTimerBody is the JSON payload for stopping a timer.
type stopTimerBody struct {
	End string `json:"end"`
}

func registerTimeEntryTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_time_entries",
		Description: "List a user's time entries, newest first. Filters: start/end range, description, projectId, taskId, tagIds, inProgress; supports page/pageSize.",
		Annotations: readOnlyAnnotations("List time entries"),
	}, handleListTimeEntries(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_time_entry",
		Description: "Get a single time entry by ID.",
		Annotations: readOnlyAnnotations("Get time entry"),
	}, handleGetTimeEntry(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_time_entry",
		Description: "Create a time entry. Provide start and end for a completed entry, or only start to begin a running timer.",
		Annotations: writeAnnotations("Create time entry", false),
	}, handleCreateTimeEntry(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_time_entry",
		Description: "Replace the fields of an existing time entry. start is required by Clockify.",
		Annotations: writeAnnotations("Update time entry", true),
	}, handleUpdateTimeEntry(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_time_entry",
		Description: "Delete a time entry.",
		Annotations: destructiveAnnotations("Delete time entry"),
	}, handleDeleteTimeEntry(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_timer",
		Description: "Start a running timer now (or at start). Clockify stops any timer already running.",
		Annotations: writeAnnotations("Start timer", false),
	}, handleStartTimer(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stop_timer",
		Description: "Stop the running timer of a user. end defaults to the current time.",
		Annotations: writeAnnotations("Stop timer", false),
	}, handleStopTimer(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_running_timer",
		Description: "Get the currently running time entry of a user. Returns an empty list when no timer runs.",
		Annotations: readOnlyAnnotations("Get running timer"),
	}, handleGetRunningTimer(b))
}

func handleListTimeEntries(b *backend) mcp.ToolHandlerFor[ListTimeEntriesInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTimeEntriesInput) (*mcp.CallToolResult, any, error) {
		start, err := optionalTimestamp("start", input.Start)
		if err != nil {
			return nil, nil, err
		}
		end, err := optionalTimestamp("end", input.End)
		if err != nil {
			return nil, nil, err
		}
		ws, uid, err := b.resolver().workspaceAndUser(ctx, input.WorkspaceID, input.UserID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("start", start).
			Set("end", end).
			Set("description", input.Description).
			Set("project", input.ProjectID).
			Set("task", input.TaskID).
			SetList("tags", input.TagIDs).
			SetBool("in-progress", input.InProgress).
			Page(input.Page, input.PageSize)
		path := clockify.WorkspacePath(ws, "user", clockify.ID(uid), "time-entries")
		return respond(b.client.Get(ctx, path, query.Values()))
	}
}

func handleGetTimeEntry(b *backend) mcp.ToolHandlerFor[TimeEntryRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TimeEntryRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("timeEntryId", input.TimeEntryID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "time-entries", clockify.ID(input.TimeEntryID)), nil))
	}
}

func handleCreateTimeEntry(b *backend) mcp.ToolHandlerFor[CreateTimeEntryInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTimeEntryInput) (*mcp.CallToolResult, any, error) {
		body, err := buildTimeEntryBody(input.Start, input.End)
		if err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body.Billable = input.Billable
		body.Description = input.Description
		body.ProjectID = input.ProjectID
		body.TaskID = input.TaskID
		body.TagIDs = input.TagIDs
		return respond(b.client.Post(ctx, clockify.WorkspacePath(ws, "time-entries"), body))
	}
}

func handleUpdateTimeEntry(b *backend) mcp.ToolHandlerFor[UpdateTimeEntryInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTimeEntryInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("timeEntryId", input.TimeEntryID); err != nil {
			return nil, nil, err
		}
		body, err := buildTimeEntryBody(input.Start, input.End)
		if err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body.Billable = input.Billable
		body.Description = input.Description
		body.ProjectID = input.ProjectID
		body.TaskID = input.TaskID
		body.TagIDs = input.TagIDs
		path := clockify.WorkspacePath(ws, "time-entries", clockify.ID(input.TimeEntryID))
		return respond(b.client.Put(ctx, path, body))
	}
}

func handleDeleteTimeEntry(b *backend) mcp.ToolHandlerFor[TimeEntryRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TimeEntryRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("timeEntryId", input.TimeEntryID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		_, err = b.client.Delete(ctx, clockify.WorkspacePath(ws, "time-entries", clockify.ID(input.TimeEntryID)))
		return deleted("Time entry", input.TimeEntryID, err)
	}
}

func handleStartTimer(b *backend) mcp.ToolHandlerFor[StartTimerInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StartTimerInput) (*mcp.CallToolResult, any, error) {
		start, err := timestampOr("start", input.Start, b.client.Now())
		if err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := timeEntryBody{
			Start:       start,
			Billable:    input.Billable,
			Description: input.Description,
			ProjectID:   input.ProjectID,
			TaskID:      input.TaskID,
			TagIDs:      input.TagIDs,
		}
		return respond(b.client.Post(ctx, clockify.WorkspacePath(ws, "time-entries"), body))
	}
}

func handleStopTimer(b *backend) mcp.ToolHandlerFor[StopTimerInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StopTimerInput) (*mcp.CallToolResult, any, error) {
		end, err := timestampOr("end", input.End, b.client.Now())
		if err != nil {
			return nil, nil, err
		}
		ws, uid, err := b.resolver().workspaceAndUser(ctx, input.WorkspaceID, input.UserID)
		if err != nil {
			return nil, nil, err
		}
		path := clockify.WorkspacePath(ws, "user", clockify.ID(uid), "time-entries")
		return respond(b.client.Patch(ctx, path, stopTimerBody{End: end}))
	}
}

func handleGetRunningTimer(b *backend) mcp.ToolHandlerFor[RunningTimerInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RunningTimerInput) (*mcp.CallToolResult, any, error) {
		ws, uid, err := b.resolver().workspaceAndUser(ctx, input.WorkspaceID, input.UserID)
		if err != nil {
			return nil, nil, err
		}
		inProgress := true
		query := clockify.NewQuery().SetBool("in-progress", &inProgress)
		path := clockify.WorkspacePath(ws, "user", clockify.ID(uid), "time-entries")
		return respond(b.client.Get(ctx, path, query.Values()))
	}
}

// buildTimeEntryBody validates and normalizes the start/end pair.
func buildTimeEntryBody(start, end string) (timeEntryBody, error) {
	if err := requireField("start", start); err != nil {
		return timeEntryBody{}, err
	}
	startAt, err := parseTime("start", start)
	if err != nil {
		return timeEntryBody{}, err
	}
	body := timeEntryBody{Start: clockify.FormatTime(startAt)}
	if strings.TrimSpace(end) == "" {
		return body, nil
	}
	endAt, err := parseTime("end", end)
	if err != nil {
		return timeEntryBody{}, err
	}
	if endAt.Before(startAt) {
		return timeEntryBody{}, errEndBeforeStart
	}
	body.End = clockify.FormatTime(endAt)
	return body, nil
}
