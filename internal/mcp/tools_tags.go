package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ListTagsInput filters the tags of a workspace.
type ListTagsInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string `json:"name,omitempty"        jsonschema:"filter by tag name"`
	Archived    *bool  `json:"archived,omitempty"    jsonschema:"only archived (true) or only active (false) tags"`
	Page        int    `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int    `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// TagRefInput identifies a tag.
type TagRefInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	TagID       string `json:"tagId"                 jsonschema:"tag ID"`
}

// CreateTagInput describes a new tag.
type CreateTagInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string `json:"name"                  jsonschema:"tag name"`
}

// UpdateTagInput renames or archives a tag.
type UpdateTagInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	TagID       string `json:"tagId"                 jsonschema:"tag ID"`
	Name        string `json:"name,omitempty"        jsonschema:"new tag name"`
	Archived    *bool  `json:"archived,omitempty"    jsonschema:"archive (true) or restore (false) the tag"`
}

type tagBody struct {
	Name     string `json:"name,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
}

func registerTagTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List tags in a workspace, optionally filtered by name or archived state.",
		Annotations: readOnlyAnnotations("List tags"),
	}, handleListTags(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_tag",
		Description: "Get a single tag by ID.",
		Annotations: readOnlyAnnotations("Get tag"),
	}, handleGetTag(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_tag",
		Description: "Create a tag in a workspace.",
		Annotations: writeAnnotations("Create tag", false),
	}, handleCreateTag(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_tag",
		Description: "Rename, archive or restore a tag.",
		Annotations: writeAnnotations("Update tag", true),
	}, handleUpdateTag(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_tag",
		Description: "Delete a tag.",
		Annotations: destructiveAnnotations("Delete tag"),
	}, handleDeleteTag(b))
}

func handleListTags(b *backend) mcp.ToolHandlerFor[ListTagsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTagsInput) (*mcp.CallToolResult, any, error) {
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("name", input.Name).
			SetBool("archived", input.Archived).
			Page(input.Page, input.PageSize)
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "tags"), query.Values()))
	}
}

func handleGetTag(b *backend) mcp.ToolHandlerFor[TagRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("tagId", input.TagID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "tags", clockify.ID(input.TagID)), nil))
	}
}

func handleCreateTag(b *backend) mcp.ToolHandlerFor[CreateTagInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTagInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("name", input.Name); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Post(ctx, clockify.WorkspacePath(ws, "tags"), tagBody{Name: input.Name}))
	}
}

func handleUpdateTag(b *backend) mcp.ToolHandlerFor[UpdateTagInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTagInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("tagId", input.TagID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := tagBody{Name: input.Name, Archived: input.Archived}
		return respond(b.client.Put(ctx, clockify.WorkspacePath(ws, "tags", clockify.ID(input.TagID)), body))
	}
}

func handleDeleteTag(b *backend) mcp.ToolHandlerFor[TagRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("tagId", input.TagID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		_, err = b.client.Delete(ctx, clockify.WorkspacePath(ws, "tags", clockify.ID(input.TagID)))
		return deleted("Tag", input.TagID, err)
	}
}
