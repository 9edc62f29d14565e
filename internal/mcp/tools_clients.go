package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// ListClientsInput filters the clients of a workspace.
type ListClientsInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string `json:"name,omitempty"        jsonschema:"filter by client name"`
	Archived    *bool  `json:"archived,omitempty"    jsonschema:"only archived (true) or only active (false) clients"`
	Page        int    `json:"page,omitempty"        jsonschema:"page number (1-based)"`
	PageSize    int    `json:"pageSize,omitempty"    jsonschema:"results per page"`
}

// ClientRefInput identifies a client.
type ClientRefInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ClientID    string `json:"clientId"              jsonschema:"client ID"`
}

// CreateClientInput describes a new client.
type CreateClientInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	Name        string `json:"name"                  jsonschema:"client name"`
	Note        string `json:"note,omitempty"        jsonschema:"free-form note"`
}

// UpdateClientInput changes an existing client.
type UpdateClientInput struct {
	WorkspaceID string `json:"workspaceId,omitempty" jsonschema:"workspace ID (defaults to the active workspace)"`
	ClientID    string `json:"clientId"              jsonschema:"client ID"`
	Name        string `json:"name,omitempty"        jsonschema:"new client name"`
	Note        string `json:"note,omitempty"        jsonschema:"new note"`
	Archived    *bool  `json:"archived,omitempty"    jsonschema:"archive (true) or restore (false) the client"`
}

type clientBody struct {
	Name     string `json:"name,omitempty"`
	Note     string `json:"note,omitempty"`
	Archived *bool  `json:"archived,omitempty"`
}

func registerClientTools(server *mcp.Server, b *backend) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_clients",
		Description: "List clients in a workspace, optionally filtered by name or archived state.",
		Annotations: readOnlyAnnotations("List clients"),
	}, handleListClients(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client",
		Description: "Get a single client by ID.",
		Annotations: readOnlyAnnotations("Get client"),
	}, handleGetClient(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_client",
		Description: "Create a client in a workspace.",
		Annotations: writeAnnotations("Create client", false),
	}, handleCreateClient(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_client",
		Description: "Rename, annotate, archive or restore a client.",
		Annotations: writeAnnotations("Update client", true),
	}, handleUpdateClient(b))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client.",
		Annotations: destructiveAnnotations("Delete client"),
	}, handleDeleteClient(b))
}

func handleListClients(b *backend) mcp.ToolHandlerFor[ListClientsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListClientsInput) (*mcp.CallToolResult, any, error) {
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		query := clockify.NewQuery().
			Set("name", input.Name).
			SetBool("archived", input.Archived).
			Page(input.Page, input.PageSize)
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "clients"), query.Values()))
	}
}

func handleGetClient(b *backend) mcp.ToolHandlerFor[ClientRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClientRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("clientId", input.ClientID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		return respond(b.client.Get(ctx, clockify.WorkspacePath(ws, "clients", clockify.ID(input.ClientID)), nil))
	}
}

func handleCreateClient(b *backend) mcp.ToolHandlerFor[CreateClientInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateClientInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("name", input.Name); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := clientBody{Name: input.Name, Note: input.Note}
		return respond(b.client.Post(ctx, clockify.WorkspacePath(ws, "clients"), body))
	}
}

func handleUpdateClient(b *backend) mcp.ToolHandlerFor[UpdateClientInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateClientInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("clientId", input.ClientID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		body := clientBody{Name: input.Name, Note: input.Note, Archived: input.Archived}
		return respond(b.client.Put(ctx, clockify.WorkspacePath(ws, "clients", clockify.ID(input.ClientID)), body))
	}
}

func handleDeleteClient(b *backend) mcp.ToolHandlerFor[ClientRefInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ClientRefInput) (*mcp.CallToolResult, any, error) {
		if err := requireField("clientId", input.ClientID); err != nil {
			return nil, nil, err
		}
		ws, err := b.resolver().workspaceID(ctx, input.WorkspaceID)
		if err != nil {
			return nil, nil, err
		}
		_, err = b.client.Delete(ctx, clockify.WorkspacePath(ws, "clients", clockify.ID(input.ClientID)))
		return deleted("Client", input.ClientID, err)
	}
}
