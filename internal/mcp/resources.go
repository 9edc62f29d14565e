package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

const (
	currentUserURI      = "clockify://user/me"
	projectsURIPrefix   = "clockify://workspaces/"
	projectsURISuffix   = "/projects"
	projectsTemplateURI = projectsURIPrefix + "{workspaceId}" + projectsURISuffix
	jsonMIMEType        = "application/json"
)

func registerResources(server *mcp.Server, b *backend) {
	server.AddResource(&mcp.Resource{
		URI:         currentUserURI,
		Name:        "current-user",
		Description: "The Clockify user that owns the API key",
		MIMEType:    jsonMIMEType,
	}, handleCurrentUserResource(b))

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: projectsTemplateURI,
		Name:        "workspace-projects",
		Description: "Projects of a Clockify workspace",
		MIMEType:    jsonMIMEType,
	}, handleProjectsResource(b))
}

func handleCurrentUserResource(b *backend) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		body, err := b.client.Get(ctx, "/user", nil)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, body), nil
	}
}

func handleProjectsResource(b *backend) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		ws, ok := workspaceFromProjectsURI(req.Params.URI)
		if !ok {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		body, err := b.client.Get(ctx, clockify.WorkspacePath(ws, "projects"), nil)
		if err != nil {
			if clockify.IsNotFound(err) {
				return nil, mcp.ResourceNotFoundError(req.Params.URI)
			}
			return nil, err
		}
		return jsonResource(req.Params.URI, body), nil
	}
}

// workspaceFromProjectsURI extracts {workspaceId} from
// clockify://workspaces/{workspaceId}/projects.
func workspaceFromProjectsURI(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, projectsURIPrefix)
	if !ok {
		return "", false
	}
	ws, ok := strings.CutSuffix(rest, projectsURISuffix)
	if !ok || ws == "" || strings.Contains(ws, "/") {
		return "", false
	}
	return ws, true
}

func jsonResource(uri string, body []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: jsonMIMEType,
				Text:     prettyJSON(body),
			},
		},
	}
}
