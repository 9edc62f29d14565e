package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
)

// resolver fills in implicit user and workspace IDs for one tool call.
// The current user is fetched at most once, however many IDs depend on it.
type resolver struct {
	b    *backend
	user *clockify.User
}

func (b *backend) resolver() *resolver {
	return &resolver{b: b}
}

func (r *resolver) currentUser(ctx context.Context) (*clockify.User, error) {
	if r.user != nil {
		return r.user, nil
	}
	user, err := r.b.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current user: %w", err)
	}
	r.user = user
	return user, nil
}

// workspaceID returns explicit if set, then the configured default, then
// the current user's active workspace.
func (r *resolver) workspaceID(ctx context.Context, explicit string) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}
	if r.b.workspace != "" {
		return r.b.workspace, nil
	}
	user, err := r.currentUser(ctx)
	if err != nil {
		return "", err
	}
	if ws := user.Workspace(); ws != "" {
		return ws, nil
	}
	return "", fmt.Errorf("workspaceId is required: user %s has no active workspace", user.ID)
}

// userID returns explicit if set, otherwise the current user's ID.
func (r *resolver) userID(ctx context.Context, explicit string) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}
	user, err := r.currentUser(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// workspaceAndUser resolves both IDs, sharing a single user lookup.
func (r *resolver) workspaceAndUser(ctx context.Context, workspace, user string) (string, string, error) {
	ws, err := r.workspaceID(ctx, workspace)
	if err != nil {
		return "", "", err
	}
	uid, err := r.userID(ctx, user)
	if err != nil {
		return "", "", err
	}
	return ws, uid, nil
}
