package clockify

import "net/url"

// Path helpers for the resource hierarchy. IDs are escaped so that an
// agent-supplied value can never rewrite the request path.

// WorkspacePath returns /workspaces/{ws} followed by any extra segments.
func WorkspacePath(workspaceID string, segments ...string) string {
	path := "/workspaces/" + escape(workspaceID)
	for _, seg := range segments {
		path += "/" + seg
	}
	return path
}

// ID escapes an identifier for use as a path segment.
func ID(id string) string {
	return escape(id)
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
