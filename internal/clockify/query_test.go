package clockify

import (
	"testing"
	"time"
)

func TestQuery_SkipsZeroValues(t *testing.T) {
	q := NewQuery().
		Set("name", "").
		Set("description", "   ").
		SetInt("page", 0).
		SetBool("archived", nil).
		SetList("tags", []string{"", " "})

	if got := q.Values(); got != nil {
		t.Errorf("Values() = %v, want nil", got)
	}
}

func TestQuery_SetsValues(t *testing.T) {
	archived := false
	q := NewQuery().
		Set("name", "Website").
		SetBool("archived", &archived).
		SetList("clients", []string{"c1", " c2 ", ""}).
		Page(2, 25)

	values := q.Values()
	tests := []struct {
		key  string
		want string
	}{
		{"name", "Website"},
		{"archived", "false"},
		{"clients", "c1,c2"},
		{"page", "2"},
		{"page-size", "25"},
	}
	for _, tt := range tests {
		if got := values.Get(tt.key); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2026, 3, 4, 10, 30, 15, 999, loc)

	if got, want := FormatTime(ts), "2026-03-04T09:30:15Z"; got != want {
		t.Errorf("FormatTime() = %q, want %q", got, want)
	}
}

func TestWorkspacePath(t *testing.T) {
	tests := []struct {
		name      string
		workspace string
		segments  []string
		want      string
	}{
		{"bare", "ws1", nil, "/workspaces/ws1"},
		{"nested", "ws1", []string{"projects", ID("p1"), "tasks"}, "/workspaces/ws1/projects/p1/tasks"},
		{"escapes traversal", "../admin", []string{"tags", ID("a/b")}, "/workspaces/..%2Fadmin/tags/a%2Fb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkspacePath(tt.workspace, tt.segments...); got != tt.want {
				t.Errorf("WorkspacePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
