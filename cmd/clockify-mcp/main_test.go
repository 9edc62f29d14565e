package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/output"
)

const testUserJSON = `{"id":"u1","name":"Ada Lovelace","email":"ada@example.com","activeWorkspace":"ws1","defaultWorkspace":"ws0"}`

// isolate points config, env and home lookups at a temp directory so tests
// never read the developer's settings.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CLOCKIFY_MCP_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"CLOCKIFY_API_KEY", "CLOCKIFY_BASE_URL", "CLOCKIFY_WORKSPACE_ID",
		"CLOCKIFY_LOG_LEVEL", "CLOCKIFY_LOG_FORMAT", "CLOCKIFY_TIMEOUT", "CLOCKIFY_HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// upstream is a fake Clockify API keyed by "METHOD path".
type upstream struct {
	srv *httptest.Server

	mu       sync.Mutex
	routes   map[string]upstreamRoute
	requests []*http.Request
	bodies   []string
}

type upstreamRoute struct {
	status int
	body   string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{routes: map[string]upstreamRoute{
		"GET /user": {status: http.StatusOK, body: testUserJSON},
	}}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.requests = append(u.requests, r)
		u.bodies = append(u.bodies, string(body))
		route, ok := u.routes[r.Method+" "+r.URL.Path]
		u.mu.Unlock()

		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		_, _ = io.WriteString(w, route.body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) handle(method, path string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[method+" "+path] = upstreamRoute{status: status, body: body}
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func (u *upstream) last() (*http.Request, string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.requests) == 0 {
		return nil, ""
	}
	i := len(u.requests) - 1
	return u.requests[i], u.bodies[i]
}

// flags returns the connection flags pointing at the fake upstream.
func (u *upstream) flags(apiKey string) []string {
	return []string{"--api-key", apiKey, "--base-url", u.srv.URL}
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("parsing JSON: %v\nOutput: %s", err, s)
	}
	return m
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "clockify-mcp") {
		t.Errorf("--version output should contain 'clockify-mcp': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{
		"clockify-mcp",
		"Usage:",
		"Server Commands:",
		"Tool Commands:",
		"Admin Commands:",
		"serve",
		"--json",
		"--api-key",
		"--workspace",
	} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q", expected)
		}
	}
}

func TestRootCommand_JSONWithoutSubcommand(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "--json")
	if err == nil {
		t.Fatal("expected error without subcommand")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}

	result := decodeJSON(t, stdout)
	if msg, _ := result["error"].(string); !strings.Contains(msg, "no command specified") {
		t.Errorf("error = %v", result["error"])
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	want := map[string]string{
		"serve":  "server",
		"tools":  "tools",
		"call":   "tools",
		"whoami": "tools",
		"doctor": "admin",
		"config": "admin",
		"setup":  "admin",
	}

	found := map[string]*cobra.Command{}
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = sub
	}
	for name, group := range want {
		sub, ok := found[name]
		if !ok {
			t.Errorf("missing subcommand %q", name)
			continue
		}
		if sub.GroupID != group {
			t.Errorf("%s group = %q, want %q", name, sub.GroupID, group)
		}
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "auto on buffer", args: nil, want: false},
		{name: "always", args: []string{"--color", "always"}, want: true},
		{name: "never", args: []string{"--color", "never"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			if err := root.PersistentFlags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := useColor(root); got != tt.want {
				t.Errorf("useColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { version, commit, date = origVersion, origCommit, origDate })

	version, commit, date = "0.3.0", "none", "unknown"
	if got := buildVersion(); got != "0.3.0" {
		t.Errorf("buildVersion() = %q", got)
	}

	commit, date = "abcdef0123456", "2026-01-02"
	if got := buildVersion(); got != "0.3.0 (abcdef0, 2026-01-02)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
