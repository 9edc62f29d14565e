package setup

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// Target is an MCP client whose config file can list this server.
type Target interface {
	// Name returns the identifier used on the command line (e.g. "claude").
	Name() string

	// DisplayName returns the human-readable name (e.g. "Claude Desktop").
	DisplayName() string

	// ConfigPath returns the absolute path of the client's MCP config file.
	ConfigPath() (string, error)
}

// registry holds all known targets, keyed by name.
var registry = map[string]Target{}

// RegisterTarget adds a target to the registry.
func RegisterTarget(t Target) {
	registry[t.Name()] = t
}

// GetTarget returns a registered target by name, or nil if not found.
func GetTarget(name string) Target {
	return registry[name]
}

// TargetNames returns the registered target names in a stable order.
func TargetNames() []string {
	order := []string{"claude", "cursor", "project"}
	names := make([]string, 0, len(registry))
	for _, name := range order {
		if _, ok := registry[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range registry {
		if !slices.Contains(order, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// ClaudeDesktop writes claude_desktop_config.json in the OS config directory.
type ClaudeDesktop struct{}

// Name returns the CLI identifier.
func (ClaudeDesktop) Name() string { return "claude" }

// DisplayName returns the human-readable name.
func (ClaudeDesktop) DisplayName() string { return "Claude Desktop" }

// ConfigPath returns the platform-specific Claude Desktop config path.
func (ClaudeDesktop) ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to locate user config directory", err)
	}
	return filepath.Join(dir, "Claude", "claude_desktop_config.json"), nil
}

// Cursor writes the global ~/.cursor/mcp.json.
type Cursor struct{}

// Name returns the CLI identifier.
func (Cursor) Name() string { return "cursor" }

// DisplayName returns the human-readable name.
func (Cursor) DisplayName() string { return "Cursor" }

// ConfigPath returns ~/.cursor/mcp.json.
func (Cursor) ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get home directory", err)
	}
	return filepath.Join(home, ".cursor", "mcp.json"), nil
}

// Project writes .mcp.json in the working directory, which Claude Code and
// other project-aware clients pick up.
type Project struct{}

// Name returns the CLI identifier.
func (Project) Name() string { return "project" }

// DisplayName returns the human-readable name.
func (Project) DisplayName() string { return "Project (.mcp.json)" }

// ConfigPath returns .mcp.json in the current directory.
func (Project) ConfigPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get working directory", err)
	}
	return filepath.Join(cwd, ".mcp.json"), nil
}

func init() {
	RegisterTarget(ClaudeDesktop{})
	RegisterTarget(Cursor{})
	RegisterTarget(Project{})
}
