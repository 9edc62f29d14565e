package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// DefaultServerName is the key the server is registered under.
const DefaultServerName = "clockify"

const serversKey = "mcpServers"

// ServerEntry is one stdio server in an mcpServers map.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// IsInstalled reports whether the config at path lists a server called name.
func IsInstalled(path, name string) bool {
	cfg, err := readConfig(path)
	if err != nil {
		return false
	}
	servers, _ := cfg[serversKey].(map[string]any)
	_, ok := servers[name]
	return ok
}

// Install adds or replaces the server entry called name. The file and its
// directory are created when missing.
func Install(path, name string, entry ServerEntry) error {
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}

	servers, ok := cfg[serversKey].(map[string]any)
	if !ok {
		if _, exists := cfg[serversKey]; exists {
			return output.NewUserError(fmt.Sprintf("%s: %q is not an object", path, serversKey))
		}
		servers = map[string]any{}
	}
	servers[name] = entry
	cfg[serversKey] = servers

	return writeConfig(path, cfg)
}

// Remove deletes the server entry called name. It reports whether an entry
// was removed; a missing file or entry is not an error.
func Remove(path, name string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	cfg, err := readConfig(path)
	if err != nil {
		return false, err
	}

	servers, ok := cfg[serversKey].(map[string]any)
	if !ok {
		return false, nil
	}
	if _, ok := servers[name]; !ok {
		return false, nil
	}
	delete(servers, name)
	return true, writeConfig(path, cfg)
}

// readConfig loads a JSON object, treating a missing or empty file as {}.
func readConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read "+path, err)
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}

	cfg := map[string]any{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, output.NewUserErrorWithCause(fmt.Sprintf("%s is not valid JSON: %v", path, err), err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to create config directory", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode config", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to write "+path, err)
	}
	return nil
}
