package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// clearEnv unsets every CLOCKIFY_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range Keys() {
		name := EnvPrefix + "_" + strings.ToUpper(key)
		t.Setenv(name, "")
		_ = os.Unsetenv(name) //nolint:errcheck
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api_key: file-key\nworkspace_id: ws-file\ntimeout: 5s\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "file-key")
	}
	if cfg.WorkspaceID != "ws-file" {
		t.Errorf("WorkspaceID = %q, want %q", cfg.WorkspaceID, "ws-file")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api_key: file-key\n")
	t.Setenv("CLOCKIFY_API_KEY", "env-key")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want %q (env should win)", cfg.APIKey, "env-key")
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLOCKIFY_WORKSPACE_ID", "ws-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("workspace", "", "")
	flags.String("api-key", "", "")
	if err := flags.Parse([]string{"--workspace", "ws-flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WorkspaceID != "ws-flag" {
		t.Errorf("WorkspaceID = %q, want %q", cfg.WorkspaceID, "ws-flag")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api_key: [unterminated\n")

	if _, err := Load(path, nil); err == nil {
		t.Fatal("Load() expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"default", Config{BaseURL: DefaultBaseURL}, ""},
		{"relative url", Config{BaseURL: "/api"}, "absolute"},
		{"ftp scheme", Config{BaseURL: "ftp://example.com"}, "unsupported scheme"},
		{"negative timeout", Config{BaseURL: DefaultBaseURL, Timeout: -time.Second}, "timeout"},
		{"bad log format", Config{BaseURL: DefaultBaseURL, LogFormat: "xml"}, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRedactKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdefgh", "****efgh"},
	}
	for _, tt := range tests {
		if got := RedactKey(tt.key); got != tt.want {
			t.Errorf("RedactKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	cfg := &Config{APIKey: "supersecret"}
	if red := cfg.Redacted(); red.APIKey == cfg.APIKey {
		t.Error("Redacted() leaked the API key")
	}
	if cfg.APIKey != "supersecret" {
		t.Error("Redacted() mutated the original")
	}
}

func TestSaveThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{APIKey: "k", WorkspaceID: "ws1", Timeout: 10 * time.Second}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("ReadFile() = %+v, want %+v", got, cfg)
	}
}

func TestReadFile_Missing(t *testing.T) {
	cfg, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("ReadFile() = %+v, want zero config", cfg)
	}
}

func TestSet(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("workspace_id", " ws9 "); err != nil {
		t.Fatal(err)
	}
	if cfg.WorkspaceID != "ws9" {
		t.Errorf("WorkspaceID = %q, want ws9", cfg.WorkspaceID)
	}
	if err := cfg.Set("timeout", "1m"); err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if err := cfg.Set("timeout", "soon"); err == nil {
		t.Error("Set(timeout, soon) expected error")
	}
	if err := cfg.Set("colour", "blue"); err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("Set(colour) error = %v, want unknown key", err)
	}
}
