package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("CLOCKIFY_MCP_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "clockify-mcp" {
			t.Errorf("Dir() = %q, want path ending in 'clockify-mcp'", dir)
		}
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("CLOCKIFY_MCP_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
	if got, want := Path(), filepath.Join("/custom/path", "config.yaml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if got, want := EnvFilePath(), filepath.Join("/custom/path", "env"); got != want {
		t.Errorf("EnvFilePath() = %q, want %q", got, want)
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("CLOCKIFY_MCP_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "clockify-mcp") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "clockify-mcp"))
	}
}
