// Package config resolves where clockify-mcp keeps its configuration and
// loads the layered settings (config file, environment, command-line flags).
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "clockify-mcp"

// Dir returns the clockify-mcp configuration directory.
//
// Resolution:
//   - $CLOCKIFY_MCP_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/clockify-mcp if set (respects XDG on any platform)
//   - %AppData%/clockify-mcp on Windows
//   - ~/.config/clockify-mcp on macOS and Linux
func Dir() string {
	if dir := os.Getenv("CLOCKIFY_MCP_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the default config file location, or "" when no
// configuration directory can be determined.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// EnvFilePath returns the global env file consulted after the per-directory ones.
func EnvFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "env")
}
