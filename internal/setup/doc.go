// Package setup registers clockify-mcp in the config files of MCP clients.
//
// Each supported client is a Target that knows where its config lives.
// All of them share the same "mcpServers" JSON layout, so installing and
// removing an entry is the same operation for every target:
//
//	target := setup.GetTarget("claude")
//	path, err := target.ConfigPath()
//	err = setup.Install(path, setup.DefaultServerName, setup.ServerEntry{Command: exe, Args: []string{"serve"}})
//	removed, err := setup.Remove(path, setup.DefaultServerName)
//
// Keys other than the managed server entry are preserved.
package setup
