// Package output renders clockify-mcp command results for people and agents.
//
// Every command writes through a Printer. With --json the Printer emits
// indented JSON on stdout, including errors as {"error": "...", "code": N}.
// Otherwise it prints lipgloss-styled text that loses its colors when stdout
// is not a terminal or --color never is set.
//
// Errors returned from commands carry a process exit code:
//
//	output.ExitUserError   // 1: bad arguments, missing API key, upstream 4xx
//	output.ExitSystemError // 2: network failure, upstream 5xx, local I/O
//	output.ExitConflict    // 3: upstream 409
//
// FromUpstream maps errors from the clockify client onto these codes.
package output
