package main

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/patrikmichi/clockify-mcp/internal/clockify"
	clockifymcp "github.com/patrikmichi/clockify-mcp/internal/mcp"
	"github.com/patrikmichi/clockify-mcp/internal/output"
)

// upstreamStatus finds the HTTP status in a tool error message.
var upstreamStatus = regexp.MustCompile(`\(status (\d{3})\)`)

type callFlags struct {
	args   string
	values []string
}

// newCallCmd creates the call command.
func newCallCmd() *cobra.Command {
	flags := &callFlags{}

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke one MCP tool and print its result",
		Long: `Invoke a tool exactly as an MCP client would and print the result.

Arguments are given as a JSON object with --args, as key=value pairs with
--arg, or both (--arg wins). A value that parses as JSON keeps its type, so
--arg billable=true sends a boolean.

Examples:
  clockify-mcp call get_current_user
  clockify-mcp call list_projects --arg name=Website --arg archived=false
  clockify-mcp call start_timer --args '{"description":"Standup","projectId":"p1"}'
  clockify-mcp call delete_tag --arg tagId=t1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.args, "args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringArrayVar(&flags.values, "arg", nil, "Tool argument as key=value (repeatable)")

	return cmd
}

func runCall(cmd *cobra.Command, tool string, flags *callFlags) error {
	printer := newPrinter(cmd)

	arguments, err := parseToolArgs(flags.args, flags.values)
	if err != nil {
		printer.Error(err)
		return err
	}

	server, err := newToolServer(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	session, err := clockifymcp.ConnectInProcess(cmd.Context(), server, version)
	if err != nil {
		err = output.NewSystemErrorWithCause("starting tool server: "+err.Error(), err)
		printer.Error(err)
		return err
	}
	defer func() { _ = session.Close() }()

	res, err := session.CallTool(cmd.Context(), &mcp.CallToolParams{
		Name:      tool,
		Arguments: arguments,
	})
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	text := clockifymcp.ResultText(res)
	if res.IsError {
		err := toolError(text)
		printer.Error(err)
		return err
	}

	printResult(printer, text)
	return nil
}

// parseToolArgs merges a JSON object with key=value pairs.
func parseToolArgs(raw string, pairs []string) (map[string]any, error) {
	arguments := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
			return nil, output.NewUserErrorWithCause("--args must be a JSON object: "+err.Error(), err)
		}
		if arguments == nil {
			arguments = map[string]any{}
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, output.NewUserError("--arg must be key=value, got " + strconv.Quote(pair))
		}
		arguments[key] = argValue(value)
	}
	return arguments, nil
}

// argValue decodes value as JSON when it is a scalar, array or object
// literal, and keeps it as a string otherwise.
func argValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		return decoded
	}
	return value
}

// toolError maps a failed tool result onto an exit code using the upstream
// status embedded in the message.
func toolError(text string) error {
	if m := upstreamStatus.FindStringSubmatch(text); m != nil {
		code, _ := strconv.Atoi(m[1])
		return output.FromUpstream(&toolFailure{text: text, apiErr: &clockify.APIError{StatusCode: code}})
	}
	return output.NewUserError(text)
}

// toolFailure keeps the tool's message while exposing the upstream status.
type toolFailure struct {
	text   string
	apiErr *clockify.APIError
}

func (e *toolFailure) Error() string { return e.text }

func (e *toolFailure) Unwrap() error { return e.apiErr }

// printResult prints JSON bodies indented and plain confirmations as messages.
func printResult(printer *output.Printer, text string) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) > 0 && json.Valid(trimmed) {
		printer.RawJSON(trimmed)
		return
	}
	_ = printer.Success(map[string]any{"message": text})
}
