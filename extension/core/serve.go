// serve.go implements the "mystuff serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client disconnects. It uses the shared link
// service opened by the root command.

package core

import (
	"github.com/jpl-au/mystuff/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: mystuff_link_add, mystuff_link_list, mystuff_link_tags,
mystuff_config_get, mystuff_config_set.

Use --data to serve a specific data directory:
  mystuff serve --data /path/to/links`,
		Args: cobra.NoArgs,
		RunE: e.runServe,
	}
}

func (e *Extension) runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(e.ctx.Service(), e.ctx.DataDir())
}
