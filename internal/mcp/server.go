// Package mcp implements the Model Context Protocol server, exposing mystuff
// link operations to LLMs. An assistant can save, list and browse bookmarks
// through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jpl-au/mystuff/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
// Log output must go to stderr; stdout carries the JSON-RPC messages.
func Serve(svc *service.Service, dataDir string) error {
	s := NewServer(svc, dataDir)

	slog.Info("mystuff MCP server ready", "version", Version, "transport", "stdio", "data", dataDir)

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every tool registered.
func NewServer(svc *service.Service, dataDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"mystuff",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, &handlers{svc: svc, dir: dataDir})
	return s
}

// handlers provides MCP request handlers with access to the link service.
type handlers struct {
	svc *service.Service
	dir string // data directory, for config access
}

// registerTools exposes mystuff operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("mystuff_link_add",
			mcp.WithDescription("Save a link. If the url is already saved, the existing link is returned unchanged."),
			mcp.WithString("url", mcp.Required(), mcp.Description("Link url")),
			mcp.WithString("description", mcp.Description("Free text description")),
			mcp.WithString("tags", mcp.Description("Comma-separated tags (e.g. 'go, cli')")),
		),
		h.addLink,
	)

	s.AddTool(
		mcp.NewTool("mystuff_link_list",
			mcp.WithDescription("List every saved link, ordered by url"),
		),
		h.listLinks,
	)

	s.AddTool(
		mcp.NewTool("mystuff_link_tags",
			mcp.WithDescription("List the distinct tags used across all links"),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("mystuff_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, storage.backend, list.render) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("mystuff_config_set",
			mcp.WithDescription("Set a configuration value. Backend changes apply on the next start."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (author.name, storage.backend, list.render)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}
