// tools_links.go implements the MCP tools for saving and listing links.
//
// mystuff_link_add never prompts. Missing description and tags are saved
// empty, matching non-interactive CLI use.

package mcp

import (
	"context"

	"github.com/jpl-au/mystuff/internal/log"
	"github.com/jpl-au/mystuff/internal/prompt"
	"github.com/jpl-au/mystuff/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// addLink handles mystuff_link_add tool calls.
func (h *handlers) addLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url is required"), nil //nolint:nilerr
	}

	opts := service.AddOptions{Tags: getTags(req, "tags")}
	if d, ok := optString(req, "description"); ok {
		opts.Description = &d
	}

	l := log.Event("mcp:link_add", "add").Author("mcp").URL(u).Detail("tags", opts.Tags)

	res, err := h.svc.Add(ctx, u, opts)
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Added {
		l.Outcome("added")
	} else {
		l.Outcome("exists")
	}
	l.Write(nil)

	return jsonResult(res)
}

// listLinks handles mystuff_link_list tool calls.
func (h *handlers) listLinks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	links, err := h.svc.List(ctx)
	l := log.Event("mcp:link_list", "list").Author("mcp")
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("count", len(links)).Write(nil)
	return jsonResult(links)
}

// listTags handles mystuff_link_tags tool calls.
func (h *handlers) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := h.svc.Tags(ctx)
	l := log.Event("mcp:link_tags", "tags").Author("mcp")
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("count", len(tags)).Write(nil)
	return jsonResult(tags)
}

// getTags accepts tags as either a comma-separated string or a JSON array
// of strings. Empty entries are dropped.
func getTags(req mcp.CallToolRequest, name string) []string {
	if s, ok := optString(req, name); ok {
		return prompt.SplitTags(s)
	}
	var tags []string
	for _, t := range getStrings(req, name) {
		tags = append(tags, prompt.SplitTags(t)...)
	}
	return tags
}
