// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only garden queries for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lilianada/braindump/internal/gardenservice"
)

// Server wraps the MCP server with Braindump tools.
type Server struct {
	mcp *server.MCPServer
	svc *gardenservice.Service
}

// New creates a new MCP server with all garden tools registered.
func New(svc *gardenservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Braindump",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_garden",
		mcp.WithDescription("Full-text search through garden notes by content, title, and tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchGarden)

	s.mcp.AddTool(mcp.NewTool("read_item",
		mcp.WithDescription("Read a garden item with its backlinks, related items, and prev/next neighbors."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Item path (e.g. topics/digital-gardens)")),
	), s.readItem)

	s.mcp.AddTool(mcp.NewTool("list_items",
		mcp.WithDescription("List every item in the garden, title-sorted."),
	), s.listItems)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all items that link to the specified item."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the item to find backlinks for")),
	), s.getBacklinks)

	s.mcp.AddTool(mcp.NewTool("get_related",
		mcp.WithDescription("Find items sharing at least one tag with the specified item."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the item to find related items for")),
	), s.getRelated)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchGarden(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Detail(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listItems(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.Items(ctx, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type entry struct {
		Path  string `json:"path"`
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	out := make([]entry, len(items))
	for i, it := range items {
		out[i] = entry{Path: it.Path, Title: it.Title, Type: string(it.Type)}
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	refs, err := s.svc.Backlinks(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths := make([]string, len(refs))
	for i, it := range refs {
		paths[i] = it.Path
	}
	out, _ := json.MarshalIndent(paths, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRelated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	refs, err := s.svc.Related(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	paths := make([]string, len(refs))
	for i, it := range refs {
		paths[i] = it.Path
	}
	out, _ := json.MarshalIndent(paths, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
