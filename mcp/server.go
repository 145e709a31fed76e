// Package mcp exposes a read-only view of a lexRain vocabulary store over
// the Model Context Protocol so agent clients can look words up and check
// review pressure without driving a session.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	lexrain "github.com/whale4rain/lexRain"
)

// Server wraps the MCP server with lexRain tools.
type Server struct {
	client    *lexrain.Client
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with lexRain tools registered.
func NewServer(client *lexrain.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = server.NewMCPServer(
		"lexrain",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "lexrain_lookup", Description: "Look up a single word by id with its full dictionary entry"},
		{Name: "lexrain_search", Description: "Search the dictionary by spelling, definition or translation"},
		{Name: "lexrain_due", Description: "List words currently due for review"},
		{Name: "lexrain_stats", Description: "Summarize the vocabulary store and today's review progress"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "lexrain_lookup":
		return s.handleLookup(ctx, args)
	case "lexrain_search":
		return s.handleSearch(ctx, args)
	case "lexrain_due":
		return s.handleDue(ctx, args)
	case "lexrain_stats":
		return s.handleStats(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	// lexrain_lookup
	s.mcpServer.AddTool(mcp.NewTool("lexrain_lookup",
		mcp.WithDescription("Look up a single word by id. Returns spelling, phonetic, definition, translation and tags."),
		mcp.WithNumber("word_id",
			mcp.Description("The word id to look up"),
			mcp.Required(),
		),
	), s.mcpHandleLookup)

	// lexrain_search
	s.mcpServer.AddTool(mcp.NewTool("lexrain_search",
		mcp.WithDescription("Search the dictionary. Matches substrings of spelling, definition and translation."),
		mcp.WithString("query",
			mcp.Description("The search text"),
			mcp.Required(),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	), s.mcpHandleSearch)

	// lexrain_due
	s.mcpServer.AddTool(mcp.NewTool("lexrain_due",
		mcp.WithDescription("List words currently due for review, soonest first. This is a read-only operation; it does not start a session."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of words to return (default: 20)"),
		),
	), s.mcpHandleDue)

	// lexrain_stats
	s.mcpServer.AddTool(mcp.NewTool("lexrain_stats",
		mcp.WithDescription("Summarize the vocabulary store: total words, tracked, mastered, due, and today's reviews against the daily goal."),
	), s.mcpHandleStats)
}

// MCP handlers that wrap internal handlers

func (s *Server) mcpHandleLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLookup(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleSearch(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleDue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleDue(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleStats(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleLookup(_ context.Context, args map[string]any) (*ToolResult, error) {
	id, ok := args["word_id"].(float64)
	if !ok {
		return &ToolResult{Content: "word_id is required", IsError: true}, nil
	}

	w, err := s.client.Store().Lookup(int64(id))
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("lookup failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatWord(w)}, nil
}

func (s *Server) handleSearch(_ context.Context, args map[string]any) (*ToolResult, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return &ToolResult{Content: "query is required", IsError: true}, nil
	}

	limit := 10
	if k, ok := args["k"].(float64); ok && k > 0 {
		limit = int(k)
	}

	words, err := s.client.Store().Search(query)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("search failed: %v", err), IsError: true}, nil
	}
	if len(words) == 0 {
		return &ToolResult{Content: "No matching words found."}, nil
	}
	if len(words) > limit {
		words = words[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matching words:\n\n", len(words)))
	for _, w := range words {
		sb.WriteString(formatWordLine(&w))
	}
	return &ToolResult{Content: sb.String()}, nil
}

func (s *Server) handleDue(_ context.Context, args map[string]any) (*ToolResult, error) {
	limit := 20
	if n, ok := args["limit"].(float64); ok && n > 0 {
		limit = int(n)
	}

	items, err := s.client.Store().DueItems(time.Now())
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("due lookup failed: %v", err), IsError: true}, nil
	}
	if len(items) == 0 {
		return &ToolResult{Content: "Nothing is due for review."}, nil
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d words due for review:\n\n", len(items)))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("[%d] %s (rep %d, interval %dd, due %s)\n",
			item.Word.ID, item.Word.Spelling,
			item.State.Repetition, item.State.IntervalDays,
			item.State.NextDue.Format("2006-01-02")))
	}
	return &ToolResult{Content: sb.String()}, nil
}

func (s *Server) handleStats(_ context.Context, _ map[string]any) (*ToolResult, error) {
	stats, err := s.client.Stats()
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("stats failed: %v", err), IsError: true}, nil
	}

	var sb strings.Builder
	sb.WriteString("Vocabulary store:\n")
	sb.WriteString(fmt.Sprintf("  Words: %d (%d tracked, %d mastered)\n", stats.TotalWords, stats.Tracked, stats.Mastered))
	sb.WriteString(fmt.Sprintf("  Due now: %d\n", stats.Due))
	sb.WriteString(fmt.Sprintf("  Reviewed today: %d / %d", stats.ReviewedToday, stats.DailyGoal))
	if stats.CheckedInToday {
		sb.WriteString(" (checked in)")
	}
	sb.WriteString("\n")
	return &ToolResult{Content: sb.String()}, nil
}

func formatWord(w *lexrain.Word) string {
	var sb strings.Builder
	sb.WriteString(formatWordLine(w))
	if w.Definition != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", w.Definition))
	}
	if w.Translation != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", w.Translation))
	}
	if len(w.TagList()) > 0 {
		sb.WriteString(fmt.Sprintf("    Tags: %s\n", strings.Join(w.TagList(), ", ")))
	}
	return sb.String()
}

func formatWordLine(w *lexrain.Word) string {
	line := fmt.Sprintf("[%d] %s", w.ID, w.Spelling)
	if w.Phonetic != "" {
		line += " /" + strings.Trim(w.Phonetic, "/") + "/"
	}
	if w.Favorite {
		line += " *"
	}
	return line + "\n"
}
