package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/selah-app/selah/pkg/journal"
	"github.com/selah-app/selah/pkg/porter"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Selah MCP server is alive."),
		// No arguments needed for ping
	)
	s.AddTool(pingTool, pingHandler)
}

// pingHandler is the simple handler for the ping tool.
func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_selah"), nil
}

// RegisterListMeditationsTool registers the list_meditations tool.
func RegisterListMeditationsTool(s *server.MCPServer, store *journal.Store) {
	listTool := mcp.NewTool("list_meditations",
		mcp.WithDescription("Lists all meditations, pinned entries first, most recent first."),
		mcp.WithString("sort", mcp.Description("Sort key: date (default), title, verse or color.")),
	)
	s.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key := journal.SortByDate
		if raw, ok := request.Params.Arguments["sort"].(string); ok && raw != "" {
			key = journal.SortKey(raw)
		}

		sorted := journal.SortMeditations(store.Meditations(), store.IsPinned, key)
		if len(sorted) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(sorted)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize meditations to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterCreateMeditationTool registers the create_meditation tool.
func RegisterCreateMeditationTool(s *server.MCPServer, store *journal.Store) {
	createTool := mcp.NewTool("create_meditation",
		mcp.WithDescription("Creates a new meditation. Title, verse and summary are required."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the meditation.")),
		mcp.WithString("verse", mcp.Required(), mcp.Description("Scripture reference, e.g. 'Jean 3:16'.")),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Short summary of the reflection.")),
		mcp.WithString("content", mcp.Description("Optional full reflection text.")),
		mcp.WithString("color", mcp.Description("Optional palette color, defaults to blue.")),
	)
	s.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, titleOk := request.Params.Arguments["title"].(string)
		verse, verseOk := request.Params.Arguments["verse"].(string)
		summary, summaryOk := request.Params.Arguments["summary"].(string)
		if !titleOk || title == "" || !verseOk || verse == "" || !summaryOk || summary == "" {
			return mcp.NewToolResultError("'title', 'verse' and 'summary' parameters are required and must be non-empty strings."), nil
		}

		content, _ := request.Params.Arguments["content"].(string)
		color, _ := request.Params.Arguments["color"].(string)

		created, err := store.AddMeditation(ctx, journal.Meditation{
			Title:   title,
			Verse:   verse,
			Summary: summary,
			Content: content,
			Color:   color,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create meditation: %v", err)), nil
		}

		jsonResult, err := json.Marshal(created)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize meditation to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterSearchTool registers the search tool.
func RegisterSearchTool(s *server.MCPServer, store *journal.Store) {
	searchTool := mcp.NewTool("search",
		mcp.WithDescription("Case-insensitive substring search across meditations and sermons."),
		mcp.WithString("term", mcp.Required(), mcp.Description("Text to search for.")),
		mcp.WithString("scope", mcp.Description("Search scope: all (default), meditations or sermons.")),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		term, termOk := request.Params.Arguments["term"].(string)
		if !termOk || term == "" {
			return mcp.NewToolResultError("'term' parameter is required and must be a non-empty string."), nil
		}

		scope := journal.ScopeAll
		if raw, ok := request.Params.Arguments["scope"].(string); ok && raw != "" {
			scope = journal.Scope(raw)
		}

		results := journal.Search(term, store.Meditations(), store.Sermons(), scope)
		jsonResult, err := json.Marshal(results)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize search results to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterExportTool registers the export tool.
func RegisterExportTool(s *server.MCPServer, store *journal.Store) {
	exportTool := mcp.NewTool("export",
		mcp.WithDescription("Exports the journal as a JSON payload, a CSV of meditations, or a statistics summary."),
		mcp.WithString("format", mcp.Description("Export format: json (default), csv or stats.")),
	)
	s.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, _ := request.Params.Arguments["format"].(string)
		if format == "" {
			format = "json"
		}

		now := time.Now()
		switch format {
		case "json":
			data, err := porter.ExportJSON(store.Meditations(), store.Sermons(), now)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to export JSON: %v", err)), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		case "csv":
			return mcp.NewToolResultText(string(porter.ExportCSV(store.Meditations()))), nil
		case "stats":
			data, err := porter.ExportStats(store.Meditations(), store.Sermons(), now)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to export statistics: %v", err)), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("Unknown export format '%s', expected json, csv or stats.", format)), nil
		}
	})
}
