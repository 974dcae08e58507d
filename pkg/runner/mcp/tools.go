package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerToggleFavoriteTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerMoodStatsTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List diary entries, favorites first, optionally filtered."),
		mcp.WithString("search",
			mcp.Description("Free text matched by the server against titles and content."),
		),
		mcp.WithString("mood",
			mcp.Description("Mood emoji or alias."),
			mcp.Enum(append(entry.MoodAliases(), moodSymbols()...)...),
		),
		mcp.WithString("tag",
			mcp.Description("Only entries carrying this tag."),
		),
		mcp.WithBoolean("this_month",
			mcp.Description("Only entries written this calendar month."),
		),
		mcp.WithString("sort",
			mcp.Description("Creation order."),
			mcp.Enum("newest", "oldest"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 50)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Search    string `json:"search"`
			Mood      string `json:"mood"`
			Tag       string `json:"tag"`
			ThisMonth bool   `json:"this_month"`
			Sort      string `json:"sort"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := request.GetInt("limit", 50)

		results, err := svc.ListEntries(ctx, ListOptions{
			Search:    args.Search,
			Mood:      args.Mood,
			Tag:       args.Tag,
			ThisMonth: args.ThisMonth,
			Sort:      args.Sort,
			Limit:     limit,
		})
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(map[string]any{
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleFavoriteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_favorite",
		mcp.WithDescription("Pin or unpin an entry as a favorite."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleFavorite(ctx, id)
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Permanently delete an entry. Requires confirm=true."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true; deletion cannot be undone."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		confirm := request.GetBool("confirm", false)

		if err := svc.DeleteEntry(ctx, id, confirm); err != nil {
			return toolError(err), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}

func registerMoodStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mood_stats",
		mcp.WithDescription("Summarise the mood distribution across all entries."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s, err := svc.MoodStats(ctx)
		if err != nil {
			return toolError(err), nil
		}
		return toJSONResult(s)
	})
}

func moodSymbols() []string {
	moods := entry.Moods()
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out
}

func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", apperr.KindOf(err), apperr.Describe(err)))
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
