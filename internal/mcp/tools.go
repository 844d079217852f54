package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("episode_list",
	mcp.WithDescription("List all episodes most-recent-first with resolved annotation text."),
	mcp.WithString("playlist",
		mcp.Description("Playlist set: empty for the default year playlists, \"complete\" for the complete-series playlists.")),
)

var detailToolDef = mcp.NewTool("episode_detail",
	mcp.WithDescription("Fetch one episode with its full note history and the current etag."),
	mcp.WithString("video_id",
		mcp.Required(),
		mcp.Description("The episode's video id.")),
)

var submitToolDef = mcp.NewTool("note_submit",
	mcp.WithDescription("Save a new note entry for an episode. Echo the etag from episode_detail; a stale etag is rejected without mutation."),
	mcp.WithString("video_id",
		mcp.Required(),
		mcp.Description("The episode's video id.")),
	mcp.WithString("notes",
		mcp.Description("Raw note text. Comma-delimited segments; may use !egg/!event counters, egg N / event N anchors, and !clip tokens.")),
	mcp.WithString("etag",
		mcp.Description("Optimistic-concurrency token from episode_detail; empty for an episode with no history.")),
	mcp.WithString("author",
		mcp.Required(),
		mcp.Description("Identity string recorded with the entry.")),
)

var exportToolDef = mcp.NewTool("notes_export",
	mcp.WithDescription("Export the episode list with resolved notes as CSV text."),
	mcp.WithString("playlist",
		mcp.Description("Playlist set: empty for the default year playlists, \"complete\" for the complete-series playlists.")),
)
