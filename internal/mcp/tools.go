package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/emprendelab/vitrina/internal/listing"
)

// searchListingsTool defines the search_listings MCP tool.
var searchListingsTool = mcp.NewTool("search_listings",
	mcp.WithDescription("Search registered student ventures by text and category, the same way the list page filters its cards."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive text matched against name, description and student name"),
	),
	mcp.WithString("category",
		mcp.Description("Only return ventures in this category"),
		mcp.Enum(listing.Categories...),
	),
)

// getListingTool defines the get_listing MCP tool.
var getListingTool = mcp.NewTool("get_listing",
	mcp.WithDescription("Get every stored field of one venture as JSON."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Venture ID"),
	),
)

// getStatsTool defines the get_stats MCP tool.
var getStatsTool = mcp.NewTool("get_stats",
	mcp.WithDescription("Get the summary counters shown on the home page: ventures, categories and students."),
)
