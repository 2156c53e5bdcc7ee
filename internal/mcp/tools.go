package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askSpaceExpertTool defines the ask_space_expert MCP tool.
var askSpaceExpertTool = mcp.NewTool("ask_space_expert",
	mcp.WithDescription("Ask the space exploration expert a question. Returns prose plus any charts, tables or gauges the answer contains."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to ask"),
	),
	mcp.WithNumber("temperature",
		mcp.Description("Sampling temperature between 0 and 1 (default 0.7)"),
		mcp.Min(0),
		mcp.Max(1),
	),
)

// listExoplanetsTool defines the list_exoplanets MCP tool.
var listExoplanetsTool = mcp.NewTool("list_exoplanets",
	mcp.WithDescription("List exoplanets from the archive, optionally filtered by name, host star or discovery method. Glob patterns such as 'Kepler-*' match names and hosts."),
	mcp.WithString("query",
		mcp.Description("Substring or glob pattern to filter by"),
	),
	mcp.WithBoolean("confirmed_only",
		mcp.Description("Only include confirmed planets (default true)"),
		mcp.DefaultBool(true),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of planets to return (default 20)"),
	),
)

// placeExoplanetsTool defines the place_exoplanets MCP tool.
var placeExoplanetsTool = mcp.NewTool("place_exoplanets",
	mcp.WithDescription("Project confirmed exoplanets into 3D scene coordinates with their marker color, size and orbit ring."),
	mcp.WithString("query",
		mcp.Description("Substring or glob pattern to filter by"),
	),
	mcp.WithNumber("max_distance",
		mcp.Description("Maximum distance in parsecs (default 1000)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of catalog entries considered (default 1000)"),
	),
	mcp.WithString("selected",
		mcp.Description("Name of the planet to highlight"),
	),
)

// searchExoplanetsTool defines the search_exoplanets MCP tool.
var searchExoplanetsTool = mcp.NewTool("search_exoplanets",
	mcp.WithDescription("Search indexed exoplanets semantically, e.g. 'temperate super-earths around nearby stars'."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("bucket",
		mcp.Description("Filter by temperature bucket"),
		mcp.Enum("cold", "temperate", "warm", "hot"),
	),
	mcp.WithString("method",
		mcp.Description("Filter by exact discovery method, e.g. Transit"),
	),
)
