package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Handlers decode the raw arguments themselves, so
// these schemas exist for discovery and client-side validation.

var divineToolDef = mcp.NewTool("chart_divine",
	mcp.WithDescription("Cast a Four Pillars birth chart: pillars, five-element tally, and spiritual root. Persisted by default; pass a name to fetch it again later."),
	mcp.WithString("name", mcp.Description("Optional seeker name; named charts are unique while active")),
	mcp.WithNumber("year", mcp.Required(), mcp.Description("Birth year, e.g. 1990")),
	mcp.WithNumber("month", mcp.Required(), mcp.Description("Birth month 1-12")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Birth day of month")),
	mcp.WithNumber("hour", mcp.Required(), mcp.Description("Birth hour 0-23")),
	mcp.WithBoolean("advanced", mcp.Description("Include the hidden-stem weighted tally")),
	mcp.WithString("mode", mcp.Description("Name collision behavior: error (default) or replace"),
		mcp.Enum("error", "replace")),
	mcp.WithBoolean("persist", mcp.Description("Store the result (default true)")),
)

var fetchToolDef = mcp.NewTool("chart_fetch",
	mcp.WithDescription("Fetch a stored chart by id or name."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name (case and spacing insensitive)")),
	mcp.WithBoolean("include_deleted", mcp.Description("Also match soft-deleted charts")),
)

var listToolDef = mcp.NewTool("chart_list",
	mcp.WithDescription("List stored charts, newest first."),
	mcp.WithNumber("limit", mcp.Description("Page size, default 20, max 100")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted charts")),
)

var deleteToolDef = mcp.NewTool("chart_delete",
	mcp.WithDescription("Soft-delete a chart by id or name. The name becomes available again."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name")),
)

var snapshotToolDef = mcp.NewTool("celestial_now",
	mcp.WithDescription("Current celestial state and cultivation bonus: weather factors, five-circuits-six-qi, meridian clock, moon phase, weighted total."),
	mcp.WithString("id", mcp.Description("Chart ULID; the chart's primary element drives the affinity factors")),
	mcp.WithString("name", mcp.Description("Seeker name, alternative to id")),
	mcp.WithString("element", mcp.Description("Explicit element when no chart is referenced"),
		mcp.Enum("金", "木", "水", "火", "土")),
	mcp.WithString("weather", mcp.Description("Weather condition override, e.g. 晴, 小雨, 雷暴")),
	mcp.WithNumber("temperature", mcp.Description("Temperature override in °C")),
)

var moonToolDef = mcp.NewTool("celestial_moon",
	mcp.WithDescription("Current moon phase with its cultivation bonus."),
)

var wisdomDailyToolDef = mcp.NewTool("wisdom_daily",
	mcp.WithDescription("The quote of the day, optionally attuned to a chart's element."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name")),
	mcp.WithString("element", mcp.Description("Explicit element instead of a chart"),
		mcp.Enum("金", "木", "水", "火", "土")),
)

var wisdomRandomToolDef = mcp.NewTool("wisdom_random",
	mcp.WithDescription("A random quote, optionally filtered by category and element."),
	mcp.WithString("category", mcp.Description("Quote category"),
		mcp.Enum("philosophy", "cultivation", "universe", "mind", "nature")),
	mcp.WithString("element", mcp.Description("Element filter"),
		mcp.Enum("金", "木", "水", "火", "土")),
)

var cultivateStartToolDef = mcp.NewTool("cultivate_start",
	mcp.WithDescription("Open a cultivation session for a chart. One session per chart at a time."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name")),
)

var cultivateEndToolDef = mcp.NewTool("cultivate_end",
	mcp.WithDescription("Close the open session and credit experience: minutes × root bonus × celestial bonus, capped per day. Breakthroughs are automatic."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name")),
	mcp.WithString("weather", mcp.Description("Weather condition override for the bonus")),
	mcp.WithNumber("temperature", mcp.Description("Temperature override in °C")),
)

var cultivateStatusToolDef = mcp.NewTool("cultivate_status",
	mcp.WithDescription("Realm progress and recent sessions for a chart."),
	mcp.WithString("id", mcp.Description("Chart ULID")),
	mcp.WithString("name", mcp.Description("Seeker name")),
	mcp.WithNumber("session_limit", mcp.Description("Recent sessions to include, default 10")),
)

var almanacToolDef = mcp.NewTool("almanac_today",
	mcp.WithDescription("Today's almanac as markdown: solar term, qi, meridian, moon, bonus table, and the daily quote."),
	mcp.WithString("id", mcp.Description("Chart ULID to attune the almanac")),
	mcp.WithString("name", mcp.Description("Seeker name")),
	mcp.WithString("element", mcp.Description("Explicit element; defaults to 土"),
		mcp.Enum("金", "木", "水", "火", "土")),
)
