package mcp

import (
	"database/sql"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tianji/internal/config"
)

// KnownTypes lists all valid tool-name prefixes.
var KnownTypes = []string{"chart", "celestial", "wisdom", "cultivate", "almanac"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"chart_divine": {
		def:     divineToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDivine },
	},
	"chart_fetch": {
		def:     fetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch },
	},
	"chart_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"chart_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"celestial_now": {
		def:     snapshotToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSnapshot },
	},
	"celestial_moon": {
		def:     moonToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMoon },
	},
	"wisdom_daily": {
		def:     wisdomDailyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWisdomDaily },
	},
	"wisdom_random": {
		def:     wisdomRandomToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWisdomRandom },
	},
	"cultivate_start": {
		def:     cultivateStartToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCultivateStart },
	},
	"cultivate_end": {
		def:     cultivateEndToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCultivateEnd },
	},
	"cultivate_status": {
		def:     cultivateStatusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCultivateStatus },
	},
	"almanac_today": {
		def:     almanacToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAlmanac },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "chart_divine" → "chart").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// NewServer creates a new MCP server with tianji tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tianji",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}
