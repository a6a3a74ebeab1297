package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"project_list": {
		def:     projectListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectList },
	},
	"project_get": {
		def:     projectGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectGet },
	},
	"project_save": {
		def:     projectSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectSave },
	},
	"project_has_parts": {
		def:     projectHasPartsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjectHasParts },
	},
	"category_list": {
		def:     categoryListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategoryList },
	},
	"episode_list": {
		def:     episodeListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeList },
	},
	"episode_get": {
		def:     episodeGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeGet },
	},
	"episode_latest": {
		def:     episodeLatestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeLatest },
	},
	"episode_next": {
		def:     episodeNextToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeNext },
	},
	"episode_save": {
		def:     episodeSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeSave },
	},
	"episode_assign_template": {
		def:     episodeAssignTemplateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeAssignTemplate },
	},
	"episode_render": {
		def:     episodeRenderToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeRender },
	},
	"episode_export": {
		def:     episodeExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEpisodeExport },
	},
	"template_list": {
		def:     templateListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTemplateList },
	},
	"template_get": {
		def:     templateGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTemplateGet },
	},
	"template_save": {
		def:     templateSaveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTemplateSave },
	},
	"search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
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

// NewServer creates a new MCP server with epinames tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(store *db.Store, cfg *config.Config, exportDir string, logger *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"epinames",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, cfg, exportDir, logger)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store *db.Store, cfg *config.Config, exportDir string, logger *zap.Logger, version string) error {
	s := NewServer(store, cfg, exportDir, logger, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
