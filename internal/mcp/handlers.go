package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/errors"
	"github.com/burnoutdv/epinames/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store     *db.Store
	cfg       *config.Config
	exportDir string
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *db.Store, cfg *config.Config, exportDir string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{store: store, cfg: cfg, exportDir: exportDir, logger: logger}
}

// Request types for each tool

// ProjectListRequest represents the arguments for project_list.
type ProjectListRequest struct {
	ByActivity bool `json:"by_activity,omitempty"`
}

// IDRequest represents the arguments of the single-id lookup tools.
type IDRequest struct {
	ID int64 `json:"id"`
}

// ProjectIDRequest represents the arguments of the per-project tools.
type ProjectIDRequest struct {
	ProjectID int64 `json:"project_id"`
}

// ProjectSaveRequest represents the arguments for project_save.
type ProjectSaveRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryListRequest represents the arguments for category_list.
type CategoryListRequest struct {
	ByActivity bool `json:"by_activity,omitempty"`
}

// EpisodeListRequest represents the arguments for episode_list.
type EpisodeListRequest struct {
	ProjectID  int64 `json:"project_id"`
	Descending bool  `json:"descending,omitempty"`
}

// EpisodeNextRequest represents the arguments for episode_next.
type EpisodeNextRequest struct {
	ProjectID    int64   `json:"project_id"`
	Title        string  `json:"title,omitempty"`
	Session      *string `json:"session,omitempty"`
	Description  *string `json:"description,omitempty"`
	ResetPart    bool    `json:"reset_part,omitempty"`
	StartCounter int     `json:"start_counter,omitempty"`
	RecordedOn   string  `json:"recorded_on,omitempty"`
	Draft        bool    `json:"draft,omitempty"`
}

// EpisodeSaveRequest represents the arguments for episode_save.
type EpisodeSaveRequest struct {
	ID          *int64 `json:"id,omitempty"`
	ProjectID   int64  `json:"project_id"`
	TemplateID  *int64 `json:"template_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Counter     int    `json:"counter,omitempty"`
	Part        int    `json:"part,omitempty"`
	Session     string `json:"session,omitempty"`
	Description string `json:"description,omitempty"`
	RecordedOn  string `json:"recorded_on,omitempty"`
}

// AssignTemplateRequest represents the arguments for episode_assign_template.
type AssignTemplateRequest struct {
	EpisodeID  int64  `json:"episode_id"`
	TemplateID *int64 `json:"template_id,omitempty"`
}

// EpisodeRenderRequest represents the arguments for episode_render.
type EpisodeRenderRequest struct {
	EpisodeID int64 `json:"episode_id"`
}

// EpisodeExportRequest represents the arguments for episode_export.
type EpisodeExportRequest struct {
	EpisodeID int64  `json:"episode_id"`
	Format    string `json:"format,omitempty"`
}

// TemplateSaveRequest represents the arguments for template_save.
type TemplateSaveRequest struct {
	ID      *int64 `json:"id,omitempty"`
	Title   string `json:"title"`
	Pattern string `json:"pattern,omitempty"`
	Tags    string `json:"tags,omitempty"`
}

// SearchRequest represents the arguments for search.
type SearchRequest struct {
	Query     string `json:"query"`
	ProjectID int64  `json:"project_id,omitempty"`
}

// HandleProjectList handles the project_list tool call.
func (h *Handlers) HandleProjectList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListProjects(h.store, ops.ListProjectsInput{ByActivity: input.ByActivity})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProjectGet handles the project_get tool call.
func (h *Handlers) HandleProjectGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetProject(h.store, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProjectSave handles the project_save tool call.
func (h *Handlers) HandleProjectSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveProject(h.store, ops.SaveProjectInput{
		ID:          input.ID,
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProjectHasParts handles the project_has_parts tool call.
func (h *Handlers) HandleProjectHasParts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ProjectHasParts(h.store, input.ProjectID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCategoryList handles the category_list tool call.
func (h *Handlers) HandleCategoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCategories(h.store, ops.ListCategoriesInput{ByActivity: input.ByActivity})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeList handles the episode_list tool call.
func (h *Handlers) HandleEpisodeList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EpisodeListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListEpisodes(h.store, ops.ListEpisodesInput{
		ProjectID:  input.ProjectID,
		Descending: input.Descending,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeGet handles the episode_get tool call.
func (h *Handlers) HandleEpisodeGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetEpisode(h.store, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeLatest handles the episode_latest tool call.
func (h *Handlers) HandleEpisodeLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ProjectIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LatestEpisode(h.store, input.ProjectID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeNext handles the episode_next tool call.
func (h *Handlers) HandleEpisodeNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EpisodeNextRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.NextEpisode(h.store, h.cfg, ops.NextEpisodeInput{
		ProjectID:    input.ProjectID,
		Title:        input.Title,
		Session:      input.Session,
		Description:  input.Description,
		ResetPart:    input.ResetPart,
		StartCounter: input.StartCounter,
		RecordedOn:   input.RecordedOn,
		Draft:        input.Draft,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeSave handles the episode_save tool call.
func (h *Handlers) HandleEpisodeSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EpisodeSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveEpisode(h.store, ops.SaveEpisodeInput{
		ID:          input.ID,
		ProjectID:   input.ProjectID,
		TemplateID:  input.TemplateID,
		Title:       input.Title,
		Counter:     input.Counter,
		Part:        input.Part,
		Session:     input.Session,
		Description: input.Description,
		RecordedOn:  input.RecordedOn,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeAssignTemplate handles the episode_assign_template tool call.
func (h *Handlers) HandleEpisodeAssignTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AssignTemplateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AssignTemplate(h.store, ops.AssignTemplateInput{
		EpisodeID:  input.EpisodeID,
		TemplateID: input.TemplateID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeRender handles the episode_render tool call.
func (h *Handlers) HandleEpisodeRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EpisodeRenderRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Render(h.store, ops.RenderInput{EpisodeID: input.EpisodeID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEpisodeExport handles the episode_export tool call.
func (h *Handlers) HandleEpisodeExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EpisodeExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store, h.cfg, ops.ExportInput{
		EpisodeID: input.EpisodeID,
		Format:    input.Format,
		Dir:       h.exportDir,
	})
	if err != nil {
		return errorResult(err), nil
	}
	h.logger.Info("exported episode description",
		zap.Int64("episode_id", input.EpisodeID),
		zap.String("path", result.Path))
	return successResult(result)
}

// HandleTemplateList handles the template_list tool call.
func (h *Handlers) HandleTemplateList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListTemplates(h.store)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTemplateGet handles the template_get tool call.
func (h *Handlers) HandleTemplateGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetTemplate(h.store, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTemplateSave handles the template_save tool call.
func (h *Handlers) HandleTemplateSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplateSaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveTemplate(h.store, ops.SaveTemplateInput{
		ID:      input.ID,
		Title:   input.Title,
		Pattern: input.Pattern,
		Tags:    input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSearch handles the search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.store, ops.SearchInput{
		Query:     input.Query,
		ProjectID: input.ProjectID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.AppError); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
