package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Names follow the "type_action" pattern and are what
// DisabledTools entries match against.

var projectListToolDef = mcp.NewTool("project_list",
	mcp.WithDescription("List all projects, optionally grouped by recent episode activity per category"),
	mcp.WithBoolean("by_activity", mcp.Description("Order by most recent episode activity instead of id")),
)

var projectGetToolDef = mcp.NewTool("project_get",
	mcp.WithDescription("Fetch one project by id; a missing id yields a null item"),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Project id")),
)

var projectSaveToolDef = mcp.NewTool("project_save",
	mcp.WithDescription("Create a project (no id) or update an existing one (with id)"),
	mcp.WithNumber("id", mcp.Description("Project id; omit to create")),
	mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
	mcp.WithString("category", mcp.Description("Grouping category, defaults to 'default'")),
	mcp.WithString("description", mcp.Description("Free-text description")),
)

var projectHasPartsToolDef = mcp.NewTool("project_has_parts",
	mcp.WithDescription("Report whether any episode of the project uses the secondary part counter"),
	mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project id")),
)

var categoryListToolDef = mcp.NewTool("category_list",
	mcp.WithDescription("List the distinct project categories"),
	mcp.WithBoolean("by_activity", mcp.Description("Order by most recent episode activity")),
)

var episodeListToolDef = mcp.NewTool("episode_list",
	mcp.WithDescription("List one project's episodes ordered by primary counter"),
	mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project id")),
	mcp.WithBoolean("descending", mcp.Description("Highest counter first")),
)

var episodeGetToolDef = mcp.NewTool("episode_get",
	mcp.WithDescription("Fetch one episode by id; a missing id yields a null item"),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Episode id")),
)

var episodeLatestToolDef = mcp.NewTool("episode_latest",
	mcp.WithDescription("Fetch the episode with the highest primary counter of a project, null item when the project has none"),
	mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project id")),
)

var episodeNextToolDef = mcp.NewTool("episode_next",
	mcp.WithDescription("Derive and persist the next episode: a continuation of the latest one, or a first-episode shell for an empty project"),
	mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project id")),
	mcp.WithString("title", mcp.Description("Title for the new episode (never carried over)")),
	mcp.WithString("session", mcp.Description("Override the carried-over session label")),
	mcp.WithString("description", mcp.Description("Override the carried-over description")),
	mcp.WithBoolean("reset_part", mcp.Description("Start a fresh part sub-sequence at 1")),
	mcp.WithNumber("start_counter", mcp.Description("Primary counter of a first episode; defaults to the configured start")),
	mcp.WithString("recorded_on", mcp.Description("Recording date, dd.mm.yyyy or yyyy-mm-dd; unparseable input falls back to today")),
	mcp.WithBoolean("draft", mcp.Description("Return the derived episode without persisting it")),
)

var episodeSaveToolDef = mcp.NewTool("episode_save",
	mcp.WithDescription("Create an episode (no id) or update an existing one (with id)"),
	mcp.WithNumber("id", mcp.Description("Episode id; omit to create")),
	mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Owning project id")),
	mcp.WithNumber("template_id", mcp.Description("Assigned template id; omit for none")),
	mcp.WithString("title", mcp.Description("Episode title")),
	mcp.WithNumber("counter", mcp.Description("Primary counter")),
	mcp.WithNumber("part", mcp.Description("Secondary part counter, 0 when unused")),
	mcp.WithString("session", mcp.Description("Session label")),
	mcp.WithString("description", mcp.Description("Free-text description")),
	mcp.WithString("recorded_on", mcp.Description("Recording date, dd.mm.yyyy or yyyy-mm-dd")),
)

var episodeAssignTemplateToolDef = mcp.NewTool("episode_assign_template",
	mcp.WithDescription("Assign a template to an episode, or clear the assignment"),
	mcp.WithNumber("episode_id", mcp.Required(), mcp.Description("Episode id")),
	mcp.WithNumber("template_id", mcp.Description("Template id; omit to clear the assignment")),
)

var episodeRenderToolDef = mcp.NewTool("episode_render",
	mcp.WithDescription("Render an episode's description from its assigned template; a null item means there is no renderable text"),
	mcp.WithNumber("episode_id", mcp.Required(), mcp.Description("Episode id")),
)

var episodeExportToolDef = mcp.NewTool("episode_export",
	mcp.WithDescription("Render an episode's description and write it to the export directory"),
	mcp.WithNumber("episode_id", mcp.Required(), mcp.Description("Episode id")),
	mcp.WithString("format", mcp.Description("Export format: md or html; defaults to the configured format")),
)

var templateListToolDef = mcp.NewTool("template_list",
	mcp.WithDescription("List all stored templates"),
)

var templateGetToolDef = mcp.NewTool("template_get",
	mcp.WithDescription("Fetch one template by id; a missing id yields a null item"),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Template id")),
)

var templateSaveToolDef = mcp.NewTool("template_save",
	mcp.WithDescription("Create a template (no id) or update an existing one (with id)"),
	mcp.WithNumber("id", mcp.Description("Template id; omit to create")),
	mcp.WithString("title", mcp.Required(), mcp.Description("Template title")),
	mcp.WithString("pattern", mcp.Description("Pattern text with $$token$$ markers")),
	mcp.WithString("tags", mcp.Description("Comma-separated tags")),
)

var searchToolDef = mcp.NewTool("search",
	mcp.WithDescription("Search templates by title or tag, or episodes by title within one project"),
	mcp.WithString("query", mcp.Required(), mcp.Description("Case-insensitive substring")),
	mcp.WithNumber("project_id", mcp.Description("Search episode titles within this project instead of templates")),
)
