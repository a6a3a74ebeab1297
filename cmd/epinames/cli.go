package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/errors"
	"github.com/burnoutdv/epinames/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *db.Store, cfg *config.Config, exportDir string) *cli.App {
	app := &cli.App{
		Name:    "epinames",
		Usage:   "Episode tracking and title generation",
		Version: Version,
		Commands: []*cli.Command{
			projectsCmd(store),
			projectCmd(store),
			categoriesCmd(store),
			episodesCmd(store),
			episodeCmd(store),
			nextCmd(store, cfg),
			assignCmd(store),
			templatesCmd(store),
			templateCmd(store),
			renderCmd(store),
			exportCmd(store, cfg, exportDir),
			searchCmd(store),
			seedCmd(store),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// projectsCmd creates the projects command.
func projectsCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "List all projects",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "by-activity", Usage: "Order by recent episode activity per category"},
			&cli.BoolFlag{Name: "json", Usage: "Force JSON output"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListProjects(store, ops.ListProjectsInput{
				ByActivity: c.Bool("by-activity"),
			})
			if err != nil {
				return outputError(err)
			}

			if !wantTable(c) {
				return outputJSON(output)
			}

			rows := make([][]string, 0, len(output.Items))
			for _, p := range output.Items {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), p.Title, p.Category,
				})
			}
			fmt.Println(renderTable(
				[]string{"ID", "TITLE", "CATEGORY"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// projectCmd creates the project command group.
func projectCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "project",
		Usage: "Create, edit, or show a single project",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new project",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Project title"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category name"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Free-form description"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.SaveProject(store, ops.SaveProjectInput{
						Title:       c.String("title"),
						Category:    c.String("category"),
						Description: c.String("description"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit an existing project (only the given flags change)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New category"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
				},
				Action: func(c *cli.Context) error {
					id, err := parseIDArg(c)
					if err != nil {
						return outputError(err)
					}

					existing, err := ops.GetProject(store, id)
					if err != nil {
						return outputError(err)
					}
					if existing.Item == nil {
						return outputError(errors.NewNotFound("project", id))
					}

					input := ops.SaveProjectInput{
						ID:          &id,
						Title:       existing.Item.Title,
						Category:    existing.Item.Category,
						Description: existing.Item.Description,
					}
					if c.IsSet("title") {
						input.Title = c.String("title")
					}
					if c.IsSet("category") {
						input.Category = c.String("category")
					}
					if c.IsSet("description") {
						input.Description = c.String("description")
					}

					output, err := ops.SaveProject(store, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "show",
				Usage:     "Show one project",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := parseIDArg(c)
					if err != nil {
						return outputError(err)
					}
					output, err := ops.GetProject(store, id)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List distinct project categories",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "by-activity", Usage: "Order by recent episode activity"},
			&cli.BoolFlag{Name: "json", Usage: "Force JSON output"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListCategories(store, ops.ListCategoriesInput{
				ByActivity: c.Bool("by-activity"),
			})
			if err != nil {
				return outputError(err)
			}

			if !wantTable(c) {
				return outputJSON(output)
			}
			for _, category := range output.Items {
				fmt.Println(category)
			}
			return nil
		},
	}
}

// episodesCmd creates the episodes command.
func episodesCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "episodes",
		Usage: "List the episodes of a project",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "project", Aliases: []string{"p"}, Usage: "Project id (defaults to last used)"},
			&cli.BoolFlag{Name: "desc", Usage: "Newest first"},
			&cli.BoolFlag{Name: "json", Usage: "Force JSON output"},
		},
		Action: func(c *cli.Context) error {
			projectID, err := resolveProject(c, store)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ListEpisodes(store, ops.ListEpisodesInput{
				ProjectID:  projectID,
				Descending: c.Bool("desc"),
			})
			if err != nil {
				return outputError(err)
			}
			rememberProject(store, projectID)

			if !wantTable(c) {
				return outputJSON(output)
			}

			headers := []string{"ID", "EP", "TITLE", "SESSION", "RECORDED"}
			aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft}
			if output.HasParts {
				headers = []string{"ID", "EP", "PART", "TITLE", "SESSION", "RECORDED"}
				aligns = []columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft}
			}

			rows := make([][]string, 0, len(output.Items))
			for _, e := range output.Items {
				row := []string{
					strconv.FormatInt(e.ID, 10),
					strconv.Itoa(e.Counter),
				}
				if output.HasParts {
					row = append(row, strconv.Itoa(e.Part))
				}
				row = append(row, e.Title, e.Session, e.RecordedOn)
				rows = append(rows, row)
			}
			fmt.Println(renderTable(headers, rows, aligns))
			return nil
		},
	}
}

// episodeCmd creates the episode command group.
func episodeCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "episode",
		Usage: "Show or save a single episode",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show one episode",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := parseIDArg(c)
					if err != nil {
						return outputError(err)
					}
					output, err := ops.GetEpisode(store, id)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "save",
				Usage: "Create or overwrite an episode with explicit fields",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Episode id (omit to create)"},
					&cli.Int64Flag{Name: "project", Aliases: []string{"p"}, Usage: "Project id"},
					&cli.Int64Flag{Name: "template", Usage: "Template id"},
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Episode title"},
					&cli.IntFlag{Name: "counter", Usage: "Primary counter"},
					&cli.IntFlag{Name: "part", Usage: "Secondary counter (0 = unused)"},
					&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Session label"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description"},
					&cli.StringFlag{Name: "date", Usage: "Recording date (dd.mm.yyyy or yyyy-mm-dd)"},
				},
				Action: func(c *cli.Context) error {
					input := ops.SaveEpisodeInput{
						ProjectID:   c.Int64("project"),
						Title:       c.String("title"),
						Counter:     c.Int("counter"),
						Part:        c.Int("part"),
						Session:     c.String("session"),
						Description: c.String("description"),
						RecordedOn:  c.String("date"),
					}
					if c.IsSet("id") {
						id := c.Int64("id")
						input.ID = &id
					}
					if c.IsSet("template") {
						templateID := c.Int64("template")
						input.TemplateID = &templateID
					}

					output, err := ops.SaveEpisode(store, input)
					if err != nil {
						return outputError(err)
					}
					rememberProject(store, input.ProjectID)
					return outputJSON(output)
				},
			},
		},
	}
}

// nextCmd creates the next command, the main day-to-day entry point.
func nextCmd(store *db.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Create the next episode of a project, continuing from the latest one",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "project", Aliases: []string{"p"}, Usage: "Project id (defaults to last used)"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Episode title (never carried over)"},
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Override the carried session label"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Override the carried description"},
			&cli.BoolFlag{Name: "reset-part", Usage: "Start the secondary counter at 1"},
			&cli.IntFlag{Name: "start", Usage: "First counter value for an empty project"},
			&cli.StringFlag{Name: "date", Usage: "Recording date (dd.mm.yyyy or yyyy-mm-dd)"},
			&cli.BoolFlag{Name: "draft", Usage: "Compute the episode without persisting it"},
		},
		Action: func(c *cli.Context) error {
			projectID, err := resolveProject(c, store)
			if err != nil {
				return outputError(err)
			}

			input := ops.NextEpisodeInput{
				ProjectID:    projectID,
				Title:        c.String("title"),
				ResetPart:    c.Bool("reset-part"),
				StartCounter: c.Int("start"),
				RecordedOn:   c.String("date"),
				Draft:        c.Bool("draft"),
			}
			if c.IsSet("session") {
				session := c.String("session")
				input.Session = &session
			}
			if c.IsSet("description") {
				description := c.String("description")
				input.Description = &description
			}

			output, err := ops.NextEpisode(store, cfg, input)
			if err != nil {
				return outputError(err)
			}
			rememberProject(store, projectID)
			return outputJSON(output)
		},
	}
}

// assignCmd creates the assign command.
func assignCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "assign",
		Usage: "Assign a template to an episode, or clear the assignment",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "episode", Aliases: []string{"e"}, Usage: "Episode id"},
			&cli.Int64Flag{Name: "template", Aliases: []string{"t"}, Usage: "Template id"},
			&cli.BoolFlag{Name: "clear", Usage: "Remove the current assignment"},
		},
		Action: func(c *cli.Context) error {
			input := ops.AssignTemplateInput{
				EpisodeID: c.Int64("episode"),
			}
			if !c.Bool("clear") {
				if !c.IsSet("template") {
					return outputError(errors.NewInvalidRequest("either --template or --clear is required"))
				}
				templateID := c.Int64("template")
				input.TemplateID = &templateID
			}

			output, err := ops.AssignTemplate(store, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List all description templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Force JSON output"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListTemplates(store)
			if err != nil {
				return outputError(err)
			}

			if !wantTable(c) {
				return outputJSON(output)
			}

			rows := make([][]string, 0, len(output.Items))
			for _, t := range output.Items {
				rows = append(rows, []string{
					strconv.FormatInt(t.ID, 10), t.Title, t.Tags,
				})
			}
			fmt.Println(renderTable(
				[]string{"ID", "TITLE", "TAGS"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// templateCmd creates the template command group.
func templateCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Create, edit, or show a single template",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new template",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Template title"},
					&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "Pattern text with $$token$$ markers"},
					&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.SaveTemplate(store, ops.SaveTemplateInput{
						Title:   c.String("title"),
						Pattern: c.String("pattern"),
						Tags:    c.String("tags"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "edit",
				Usage:     "Edit an existing template (only the given flags change)",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "New pattern"},
					&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
				},
				Action: func(c *cli.Context) error {
					id, err := parseIDArg(c)
					if err != nil {
						return outputError(err)
					}

					existing, err := ops.GetTemplate(store, id)
					if err != nil {
						return outputError(err)
					}
					if existing.Item == nil {
						return outputError(errors.NewNotFound("template", id))
					}

					input := ops.SaveTemplateInput{
						ID:      &id,
						Title:   existing.Item.Title,
						Pattern: existing.Item.Pattern,
						Tags:    existing.Item.Tags,
					}
					if c.IsSet("title") {
						input.Title = c.String("title")
					}
					if c.IsSet("pattern") {
						input.Pattern = c.String("pattern")
					}
					if c.IsSet("tags") {
						input.Tags = c.String("tags")
					}

					output, err := ops.SaveTemplate(store, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "show",
				Usage:     "Show one template",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := parseIDArg(c)
					if err != nil {
						return outputError(err)
					}
					output, err := ops.GetTemplate(store, id)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// renderCmd creates the render command.
func renderCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render an episode's description through its template",
		ArgsUsage: "<episode-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Force JSON output"},
		},
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Render(store, ops.RenderInput{EpisodeID: id})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}
			if output.Item == nil {
				fmt.Fprintln(os.Stderr, "no renderable text: episode has no template assigned")
				return nil
			}
			fmt.Println(output.Item.Text)
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(store *db.Store, cfg *config.Config, exportDir string) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a rendered episode description to a file",
		ArgsUsage: "<episode-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: md|html (default: configured)"},
			&cli.StringFlag{Name: "dir", Usage: "Target directory (default: ~/.epinames/exports)"},
		},
		Action: func(c *cli.Context) error {
			id, err := parseIDArg(c)
			if err != nil {
				return outputError(err)
			}

			dir := c.String("dir")
			if dir == "" {
				dir = exportDir
			}

			output, err := ops.Export(store, cfg, ops.ExportInput{
				EpisodeID: id,
				Format:    c.String("format"),
				Dir:       dir,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search templates by title or tag, or episodes within a project",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "project", Aliases: []string{"p"}, Usage: "Search episode titles of this project instead of templates"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("query argument is required"))
			}

			output, err := ops.Search(store, ops.SearchInput{
				Query:     c.Args().First(),
				ProjectID: c.Int64("project"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// seedCmd creates the seed command.
func seedCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Fill an empty store with demo data",
		Action: func(c *cli.Context) error {
			output, err := ops.Seed(store)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// wantTable reports whether human-readable table output should be used.
func wantTable(c *cli.Context) bool {
	return !c.Bool("json") && stdoutIsTerminal()
}

// parseIDArg reads the positional id argument.
func parseIDArg(c *cli.Context) (int64, error) {
	if c.NArg() == 0 {
		return 0, errors.NewInvalidRequest("id argument is required")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid id %q", c.Args().First()))
	}
	return id, nil
}

// resolveProject picks the project id from the flag or the remembered one.
func resolveProject(c *cli.Context, store *db.Store) (int64, error) {
	if c.IsSet("project") {
		return c.Int64("project"), nil
	}
	id, err := ops.CurrentProject(store)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.NewInvalidRequest("no project selected; pass --project")
	}
	return id, nil
}

// rememberProject stores the project id for the next bare invocation. A
// failed write only loses the convenience default, so it is not fatal.
func rememberProject(store *db.Store, id int64) {
	if id > 0 {
		_ = ops.RememberProject(store, id)
	}
}
