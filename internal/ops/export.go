package ops

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/yuin/goldmark"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	EpisodeID int64

	// Format is "md" or "html"; empty falls back to the configured
	// export format.
	Format string

	// Dir is the directory the file is written to.
	Dir string
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	EpisodeID  int64  `json:"episode_id"`
	ExportedAt int64  `json:"exported_at"`
}

// Export renders an episode's description and writes it to a file in the
// export directory. Markdown exports contain the rendered text as-is;
// HTML exports run it through goldmark first. The write goes to a temp
// file followed by a rename so a failed export never leaves a torn file.
func Export(store *db.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	if input.Dir == "" {
		return nil, errors.NewInvalidRequest("export directory is required")
	}

	format := input.Format
	if format == "" {
		format = cfg.ExportFormat
	}
	if format != config.ExportFormatMarkdown && format != config.ExportFormatHTML {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown export format %q", format))
	}

	rendered, err := Render(store, RenderInput{EpisodeID: input.EpisodeID})
	if err != nil {
		return nil, err
	}
	if rendered.Item == nil {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("episode %d has no renderable text (no template assigned or reference dangling)", input.EpisodeID))
	}

	var content []byte
	switch format {
	case config.ExportFormatMarkdown:
		content = []byte(rendered.Item.Text)
	case config.ExportFormatHTML:
		var body bytes.Buffer
		if err := goldmark.Convert([]byte(rendered.Item.Text), &body); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("markdown conversion failed: %w", err))
		}
		content = []byte(fmt.Sprintf(
			"<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body>\n</html>\n",
			html.EscapeString(rendered.Item.TemplateTitle), body.String()))
	}

	if err := os.MkdirAll(input.Dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	now := time.Now()
	fileID, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	exportPath := filepath.Join(input.Dir,
		fmt.Sprintf("episode-%d-%s.%s", input.EpisodeID, fileID, format))

	tempPath := exportPath + ".tmp"
	if err := os.WriteFile(tempPath, content, 0600); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := os.Rename(tempPath, exportPath); err != nil {
		os.Remove(tempPath)
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}

	return &ExportOutput{
		Path:       exportPath,
		Format:     format,
		EpisodeID:  input.EpisodeID,
		ExportedAt: now.Unix(),
	}, nil
}

// generateULID generates a new ULID for export file names.
func generateULID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
