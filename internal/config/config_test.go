package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StartCounter != DefaultConfig().StartCounter {
		t.Fatalf("StartCounter = %d, want %d", cfg.StartCounter, DefaultConfig().StartCounter)
	}
	if cfg.ExportFormat != ExportFormatMarkdown {
		t.Fatalf("ExportFormat = %q, want %q", cfg.ExportFormat, ExportFormatMarkdown)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"start_counter": 100, "export_format": "html"}`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StartCounter != 100 {
		t.Errorf("StartCounter = %d, want 100", cfg.StartCounter)
	}
	if cfg.ExportFormat != ExportFormatHTML {
		t.Errorf("ExportFormat = %q, want html", cfg.ExportFormat)
	}
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"db_max_open_conns": 1}`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	if cfg.StartCounter != 1 {
		t.Errorf("StartCounter = %d, want default 1", cfg.StartCounter)
	}
	if cfg.ExportFormat != ExportFormatMarkdown {
		t.Errorf("ExportFormat = %q, want default md", cfg.ExportFormat)
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["episode_export", "search"]}`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools = %v, want 2 entries", cfg.DisabledTools)
	}
	if cfg.DisabledTools[0] != "episode_export" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "episode_export")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{not json`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := &Config{StartCounter: 1, ExportFormat: "md", DBMaxOpenConns: 5}
	overlay := &Config{StartCounter: 50} // remaining fields zero-valued

	result := Merge(base, overlay)

	if result.StartCounter != 50 {
		t.Errorf("StartCounter = %d, want 50 (overlay)", result.StartCounter)
	}
	if result.ExportFormat != "md" {
		t.Errorf("ExportFormat = %q, want md (base)", result.ExportFormat)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base)", result.DBMaxOpenConns)
	}
}

func TestMerge_DisabledToolsDeduplicated(t *testing.T) {
	base := &Config{DisabledTools: []string{"episode_export", "search"}}
	overlay := &Config{DisabledTools: []string{"search", " template_save "}}

	result := Merge(base, overlay)

	if len(result.DisabledTools) != 3 {
		t.Fatalf("DisabledTools = %v, want 3 entries", result.DisabledTools)
	}

	seen := make(map[string]bool)
	for _, name := range result.DisabledTools {
		seen[name] = true
	}
	for _, want := range []string{"episode_export", "search", "template_save"} {
		if !seen[want] {
			t.Errorf("DisabledTools missing %q: %v", want, result.DisabledTools)
		}
	}
}
