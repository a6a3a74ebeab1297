package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/burnoutdv/epinames/internal/config"
	"github.com/burnoutdv/epinames/internal/db"
	"github.com/burnoutdv/epinames/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"projects": true, "project": true, "categories": true,
	"episodes": true, "episode": true, "next": true, "assign": true,
	"templates": true, "template": true,
	"render": true, "export": true, "search": true, "seed": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// newLogger builds the process logger. Output goes to stderr so MCP server
// mode keeps stdout free for the protocol stream.
func newLogger() (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if os.Getenv("EPINAMES_DEBUG") != "" {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logCfg.Build()
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
             _
   ___ _ __ (_)_ __   __ _ _ __ ___   ___  ___
  / _ \ '_ \| | '_ \ / _' | '_ ' _ \ / _ \/ __|
 |  __/ |_) | | | | | (_| | | | | | |  __/\__ \
  \___| .__/|_|_| |_|\__,_|_| |_| |_|\___||___/
      |_|

  Episode tracking and title generation

  Usage: epinames <command> [options]
         epinames --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before store init (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".epinames")
	exportDir := filepath.Join(baseDir, "exports")

	store, err := db.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	store.ConfigurePool(cfg)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(store, cfg, exportDir)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'epinames --help' for usage.\n")
		os.Exit(1)
	}

	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("config disables unknown tools", zap.Strings("tools", unknown))
	}

	// MCP server mode (default)
	if err := mcp.Run(store, cfg, exportDir, logger, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
