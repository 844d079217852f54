package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/covertbagel/compendium/internal/cache"
	"github.com/covertbagel/compendium/internal/catalog"
	"github.com/covertbagel/compendium/internal/config"
	"github.com/covertbagel/compendium/internal/db"
	"github.com/covertbagel/compendium/internal/mcp"
	"github.com/covertbagel/compendium/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "export": true, "notes": true, "history": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  compendium — episode catalog with curator notes

  Usage: compendium <command> [options]
         compendium --help

  MCP server mode requires piped input.`)
}

func main() {
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".compendium")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, config.ParseLevel(cfg.LogLevel))
	defer func() { _ = cleanup() }()

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	source := catalog.NewClient(cfg.APIKey, cfg.APIBaseURL, cfg.TitleTrimSuffix)
	service := ops.NewService(database, cfg, cache.New(), source, logger)

	if isCLIMode() {
		app := newCLIApp(service, logger)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := mcp.Run(service, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server failed: %v\n", err)
		os.Exit(1)
	}
}
