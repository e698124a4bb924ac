package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ytget/ai-generator/internal/config"
	"github.com/ytget/ai-generator/internal/download"
	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/logger"
	"github.com/ytget/ai-generator/internal/platform"
	"github.com/ytget/ai-generator/internal/session"
	"github.com/ytget/ai-generator/internal/tui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: $"+config.EnvConfigPath+" or the user config dir)")
	watchConfig := flag.Bool("watch", true, "reload endpoints and timeout when the config file changes")
	downloadDir := flag.String("download-dir", "", "directory for saved files")
	logFile := flag.String("log-file", "", "write logs to this file")
	initConfig := flag.Bool("init-config", false, "write a default config file and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ai-generator-tui %s\n", version)
		return
	}
	if *initConfig {
		path, err := config.WriteDefault(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: ai-generator-tui needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *downloadDir != "" {
		cfg.DownloadDir = platform.ExpandHome(*downloadDir)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	// stderr belongs to the terminal UI, so logs always go to a file
	if cfg.Log.File == "" && os.Getenv("LOG_FILE") == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "ai-generator-tui.log")
	}
	logger.Init(logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		Fallback: io.Discard,
	})
	slog.Info("starting", "version", version, "download_dir", cfg.DownloadDir)

	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
		slog.Warn("failed to ensure downloads dir", "dir", cfg.DownloadDir, "error", err)
	}

	client := generate.NewClient(
		cfg.GenerateEndpoints(),
		generate.WithSafetyTolerance(cfg.SafetyTolerance),
		generate.WithUserAgent("ai-generator-tui/"+version),
	)
	downloadSvc := download.NewService(cfg.DownloadDir)
	manager := session.New(client, downloadSvc, session.WithTimeout(cfg.Timeout()))

	if *watchConfig {
		watcher := config.NewWatcher(*configPath, func(updated *config.Config) {
			client.SetEndpoints(updated.GenerateEndpoints())
			manager.SetTimeout(updated.Timeout())
			if *downloadDir == "" {
				downloadSvc.SetDownloadDirectory(updated.DownloadDir)
			}
		})
		if err := watcher.Start(); err != nil {
			slog.Warn("config watching disabled", "path", watcher.Path(), "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	p := tea.NewProgram(
		tui.NewModel(manager),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
