package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ai-generator/internal/config"
	"github.com/ytget/ai-generator/internal/download"
	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/logger"
	"github.com/ytget/ai-generator/internal/platform"
	"github.com/ytget/ai-generator/internal/session"
	"github.com/ytget/ai-generator/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ai-generator"
	AppName = "AI Generator"

	WindowWidth  = 960
	WindowHeight = 720
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: $"+config.EnvConfigPath+" or the user config dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	slog.Info("starting", "app", AppName, "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp, cfg)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		slog.Warn("failed to ensure downloads dir", "dir", downloadsDir, "error", err)
	}

	client := generate.NewClient(
		settings.GetEndpoints(),
		generate.WithSafetyTolerance(cfg.SafetyTolerance),
		generate.WithUserAgent("ai-generator/"+version),
	)
	downloadSvc := download.NewService(downloadsDir)
	manager := session.New(client, downloadSvc, session.WithTimeout(settings.GetRequestTimeout()))

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, settings, manager, downloadSvc, client)

	// Show and run
	myWindow.ShowAndRun()
}
