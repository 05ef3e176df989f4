package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/luach/internal/config"
	"github.com/javiermolinar/luach/internal/logging"
	"github.com/javiermolinar/luach/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app := ui.NewApp(nil, cfg, log)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
