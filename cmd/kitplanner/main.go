package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"kitplanner/internal/config"
	appLog "kitplanner/internal/log"
)

const version = "0.1.0"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"./config.yaml" env:"KITPLANNER_CONFIG"`
	Listen  string `help:"HTTP listen address (overrides config if set)." env:"KITPLANNER_LISTEN"`

	Serve    ServeCmd    `cmd:"" help:"Serve the dashboard." default:"1"`
	Snapshot SnapshotCmd `cmd:"" help:"Capture the planner to a PNG and exit."`
}

// appContext is handed to every command's Run.
type appContext struct {
	cfg *config.Config
}

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("kitplanner"),
		kong.Description("Appointment planner dashboard"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", CLI.Config)
		os.Exit(1)
	}
	if CLI.Listen != "" {
		cfg.Listen = CLI.Listen
	}
	appLog.Init(appLog.Options{Level: cfg.Log.Level, File: cfg.Log.File})

	appLog.Info("kitplanner starting", "version", version, "command", ctx.Command())
	appLog.Info("effective config",
		"listen", cfg.Listen,
		"timezone", cfg.Timezone,
		"locale", cfg.Locale,
		"currency", cfg.Currency,
		"services", len(cfg.Catalog.Services),
		"clients", len(cfg.Catalog.Clients),
		"seed_ics", cfg.SeedICS != "",
		"snapshot_cron", cfg.Snapshot.Cron,
	)

	if err := ctx.Run(&appContext{cfg: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
