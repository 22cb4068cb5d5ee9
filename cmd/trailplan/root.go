package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vbonduro/trailplan/internal/catalog"
	"github.com/vbonduro/trailplan/internal/config"
	"github.com/vbonduro/trailplan/internal/db"
	"github.com/vbonduro/trailplan/internal/logging"
	"github.com/vbonduro/trailplan/internal/service"
	"github.com/vbonduro/trailplan/internal/store"
)

// defaultSession is the check state scope used by the command line.
const defaultSession = "cli"

// app carries the resolved configuration and the resources opened for one
// command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	session string
	noColor bool

	closers []func()
}

// newRootCmd builds the command tree around a. The caller closes a after
// Execute returns, which also covers commands that fail.
func newRootCmd(a *app) *cobra.Command {

	var (
		listen, dbPath, dataDir, logLevel, logFormat, logFile, timezone string
		watch                                                           bool
	)

	root := &cobra.Command{
		Use:          "trailplan",
		Short:        "Plan hiking trips and keep an equipment checklist",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				color.NoColor = true
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.ListenAddr = listen
			}
			if flags.Changed("db") {
				cfg.DBPath = dbPath
			}
			if flags.Changed("data") {
				cfg.DataDir = dataDir
			}
			if flags.Changed("watch") {
				cfg.Watch = watch
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if flags.Changed("timezone") {
				cfg.Timezone = timezone
			}
			a.cfg = cfg

			logger, cleanup, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				File:   cfg.LogFile,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			a.closers = append(a.closers, cleanup)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&listen, "listen", "", "HTTP listen address (TRAILPLAN_LISTEN_ADDR)")
	pf.StringVar(&dbPath, "db", "", "SQLite database path (TRAILPLAN_DB_PATH)")
	pf.StringVar(&dataDir, "data", "", "fixture directory (TRAILPLAN_DATA_DIR)")
	pf.BoolVar(&watch, "watch", true, "reload fixtures when they change (TRAILPLAN_WATCH)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (TRAILPLAN_LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "", "json or text (TRAILPLAN_LOG_FORMAT)")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this file (TRAILPLAN_LOG_FILE)")
	pf.StringVar(&timezone, "timezone", "", "zone used to decide which plans are upcoming (TRAILPLAN_TIMEZONE)")
	pf.StringVar(&a.session, "session", defaultSession, "check state scope; use a browser session id to edit its checklist")
	pf.BoolVar(&a.noColor, "no-color", false, "disable ANSI color output")

	root.AddCommand(
		newServeCmd(a),
		newChecklistCmd(a),
		newToggleCmd(a),
		newCheckAllCmd(a),
		newClearCmd(a),
		newPlansCmd(a),
		newCostCmd(a),
		newSessionsCmd(a),
		newForgetCmd(a),
	)
	return root
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) openStore() (*store.KVStore, error) {
	database, err := db.Open(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := database.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	})
	return store.NewKVStore(database), nil
}

func (a *app) loadCatalog() (*catalog.Live, error) {
	live, err := catalog.NewLive(a.cfg.DataDir, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return live, nil
}

func (a *app) checklistService() (*service.ChecklistService, error) {
	live, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	states, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return service.NewChecklistService(live, states, a.logger), nil
}

func (a *app) tripService() (*service.TripService, error) {
	live, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	return service.NewTripService(live, loc, a.logger), nil
}
