package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vbonduro/trailplan/internal/kv"
	"github.com/vbonduro/trailplan/internal/service"
	"github.com/vbonduro/trailplan/internal/web"
	"github.com/vbonduro/trailplan/internal/web/templates"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	live, err := a.loadCatalog()
	if err != nil {
		return err
	}
	states, err := a.openStates()
	if err != nil {
		return err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}

	if a.cfg.Watch {
		go func() {
			if err := live.Watch(ctx); err != nil {
				a.logger.Error("catalog watcher stopped", "error", err)
			}
		}()
	}

	server := web.NewServer(
		service.NewChecklistService(live, states, a.logger),
		service.NewTripService(live, loc, a.logger),
		live,
		templates.FS,
		a.logger,
	)
	if err := server.ListenAndServe(ctx, a.cfg.ListenAddr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// openStates returns the check state store. Without a database path the
// state lives in memory and is lost on restart.
func (a *app) openStates() (kv.Store, error) {
	if a.cfg.DBPath == "" {
		a.logger.Warn("no database path configured, check state is kept in memory")
		return kv.NewMemory(), nil
	}
	return a.openStore()
}
