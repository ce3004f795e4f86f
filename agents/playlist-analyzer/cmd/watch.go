package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"playlist-insights/shared/scheduler"
)

func newWatchCmd(a *app) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-analyze the configured playlists on a schedule",
		Long: `watch analyzes every playlist listed under watch.playlists on the cron
schedule in watch.schedule, emails a report per playlist when email is
configured, and serves /health, /status, /api/latest (GET, DELETE to clear)
and /api/binge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateWatch(); err != nil {
				return err
			}

			ctx := cmd.Context()
			agent := a.newAgent()
			s := scheduler.New(a.cfg, agent, agent.Session(), a.logger)

			if once {
				a.logger.Info("Running once")
				if err := agent.Initialize(); err != nil {
					return fmt.Errorf("failed to initialize agent: %w", err)
				}
				return s.RunOnce(ctx)
			}

			a.logger.Info("Starting scheduler", zap.Int("playlists", len(a.cfg.Watch.Playlists)))
			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scheduler failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single pass and exit")

	return cmd
}
