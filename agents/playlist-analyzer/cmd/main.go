package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	playlistanalyzer "playlist-insights/agents/playlist-analyzer"
	"playlist-insights/shared/config"
	"playlist-insights/shared/logging"
)

// app carries what every subcommand needs once the root pre-run has loaded
// configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	apiKey string
}

func (a *app) newAgent(opts ...playlistanalyzer.Option) *playlistanalyzer.PlaylistAgent {
	return playlistanalyzer.NewPlaylistAgent(a.cfg, a.logger, opts...)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "playlist-insights",
		Short: "Analyze YouTube playlists",
		Long: `playlist-insights fetches every video of a public YouTube playlist, reports
total and average duration, the longest, shortest, most viewed and most liked
videos, a length distribution, how long a binge would take, and optional
AI-generated summaries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if a.apiKey != "" {
				if cfg.AI.GeminiAPIKey == "" || cfg.AI.GeminiAPIKey == cfg.YouTube.APIKey {
					cfg.AI.GeminiAPIKey = a.apiKey
				}
				cfg.YouTube.APIKey = a.apiKey
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiKey, "api-key", "", "Google Cloud API key (overrides YOUTUBE_API_KEY)")

	root.AddCommand(
		newAnalyzeCmd(a),
		newBingeCmd(a),
		newWatchCmd(a),
	)

	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
