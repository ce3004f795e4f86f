package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	playlistanalyzer "playlist-insights/agents/playlist-analyzer"
	"playlist-insights/internal/models"
	"playlist-insights/shared/ai"
	"playlist-insights/shared/apperrors"
)

type analyzeOptions struct {
	hours    string
	minutes  string
	insights []string
	asJSON   bool
}

// analyzeOutput is the --json document.
type analyzeOutput struct {
	Result   *models.AnalysisResult `json:"result"`
	Binge    *models.BingeEstimate  `json:"binge,omitempty"`
	Insights []*models.Insight      `json:"insights,omitempty"`
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <playlist-url>",
		Short: "Analyze a playlist and print its statistics",
		Example: `  playlist-insights analyze "https://www.youtube.com/playlist?list=PL..." --hours 1 --minutes 30
  playlist-insights analyze "https://www.youtube.com/playlist?list=PL..." --insight summary --insight faq`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.hours, "hours", "", "daily watch budget, hours part")
	cmd.Flags().StringVar(&opts.minutes, "minutes", "", "daily watch budget, minutes part")
	cmd.Flags().StringSliceVar(&opts.insights, "insight", nil, "AI insight to generate: summary, learning-path or faq (repeatable)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func newBingeCmd(a *app) *cobra.Command {
	var hours, minutes string

	cmd := &cobra.Command{
		Use:   "binge <playlist-url>",
		Short: "Estimate how many days it takes to watch a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent := a.newAgent()
			if _, err := agent.Analyze(cmd.Context(), args[0]); err != nil {
				return userError(a.logger, err)
			}

			estimate, err := agent.Session().EstimateBinge(hours, minutes)
			if err != nil {
				return userError(a.logger, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), estimate.Message())
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", "daily watch budget, hours part")
	cmd.Flags().StringVar(&minutes, "minutes", "", "daily watch budget, minutes part")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, playlistURL string, opts *analyzeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	kinds := make([]models.InsightKind, 0, len(opts.insights))
	for _, name := range opts.insights {
		kind, err := ai.ParseInsightKind(name)
		if err != nil {
			return userError(a.logger, err)
		}
		kinds = append(kinds, kind)
	}

	agent := a.newAgent()
	result, err := agent.Analyze(ctx, playlistURL)
	if err != nil {
		return userError(a.logger, err)
	}

	output := analyzeOutput{Result: result}

	if opts.hours != "" || opts.minutes != "" {
		estimate, err := agent.Session().EstimateBinge(opts.hours, opts.minutes)
		if err != nil {
			return userError(a.logger, err)
		}
		output.Binge = estimate
	}

	for _, kind := range kinds {
		insight, err := agent.GenerateInsight(ctx, kind)
		if err != nil {
			return userError(a.logger, err)
		}
		output.Insights = append(output.Insights, insight)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	return writeText(out, output)
}

func writeText(w io.Writer, output analyzeOutput) error {
	if err := playlistanalyzer.WriteReport(w, output.Result); err != nil {
		return err
	}

	if output.Binge != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.Binge.Message())
	}

	for _, insight := range output.Insights {
		fmt.Fprintf(w, "\n== %s (%s) ==\n%s\n", insight.Kind, insight.Provider, insight.Text)
	}

	return nil
}

// userError logs the full chain and returns the message a user should see.
func userError(logger *zap.Logger, err error) error {
	logger.Debug("Command failed", zap.Error(err))
	return errors.New(apperrors.UserMessage(err))
}
