package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/logging"
	"github.com/jayozer/SeoTagInspector/report"
	"github.com/jayozer/SeoTagInspector/scoring"
)

func NewCheckCmd() *cobra.Command {
	var (
		outputFormat string
		mode         string
		endpoint     string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check URL",
		Short: "Analyze the meta tags of a page and print its SEO report",
		Long: `Submit a URL to the analysis service, score the result and print the report.

Examples:
  # Human readable report
  seo-tag-inspector check https://example.com

  # Flat scoring, JSON output
  seo-tag-inspector check https://example.com --mode flat -o json

  # Use another analysis service
  seo-tag-inspector check https://example.com --endpoint http://analyzer:5000/analyze`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode") {
				cfg.Scoring.Mode = mode
			}
			if cmd.Flags().Changed("endpoint") {
				cfg.Analyzer.Endpoint = endpoint
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Analyzer.Timeout = timeout
			}

			scoringMode, err := scoring.ParseMode(cfg.Scoring.Mode)
			if err != nil {
				return err
			}
			switch outputFormat {
			case "human", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (expected human, json or yaml)", outputFormat)
			}

			client := analyzer.New(analyzer.Options{
				Endpoint: cfg.Analyzer.Endpoint,
				Timeout:  cfg.Analyzer.Timeout,
				Logger:   logging.Log,
			})

			logging.Log.WithField("endpoint", client.Endpoint()).Debug("Submitting URL for analysis")

			human := outputFormat == "human"
			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			s.Suffix = " Analyzing " + args[0] + "..."
			if human {
				s.Start()
			}
			res, err := client.Analyze(cmd.Context(), args[0])
			if human {
				s.Stop()
			}
			if err != nil {
				return errors.New(analyzer.UserMessage(err))
			}
			if human {
				printSuccess(cmd, "Analysis complete")
			}

			return report.Encode(cmd.OutOrStdout(), report.Build(res, scoring.NewComposer(scoringMode)), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&mode, "mode", "", "Scoring mode (flat, weighted). Defaults to the configured mode")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Analysis service endpoint (overrides config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Analysis request timeout (overrides config)")

	return cmd
}

func printSuccess(cmd *cobra.Command, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(cmd.ErrOrStderr(), "✓ %s\n", msg)
}
