package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jayozer/SeoTagInspector/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seo-tag-inspector",
		Short: "Score and render SEO meta tag analyses",
		Long: `seo-tag-inspector submits pages to an SEO analysis service, scores the
returned meta tags and renders the report in a terminal or a web page.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().String(cmd.ConfigFlag, "config.yaml", "Path to the config file")

	rootCmd.AddCommand(
		cmd.NewCheckCmd(),
		cmd.NewServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seo-tag-inspector version %s\n", version)
		},
	}
}
