package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/logging"
	"github.com/jayozer/SeoTagInspector/scoring"
	"github.com/jayozer/SeoTagInspector/server"
	"github.com/jayozer/SeoTagInspector/stats"
)

// retainMonths is how many months of outcome counters are kept on disk
const retainMonths = 12

func NewServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			gin.SetMode(cfg.Server.GinMode)

			statistics, err := logging.NewStatistics(cfg.Stats.DataDir)
			if err != nil {
				return err
			}
			defer func() {
				if err := statistics.Save(); err != nil {
					logging.Log.WithError(err).Warn("Failed to save statistics")
				}
			}()

			storage, err := stats.NewStorage(cfg.Stats.DataDir)
			if err != nil {
				return err
			}
			defer func() {
				if err := storage.Shutdown(); err != nil {
					logging.Log.WithError(err).Warn("Failed to flush outcome counters")
				}
			}()
			storage.Cleanup(retainMonths)

			client := analyzer.New(analyzer.Options{
				Endpoint: cfg.Analyzer.Endpoint,
				Timeout:  cfg.Analyzer.Timeout,
				Logger:   logging.Log,
			})
			srv := server.New(server.Options{
				Analyzer:   client,
				Composer:   scoring.NewComposer(cfg.ScoringMode()),
				Statistics: statistics,
				Storage:    storage,
				Rate:       cfg.Server.Rate,
				Burst:      cfg.Server.Burst,
				DevMode:    cfg.DevMode,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logging.Log.WithField("endpoint", client.Endpoint()).
				WithField("mode", cfg.ScoringMode()).
				Infof("Serving on http://localhost:%s", cfg.Server.Port)
			return srv.Run(ctx, ":"+cfg.Server.Port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")

	return cmd
}
