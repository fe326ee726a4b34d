package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jayozer/SeoTagInspector/config"
	"github.com/jayozer/SeoTagInspector/logging"
)

// ConfigFlag is the persistent flag holding the config file path
const ConfigFlag = "config"

// loadConfig loads .env files and the config file named by the --config flag,
// then initializes the logger
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := ""
	if f := cmd.Flag(ConfigFlag); f != nil {
		path = f.Value.String()
	}

	config.LoadEnv()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := logging.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}
