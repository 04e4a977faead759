// Command brainz looks up entities on the MusicBrainz web service from
// the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ellipsora/brainz"
	"github.com/ellipsora/brainz/internal/config"
	"github.com/ellipsora/brainz/internal/logger"
	"github.com/ellipsora/brainz/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "brainz",
	Short:   "MusicBrainz web service client",
	Long:    "brainz looks up entities on the MusicBrainz web service and shows which include parameters shape each response.",
	Version: version.Version + " (" + version.Commit + ")",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default .brainz.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "web service base URL")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("BRAINZ")
	viper.AutomaticEnv()
}

// loadConfig reads the config file and applies flag/env overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = ".brainz.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if s := viper.GetString("api.base_url"); s != "" {
		cfg.API.BaseURL = s
	}
	if s := viper.GetString("logging.level"); s != "" {
		cfg.Logging.Level = s
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildClient(cmd *cobra.Command) (*brainz.Client, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	opts := []brainz.Option{
		brainz.WithBaseURL(cfg.API.BaseURL),
		brainz.WithLogger(log),
	}
	if cfg.API.App.Name != "" {
		opts = append(opts, brainz.WithApp(cfg.API.App.Name, cfg.API.App.Version, cfg.API.App.Contact))
	}
	if cfg.API.MaxQueue > 0 {
		opts = append(opts, brainz.WithMaxQueue(cfg.API.MaxQueue))
	}

	c, err := brainz.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, log, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
