package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/config"
	"hrportal/recruiting-api/internal/logger"
)

const app = "recruiting-api"

var (
	debugFlag bool
	jsonFlag  bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "HR recruiting portal API: job postings, AI interview questions and candidate ranking",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
)

// Execute executes the root command. Without a subcommand the API server is started.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "json format for logging (overrides LOG_FORMAT)")
}

// loadRuntime reads the configuration and builds the logger, letting the
// persistent flags take precedence over the environment.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()

	if debugFlag {
		cfg.Log.Debug = true
	}
	if jsonFlag {
		cfg.Log.Format = "json"
	}

	log, err := logger.New(cfg.Log.Format, cfg.Log.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
