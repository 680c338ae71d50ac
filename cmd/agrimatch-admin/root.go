package main

import (
	"context"
	"fmt"
	"time"

	"agri-match/internal/app"
	"agri-match/internal/config"
	"agri-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const cliName = "agrimatch-admin"

var (
	envFile   string
	jsonLogs  bool
	debugLogs bool

	rootCmd = &cobra.Command{
		Use:           cliName,
		Short:         "Operator tooling for the agri-match matching service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "a .env file to load (default is .env in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "verbose/debug output")
}

func loadConfig() (config.Config, error) {
	var paths []string
	if envFile != "" {
		paths = append(paths, envFile)
	}
	if err := config.LoadDotEnv(paths...); err != nil {
		return config.Config{}, err
	}
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(jsonLogs || cfg.Log.JSON, debugLogs || cfg.Log.Debug)
}

// withContainer opens the stores, runs fn and closes everything afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("close container", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}
