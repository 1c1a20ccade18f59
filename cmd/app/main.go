package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"purelife/internal/config"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "purelife",
		Short: "PureLife health supplement storefront",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config and sets up the process-wide pieces shared by
// every command.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	utils.SetBcryptCost(cfg.Auth.BcryptCost)
	if cfg.Auth.JWTSecret == "change-me-in-production" {
		logger.Warn("using the default jwt secret; set PURELIFE_AUTH_JWT_SECRET")
	}
	return cfg, nil
}
