package main

import (
	"fmt"

	"github.com/fgeck/mysql2docker/internal/config"
	"github.com/fgeck/mysql2docker/internal/services/docker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate the configuration from the environment (and optional env file)
without executing any pipeline step.`,
	RunE:          validateConfig,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func validateConfig(cmd *cobra.Command, args []string) error {
	parser := config.NewParser()
	cfg, err := parser.Load(envFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}

	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("configuration validation failed")
		return err
	}

	// Print configuration summary
	fmt.Println("Configuration is valid!")
	fmt.Println()
	fmt.Println("MySQL:")
	fmt.Printf("  Host:     %s\n", cfg.MySQL.Host)
	fmt.Printf("  Port:     %d\n", cfg.MySQL.Port)
	fmt.Printf("  User:     %s\n", cfg.MySQL.Username)
	fmt.Printf("  Password: (configured)\n")
	fmt.Printf("  Database: %s\n", cfg.MySQL.Database)
	fmt.Println()
	fmt.Println("Docker:")
	fmt.Printf("  Username:   %s\n", cfg.Image.Username)
	fmt.Printf("  Password:   (configured)\n")
	fmt.Printf("  Image name: %s\n", cfg.Image.Name)
	if cfg.Image.CustomTag != "" {
		fmt.Printf("  Custom tag: %s\n", cfg.Image.CustomTag)
	}
	fmt.Printf("  Keep local image: %v\n", cfg.Image.KeepLocal)
	fmt.Println()
	fmt.Printf("Example tag: %s\n", docker.ImageTag(cfg.Image, "YYYYMMDD_HHMMSS"))

	return nil
}
