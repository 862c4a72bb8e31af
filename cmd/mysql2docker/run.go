package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fgeck/mysql2docker/internal/config"
	"github.com/fgeck/mysql2docker/internal/services/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the backup pipeline",
	Long: `Execute the complete backup pipeline:
1. Dump the MySQL database with mysqldump
2. Compress the dump with gzip
3. Log in to the Docker registry
4. Build a Docker image embedding the compressed dump
5. Push the image to the registry
6. Remove the local image copy (unless KEEP_LOCAL_IMAGE is set)`,
	RunE:          runPipeline,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	// Load configuration
	parser := config.NewParser()
	cfg, err := parser.Load(envFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	log.Info().
		Str("mysql_host", cfg.MySQL.Host).
		Str("database", cfg.MySQL.Database).
		Str("image", cfg.Image.Username+"/"+cfg.Image.Name).
		Msg("configuration loaded")

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	// Run pipeline
	runnerSvc := runner.New(log.Logger)
	result, err := runnerSvc.Run(ctx, *cfg)
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		return err
	}

	log.Info().
		Str("tag", result.Tag).
		Str("backup", result.DumpPath).
		Msg("pipeline completed successfully")
	return nil
}
