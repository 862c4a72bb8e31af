// Package runner orchestrates the backup-package-publish pipeline.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/fgeck/mysql2docker/internal/services/archive"
	"github.com/fgeck/mysql2docker/internal/services/docker"
	"github.com/fgeck/mysql2docker/internal/services/mysql"
	"github.com/rs/zerolog"
)

// Service defines the interface for the pipeline runner.
type Service interface {
	Run(ctx context.Context, cfg models.Config) (*models.PipelineResult, error)
}

// Impl implements the runner Service interface.
type Impl struct {
	mysqlSvc   mysql.Service
	archiveSvc archive.Service
	dockerSvc  docker.Service
	logger     zerolog.Logger
	tempDir    string
}

// New creates a new runner service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		mysqlSvc:   mysql.New(logger),
		archiveSvc: archive.New(logger),
		dockerSvc:  docker.New(logger),
		logger:     logger,
		tempDir:    os.TempDir(),
	}
}

// NewWithServices creates a new runner service with custom services (for testing).
func NewWithServices(
	logger zerolog.Logger,
	mysqlSvc mysql.Service,
	archiveSvc archive.Service,
	dockerSvc docker.Service,
	tempDir string,
) *Impl {
	return &Impl{
		mysqlSvc:   mysqlSvc,
		archiveSvc: archiveSvc,
		dockerSvc:  dockerSvc,
		logger:     logger,
		tempDir:    tempDir,
	}
}

// Run executes the complete pipeline: dump, compress, login, build, push,
// and optional local image removal. The whole run happens inside a
// temporary working directory that is removed on every exit path.
func (s *Impl) Run(ctx context.Context, cfg models.Config) (*models.PipelineResult, error) {
	startTime := time.Now()
	timestamp := startTime.Format(mysql.TimestampFormat)

	s.logger.Info().
		Str("database", cfg.MySQL.Database).
		Str("host", cfg.MySQL.Host).
		Str("timestamp", timestamp).
		Msg("starting pipeline run")

	workDir, err := os.MkdirTemp(s.tempDir, "mysql2docker-")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(workDir); removeErr != nil {
			s.logger.Warn().Err(removeErr).Str("dir", workDir).Msg("failed to remove working directory")
			return
		}
		s.logger.Debug().Str("dir", workDir).Msg("working directory removed")
	}()

	// Step 1: dump
	dumpPath := filepath.Join(workDir, mysql.DumpFilename(timestamp))
	dumpResult, err := s.mysqlSvc.Dump(ctx, cfg.MySQL, dumpPath)
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	if dumpResult.Error != nil {
		return nil, fmt.Errorf("dump failed: %w", dumpResult.Error)
	}

	// Step 2: compress
	compressResult, err := s.archiveSvc.Compress(ctx, dumpResult.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("compress failed: %w", err)
	}
	if compressResult.Error != nil {
		return nil, fmt.Errorf("compress failed: %w", compressResult.Error)
	}

	// Step 3: registry login
	if err := s.dockerSvc.Login(ctx, cfg.Image); err != nil {
		return nil, fmt.Errorf("registry login failed: %w", err)
	}

	// Step 4: build
	tag := docker.ImageTag(cfg.Image, timestamp)
	meta := models.ImageMetadata{
		Timestamp: timestamp,
		Database:  cfg.MySQL.Database,
		Host:      cfg.MySQL.Host,
		DumpFile:  filepath.Base(compressResult.OutputPath),
		CreatedAt: startTime,
	}

	buildResult, err := s.dockerSvc.Build(ctx, meta, workDir, tag)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	if buildResult.Error != nil {
		return nil, fmt.Errorf("build failed: %w", buildResult.Error)
	}

	// Step 5: push
	pushResult, err := s.dockerSvc.Push(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("push failed: %w", err)
	}
	if pushResult.Error != nil {
		return nil, fmt.Errorf("push failed: %w", pushResult.Error)
	}

	// Step 6: local image removal, non-fatal
	if !cfg.Image.KeepLocal {
		if err := s.dockerSvc.RemoveImage(ctx, tag); err != nil {
			s.logger.Warn().Err(err).Str("tag", tag).Msg("failed to remove local image")
		}
	}

	result := &models.PipelineResult{
		Tag:             tag,
		DumpPath:        filepath.Base(compressResult.OutputPath),
		CompressedBytes: compressResult.CompressedBytes,
		Duration:        time.Since(startTime),
	}

	s.logger.Info().
		Str("tag", result.Tag).
		Int64("compressed_bytes", result.CompressedBytes).
		Dur("duration", result.Duration).
		Msg("pipeline run completed successfully")

	return result, nil
}
