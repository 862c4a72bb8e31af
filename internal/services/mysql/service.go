// Package mysql provides MySQL dump operations.
package mysql

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/fgeck/mysql2docker/internal/redact"
	"github.com/rs/zerolog"
)

// TimestampFormat is the layout used for dump file names and image tags.
const TimestampFormat = "20060102_150405"

// Service defines the interface for MySQL dump operations.
type Service interface {
	Dump(ctx context.Context, cfg models.MySQLConfig, outputPath string) (*models.DumpResult, error)
}

// CommandExecutor allows mocking exec.Command in tests.
type CommandExecutor interface {
	ExecuteWithEnv(ctx context.Context, env []string, outputPath string, name string, args ...string) error
}

// DefaultExecutor is the default command executor using os/exec.
type DefaultExecutor struct{}

// ExecuteWithEnv runs a command with additional environment variables,
// streaming stdout into outputPath. Stderr is captured and included in the
// returned error on failure.
func (e *DefaultExecutor) ExecuteWithEnv(ctx context.Context, env []string, outputPath string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	output, err := os.Create(outputPath) //nolint:gosec // outputPath is controlled by caller
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = output.Close() }()

	var stderr bytes.Buffer
	cmd.Stdout = output
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w, output: %s", name, err, stderr.String())
	}

	return nil
}

// Impl implements the MySQL Service interface.
type Impl struct {
	executor CommandExecutor
	logger   zerolog.Logger
}

// New creates a new MySQL service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		executor: &DefaultExecutor{},
		logger:   logger,
	}
}

// NewWithExecutor creates a new MySQL service with a custom executor (for testing).
func NewWithExecutor(logger zerolog.Logger, executor CommandExecutor) *Impl {
	return &Impl{
		executor: executor,
		logger:   logger,
	}
}

// Dump runs mysqldump against a single database, streaming the SQL text
// into outputPath. A partial output file is removed on failure.
func (s *Impl) Dump(ctx context.Context, cfg models.MySQLConfig, outputPath string) (*models.DumpResult, error) {
	start := time.Now()
	result := &models.DumpResult{
		OutputPath: outputPath,
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		result.Error = fmt.Errorf("failed to create output directory: %w", err)
		result.Duration = time.Since(start)
		return result, nil
	}

	args := []string{
		"-h", cfg.Host,
		"-P", strconv.Itoa(cfg.Port),
		"-u", cfg.Username,
		"--single-transaction",
		"--quick",
		"--lock-tables=false",
		cfg.Database,
	}

	// The password goes through MYSQL_PWD, never argv.
	env := []string{fmt.Sprintf("MYSQL_PWD=%s", cfg.Password)}

	s.logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Str("output", outputPath).
		Str("command", redact.Command("mysqldump", args, cfg.Password)).
		Msg("starting MySQL dump")

	if execErr := s.executor.ExecuteWithEnv(ctx, env, outputPath, "mysqldump", args...); execErr != nil {
		_ = os.Remove(outputPath)
		result.Error = execErr
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	if info, err := os.Stat(outputPath); err == nil {
		result.SizeBytes = info.Size()
	}

	result.Duration = time.Since(start)

	s.logger.Info().
		Str("output", outputPath).
		Int64("size_bytes", result.SizeBytes).
		Dur("duration", result.Duration).
		Msg("MySQL dump completed")

	return result, nil
}

// DumpFilename returns the dump file name for a run timestamp.
func DumpFilename(timestamp string) string {
	return fmt.Sprintf("backup_%s.sql", timestamp)
}
