// Package docker wraps the docker CLI for building, pushing, and removing
// backup images.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/fgeck/mysql2docker/internal/redact"
	"github.com/rs/zerolog"
)

// Service defines the interface for docker operations.
type Service interface {
	Login(ctx context.Context, cfg models.ImageConfig) error
	Build(ctx context.Context, meta models.ImageMetadata, contextDir, tag string) (*models.BuildResult, error)
	Push(ctx context.Context, tag string) (*models.PushResult, error)
	RemoveImage(ctx context.Context, tag string) error
}

// CommandExecutor allows mocking exec.Command in tests.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
	ExecuteWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// DefaultExecutor is the default command executor using os/exec.
type DefaultExecutor struct{}

// Execute runs a command and returns its combined output.
func (e *DefaultExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	return cmd.CombinedOutput()
}

// ExecuteWithStdin runs a command with the given reader as stdin.
func (e *DefaultExecutor) ExecuteWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	cmd.Stdin = stdin
	return cmd.CombinedOutput()
}

// Impl implements the docker Service interface.
type Impl struct {
	executor CommandExecutor
	logger   zerolog.Logger
}

// New creates a new docker service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		executor: &DefaultExecutor{},
		logger:   logger,
	}
}

// NewWithExecutor creates a new docker service with a custom executor (for testing).
func NewWithExecutor(logger zerolog.Logger, executor CommandExecutor) *Impl {
	return &Impl{
		executor: executor,
		logger:   logger,
	}
}

// Login authenticates to the registry. The credential is piped via stdin and
// never appears in the command line or in logs.
func (s *Impl) Login(ctx context.Context, cfg models.ImageConfig) error {
	args := []string{"login", "-u", cfg.Username, "--password-stdin"}

	s.logger.Info().
		Str("username", cfg.Username).
		Str("command", redact.Command("docker", args, cfg.Password)).
		Msg("logging in to registry")

	output, err := s.executor.ExecuteWithStdin(ctx, strings.NewReader(cfg.Password), "docker", args...)
	if err != nil {
		return fmt.Errorf("docker login failed: %w, output: %s", err, redact.String(string(output), cfg.Password))
	}

	s.logger.Info().Msg("registry login succeeded")
	return nil
}

// Build renders the Dockerfile and info file into contextDir and builds the
// image with the given tag.
func (s *Impl) Build(ctx context.Context, meta models.ImageMetadata, contextDir, tag string) (*models.BuildResult, error) {
	start := time.Now()
	result := &models.BuildResult{
		Tag: tag,
	}

	if err := WriteBuildContext(contextDir, meta); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	args := []string{"build", "-t", tag, contextDir}

	s.logger.Info().
		Str("tag", tag).
		Str("context", contextDir).
		Str("command", redact.Command("docker", args)).
		Msg("building image")

	output, err := s.executor.Execute(ctx, "docker", args...)
	if err != nil {
		result.Error = fmt.Errorf("docker build failed: %w, output: %s", err, string(output))
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	result.Duration = time.Since(start)

	s.logger.Info().
		Str("tag", tag).
		Dur("duration", result.Duration).
		Msg("image built")

	return result, nil
}

// Push pushes the tagged image to the registry.
func (s *Impl) Push(ctx context.Context, tag string) (*models.PushResult, error) {
	start := time.Now()
	result := &models.PushResult{
		Tag: tag,
	}

	s.logger.Info().Str("tag", tag).Msg("pushing image")

	output, err := s.executor.Execute(ctx, "docker", "push", tag)
	if err != nil {
		result.Error = fmt.Errorf("docker push failed: %w, output: %s", err, string(output))
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	result.Duration = time.Since(start)

	s.logger.Info().
		Str("tag", tag).
		Dur("duration", result.Duration).
		Msg("image pushed")

	return result, nil
}

// RemoveImage removes the local copy of the tagged image.
func (s *Impl) RemoveImage(ctx context.Context, tag string) error {
	s.logger.Info().Str("tag", tag).Msg("removing local image")

	output, err := s.executor.Execute(ctx, "docker", "rmi", tag)
	if err != nil {
		return fmt.Errorf("docker rmi failed: %w, output: %s", err, string(output))
	}

	return nil
}
