// Package archive compresses dump files before packaging.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// Extension is appended to compressed file names.
const Extension = ".gz"

// Service defines the interface for dump compression.
type Service interface {
	Compress(ctx context.Context, path string) (*models.CompressResult, error)
}

// Impl implements the archive Service interface.
type Impl struct {
	logger zerolog.Logger
}

// New creates a new archive service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{logger: logger}
}

// Compress gzips the file at path into path + ".gz" and removes the
// original. A partial compressed file is removed on failure.
func (s *Impl) Compress(ctx context.Context, path string) (*models.CompressResult, error) {
	start := time.Now()
	outputPath := path + Extension
	result := &models.CompressResult{
		OutputPath: outputPath,
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, nil
	}

	s.logger.Info().
		Str("input", path).
		Str("output", outputPath).
		Msg("compressing dump")

	if err := compressFile(path, outputPath); err != nil {
		_ = os.Remove(outputPath)
		result.Error = err
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	if info, err := os.Stat(path); err == nil {
		result.OriginalBytes = info.Size()
	}
	if info, err := os.Stat(outputPath); err == nil {
		result.CompressedBytes = info.Size()
	}

	if err := os.Remove(path); err != nil {
		result.Error = fmt.Errorf("failed to remove original file: %w", err)
		result.Duration = time.Since(start)
		return result, nil //nolint:nilerr // error is stored in result struct by design
	}

	result.Duration = time.Since(start)

	s.logger.Info().
		Str("output", outputPath).
		Int64("original_bytes", result.OriginalBytes).
		Int64("compressed_bytes", result.CompressedBytes).
		Dur("duration", result.Duration).
		Msg("dump compressed")

	return result, nil
}

func compressFile(inputPath, outputPath string) error {
	input, err := os.Open(inputPath) //nolint:gosec // inputPath is controlled by caller
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = input.Close() }()

	output, err := os.Create(outputPath) //nolint:gosec // outputPath is controlled by caller
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = output.Close() }()

	writer := gzip.NewWriter(output)
	if _, err := io.Copy(writer, input); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to compress file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize compressed file: %w", err)
	}

	return output.Close()
}
