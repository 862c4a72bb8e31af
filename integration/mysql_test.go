//go:build integration

package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/fgeck/mysql2docker/internal/services/archive"
	"github.com/fgeck/mysql2docker/internal/services/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getMySQLConfig(t *testing.T) models.MySQLConfig {
	t.Helper()

	host := os.Getenv("TEST_MYSQL_HOST")
	if host == "" {
		t.Skip("TEST_MYSQL_HOST not set")
	}

	portStr := os.Getenv("TEST_MYSQL_PORT")
	if portStr == "" {
		portStr = "3306"
	}
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	database := os.Getenv("TEST_MYSQL_DB")
	if database == "" {
		t.Skip("TEST_MYSQL_DB not set")
	}

	user := os.Getenv("TEST_MYSQL_USER")
	if user == "" {
		user = "root"
	}

	password := os.Getenv("TEST_MYSQL_PASSWORD")

	return models.MySQLConfig{
		Host:     host,
		Port:     port,
		Database: database,
		Username: user,
		Password: password,
	}
}

func TestMySQLDump_Integration(t *testing.T) {
	cfg := getMySQLConfig(t)

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, mysql.DumpFilename("20240101_120000"))

	svc := mysql.New(zerolog.New(io.Discard))
	result, err := svc.Dump(context.Background(), cfg, outputPath)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NoError(t, result.Error)
	assert.Greater(t, result.SizeBytes, int64(0))

	info, statErr := os.Stat(outputPath)
	require.NoError(t, statErr)
	assert.Equal(t, result.SizeBytes, info.Size())
}

func TestMySQLDump_BadCredentials_Integration(t *testing.T) {
	cfg := getMySQLConfig(t)
	cfg.Password = "definitely-wrong-password"

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "backup.sql")

	svc := mysql.New(zerolog.New(io.Discard))
	result, err := svc.Dump(context.Background(), cfg, outputPath)

	require.NoError(t, err)
	require.NotNil(t, result.Error)

	// Partial output is removed on failure.
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMySQLDumpAndCompress_Integration(t *testing.T) {
	cfg := getMySQLConfig(t)

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, mysql.DumpFilename("20240101_120000"))

	logger := zerolog.New(io.Discard)
	dumpResult, err := mysql.New(logger).Dump(context.Background(), cfg, outputPath)
	require.NoError(t, err)
	require.NoError(t, dumpResult.Error)

	compressResult, err := archive.New(logger).Compress(context.Background(), outputPath)
	require.NoError(t, err)
	require.NoError(t, compressResult.Error)

	assert.Equal(t, outputPath+".gz", compressResult.OutputPath)
	assert.Greater(t, compressResult.CompressedBytes, int64(0))

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}
