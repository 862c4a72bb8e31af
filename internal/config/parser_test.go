package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearPipelineEnv unsets every recognized variable so tests control the
// full environment.
func clearPipelineEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(KeyMySQLUser, "root")
	t.Setenv(KeyMySQLPassword, "s3cret")
	t.Setenv(KeyMySQLDatabase, "appdb")
	t.Setenv(KeyDockerUser, "alice")
	t.Setenv(KeyDockerPass, "hubsecret")
}

func TestLoad_MinimalEnv_AppliesDefaults(t *testing.T) {
	clearPipelineEnv(t)
	setRequiredEnv(t)

	cfg, err := NewParser().Load("")

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.MySQL.Host)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, "root", cfg.MySQL.Username)
	assert.Equal(t, "s3cret", cfg.MySQL.Password)
	assert.Equal(t, "appdb", cfg.MySQL.Database)
	assert.Equal(t, "alice", cfg.Image.Username)
	assert.Equal(t, "hubsecret", cfg.Image.Password)
	assert.Equal(t, "mysql-backup", cfg.Image.Name)
	assert.Empty(t, cfg.Image.CustomTag)
	assert.False(t, cfg.Image.KeepLocal)
}

func TestLoad_FullEnv(t *testing.T) {
	clearPipelineEnv(t)
	setRequiredEnv(t)
	t.Setenv(KeyMySQLHost, "db.internal")
	t.Setenv(KeyMySQLPort, "3307")
	t.Setenv(KeyImageName, "nightly-backup")
	t.Setenv(KeyCustomTag, "release-1")
	t.Setenv(KeyKeepLocal, "true")

	cfg, err := NewParser().Load("")

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "nightly-backup", cfg.Image.Name)
	assert.Equal(t, "release-1", cfg.Image.CustomTag)
	assert.True(t, cfg.Image.KeepLocal)
}

func TestLoad_AllMissing_ReportsEveryVariable(t *testing.T) {
	clearPipelineEnv(t)

	cfg, err := NewParser().Load("")

	require.Error(t, err)
	assert.Nil(t, cfg)
	for _, key := range requiredKeys {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoad_SomeMissing_ReportsOnlyThose(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv(KeyMySQLUser, "root")
	t.Setenv(KeyMySQLPassword, "s3cret")
	t.Setenv(KeyMySQLDatabase, "appdb")

	_, err := NewParser().Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyDockerUser)
	assert.Contains(t, err.Error(), KeyDockerPass)
	assert.NotContains(t, err.Error(), KeyMySQLUser)
}

func TestLoad_EnvFile(t *testing.T) {
	clearPipelineEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := `MYSQL_USER=filetest
MYSQL_PASSWORD=filepass
MYSQL_DATABASE=filedb
MYSQL_PORT=3310
DOCKER_USERNAME=fileuser
DOCKER_PASSWORD=filehubpass
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := NewParser().Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "filetest", cfg.MySQL.Username)
	assert.Equal(t, 3310, cfg.MySQL.Port)
	assert.Equal(t, "fileuser", cfg.Image.Username)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearPipelineEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := `MYSQL_USER=fromfile
MYSQL_PASSWORD=filepass
MYSQL_DATABASE=filedb
DOCKER_USERNAME=fileuser
DOCKER_PASSWORD=filehubpass
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv(KeyMySQLUser, "fromenv")

	cfg, err := NewParser().Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.MySQL.Username)
	assert.Equal(t, "filepass", cfg.MySQL.Password)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearPipelineEnv(t)
	setRequiredEnv(t)

	_, err := NewParser().Load(filepath.Join(t.TempDir(), "nope.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading env file")
}

func TestLoad_InvalidPort(t *testing.T) {
	clearPipelineEnv(t)
	setRequiredEnv(t)
	t.Setenv(KeyMySQLPort, "not-a-port")

	_, err := NewParser().Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyMySQLPort)
}

func TestValidate(t *testing.T) {
	clearPipelineEnv(t)
	setRequiredEnv(t)

	cfg, err := NewParser().Load("")
	require.NoError(t, err)

	assert.NoError(t, Validate(cfg))

	cfg.Image.Password = ""
	assert.Error(t, Validate(cfg))

	assert.Error(t, Validate(nil))
}
