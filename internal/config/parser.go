// Package config loads pipeline configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/fgeck/mysql2docker/internal/models"
	"github.com/spf13/viper"
)

// Environment variable names recognized by the loader.
const (
	KeyMySQLHost     = "MYSQL_HOST"
	KeyMySQLPort     = "MYSQL_PORT"
	KeyMySQLUser     = "MYSQL_USER"
	KeyMySQLPassword = "MYSQL_PASSWORD"
	KeyMySQLDatabase = "MYSQL_DATABASE"
	KeyDockerUser    = "DOCKER_USERNAME"
	KeyDockerPass    = "DOCKER_PASSWORD"
	KeyImageName     = "DOCKER_IMAGE_NAME"
	KeyCustomTag     = "CUSTOM_TAG"
	KeyKeepLocal     = "KEEP_LOCAL_IMAGE"
)

// requiredKeys must all be present; missing ones are reported in aggregate.
var requiredKeys = []string{
	KeyMySQLUser,
	KeyMySQLPassword,
	KeyMySQLDatabase,
	KeyDockerUser,
	KeyDockerPass,
}

var allKeys = []string{
	KeyMySQLHost,
	KeyMySQLPort,
	KeyMySQLUser,
	KeyMySQLPassword,
	KeyMySQLDatabase,
	KeyDockerUser,
	KeyDockerPass,
	KeyImageName,
	KeyCustomTag,
	KeyKeepLocal,
}

// Parser handles configuration loading from the environment and an
// optional dotenv-style file.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("env")
	return &Parser{v: v}
}

// Load reads configuration from the process environment, optionally seeded
// from the dotenv-style file at envFile. Real environment variables take
// precedence over file entries.
func (p *Parser) Load(envFile string) (*models.Config, error) {
	if envFile != "" {
		p.v.SetConfigFile(envFile)
		if err := p.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
	}

	for _, key := range allKeys {
		_ = p.v.BindEnv(key)
	}

	p.v.SetDefault(KeyMySQLHost, "localhost")
	p.v.SetDefault(KeyMySQLPort, 3306)
	p.v.SetDefault(KeyImageName, "mysql-backup")
	p.v.SetDefault(KeyKeepLocal, false)

	var missing []string
	for _, key := range requiredKeys {
		if p.v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	port := p.v.GetInt(KeyMySQLPort)
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%s must be a valid port number, got %q", KeyMySQLPort, p.v.GetString(KeyMySQLPort))
	}

	cfg := &models.Config{
		MySQL: models.MySQLConfig{
			Host:     p.v.GetString(KeyMySQLHost),
			Port:     port,
			Username: p.v.GetString(KeyMySQLUser),
			Password: p.v.GetString(KeyMySQLPassword),
			Database: p.v.GetString(KeyMySQLDatabase),
		},
		Image: models.ImageConfig{
			Username:  p.v.GetString(KeyDockerUser),
			Password:  p.v.GetString(KeyDockerPass),
			Name:      p.v.GetString(KeyImageName),
			CustomTag: p.v.GetString(KeyCustomTag),
			KeepLocal: p.v.GetBool(KeyKeepLocal),
		},
	}

	return cfg, nil
}

// Validate performs validation on a loaded configuration.
func Validate(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.MySQL.Username == "" || cfg.MySQL.Password == "" || cfg.MySQL.Database == "" {
		return fmt.Errorf("mysql user, password, and database are required")
	}
	if cfg.Image.Username == "" || cfg.Image.Password == "" {
		return fmt.Errorf("registry username and password are required")
	}
	if cfg.Image.Name == "" {
		return fmt.Errorf("image name is required")
	}
	if cfg.MySQL.Port <= 0 || cfg.MySQL.Port > 65535 {
		return fmt.Errorf("mysql port %d is out of range", cfg.MySQL.Port)
	}

	return nil
}
