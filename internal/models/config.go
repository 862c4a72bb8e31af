// Package models contains the data structures used throughout mysql2docker.
package models

// Config holds the complete configuration for a pipeline run.
type Config struct {
	MySQL MySQLConfig
	Image ImageConfig
}

// MySQLConfig holds MySQL connection settings for mysqldump.
type MySQLConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// ImageConfig holds registry credentials and image settings for the packaged backup.
type ImageConfig struct {
	Username  string // registry account, also the first segment of the image tag
	Password  string
	Name      string
	CustomTag string // optional, replaces the generated tag suffix entirely
	KeepLocal bool   // if true, keep the local image after a successful push
}
