package docker

import "github.com/fgeck/mysql2docker/internal/models"

// tagPrefix is the literal prefix of generated image tags.
const tagPrefix = "backup_mysql"

// ImageTag computes the full image reference for a run. The generated form
// is <account>/<name>:backup_mysql_<timestamp>; a custom tag replaces the
// generated suffix entirely.
func ImageTag(cfg models.ImageConfig, timestamp string) string {
	suffix := tagPrefix + "_" + timestamp
	if cfg.CustomTag != "" {
		suffix = cfg.CustomTag
	}
	return cfg.Username + "/" + cfg.Name + ":" + suffix
}
