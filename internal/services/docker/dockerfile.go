package docker

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/fgeck/mysql2docker/internal/models"
)

// InfoFilename is the metadata file bundled next to the dump inside the image.
const InfoFilename = "backup_info.txt"

const dockerfileTemplate = `FROM alpine:3.20

LABEL backup.timestamp="{{ .Timestamp }}" \
      backup.database="{{ .Database }}" \
      backup.host="{{ .Host }}" \
      org.opencontainers.image.created="{{ .Created }}"

COPY {{ .DumpFile }} /backup/{{ .DumpFile }}
COPY {{ .InfoFile }} /backup/{{ .InfoFile }}

CMD ["/bin/sh", "-c", "cat /backup/{{ .InfoFile }} && echo && ls -lh /backup"]
`

const infoTemplate = `MySQL Backup
============
Timestamp: {{ .Timestamp }}
Database:  {{ .Database }}
Host:      {{ .Host }}
Dump file: {{ .DumpFile }}
Created:   {{ .Created }}
`

type templateData struct {
	Timestamp string
	Database  string
	Host      string
	DumpFile  string
	InfoFile  string
	Created   string
}

// WriteBuildContext renders the Dockerfile and info file for meta into
// contextDir. The compressed dump is expected to already be present there.
func WriteBuildContext(contextDir string, meta models.ImageMetadata) error {
	created := meta.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	data := templateData{
		Timestamp: meta.Timestamp,
		Database:  meta.Database,
		Host:      meta.Host,
		DumpFile:  meta.DumpFile,
		InfoFile:  InfoFilename,
		Created:   created.UTC().Format(time.RFC3339),
	}

	if err := renderToFile(dockerfileTemplate, filepath.Join(contextDir, "Dockerfile"), data); err != nil {
		return fmt.Errorf("writing Dockerfile: %w", err)
	}
	if err := renderToFile(infoTemplate, filepath.Join(contextDir, InfoFilename), data); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}

	return nil
}

func renderToFile(tmpl, path string, data templateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path is inside the run's working directory
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := t.Execute(f, data); err != nil {
		return err
	}

	return f.Close()
}
