package models

import "time"

// ImageMetadata describes the backup embedded in an image, used for the
// generated Dockerfile labels and the bundled info file.
type ImageMetadata struct {
	Timestamp string // run timestamp in YYYYMMDD_HHMMSS form
	Database  string
	Host      string
	DumpFile  string // file name of the compressed dump inside the build context
	CreatedAt time.Time
}

// BuildResult holds the result of a docker build operation.
type BuildResult struct {
	Tag      string
	Duration time.Duration
	Error    error
}

// PushResult holds the result of a docker push operation.
type PushResult struct {
	Tag      string
	Duration time.Duration
	Error    error
}

// PipelineResult summarizes a completed pipeline run.
type PipelineResult struct {
	Tag             string
	DumpPath        string
	CompressedBytes int64
	Duration        time.Duration
}
