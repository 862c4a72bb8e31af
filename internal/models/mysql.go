package models

import "time"

// DumpResult holds the result of a mysqldump operation.
type DumpResult struct {
	OutputPath string
	SizeBytes  int64
	Duration   time.Duration
	Error      error
}

// CompressResult holds the result of compressing a dump file.
type CompressResult struct {
	OutputPath      string
	OriginalBytes   int64
	CompressedBytes int64
	Duration        time.Duration
	Error           error
}
