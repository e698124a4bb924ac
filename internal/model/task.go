package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents saving one generated asset to disk
type DownloadTask struct {
	ID         string
	URL        string
	Filename   string     // requested file name
	OutputPath string     // path to saved file
	Status     TaskStatus
	Progress   float64    // 0.0 to 1.0, stays 0 when the size is unknown
	Percent    int        // 0 to 100
	BytesDone  int64
	BytesTotal int64     // -1 if the server did not send a length
	LastError  string    // last error message if any
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetSizeString returns received/total bytes in human readable form
func (dt *DownloadTask) GetSizeString() string {
	if dt.BytesTotal > 0 {
		return fmt.Sprintf("%s / %s", FormatFileSize(dt.BytesDone), FormatFileSize(dt.BytesTotal))
	}
	return FormatFileSize(dt.BytesDone)
}

// GetDisplayTitle returns filename, output file name, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Filename != "" {
		return dt.Filename
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	return dt.URL
}

// Duration returns how long the task took, or zero while it is running
func (dt *DownloadTask) Duration() time.Duration {
	if dt.FinishedAt.IsZero() || dt.StartedAt.IsZero() {
		return 0
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// FormatFileSize formats file size in bytes to human readable format
func FormatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}
