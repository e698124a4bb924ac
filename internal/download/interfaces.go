package download

import (
	"context"

	"github.com/ytget/ai-generator/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// Download fetches url and stores it as filename inside the download
	// directory. It blocks until the file is saved or the fetch fails.
	Download(ctx context.Context, url, filename string) (*model.DownloadTask, error)

	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
	DownloadDirectory() string
}
