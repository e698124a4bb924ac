package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ai-generator/internal/model"
	"github.com/ytget/ai-generator/internal/platform"
)

const (
	// progressInterval throttles update callbacks while bytes stream in
	progressInterval = 200 * time.Millisecond
	copyBufferSize   = 32 * 1024
)

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	tasksMutex  sync.RWMutex
	downloadDir string
	httpClient  *http.Client
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// Option configures a Service
type Option func(*Service)

// WithHTTPClient sets the HTTP client used to fetch assets
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// NewService creates a new download service
func NewService(downloadDir string, opts ...Option) *Service {
	s := &Service{
		tasks:       make(map[string]*model.DownloadTask),
		downloadDir: downloadDir,
		httpClient:  &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetDownloadDirectory sets the download directory for subsequent downloads
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

// DownloadDirectory returns the current download directory
func (s *Service) DownloadDirectory() string {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.downloadDir
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks, oldest first
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// Download fetches url and saves it as filename in the download directory.
// The body is written to a temporary file that is renamed into place only
// after the whole asset has arrived.
func (s *Service) Download(ctx context.Context, url, filename string) (*model.DownloadTask, error) {
	if url == "" {
		return nil, &model.DownloadError{URL: url, Err: fmt.Errorf("asset url is empty")}
	}

	s.tasksMutex.Lock()
	dir := s.downloadDir
	task := &model.DownloadTask{
		ID:         generateTaskID(),
		URL:        url,
		Filename:   platform.SanitizeFilename(filename),
		Status:     model.TaskStatusPending,
		BytesTotal: -1,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	outputPath, err := s.fetch(ctx, task, dir)

	s.tasksMutex.Lock()
	task.FinishedAt = time.Now()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.OutputPath = outputPath
		task.Progress = 1.0
		task.Percent = 100
	}
	snapshot := *task
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	if err != nil {
		slog.Warn("asset download failed", "task_id", task.ID, "url", url, "error", err)
		return &snapshot, err
	}

	slog.Info("asset saved", "task_id", task.ID, "path", outputPath, "bytes", snapshot.BytesDone)
	return &snapshot, nil
}

// fetch performs the HTTP request and streams the body to disk
func (s *Service) fetch(ctx context.Context, task *model.DownloadTask, dir string) (string, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: fmt.Errorf("create download directory: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.DownloadError{URL: task.URL, StatusCode: resp.StatusCode}
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	if resp.ContentLength > 0 {
		task.BytesTotal = resp.ContentLength
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	tmp, err := os.CreateTemp(dir, "."+task.Filename+".*.part")
	if err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	// removed on any failure below; a no-op after a successful rename
	defer os.Remove(tmpPath)

	if err := s.copyWithProgress(tmp, resp.Body, task); err != nil {
		tmp.Close()
		return "", &model.DownloadError{URL: task.URL, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: fmt.Errorf("close temp file: %w", err)}
	}

	outputPath := filepath.Join(dir, task.Filename)
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", &model.DownloadError{URL: task.URL, Err: fmt.Errorf("save %s: %w", outputPath, err)}
	}

	return outputPath, nil
}

// copyWithProgress copies src into dst updating task byte counters
func (s *Service) copyWithProgress(dst io.Writer, src io.Reader, task *model.DownloadTask) error {
	buf := make([]byte, copyBufferSize)
	lastNotify := time.Time{}

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return fmt.Errorf("write asset: %w", err)
			}
			s.updateTaskProgress(task, int64(n))
			if time.Since(lastNotify) >= progressInterval {
				lastNotify = time.Now()
				s.notifyUpdate(task)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read asset: %w", readErr)
		}
	}
}

// updateTaskProgress adds n received bytes to the task
func (s *Service) updateTaskProgress(task *model.DownloadTask, n int64) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task.BytesDone += n
	if task.BytesTotal > 0 {
		task.Progress = float64(task.BytesDone) / float64(task.BytesTotal)
		if task.Progress > 1 {
			task.Progress = 1
		}
		task.Percent = int(task.Progress * 100)
	}
}

// notifyUpdate calls the update callback if set with a snapshot of task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.NewString()
}
