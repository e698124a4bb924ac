package model

import (
	"testing"
	"time"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, test := range tests {
		result := FormatFileSize(test.bytes)
		if result != test.expected {
			t.Errorf("FormatFileSize(%d) = %s, expected %s", test.bytes, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		filename   string
		outputPath string
		url        string
		expected   string
	}{
		{"image-1.png", "/tmp/image-1.png", "https://x/a.png", "image-1.png"},
		{"", "/tmp/dl/video-2.mp4", "https://x/b.mp4", "video-2.mp4"},
		{"", `C:\Users\me\image-3.png`, "https://x/c.png", "image-3.png"},
		{"", "", "https://x/d.png", "https://x/d.png"},
	}

	for _, test := range tests {
		task := &DownloadTask{Filename: test.filename, OutputPath: test.outputPath, URL: test.url}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with filename='%s', path='%s' = '%s', expected '%s'",
				test.filename, test.outputPath, result, test.expected)
		}
	}
}

func TestDownloadTask_GetSizeString(t *testing.T) {
	task := &DownloadTask{BytesDone: 512, BytesTotal: 2048}
	if got := task.GetSizeString(); got != "512 B / 2.0 KB" {
		t.Errorf("GetSizeString() = %s, expected '512 B / 2.0 KB'", got)
	}

	task = &DownloadTask{BytesDone: 2048, BytesTotal: -1}
	if got := task.GetSizeString(); got != "2.0 KB" {
		t.Errorf("GetSizeString() with unknown total = %s, expected '2.0 KB'", got)
	}
}

func TestDownloadTask_Duration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task := &DownloadTask{StartedAt: start}
	if task.Duration() != 0 {
		t.Errorf("Expected zero duration for running task, got %v", task.Duration())
	}

	task.FinishedAt = start.Add(1500 * time.Millisecond)
	if task.Duration() != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s duration, got %v", task.Duration())
	}
}
