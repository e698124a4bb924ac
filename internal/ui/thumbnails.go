package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/ai-generator/internal/model"
)

// ThumbnailLoader fetches image previews off the UI goroutine and caches the
// result by item id. Failed previews are cached as the broken-image icon.
type ThumbnailLoader struct {
	client  *http.Client
	timeout time.Duration

	mu      sync.Mutex
	cache   map[string]fyne.Resource
	pending map[string][]func(fyne.Resource)
}

// NewThumbnailLoader creates a loader whose requests give up after timeout
func NewThumbnailLoader(timeout time.Duration) *ThumbnailLoader {
	return &ThumbnailLoader{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		cache:   make(map[string]fyne.Resource),
		pending: make(map[string][]func(fyne.Resource)),
	}
}

// Cached returns the preview of itemID if it was already fetched
func (l *ThumbnailLoader) Cached(itemID string) (fyne.Resource, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.cache[itemID]
	return res, ok
}

// Load fetches the preview of item in the background and passes it to done.
// done runs on a background goroutine; concurrent loads of one item share a
// single request.
func (l *ThumbnailLoader) Load(item model.GeneratedItem, done func(fyne.Resource)) {
	l.mu.Lock()
	if res, ok := l.cache[item.ID]; ok {
		l.mu.Unlock()
		done(res)
		return
	}
	waiters, inFlight := l.pending[item.ID]
	l.pending[item.ID] = append(waiters, done)
	l.mu.Unlock()
	if inFlight {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		res, err := l.fetch(ctx, item)
		if err != nil {
			slog.Warn("thumbnail unavailable", "item_id", item.ID, "error", err)
			res = theme.BrokenImageIcon()
		}

		l.mu.Lock()
		l.cache[item.ID] = res
		waiters := l.pending[item.ID]
		delete(l.pending, item.ID)
		l.mu.Unlock()

		for _, w := range waiters {
			w(res)
		}
	}()
}

// fetch downloads and validates one preview
func (l *ThumbnailLoader) fetch(ctx context.Context, item model.GeneratedItem) (fyne.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxThumbnailBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxThumbnailBytes {
		return nil, errors.New("image too large for a preview")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return fyne.NewStaticResource(item.Filename(), data), nil
}
