package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ai-generator/internal/download"
	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/logger"
	"github.com/ytget/ai-generator/internal/model"
)

const (
	// DefaultTimeout bounds a single generation request
	DefaultTimeout = 2 * time.Minute

	// DefaultDownloadTimeout bounds fetching and saving one asset
	DefaultDownloadTimeout = 5 * time.Minute
)

// Manager coordinates generation requests and the session state
type Manager struct {
	mu sync.Mutex

	generator  generate.Generator
	downloader download.Downloader
	timeout    time.Duration
	dlTimeout  time.Duration
	now        func() time.Time
	newID      func() string

	prompt string
	kind   model.MediaKind
	view   model.View
	items  []model.GeneratedItem
	busy   bool
	seq    uint64
	cancel context.CancelFunc

	// kind of the outstanding request, which may differ from the selector
	reqKind model.MediaKind

	onUpdate func(model.SessionState)
	onEvent  func(model.Event)
}

// Option configures a Manager
type Option func(*Manager)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithDownloadTimeout sets the deadline for a single asset download
func WithDownloadTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.dlTimeout = d
		}
	}
}

// WithClock replaces time.Now for item timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator replaces the item id source
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// New creates a session manager
func New(generator generate.Generator, downloader download.Downloader, opts ...Option) *Manager {
	m := &Manager{
		generator:  generator,
		downloader: downloader,
		timeout:    DefaultTimeout,
		dlTimeout:  DefaultDownloadTimeout,
		now:        time.Now,
		newID:      newItemID,
		kind:       model.KindImage,
		view:       model.ViewGenerator,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetTimeout changes the timeout applied to subsequent requests
func (m *Manager) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

// Timeout returns the per-request timeout
func (m *Manager) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// SetUpdateCallback sets the callback invoked with a snapshot after every
// state change
func (m *Manager) SetUpdateCallback(callback func(model.SessionState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = callback
}

// SetEventCallback sets the callback for user-facing notifications
func (m *Manager) SetEventCallback(callback func(model.Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvent = callback
}

// Submit validates the prompt and runs one generation request. It blocks
// until the service answers, the request times out or Cancel is called.
func (m *Manager) Submit(ctx context.Context, promptText string, kind model.MediaKind) (model.GeneratedItem, error) {
	prompt := strings.TrimSpace(promptText)
	if prompt == "" {
		err := &model.ValidationError{Field: "prompt", Err: model.ErrEmptyPrompt}
		m.emit(model.Event{Type: model.EventPromptMissing, Kind: kind, Err: err})
		return model.GeneratedItem{}, err
	}
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return model.GeneratedItem{}, err
	}

	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return model.GeneratedItem{}, model.ErrBusy
	}
	m.seq++
	seq := m.seq
	reqCtx, cancel := context.WithTimeout(ctx, m.timeout)
	m.busy = true
	m.cancel = cancel
	m.reqKind = kind
	m.mu.Unlock()
	m.notifyUpdate()

	log := logger.NewRequestLogger().With("kind", kind, "seq", seq)
	log.Info("generation started", "prompt_len", len([]rune(prompt)))
	started := time.Now()

	url, err := m.generator.Generate(reqCtx, kind, prompt)
	timedOut := errors.Is(reqCtx.Err(), context.DeadlineExceeded)
	cancel()

	if err == nil && url == "" {
		err = errors.New("empty asset url")
	}
	if err != nil {
		err = asGenerationError(kind, err, timedOut)
	}

	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		log.Debug("ignoring response for abandoned request", "error", err)
		return model.GeneratedItem{}, model.ErrCancelled
	}
	m.busy = false
	m.cancel = nil

	if err != nil {
		m.mu.Unlock()
		log.Warn("generation failed", "error", err, "elapsed", time.Since(started))
		m.notifyUpdate()
		m.emit(model.Event{Type: model.EventGenerationFailed, Kind: kind, Err: err})
		return model.GeneratedItem{}, err
	}

	item := model.GeneratedItem{
		ID:        m.newID(),
		Prompt:    prompt,
		Kind:      kind,
		URL:       url,
		CreatedAt: m.now(),
	}
	m.items = append([]model.GeneratedItem{item}, m.items...)
	m.view = model.ViewGallery
	m.mu.Unlock()

	log.Info("generation completed", "item_id", item.ID, "elapsed", time.Since(started))
	m.notifyUpdate()
	m.emit(model.Event{Type: model.EventGenerated, Kind: kind, ItemID: item.ID})
	return item, nil
}

// Cancel abandons the outstanding request, if any. A response that arrives
// later is discarded.
func (m *Manager) Cancel() bool {
	m.mu.Lock()
	if !m.busy {
		m.mu.Unlock()
		return false
	}
	m.seq++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.busy = false
	kind := m.reqKind
	m.mu.Unlock()

	slog.Info("generation cancelled", "kind", kind)
	m.notifyUpdate()
	m.emit(model.Event{Type: model.EventGenerationCancelled, Kind: kind})
	return true
}

// SelectTemplate replaces the prompt text with a template
func (m *Manager) SelectTemplate(text string) {
	m.mu.Lock()
	m.prompt = text
	kind := m.kind
	m.mu.Unlock()

	m.notifyUpdate()
	m.emit(model.Event{Type: model.EventTemplateApplied, Kind: kind})
}

// SetPrompt updates the prompt editor text
func (m *Manager) SetPrompt(text string) {
	m.mu.Lock()
	if m.prompt == text {
		m.mu.Unlock()
		return
	}
	m.prompt = text
	m.mu.Unlock()
	m.notifyUpdate()
}

// SetKind selects the active media kind
func (m *Manager) SetKind(kind model.MediaKind) error {
	if _, err := model.ParseMediaKind(string(kind)); err != nil {
		return err
	}
	m.mu.Lock()
	if m.kind == kind {
		m.mu.Unlock()
		return nil
	}
	m.kind = kind
	m.mu.Unlock()
	m.notifyUpdate()
	return nil
}

// SetView selects the active view
func (m *Manager) SetView(view model.View) error {
	switch view {
	case model.ViewGenerator, model.ViewGallery, model.ViewHistory:
	default:
		return &model.ValidationError{Field: "view", Reason: fmt.Sprintf("unknown view %q", view)}
	}
	m.mu.Lock()
	if m.view == view {
		m.mu.Unlock()
		return nil
	}
	m.view = view
	m.mu.Unlock()
	m.notifyUpdate()
	return nil
}

// Reuse loads an item's prompt and kind back into the editor
func (m *Manager) Reuse(itemID string) error {
	m.mu.Lock()
	item, ok := m.findLocked(itemID)
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("reuse %s: %w", itemID, model.ErrItemNotFound)
	}
	m.prompt = item.Prompt
	m.kind = item.Kind
	m.view = model.ViewGenerator
	m.mu.Unlock()

	m.notifyUpdate()
	return nil
}

// Item returns the item with the given id
func (m *Manager) Item(id string) (model.GeneratedItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(id)
}

// Items returns a copy of the generated items, most recent first
func (m *Manager) Items() []model.GeneratedItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.GeneratedItem(nil), m.items...)
}

// State returns a snapshot of the session
func (m *Manager) State() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Busy reports whether a request is outstanding
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// DownloadAsset saves url as filename in the download directory and returns
// the saved path. Session state is not modified.
func (m *Manager) DownloadAsset(ctx context.Context, url, filename string) (string, error) {
	if m.downloader == nil {
		err := &model.DownloadError{URL: url, Err: errors.New("no downloader configured")}
		m.emit(model.Event{Type: model.EventDownloadFailed, Err: err})
		return "", err
	}

	m.mu.Lock()
	timeout := m.dlTimeout
	m.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	task, err := m.downloader.Download(ctx, url, filename)
	if err != nil {
		var de *model.DownloadError
		if !errors.As(err, &de) {
			err = &model.DownloadError{URL: url, Err: err}
		}
		slog.Warn("download failed", "url", url, "error", err)
		m.emit(model.Event{Type: model.EventDownloadFailed, Err: err})
		return "", err
	}

	slog.Info("download completed", "path", task.OutputPath)
	m.emit(model.Event{Type: model.EventDownloaded, Path: task.OutputPath})
	return task.OutputPath, nil
}

// DownloadItem saves a generated item under its default file name
func (m *Manager) DownloadItem(ctx context.Context, id string) (string, error) {
	item, ok := m.Item(id)
	if !ok {
		return "", fmt.Errorf("download %s: %w", id, model.ErrItemNotFound)
	}
	path, err := m.DownloadAsset(ctx, item.URL, item.Filename())
	if err != nil {
		return "", err
	}
	return path, nil
}

func (m *Manager) findLocked(id string) (model.GeneratedItem, bool) {
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.GeneratedItem{}, false
}

func (m *Manager) snapshotLocked() model.SessionState {
	state := model.SessionState{
		PromptText:   m.prompt,
		Busy:         m.busy,
		RequestState: model.RequestIdle,
		Items:        append([]model.GeneratedItem(nil), m.items...),
		ActiveView:   m.view,
		ActiveKind:   m.kind,
	}
	if m.busy {
		state.RequestState = model.RequestRequesting
	}
	return state
}

func (m *Manager) notifyUpdate() {
	m.mu.Lock()
	callback := m.onUpdate
	state := m.snapshotLocked()
	m.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}

func (m *Manager) emit(event model.Event) {
	m.mu.Lock()
	callback := m.onEvent
	m.mu.Unlock()

	if callback != nil {
		callback(event)
	}
}

func asGenerationError(kind model.MediaKind, err error, timedOut bool) error {
	var ge *model.GenerationError
	if errors.As(err, &ge) {
		if timedOut && !ge.Timeout {
			ge.Timeout = true
		}
		return err
	}
	return &model.GenerationError{Kind: kind, Timeout: timedOut, Err: err}
}

func newItemID() string {
	return uuid.Must(uuid.NewV7()).String()
}
