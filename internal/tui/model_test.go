package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ai-generator/internal/model"
	"github.com/ytget/ai-generator/internal/session"
)

type stubGenerator struct {
	url string
	err error
}

func (s *stubGenerator) Generate(ctx context.Context, kind model.MediaKind, prompt string) (string, error) {
	return s.url, s.err
}

type stubDownloader struct {
	dir       string
	filenames []string
}

func (s *stubDownloader) SetUpdateCallback(func(*model.DownloadTask)) {}

func (s *stubDownloader) Download(ctx context.Context, url, filename string) (*model.DownloadTask, error) {
	s.filenames = append(s.filenames, filename)
	return &model.DownloadTask{
		URL:        url,
		Filename:   filename,
		OutputPath: s.dir + "/" + filename,
		Status:     model.TaskStatusCompleted,
	}, nil
}

func (s *stubDownloader) GetTask(id string) (*model.DownloadTask, bool) { return nil, false }
func (s *stubDownloader) GetAllTasks() []*model.DownloadTask { return nil }
func (s *stubDownloader) SetDownloadDirectory(dir string) { s.dir = dir }
func (s *stubDownloader) DownloadDirectory() string { return s.dir }

func newTestModel(gen *stubGenerator) (Model, *session.Manager, *stubDownloader) {
	dl := &stubDownloader{dir: "/tmp/out"}
	mgr := session.New(gen, dl)
	return NewModel(mgr), mgr, dl
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, runes(string(r)))
	}
	return m
}

// withItem generates one item through the model and drains the resulting event
func withItem(t *testing.T, m Model, mgr *session.Manager, prompt string) Model {
	t.Helper()
	msg := submitCmd(mgr, prompt, mgr.State().ActiveKind)()
	m, _ = update(t, m, msg)
	m, _ = update(t, m, waitForEvent(m.events)())
	return m
}

func TestNewModel(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	if !m.inputFocused {
		t.Error("prompt input should be focused on start")
	}
	if m.state.ActiveView != model.ViewGenerator {
		t.Errorf("ActiveView = %q, want %q", m.state.ActiveView, model.ViewGenerator)
	}
	if m.state.ActiveKind != model.KindImage {
		t.Errorf("ActiveKind = %q, want %q", m.state.ActiveKind, model.KindImage)
	}
	if m.Init() == nil {
		t.Error("Init should return a command")
	}
}

func TestModel_TypingUpdatesSessionPrompt(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{})

	m = typeText(t, m, "cat")

	if got := m.input.Value(); got != "cat" {
		t.Errorf("input = %q, want %q", got, "cat")
	}
	if got := mgr.State().PromptText; got != "cat" {
		t.Errorf("session prompt = %q, want %q", got, "cat")
	}
}

func TestModel_QuitKeyTypesWhileEditing(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	m, _ = update(t, m, runes("q"))
	if got := m.input.Value(); got != "q" {
		t.Errorf("input = %q, want q to be typed", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputFocused {
		t.Fatal("esc should leave the prompt")
	}
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit when the prompt is not focused")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestModel_ToggleKind(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.state.ActiveKind != model.KindVideo {
		t.Errorf("ActiveKind = %q, want video", m.state.ActiveKind)
	}

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if mgr.State().ActiveKind != model.KindImage {
		t.Errorf("ActiveKind = %q, want image", mgr.State().ActiveKind)
	}
}

func TestModel_TabCyclesViews(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	want := []model.View{model.ViewGallery, model.ViewHistory, model.ViewGenerator}
	for _, v := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state.ActiveView != v {
			t.Fatalf("ActiveView = %q, want %q", m.state.ActiveView, v)
		}
	}
	if m.inputFocused {
		t.Error("leaving the generator view should blur the prompt")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state.ActiveView != model.ViewHistory {
		t.Errorf("ActiveView = %q, want history", m.state.ActiveView)
	}
}

func TestModel_TemplateKey(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, runes("2"))

	want := model.TemplatesFor(model.KindImage)[1].Text
	if got := m.input.Value(); got != want {
		t.Errorf("input = %q, want %q", got, want)
	}
	if got := mgr.State().PromptText; got != want {
		t.Errorf("session prompt = %q, want %q", got, want)
	}

	m, _ = update(t, m, waitForEvent(m.events)())
	if m.notice == "" || m.noticeError {
		t.Errorf("template notice = %q (error=%v)", m.notice, m.noticeError)
	}
}

func TestModel_GenerateEmptyPrompt(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{url: "https://x/a.png"})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start a generation command")
	}

	msg := submitCmd(m.session, "", model.KindImage)()
	gm, ok := msg.(generatedMsg)
	if !ok {
		t.Fatalf("submitCmd returned %T", msg)
	}
	if !model.IsValidation(gm.err) {
		t.Errorf("err = %v, want validation error", gm.err)
	}

	m, _ = update(t, m, waitForEvent(m.events)())
	if !m.noticeError {
		t.Error("missing prompt should be reported as an error")
	}
	if !strings.Contains(m.notice, "Enter a prompt") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_GenerateSuccess(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{url: "https://x/a.png"})

	m = withItem(t, m, mgr, "a red fox")

	if len(m.state.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.state.Items))
	}
	if m.state.ActiveView != model.ViewGallery {
		t.Errorf("ActiveView = %q, want gallery", m.state.ActiveView)
	}
	if m.noticeError || !strings.Contains(m.notice, "Image created") {
		t.Errorf("notice = %q (error=%v)", m.notice, m.noticeError)
	}
	if !strings.Contains(m.View(), "a red fox") {
		t.Error("gallery view should list the new item")
	}
}

func TestModel_GenerateFailure(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{err: &model.GenerationError{Kind: model.KindImage, StatusCode: 500}})

	m = withItem(t, m, mgr, "a red fox")

	if len(m.state.Items) != 0 {
		t.Errorf("items = %d, want 0", len(m.state.Items))
	}
	if !m.noticeError {
		t.Error("failure should be reported as an error")
	}
}

func TestModel_SelectionAndDownload(t *testing.T) {
	m, mgr, dl := newTestModel(&stubGenerator{url: "https://x/a.png"})
	m = withItem(t, m, mgr, "first")
	m = withItem(t, m, mgr, "second")

	// newest first
	if m.selected != 0 || m.state.Items[0].Prompt != "second" {
		t.Fatalf("selected=%d first item=%q", m.selected, m.state.Items[0].Prompt)
	}

	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("j"))
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1 (clamped)", m.selected)
	}

	m, cmd := update(t, m, runes("d"))
	if cmd == nil {
		t.Fatal("d should start a download")
	}
	item := m.state.Items[1]
	if !m.downloading[item.ID] {
		t.Error("item should be marked as downloading")
	}

	m, _ = update(t, m, cmd())
	if got, want := m.saved[item.ID], "/tmp/out/"+item.Filename(); got != want {
		t.Errorf("saved path = %q, want %q", got, want)
	}
	if m.downloading[item.ID] {
		t.Error("download flag should be cleared")
	}
	if len(dl.filenames) != 1 {
		t.Errorf("downloads = %d, want 1", len(dl.filenames))
	}

	m, _ = update(t, m, waitForEvent(m.events)())
	if !strings.HasPrefix(m.notice, "Downloaded:") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModel_Reuse(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{url: "https://x/a.mp4"})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = withItem(t, m, mgr, "waves at night")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = update(t, m, runes("r"))

	if got := m.input.Value(); got != "waves at night" {
		t.Errorf("input = %q", got)
	}
	if !m.inputFocused {
		t.Error("reuse should focus the prompt")
	}
	if m.state.ActiveView != model.ViewGenerator {
		t.Errorf("ActiveView = %q, want generator", m.state.ActiveView)
	}
	if m.state.ActiveKind != model.KindVideo {
		t.Errorf("ActiveKind = %q, want video", m.state.ActiveKind)
	}
}

func TestModel_EmptyStates(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Gallery is empty") {
		t.Error("gallery should show its empty state")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "No history yet") {
		t.Error("history should show its empty state")
	}

	// item actions are ignored without a selection
	if _, cmd := update(t, m, runes("d")); cmd != nil {
		t.Error("download without items should be a no-op")
	}
}

func TestModel_CancelKeepsRunning(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if cmd != nil {
		t.Error("ctrl+x should not quit")
	}
}

func TestEventText(t *testing.T) {
	tests := []struct {
		name  string
		event model.Event
		want  string
	}{
		{
			name:  "prompt missing",
			event: model.Event{Type: model.EventPromptMissing, Kind: model.KindVideo},
			want:  "Enter a prompt: describe the video you want to create",
		},
		{
			name:  "generated",
			event: model.Event{Type: model.EventGenerated, Kind: model.KindVideo},
			want:  "Done! Video created successfully",
		},
		{
			name:  "failed",
			event: model.Event{Type: model.EventGenerationFailed, Kind: model.KindImage, Err: errors.New("boom")},
			want:  "Error: could not create the image. Please try again.",
		},
		{
			name: "timeout",
			event: model.Event{
				Type: model.EventGenerationFailed,
				Kind: model.KindImage,
				Err:  &model.GenerationError{Kind: model.KindImage, Timeout: true},
			},
			want: "Error: the service did not answer in time. Please try again.",
		},
		{
			name:  "downloaded",
			event: model.Event{Type: model.EventDownloaded, Path: "/tmp/a.png"},
			want:  "Downloaded: /tmp/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventText(tt.event); got != tt.want {
				t.Errorf("eventText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer prompt", 10, "a longe..."},
		{"Космический пейзаж", 8, "Косми..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestModel_ShareQR(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{url: "https://x/a.png"})

	m, _ = update(t, m, runes("s"))
	if m.sharing {
		t.Fatal("share without items should be a no-op")
	}

	m = withItem(t, m, mgr, "a red fox")
	m, _ = update(t, m, runes("s"))
	if !m.sharing {
		t.Fatal("s should show the QR code for the selected item")
	}
	if view := m.View(); !strings.Contains(view, "Scan to open image") {
		t.Error("gallery should render the share panel")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.sharing {
		t.Error("esc should close the share panel")
	}
}

func TestRenderQR(t *testing.T) {
	qr := renderQR("https://x/a.png")
	if qr == "" {
		t.Fatal("renderQR returned an empty string")
	}
	if lines := strings.Count(qr, "\n"); lines < 10 {
		t.Errorf("QR code has %d lines, want a full symbol", lines)
	}
}

func TestModel_SpinnerTicksWhileSubmitting(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{url: "https://x/a.png"})
	m = typeText(t, m, "cat")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.submitting {
		t.Fatal("enter should start submitting")
	}

	// the first tick can arrive before Submit marks the session busy
	_, cmd = update(t, m, m.spinner.Tick())
	if cmd == nil {
		t.Error("spinner should keep ticking while the request is being submitted")
	}

	m, _ = update(t, m, generatedMsg{err: &model.GenerationError{Kind: model.KindImage, StatusCode: 500}})
	if m.submitting {
		t.Error("result should clear the submitting flag")
	}
	if _, cmd = update(t, m, m.spinner.Tick()); cmd != nil {
		t.Error("spinner should stop once the request finished")
	}
}

func TestModel_ValidationErrorKeepsEditing(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	err := &model.ValidationError{Field: "prompt", Err: model.ErrEmptyPrompt}
	m, _ = update(t, m, generatedMsg{err: err})
	if !m.inputFocused {
		t.Error("an empty prompt should return focus to the input")
	}
}

func TestModel_DownloadErrorWithoutItem(t *testing.T) {
	m, _, _ := newTestModel(&stubGenerator{})

	m, _ = update(t, m, downloadedMsg{itemID: "gone", err: model.ErrItemNotFound})
	if !m.noticeError || m.notice == "" {
		t.Errorf("notice = %q (error=%v)", m.notice, m.noticeError)
	}

	m, _ = update(t, m, downloadedMsg{itemID: "x", err: &model.DownloadError{URL: "https://x/a.png"}})
	if _, saved := m.saved["x"]; saved {
		t.Error("failed download should not be recorded as saved")
	}
}

func TestModel_KindTabsCountItems(t *testing.T) {
	m, mgr, _ := newTestModel(&stubGenerator{url: "https://x/a.png"})
	m = withItem(t, m, mgr, "one")
	m = withItem(t, m, mgr, "two")

	view := m.View()
	if !strings.Contains(view, "Image (2)") {
		t.Error("image tab should count image items")
	}
	if strings.Contains(view, "Video (") {
		t.Error("video tab should not show a count without videos")
	}
}
