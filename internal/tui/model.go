package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/ai-generator/internal/model"
	"github.com/ytget/ai-generator/internal/platform"
	"github.com/ytget/ai-generator/internal/session"
)

// eventBuffer bounds session events waiting for the program loop
const eventBuffer = 16

// Messages
type generatedMsg struct {
	item model.GeneratedItem
	err  error
}

type downloadedMsg struct {
	itemID string
	path   string
	err    error
}

type sessionEventMsg struct {
	event model.Event
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	session *session.Manager
	state   model.SessionState
	events  chan model.Event

	input        textinput.Model
	inputFocused bool
	spinner      spinner.Model
	submitting   bool // set from key press until the result arrives
	help         help.Model
	keys         KeyMap
	showHelp     bool

	// Selection in the gallery and history lists
	selected int
	sharing  bool

	// Saved files and in-flight downloads, keyed by item id
	saved       map[string]string
	downloading map[string]bool

	notice      string
	noticeError bool
}

// NewModel creates the root model for manager and subscribes to its events
func NewModel(manager *session.Manager) Model {
	ti := textinput.New()
	ti.Placeholder = "a cosmic landscape with planets and nebulae"
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 0
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	events := make(chan model.Event, eventBuffer)
	manager.SetEventCallback(func(e model.Event) {
		select {
		case events <- e:
		default:
			slog.Warn("dropping session event, program not keeping up", "type", e.Type)
		}
	})

	return Model{
		session:      manager,
		state:        manager.State(),
		events:       events,
		input:        ti,
		inputFocused: true,
		spinner:      sp,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		saved:        make(map[string]string),
		downloading:  make(map[string]bool),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForEvent(m.events),
	)
}

// waitForEvent blocks until the session emits the next event
func waitForEvent(events <-chan model.Event) tea.Cmd {
	return func() tea.Msg {
		return sessionEventMsg{event: <-events}
	}
}

// submitCmd runs one generation request off the program loop
func submitCmd(manager *session.Manager, prompt string, kind model.MediaKind) tea.Cmd {
	return func() tea.Msg {
		item, err := manager.Submit(context.Background(), prompt, kind)
		return generatedMsg{item: item, err: err}
	}
}

// downloadCmd saves one item to the download directory
func downloadCmd(manager *session.Manager, itemID string) tea.Cmd {
	return func() tea.Msg {
		path, err := manager.DownloadItem(context.Background(), itemID)
		return downloadedMsg{itemID: itemID, path: path, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := m.width - 10
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.input.Width = inputWidth
		m.help.Width = m.width

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case generatedMsg:
		m.submitting = false
		switch {
		case msg.err == nil:
			m.selected = 0
		case errors.Is(msg.err, model.ErrBusy):
			m.setNotice("a generation is already running", true)
		case model.IsValidation(msg.err):
			// reported by EventPromptMissing; keep editing
			m.inputFocused = true
			cmds = append(cmds, m.input.Focus())
		case model.IsGeneration(msg.err):
			slog.Info("generation failed", "error", msg.err)
		}

	case downloadedMsg:
		delete(m.downloading, msg.itemID)
		switch {
		case msg.err == nil:
			m.saved[msg.itemID] = msg.path
		case model.IsDownload(msg.err):
			slog.Warn("item download failed", "item_id", msg.itemID, "error", msg.err)
		default:
			m.setNotice(msg.err.Error(), true)
		}

	case sessionEventMsg:
		m.setNotice(eventText(msg.event), msg.event.Type.IsError())
		cmds = append(cmds, waitForEvent(m.events))

	case spinner.TickMsg:
		if m.submitting || m.session.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		if m.inputFocused {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.state = m.session.State()
	if m.state.ActiveView != model.ViewGenerator && m.inputFocused {
		m.inputFocused = false
		m.input.Blur()
	}
	if len(m.state.Items) == 0 || m.state.ActiveView != model.ViewGallery {
		m.sharing = false
	}
	m.clampSelection()
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press depending on whether the prompt is focused
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		m.session.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
		return m, nil
	case key.Matches(msg, m.keys.Kind):
		m.toggleKind()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.switchView(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.switchView(-1)
		return m, nil
	}

	if m.inputFocused {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Generate):
			return m.generate()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetPrompt(m.input.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Focus):
		return m.focusInput()
	case key.Matches(msg, m.keys.Generate):
		if m.state.ActiveView == model.ViewGenerator {
			return m.generate()
		}
		return m.download()
	case key.Matches(msg, m.keys.Template):
		m.applyTemplate(msg.String())
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.state.Items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Download):
		return m.download()
	case key.Matches(msg, m.keys.Open):
		m.open()
	case key.Matches(msg, m.keys.Reuse):
		return m.reuse()
	case key.Matches(msg, m.keys.Share):
		if _, ok := m.selectedItem(); ok && m.state.ActiveView == model.ViewGallery {
			m.sharing = !m.sharing
		}
	case key.Matches(msg, m.keys.Escape):
		m.sharing = false
	}
	return m, nil
}

func (m Model) focusInput() (Model, tea.Cmd) {
	m.inputFocused = true
	if err := m.session.SetView(model.ViewGenerator); err != nil {
		slog.Warn("failed to switch view", "error", err)
	}
	return m, m.input.Focus()
}

// generate submits the prompt text unless a request is already running
func (m Model) generate() (Model, tea.Cmd) {
	if m.session.Busy() {
		m.setNotice("a generation is already running", true)
		return m, nil
	}
	prompt := m.input.Value()
	m.session.SetPrompt(prompt)
	m.notice = ""
	m.submitting = true
	return m, tea.Batch(
		submitCmd(m.session, prompt, m.session.State().ActiveKind),
		m.spinner.Tick,
	)
}

func (m *Model) toggleKind() {
	next := model.KindImage
	if m.session.State().ActiveKind == model.KindImage {
		next = model.KindVideo
	}
	if err := m.session.SetKind(next); err != nil {
		slog.Warn("failed to switch kind", "error", err)
	}
}

func (m *Model) switchView(step int) {
	views := model.Views()
	current := 0
	for i, v := range views {
		if v == m.session.State().ActiveView {
			current = i
			break
		}
	}
	next := views[(current+step+len(views))%len(views)]
	if err := m.session.SetView(next); err != nil {
		slog.Warn("failed to switch view", "error", err)
	}
	if next != model.ViewGenerator && m.inputFocused {
		m.inputFocused = false
		m.input.Blur()
	}
}

// applyTemplate loads template n (1-based) for the active kind into the prompt
func (m *Model) applyTemplate(n string) {
	templates := model.TemplatesFor(m.session.State().ActiveKind)
	idx := int(n[0] - '1')
	if idx < 0 || idx >= len(templates) {
		return
	}
	text := templates[idx].Text
	m.session.SelectTemplate(text)
	m.input.SetValue(text)
	if err := m.session.SetView(model.ViewGenerator); err != nil {
		slog.Warn("failed to switch view", "error", err)
	}
}

// selectedItem returns the item under the cursor in the gallery or history
func (m Model) selectedItem() (model.GeneratedItem, bool) {
	if m.state.ActiveView == model.ViewGenerator {
		return model.GeneratedItem{}, false
	}
	if m.selected < 0 || m.selected >= len(m.state.Items) {
		return model.GeneratedItem{}, false
	}
	return m.state.Items[m.selected], true
}

func (m Model) download() (Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok || m.downloading[item.ID] {
		return m, nil
	}
	m.downloading[item.ID] = true
	return m, downloadCmd(m.session, item.ID)
}

// open shows the saved file when there is one, otherwise the asset URL
func (m *Model) open() {
	item, ok := m.selectedItem()
	if !ok {
		return
	}

	var err error
	if path, saved := m.saved[item.ID]; saved {
		err = platform.OpenFileWithDefaultApp(path)
	} else {
		err = platform.OpenURL(item.URL)
	}
	if err != nil {
		slog.Warn("failed to open item", "item_id", item.ID, "error", err)
		m.setNotice("could not open: "+err.Error(), true)
	}
}

func (m Model) reuse() (Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	if err := m.session.Reuse(item.ID); err != nil {
		m.setNotice(err.Error(), true)
		return m, nil
	}
	m.input.SetValue(item.Prompt)
	m.input.CursorEnd()
	m.inputFocused = true
	return m, m.input.Focus()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.state.Items) {
		m.selected = len(m.state.Items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeError = isError
}

// eventText describes a session event for the status line
func eventText(e model.Event) string {
	switch e.Type {
	case model.EventPromptMissing:
		return "Enter a prompt: describe the " + e.Kind.String() + " you want to create"
	case model.EventGenerated:
		return "Done! " + kindTitle(e.Kind) + " created successfully"
	case model.EventGenerationFailed:
		var ge *model.GenerationError
		if errors.As(e.Err, &ge) && ge.Timeout {
			return "Error: the service did not answer in time. Please try again."
		}
		return "Error: could not create the " + e.Kind.String() + ". Please try again."
	case model.EventGenerationCancelled:
		return "Generation stopped"
	case model.EventTemplateApplied:
		return "Prompt added: edit it and press enter to generate"
	case model.EventDownloaded:
		return "Downloaded: " + e.Path
	case model.EventDownloadFailed:
		return "Error: could not download the file"
	default:
		return string(e.Type)
	}
}

func kindTitle(kind model.MediaKind) string {
	if kind == model.KindVideo {
		return "Video"
	}
	return "Image"
}
