package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ai-generator/internal/config"
	"github.com/ytget/ai-generator/internal/download"
	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/model"
	"github.com/ytget/ai-generator/internal/platform"
	"github.com/ytget/ai-generator/internal/session"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	session      *session.Manager
	downloadSvc  download.Downloader
	client       *generate.Client
	settings     *config.Settings
	localization *Localization

	// Generator view
	promptLabel *widget.Label
	promptEntry *widget.Entry
	kindRadio   *widget.RadioGroup
	templateBox *fyne.Container
	generateBtn *widget.Button
	stopBtn     *widget.Button
	busyBar     *widget.ProgressBarInfinite

	// Gallery and history views
	tabs         *container.AppTabs
	galleryList  *widget.List
	historyList  *widget.List
	galleryEmpty *fyne.Container
	historyEmpty *fyne.Container
	thumbs       *ThumbnailLoader

	// Last session snapshot; read and written on the UI goroutine only
	state model.SessionState

	// Download tasks keyed by file name, written from download goroutines
	tasksMutex sync.RWMutex
	tasks      map[string]*model.DownloadTask

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationTitle     *widget.Label
	notificationLabel     *widget.Label
	notificationSeq       int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(
	window fyne.Window,
	app fyne.App,
	settings *config.Settings,
	manager *session.Manager,
	downloadSvc download.Downloader,
	client *generate.Client,
) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		session:      manager,
		downloadSvc:  downloadSvc,
		client:       client,
		settings:     settings,
		localization: localization,
		tasks:        make(map[string]*model.DownloadTask),
		thumbs:       NewThumbnailLoader(ThumbnailTimeout),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	if err := manager.SetKind(settings.GetDefaultKind()); err != nil {
		slog.Warn("ignoring configured default kind", "error", err)
	}
	ui.state = manager.State()

	ui.setupUI()
	ui.applyState(ui.state)

	manager.SetUpdateCallback(ui.onStateUpdate)
	manager.SetEventCallback(ui.onEvent)
	downloadSvc.SetUpdateCallback(ui.onTaskUpdate)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	logo := canvas.NewImageFromResource(LoadLogoResource())
	logo.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	logo.FillMode = canvas.ImageFillContain

	title := widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}
	subtitle := widget.NewLabel(ui.localization.GetText(KeyAppSubtitle))
	header := container.NewBorder(nil, nil, logo, settingsBtn, container.NewVBox(title, subtitle))

	// Notification panel under the header (hidden by default)
	ui.notificationTitle = widget.NewLabel("")
	ui.notificationTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	closeBtn := widget.NewButton(IconClose, ui.hideNotification)
	closeBtn.Importance = widget.LowImportance
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationTitle, closeBtn, ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(header, ui.notificationContainer, widget.NewSeparator())

	ui.tabs = container.NewAppTabs(
		container.NewTabItem(ui.localization.GetText(KeyTabGenerator), ui.createGeneratorView()),
		container.NewTabItem(ui.localization.GetText(KeyTabGallery), ui.createGalleryView()),
		container.NewTabItem(ui.localization.GetText(KeyTabHistory), ui.createHistoryView()),
	)
	ui.tabs.OnSelected = func(*container.TabItem) {
		views := model.Views()
		idx := ui.tabs.SelectedIndex()
		if idx < 0 || idx >= len(views) {
			return
		}
		if err := ui.session.SetView(views[idx]); err != nil {
			slog.Warn("failed to switch view", "error", err)
		}
	}

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.tabs))
}

// createGeneratorView builds the prompt editor, kind selector and templates
func (ui *RootUI) createGeneratorView() fyne.CanvasObject {
	ui.kindRadio = widget.NewRadioGroup(ui.kindOptions(), ui.onKindSelected)
	ui.kindRadio.Horizontal = true
	ui.kindRadio.Required = true

	ui.promptLabel = widget.NewLabel("")
	ui.promptLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.promptEntry = widget.NewMultiLineEntry()
	ui.promptEntry.Wrapping = fyne.TextWrapWord
	ui.promptEntry.SetMinRowsVisible(PromptMinLines)
	ui.promptEntry.SetPlaceHolder(ui.localization.GetText(KeyPromptHint))
	ui.promptEntry.OnChanged = ui.session.SetPrompt

	ui.generateBtn = widget.NewButton(ui.localization.GetText(KeyGenerate), ui.onGenerateClick)
	ui.generateBtn.Importance = widget.HighImportance

	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Hide()

	ui.busyBar = widget.NewProgressBarInfinite()
	ui.busyBar.Stop()
	ui.busyBar.Hide()

	templatesLabel := widget.NewLabel(ui.localization.GetText(KeyTemplates))
	templatesLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.templateBox = container.NewGridWithColumns(2)
	ui.rebuildTemplates(ui.state.ActiveKind)

	actions := container.NewBorder(nil, nil, nil, ui.stopBtn, ui.generateBtn)

	return container.NewVScroll(container.NewVBox(
		ui.kindRadio,
		ui.promptLabel,
		ui.promptEntry,
		actions,
		ui.busyBar,
		widget.NewSeparator(),
		templatesLabel,
		ui.templateBox,
	))
}

// createGalleryView builds the list of generated items with their actions
func (ui *RootUI) createGalleryView() fyne.CanvasObject {
	ui.galleryList = widget.NewList(
		func() int { return len(ui.state.Items) },
		func() fyne.CanvasObject {
			card := NewItemCard(ui.localization, false, ui.thumbs)
			card.SetCallbacks(ui.onDownloadItem, ui.onOpenItem, ui.onRevealFile, ui.onReuseItem, ui.onCopyURL)
			return card
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.state.Items) {
				return
			}
			item := ui.state.Items[id]
			obj.(*ItemCard).SetItem(item, ui.taskFor(item))
		},
	)

	ui.galleryEmpty = emptyState(
		ui.localization.GetText(KeyGalleryEmpty),
		ui.localization.GetText(KeyGalleryEmptyHint),
	)
	return container.NewStack(ui.galleryList, ui.galleryEmpty)
}

// createHistoryView builds the compact request history
func (ui *RootUI) createHistoryView() fyne.CanvasObject {
	ui.historyList = widget.NewList(
		func() int { return len(ui.state.Items) },
		func() fyne.CanvasObject {
			card := NewItemCard(ui.localization, true, nil)
			card.SetCallbacks(nil, nil, nil, ui.onReuseItem, nil)
			return card
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.state.Items) {
				return
			}
			obj.(*ItemCard).SetItem(ui.state.Items[id], nil)
		},
	)

	ui.historyEmpty = emptyState(
		ui.localization.GetText(KeyHistoryEmpty),
		ui.localization.GetText(KeyHistoryEmptyHint),
	)
	return container.NewStack(ui.historyList, ui.historyEmpty)
}

func emptyState(title, hint string) *fyne.Container {
	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.Alignment = fyne.TextAlignCenter
	hintLabel := widget.NewLabel(hint)
	hintLabel.Alignment = fyne.TextAlignCenter
	return container.NewCenter(container.NewVBox(titleLabel, hintLabel))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.kindRadio.OnChanged = nil
	ui.kindRadio.Options = ui.kindOptions()
	ui.kindRadio.SetSelected(ui.localization.KindLabel(ui.state.ActiveKind))
	ui.kindRadio.OnChanged = ui.onKindSelected

	ui.promptEntry.SetPlaceHolder(ui.localization.GetText(KeyPromptHint))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))

	tabKeys := []string{KeyTabGenerator, KeyTabGallery, KeyTabHistory}
	for i, tab := range ui.tabs.Items {
		tab.Text = ui.localization.GetText(tabKeys[i])
	}
	ui.tabs.Refresh()

	ui.applyState(ui.state)
}

func (ui *RootUI) kindOptions() []string {
	options := make([]string, 0, len(model.MediaKinds()))
	for _, kind := range model.MediaKinds() {
		options = append(options, ui.localization.KindLabel(kind))
	}
	return options
}

func (ui *RootUI) onKindSelected(label string) {
	for _, kind := range model.MediaKinds() {
		if ui.localization.KindLabel(kind) == label {
			if err := ui.session.SetKind(kind); err != nil {
				slog.Warn("failed to select kind", "error", err)
				return
			}
			ui.settings.SetDefaultKind(kind)
			return
		}
	}
}

// rebuildTemplates fills the template grid for kind
func (ui *RootUI) rebuildTemplates(kind model.MediaKind) {
	ui.templateBox.RemoveAll()
	for _, tpl := range model.TemplatesFor(kind) {
		text := tpl.Text
		btn := widget.NewButton(tpl.Icon+" "+tpl.Category, func() {
			ui.onTemplateClick(text)
		})
		btn.Alignment = widget.ButtonAlignLeading
		ui.templateBox.Add(btn)
	}
	ui.templateBox.Refresh()
}

// onTemplateClick copies the template into the prompt editor
func (ui *RootUI) onTemplateClick(text string) {
	ui.session.SelectTemplate(text)
	ui.promptEntry.SetText(text)
}

// onGenerateClick submits the current prompt in the background
func (ui *RootUI) onGenerateClick() {
	prompt := ui.promptEntry.Text
	kind := ui.state.ActiveKind

	go func() {
		item, err := ui.session.Submit(context.Background(), prompt, kind)
		switch {
		case err == nil:
			if ui.settings.GetAutoDownload() {
				ui.onDownloadItem(item.ID)
			}
		case errors.Is(err, model.ErrBusy), errors.Is(err, model.ErrCancelled):
			slog.Debug("submit not applied", "error", err)
		case model.IsValidation(err):
			// Shown through the event callback
			slog.Debug("submit rejected", "error", err)
		case model.IsGeneration(err):
			slog.Info("generation failed", "kind", kind, "error", err)
		default:
			slog.Error("unexpected submit error", "error", err)
		}
	}()
}

// onStopClick abandons the outstanding request
func (ui *RootUI) onStopClick() {
	ui.session.Cancel()
}

// onDownloadItem saves a generated item to the download directory
func (ui *RootUI) onDownloadItem(itemID string) {
	go func() {
		path, err := ui.session.DownloadItem(context.Background(), itemID)
		switch {
		case err == nil:
		case model.IsDownload(err):
			// Shown through the event callback
			slog.Warn("item download failed", "item_id", itemID, "error", err)
			return
		default:
			slog.Warn("item not downloadable", "item_id", itemID, "error", err)
			return
		}
		if ui.settings.GetAutoRevealOnSave() {
			ui.onRevealFile(path)
		}
	}()
}

// onOpenItem opens the saved file when present, otherwise the asset URL
func (ui *RootUI) onOpenItem(item model.GeneratedItem, savedPath string) {
	if savedPath != "" {
		ui.onOpenFile(savedPath)
		return
	}

	u, err := url.Parse(item.URL)
	if err != nil {
		slog.Warn("cannot parse asset url", "item_id", item.ID, "error", err)
		return
	}
	if err := ui.app.OpenURL(u); err != nil {
		slog.Warn("failed to open asset url", "item_id", item.ID, "error", err)
		if err := platform.OpenURL(item.URL); err != nil {
			ui.showNotification(ui.localization.GetText(KeyErrorTitle), err.Error(), true)
		}
	}
}

// onReuseItem loads an item's prompt into the generator
func (ui *RootUI) onReuseItem(itemID string) {
	item, ok := ui.session.Item(itemID)
	if !ok {
		return
	}
	if err := ui.session.Reuse(itemID); err != nil {
		slog.Warn("reuse failed", "item_id", itemID, "error", err)
		return
	}
	ui.promptEntry.SetText(item.Prompt)
}

// onCopyURL copies the asset URL to the clipboard
func (ui *RootUI) onCopyURL(assetURL string) {
	ui.window.Clipboard().SetContent(assetURL)
	ui.showNotification(ui.localization.GetText(KeyCopyURL), ui.localization.GetText(KeyURLCopied), false)
}

// onRevealFile handles revealing a file in the file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		slog.Warn("failed to reveal file", "path", filePath, "error", err)
		fyne.Do(func() {
			ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), true)
		})
	}
}

// onOpenFile handles opening a file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		slog.Warn("failed to open file", "path", filePath, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile), err.Error(), true)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes saved settings into the running services
func (ui *RootUI) applySettings() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		slog.Warn("failed to ensure download directory", "dir", dir, "error", err)
	}
	ui.downloadSvc.SetDownloadDirectory(dir)
	ui.client.SetEndpoints(ui.settings.GetEndpoints())
	ui.session.SetTimeout(ui.settings.GetRequestTimeout())

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}

// onStateUpdate receives session snapshots from any goroutine
func (ui *RootUI) onStateUpdate(state model.SessionState) {
	fyne.Do(func() {
		ui.applyState(state)
	})
}

// applyState renders a session snapshot
func (ui *RootUI) applyState(state model.SessionState) {
	kindChanged := state.ActiveKind != ui.state.ActiveKind
	ui.state = state

	if kindChanged || ui.kindRadio.Selected == "" {
		ui.kindRadio.SetSelected(ui.localization.KindLabel(state.ActiveKind))
		ui.rebuildTemplates(state.ActiveKind)
	}
	if state.ActiveKind == model.KindVideo {
		ui.promptLabel.SetText(ui.localization.GetText(KeyDescribeVideo))
	} else {
		ui.promptLabel.SetText(ui.localization.GetText(KeyDescribeImage))
	}

	if state.Busy {
		ui.generateBtn.SetText(ui.localization.GetText(KeyGenerating))
		ui.generateBtn.Disable()
		ui.kindRadio.Disable()
		ui.stopBtn.Show()
		ui.busyBar.Show()
		ui.busyBar.Start()
	} else {
		ui.generateBtn.SetText(ui.localization.GetText(KeyGenerate))
		ui.generateBtn.Enable()
		ui.kindRadio.Enable()
		ui.stopBtn.Hide()
		ui.busyBar.Stop()
		ui.busyBar.Hide()
	}

	if len(state.Items) == 0 {
		ui.galleryEmpty.Show()
		ui.historyEmpty.Show()
	} else {
		ui.galleryEmpty.Hide()
		ui.historyEmpty.Hide()
	}
	ui.galleryList.Refresh()
	ui.historyList.Refresh()

	for i, view := range model.Views() {
		if view == state.ActiveView && ui.tabs.SelectedIndex() != i {
			ui.tabs.SelectIndex(i)
			break
		}
	}
}

// onEvent turns session events into notifications
func (ui *RootUI) onEvent(event model.Event) {
	title, description := ui.localization.EventText(event)
	slog.Debug("session event", "type", event.Type, "kind", event.Kind)
	fyne.Do(func() {
		ui.showNotification(title, description, event.Type.IsError())
	})

	if event.Type == model.EventDownloaded {
		ui.app.SendNotification(&fyne.Notification{Title: title, Content: event.Path})
	}
}

// onTaskUpdate handles download task updates from download goroutines
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	if task == nil {
		return
	}

	ui.tasksMutex.Lock()
	ui.tasks[task.Filename] = task
	ui.tasksMutex.Unlock()

	if task.Status.IsFinished() {
		slog.Info("download finished",
			"file", task.GetDisplayTitle(),
			"status", task.Status,
			"elapsed", task.Duration(),
			"error", task.LastError)
	}

	// Progress ticks arrive often; finished tasks always repaint
	if !task.Status.IsFinished() && !ui.debounceUIUpdate() {
		return
	}
	fyne.Do(func() {
		ui.galleryList.Refresh()
	})
}

// debounceUIUpdate reports whether enough time passed since the last repaint
func (ui *RootUI) debounceUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// taskFor returns the latest download task for item, if any
func (ui *RootUI) taskFor(item model.GeneratedItem) *model.DownloadTask {
	ui.tasksMutex.RLock()
	defer ui.tasksMutex.RUnlock()
	return ui.tasks[platform.SanitizeFilename(item.Filename())]
}

// showNotification displays a message in the notification panel under the
// header. Messages hide themselves after NotificationAutoHide unless a newer
// one replaced them. Must be called on the UI goroutine.
func (ui *RootUI) showNotification(title, message string, isError bool) {
	if ui.notificationContainer == nil {
		return
	}

	ui.notificationTitle.SetText(title)
	if isError {
		ui.notificationTitle.Importance = widget.DangerImportance
	} else {
		ui.notificationTitle.Importance = widget.SuccessImportance
	}
	ui.notificationTitle.Refresh()
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()

	ui.notificationSeq++
	seq := ui.notificationSeq
	go func() {
		time.Sleep(NotificationAutoHide)
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.hideNotification()
			}
		})
	}()
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationContainer.Hide()
}
