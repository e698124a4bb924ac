package ui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ai-generator/internal/config"
	"github.com/ytget/ai-generator/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry   *widget.Entry
	imageEndpointEntry *widget.Entry
	videoEndpointEntry *widget.Entry
	timeoutEntry       *widget.Entry
	autoDownloadCheck  *widget.Check
	autoRevealCheck    *widget.Check
	languageSelect     *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were written so the caller can apply them.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.imageEndpointEntry = widget.NewEntry()
	sd.imageEndpointEntry.Validator = validateEndpoint
	sd.videoEndpointEntry = widget.NewEntry()
	sd.videoEndpointEntry.Validator = validateEndpoint

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(int(config.MinRequestTimeout/time.Second)) + "-" +
		strconv.Itoa(int(config.MaxRequestTimeout/time.Second)))

	sd.autoDownloadCheck = widget.NewCheck(text(KeyAutoDownload), nil)
	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(text(KeyImageEndpoint), sd.imageEndpointEntry),
		widget.NewFormItem(text(KeyVideoEndpoint), sd.videoEndpointEntry),
		widget.NewFormItem(text(KeyRequestTimeout), sd.timeoutEntry),
		widget.NewFormItem("", sd.autoDownloadCheck),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	endpoints := sd.settings.GetEndpoints()
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.imageEndpointEntry.SetText(endpoints.Image)
	sd.videoEndpointEntry.SetText(endpoints.Video)
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Second)))
	sd.autoDownloadCheck.SetChecked(sd.settings.GetAutoDownload())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnSave())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if validateEndpoint(sd.imageEndpointEntry.Text) == nil {
		sd.settings.SetEndpoint(model.KindImage, strings.TrimSpace(sd.imageEndpointEntry.Text))
	}
	if validateEndpoint(sd.videoEndpointEntry.Text) == nil {
		sd.settings.SetEndpoint(model.KindVideo, strings.TrimSpace(sd.videoEndpointEntry.Text))
	}

	if timeoutStr := strings.TrimSpace(sd.timeoutEntry.Text); timeoutStr != "" {
		secs, err := strconv.Atoi(timeoutStr)
		if err != nil {
			dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeyInvalidTimeout), sd.window)
			return
		}
		sd.settings.SetRequestTimeout(time.Duration(secs) * time.Second)
	}

	sd.settings.SetAutoDownload(sd.autoDownloadCheck.Checked)
	sd.settings.SetAutoRevealOnSave(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
