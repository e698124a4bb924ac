package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir     = "download_directory"
	KeyLanguage        = "app_language"
	KeyImageEndpoint   = "image_endpoint"
	KeyVideoEndpoint   = "video_endpoint"
	KeyRequestTimeout  = "request_timeout_seconds"
	KeyDefaultKind     = "default_media_kind"
	KeyAutoDownload    = "auto_download_generated"
	KeyAutoRevealSaved = "auto_reveal_on_save"
)

// Default values
const (
	DefaultLanguage        = "system"
	DefaultKind            = model.KindImage
	DefaultAutoDownload    = false
	DefaultAutoRevealSaved = true
)

// Settings manages application configuration. Preferences set in the GUI
// take precedence over the file config passed to NewSettings.
type Settings struct {
	app  fyne.App
	base *Config
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App, base *Config) *Settings {
	if base == nil {
		base = DefaultConfig()
	}
	return &Settings{app: app, base: base}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		return s.base.DownloadDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		if s.base.Language != "" {
			return s.base.Language
		}
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetEndpoints returns the generation endpoints
func (s *Settings) GetEndpoints() generate.Endpoints {
	endpoints := s.base.GenerateEndpoints()
	if v := s.app.Preferences().String(KeyImageEndpoint); v != "" {
		endpoints.Image = v
	}
	if v := s.app.Preferences().String(KeyVideoEndpoint); v != "" {
		endpoints.Video = v
	}
	return endpoints
}

// SetEndpoint overrides the endpoint for one media kind. An empty url
// restores the file config value.
func (s *Settings) SetEndpoint(kind model.MediaKind, url string) {
	switch kind {
	case model.KindImage:
		s.app.Preferences().SetString(KeyImageEndpoint, url)
	case model.KindVideo:
		s.app.Preferences().SetString(KeyVideoEndpoint, url)
	}
}

// GetRequestTimeout returns the generation request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	secs := s.app.Preferences().Int(KeyRequestTimeout)
	if secs <= 0 {
		return s.base.Timeout()
	}
	return ClampTimeout(time.Duration(secs) * time.Second)
}

// SetRequestTimeout sets the generation request timeout
func (s *Settings) SetRequestTimeout(d time.Duration) {
	d = ClampTimeout(d)
	s.app.Preferences().SetInt(KeyRequestTimeout, int(d/time.Second))
}

// GetDefaultKind returns the media kind selected on startup
func (s *Settings) GetDefaultKind() model.MediaKind {
	kind, err := model.ParseMediaKind(s.app.Preferences().String(KeyDefaultKind))
	if err != nil {
		return DefaultKind
	}
	return kind
}

// SetDefaultKind sets the media kind selected on startup
func (s *Settings) SetDefaultKind(kind model.MediaKind) {
	if !kind.Valid() {
		kind = DefaultKind
	}
	s.app.Preferences().SetString(KeyDefaultKind, kind.String())
}

// GetAutoDownload returns whether generated assets are saved automatically
func (s *Settings) GetAutoDownload() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoDownload, DefaultAutoDownload)
}

// SetAutoDownload sets whether generated assets are saved automatically
func (s *Settings) SetAutoDownload(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoDownload, enabled)
}

// GetAutoRevealOnSave returns whether to reveal saved files in the file manager
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealSaved, DefaultAutoRevealSaved)
}

// SetAutoRevealOnSave sets whether to reveal saved files in the file manager
func (s *Settings) SetAutoRevealOnSave(reveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealSaved, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
