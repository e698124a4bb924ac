package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconSparkles = "✨"
	IconImage    = "🖼"
	IconVideo    = "🎬"
	IconDownload = "⬇"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconRepeat   = "↻"
	IconClose    = "×"
	IconError    = "❌"
	IconClock    = "🕐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing (item cards / lists)
const (
	CardMinWidth  float32 = 400
	CardMinHeight float32 = 96
	ThumbnailSize float32 = 96
	LogoSize      float32 = 32
)

// Thumbnail fetching
const (
	ThumbnailTimeout  = 15 * time.Second
	MaxThumbnailBytes = 20 << 20
)

// PromptMinLines is the visible height of the prompt editor
const PromptMinLines = 4

// Window sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 440
)

// Notification panel behavior
const (
	NotificationAutoHide = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
