package tui

import "github.com/charmbracelet/lipgloss"

// Monochrome palette with a single accent
var (
	ColorFgPrimary   = lipgloss.Color("#E5E5E5")
	ColorFgSecondary = lipgloss.Color("#A3A3A3")
	ColorFgMuted     = lipgloss.Color("#737373")
	ColorAccent      = lipgloss.Color("#C084FC")
	ColorGreen       = lipgloss.Color("#4ADE80")
	ColorRed         = lipgloss.Color("#F87171")
	ColorYellow      = lipgloss.Color("#FACC15")
	ColorBorder      = lipgloss.Color("#404040")
	ColorBgHighlight = lipgloss.Color("#262626")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorFgSecondary).
				Padding(0, 1)

	BodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputBoxFocusedStyle = InputBoxStyle.
				BorderForeground(ColorAccent)

	TemplateKeyStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	TemplateTextStyle = lipgloss.NewStyle().
				Foreground(ColorFgSecondary)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Background(ColorBgHighlight).
				Bold(true).
				PaddingLeft(1)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(4)

	EmptyTitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true).
			MarginTop(1)

	EmptyHintStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			PaddingLeft(1)

	NoticeErrorStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true).
				PaddingLeft(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)
)
