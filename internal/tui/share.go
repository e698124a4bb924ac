package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"

	"github.com/ytget/ai-generator/internal/model"
)

// renderQR encodes text as a half-block QR code
func renderQR(text string) string {
	var b strings.Builder
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}

// renderShare shows the asset URL of item as a scannable QR code
func renderShare(item model.GeneratedItem) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("Scan to open "+item.Kind.String()),
		renderQR(item.URL),
		EmptyHintStyle.Render(item.URL),
	)
}
