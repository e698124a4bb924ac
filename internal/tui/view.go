package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/ai-generator/internal/model"
)

// defaultWidth is used until the first WindowSizeMsg arrives
const defaultWidth = 80

// View renders the model
func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		m.renderBody(),
	}
	if line := m.renderNotice(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderHeader renders the title and subtitle
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("AI Generator")
	subtitle := SubtitleStyle.Render("Create images and videos from a text prompt")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

// renderTabs renders the kind toggle and the view tabs on one line
func (m Model) renderTabs() string {
	var kinds []string
	for _, kind := range model.MediaKinds() {
		label := kindTitle(kind)
		if n := len(m.state.ItemsOfKind(kind)); n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		if kind == m.state.ActiveKind {
			kinds = append(kinds, ActiveTabStyle.Render(label))
		} else {
			kinds = append(kinds, InactiveTabStyle.Render(label))
		}
	}

	var views []string
	for _, view := range model.Views() {
		label := viewTitle(view)
		if view == model.ViewGallery || view == model.ViewHistory {
			label = fmt.Sprintf("%s (%d)", label, len(m.state.Items))
		}
		if view == m.state.ActiveView {
			views = append(views, ActiveTabStyle.Render(label))
		} else {
			views = append(views, InactiveTabStyle.Render(label))
		}
	}

	sep := StatusBarStyle.Render("│")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(kinds, ""),
		sep,
		strings.Join(views, ""),
	)
}

func (m Model) renderBody() string {
	var body string
	switch m.state.ActiveView {
	case model.ViewGallery:
		body = m.renderGallery()
	case model.ViewHistory:
		body = m.renderHistory()
	default:
		body = m.renderGenerator()
	}
	return BodyStyle.Width(m.contentWidth() - 2).Render(body)
}

// renderGenerator renders the prompt input, the generate action and templates
func (m Model) renderGenerator() string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("Describe the " + m.state.ActiveKind.String() + " you want"))
	b.WriteString("\n")

	boxStyle := InputBoxStyle
	if m.inputFocused {
		boxStyle = InputBoxFocusedStyle
	}
	b.WriteString(boxStyle.Width(m.contentWidth() - 6).Render(m.input.View()))
	b.WriteString("\n")

	if m.state.Busy || m.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(" Generating " + m.state.ActiveKind.String() + "... ")
		b.WriteString(StatusBarStyle.Render("ctrl+x to stop"))
	} else {
		b.WriteString(TemplateKeyStyle.Render("enter"))
		b.WriteString(TemplateTextStyle.Render(" generate " + m.state.ActiveKind.String()))
	}
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Templates"))
	b.WriteString("\n")
	for i, tpl := range model.TemplatesFor(m.state.ActiveKind) {
		b.WriteString(TemplateKeyStyle.Render(fmt.Sprintf("[%d]", i+1)))
		b.WriteString(" " + tpl.Icon + " ")
		b.WriteString(TemplateTextStyle.Render(tpl.Text))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderGallery renders every item with its URL or saved path
func (m Model) renderGallery() string {
	if len(m.state.Items) == 0 {
		return m.renderEmpty("Gallery is empty", "Generated images and videos will appear here")
	}

	var b strings.Builder
	for i, item := range m.state.Items {
		line := fmt.Sprintf("%s %s", kindIcon(item.Kind), truncate(item.Prompt, m.contentWidth()-16))
		b.WriteString(m.renderItemLine(i, line))
		b.WriteString("\n")
		b.WriteString(MetaStyle.Render(m.itemMeta(item)))
		b.WriteString("\n")
	}
	if item, ok := m.selectedItem(); ok && m.sharing {
		b.WriteString("\n")
		b.WriteString(renderShare(item))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderHistory renders items with their timestamps, most recent first
func (m Model) renderHistory() string {
	if len(m.state.Items) == 0 {
		return m.renderEmpty("No history yet", "Your generations will be listed here")
	}

	var b strings.Builder
	for i, item := range m.state.Items {
		line := fmt.Sprintf("%s %s %s  %s",
			item.GetDisplayDate(), item.GetDisplayTime(), kindIcon(item.Kind),
			truncate(item.Prompt, m.contentWidth()-32))
		b.WriteString(m.renderItemLine(i, line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderItemLine(index int, line string) string {
	if index == m.selected {
		return SelectedItemStyle.Render("▸ " + line)
	}
	return ItemStyle.Render(line)
}

func (m Model) itemMeta(item model.GeneratedItem) string {
	switch {
	case m.downloading[item.ID]:
		return "downloading..."
	case m.saved[item.ID] != "":
		return "saved to " + m.saved[item.ID]
	default:
		return item.URL
	}
}

func (m Model) renderEmpty(title, hint string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		EmptyTitleStyle.Render(title),
		EmptyHintStyle.Render(hint),
	)
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeError {
		return NoticeErrorStyle.Render(m.notice)
	}
	return NoticeStyle.Render(m.notice)
}

// renderStatusBar renders the key help
func (m Model) renderStatusBar() string {
	if m.showHelp {
		return StatusBarStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return StatusBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func viewTitle(view model.View) string {
	switch view {
	case model.ViewGallery:
		return "Gallery"
	case model.ViewHistory:
		return "History"
	default:
		return "Generator"
	}
}

func kindIcon(kind model.MediaKind) string {
	if kind == model.KindVideo {
		return "🎬"
	}
	return "🖼"
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if n <= 3 {
		n = 3
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
