package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drive-portfolio/pkg/portfolio"
)

const (
	cardHeight   = 3
	chromeHeight = 6
)

var (
	accentColor = lipgloss.Color("#D21F3C")
	mutedColor  = lipgloss.Color("241")

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	filterStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor)
	activeFilterStyle = filterStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(accentColor).Bold(true)
	cardTitleStyle    = lipgloss.NewStyle().Bold(true)
	captionStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	urlStyle          = lipgloss.NewStyle().Foreground(mutedColor).Faint(true)
	cursorStyle       = lipgloss.NewStyle().Foreground(accentColor)
	hoverCursorStyle  = cursorStyle.Bold(true)
	messageStyle      = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)
	errorStyle        = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	modalStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(1, 2)
)

// View implements tea.Model
func (m *Model) View() string {
	if m.screen.modalOpen {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModalBox())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Portfolio"))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderFilters() string {
	buttons := make([]string, 0, len(m.screen.filters))
	for _, c := range m.screen.filters {
		style := filterStyle
		if c.ID == m.screen.active {
			style = activeFilterStyle
		}
		buttons = append(buttons, style.Render(c.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m *Model) renderBody() string {
	switch {
	case m.screen.errMsg != "":
		return errorStyle.Render(m.screen.errMsg)
	case m.screen.loading != "":
		return m.spinner.View() + " " + messageStyle.Render(m.screen.loading)
	case m.screen.empty != "":
		return messageStyle.Render(m.screen.empty)
	}

	cards := m.screen.cards
	if m.offset > len(cards) {
		m.offset = 0
	}
	end := m.offset + m.visibleCards()
	if end > len(cards) {
		end = len(cards)
	}

	var b strings.Builder
	for _, card := range cards[m.offset:end] {
		b.WriteString(m.renderCard(card))
		b.WriteString("\n")
	}
	if len(cards) > end {
		b.WriteString(messageStyle.Render(fmt.Sprintf("… %d more", len(cards)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderCard(card portfolio.Card) string {
	marker := "  "
	if card.Position == m.cursor {
		style := cursorStyle
		if m.screen.hover {
			style = hoverCursorStyle
		}
		marker = style.Render("› ")
	}

	title := fmt.Sprintf("%s [%s]", cardTitleStyle.Render(card.Title), card.Item.Kind)
	lines := []string{
		marker + title,
		"  " + captionStyle.Render(card.Caption),
	}
	if card.ThumbnailURL != "" {
		lines = append(lines, "  "+urlStyle.Render(card.ThumbnailURL))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderModalBox() string {
	var b strings.Builder

	if item, ok := m.ctrl.ModalItem(); ok {
		b.WriteString(cardTitleStyle.Render(item.Name))
		b.WriteString("\n\n")
	}

	content := m.screen.modal
	switch content.Kind {
	case portfolio.ContentLoading:
		b.WriteString(m.spinner.View() + " " + messageStyle.Render(content.Message))
	case portfolio.ContentImage:
		b.WriteString("Image: " + content.URL)
		if size := m.imageSize(content.URL); size != "" {
			b.WriteString("\n" + captionStyle.Render(size))
		}
	case portfolio.ContentEmbed:
		b.WriteString("Player: " + content.URL)
	case portfolio.ContentUnavailable:
		b.WriteString(errorStyle.Render(content.Message))
	}

	b.WriteString("\n\n")
	b.WriteString(captionStyle.Render("esc to close"))

	width := m.width - 8
	if width < 20 {
		width = 20
	}
	return modalStyle.MaxWidth(width).Render(b.String())
}

func (m *Model) imageSize(url string) string {
	p, ok := m.preloader.(*HTTPPreloader)
	if !ok {
		return ""
	}
	dims, ok := p.Dimensions(url)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d × %d", dims.X, dims.Y)
}

func (m *Model) visibleCards() int {
	n := (m.height - chromeHeight) / cardHeight
	if n < 1 {
		return 1
	}
	return n
}
