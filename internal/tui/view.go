package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"propertyfinder/internal/presentation"
	"propertyfinder/internal/render"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🏡 Property Finder"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Search homes in plain language"))
	b.WriteString("\n\n")

	box := inputBoxStyle
	if m.focus == focusInput && !m.detailOpen {
		box = inputBoxFocusedStyle
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n\n")

	snap := m.sess.Snapshot()
	switch {
	case m.detailOpen:
		b.WriteString(m.detailView())
	case snap.Visible == presentation.LoadingIndicator:
		b.WriteString(m.spinner.View() + " " + subtitleStyle.Render(snap.Panel.Title))
	case snap.Visible == presentation.ResultsGrid:
		b.WriteString(labelStyle.Render(snap.Panel.Title))
		b.WriteString("\n")
		b.WriteString(m.gridView(m.sess.Cards()))
	default:
		b.WriteString(panelView(snap))
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(actionStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpView(snap.State)))
	return b.String()
}

func panelView(snap presentation.Snapshot) string {
	p := snap.Panel
	if snap.State == presentation.Error {
		body := errorTitleStyle.Render(p.Title) + "\n" + p.Message
		if p.Action != "" {
			body += "\n\n" + actionStyle.Render("[esc] "+p.Action)
		}
		return errorPanelStyle.Render(body)
	}
	return panelStyle.Render(titleStyle.Render(p.Title) + "\n" + subtitleStyle.Render(p.Message))
}

func (m Model) gridView(cards []render.Card) string {
	cols := m.columns()
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		cells := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			selected := m.focus == focusGrid && c.Index == m.cursor
			cells = append(cells, cardView(c, selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cardView(c render.Card, selected bool) string {
	var lines []string
	if c.HasBadge() {
		lines = append(lines, badgeStyle.Render(c.Badge))
	}
	lines = append(lines, cardTitleStyle.Render(c.Title), priceStyle.Render(c.Price))
	for _, f := range c.Features {
		lines = append(lines, f.String())
	}
	if c.Description != "" {
		lines = append(lines, "", subtitleStyle.Render(c.Description))
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) detailView() string {
	c, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("  ")
	b.WriteString(priceStyle.Render(c.Price))
	b.WriteString("\n\n")
	for _, l := range render.Details(c.Record, m.enrichers...) {
		b.WriteString(detailKeyStyle.Render(l.Key))
		b.WriteString(l.Value)
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) helpView(state presentation.State) string {
	switch {
	case m.detailOpen:
		return helpLine(keys.Save, keys.Back, keys.Quit)
	case m.focus == focusGrid:
		return helpLine(keys.Up, keys.Down, keys.Left, keys.Right, keys.Open, keys.Search, keys.Quit)
	case state == presentation.Error:
		return helpLine(keys.Submit, keys.Back, keys.Quit)
	case state == presentation.Populated:
		return helpLine(keys.Submit, keys.Focus, keys.Quit)
	}
	return helpLine(keys.Submit, keys.Quit)
}
