package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette.
var (
	colorPrimary   = lipgloss.Color("#7aa2f7")
	colorSecondary = lipgloss.Color("#bb9af7")
	colorSuccess   = lipgloss.Color("#9ece6a")
	colorWarning   = lipgloss.Color("#e0af68")
	colorError     = lipgloss.Color("#f7768e")
	colorMuted     = lipgloss.Color("#565f89")
	colorBgLight   = lipgloss.Color("#24283b")
	colorFg        = lipgloss.Color("#c0caf5")
	colorFgDim     = lipgloss.Color("#a9b1d6")
)

const cardWidth = 38

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorFgDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	inputBoxFocusedStyle = inputBoxStyle.
				BorderForeground(colorPrimary)

	cardStyle = lipgloss.NewStyle().
			Background(colorBgLight).
			Foreground(colorFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(cardWidth)

	cardSelectedStyle = cardStyle.
				BorderForeground(colorPrimary)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 3)

	errorPanelStyle = panelStyle.
			BorderForeground(colorError)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(16)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
