package tui

import (
	"github.com/bassamadnan/inboxagent/analysis"
	"github.com/charmbracelet/lipgloss"
)

var (
	// General
	AppStyle = lipgloss.NewStyle().Padding(0, 0)

	// Input pane
	InputStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).BorderForeground(lipgloss.Color("240"))
	FocusedInputStyle = InputStyle.BorderForeground(lipgloss.Color("99"))
	PaneTitleStyle    = lipgloss.NewStyle().Bold(true).MarginLeft(1).Foreground(lipgloss.Color("63"))

	// History list
	HistoryItemStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

	NormalBoxCharStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "238"}) // Dim gray
	NormalPreviewStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	NormalSecondaryTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})
	EmptyStateStyle          = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")).PaddingLeft(1)

	HistoryListStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("240")).PaddingRight(1)

	// Results
	ContentBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	FocusedBoxStyle = ContentBoxStyle.BorderForeground(lipgloss.Color("99"))
	TitleStyle      = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	SectionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginTop(1)
	BodyStyle       = lipgloss.NewStyle()
	ReplyStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	CopiedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	HintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// Alert
	AlertStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder(), true).BorderForeground(lipgloss.Color("196")).Padding(1, 3).Bold(true)

	// Status Bar
	StatusBarSuccessStyle = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarNormalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	StatusBarErrorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

var badgeBase = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Padding(0, 1)

// badgeStyles colour each classification the way the web badge did.
var badgeStyles = map[analysis.Classification]lipgloss.Style{
	analysis.Urgent:        badgeBase.Background(lipgloss.Color("160")),
	analysis.Request:       badgeBase.Background(lipgloss.Color("33")),
	analysis.FollowUp:      badgeBase.Background(lipgloss.Color("130")),
	analysis.Reminder:      badgeBase.Background(lipgloss.Color("99")),
	analysis.Informational: badgeBase.Background(lipgloss.Color("241")),
}

func badge(c analysis.Classification) string {
	style, ok := badgeStyles[c]
	if !ok {
		style = badgeStyles[analysis.Informational]
	}
	return style.Render(string(c))
}

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)
