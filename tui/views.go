package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const historyEmptyState = "No analyses yet."

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing terminal size..."
	}

	contentHeight := m.contentHeight()
	var mainUIView string

	if m.alert != "" {
		box := AlertStyle.MaxWidth(m.width).Render(m.alert + "\n\n" + HintStyle.Render("[Enter] OK"))
		mainUIView = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, box)
	} else {
		sideWidth, resultsWidth := m.paneWidths()
		inputHeight := m.inputHeight()
		if inputHeight > contentHeight {
			inputHeight = contentHeight
		}

		leftColumn := lipgloss.JoinVertical(lipgloss.Left,
			m.renderInputPane(sideWidth, inputHeight),
			m.renderHistoryPane(sideWidth, contentHeight-inputHeight),
		)
		mainUIView = lipgloss.JoinHorizontal(lipgloss.Top, leftColumn, m.renderResultsPane(resultsWidth, contentHeight))
	}

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mainUIView, m.renderStatusBar()))
}

func (m Model) renderInputPane(paneWidth, paneHeight int) string {
	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}
	style := InputStyle
	if m.focus == focusInput {
		style = FocusedInputStyle
	}
	title := PaneTitleStyle.Render("Message")
	return style.
		Width(paneWidth - style.GetHorizontalBorderSize()).
		Height(paneHeight - style.GetVerticalBorderSize()).
		MaxHeight(paneHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.input.View()))
}

func (m Model) renderHistoryPane(paneWidth, paneHeight int) string {
	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}
	title := PaneTitleStyle.MarginBottom(1).Render(fmt.Sprintf("Recent (%d)", m.history.Len()))
	listHeight := max(paneHeight-lipgloss.Height(title), 0) // Title plus its bottom margin

	var body string
	entries := m.history.Entries()
	if len(entries) == 0 {
		body = EmptyStateStyle.Render(historyEmptyState)
	} else {
		// Subtract item padding, the two box edges with their inner spaces (4), and the list frame
		itemTextContentWidth := max(paneWidth-HistoryItemStyle.GetHorizontalPadding()-4-HistoryListStyle.GetHorizontalFrameSize(), 10)
		// Only whole 4-line boxes are drawn; the oldest entries drop off first
		numItems := min(listHeight/historyItemHeight, len(entries))
		items := make([]string, 0, numItems)
		for _, e := range entries[:numItems] {
			items = append(items, formatHistoryItem(e, itemTextContentWidth))
		}
		body = strings.Join(items, "\n")
	}

	// Width excludes the border since lipgloss adds it outside Width
	return HistoryListStyle.
		Width(paneWidth - HistoryListStyle.GetHorizontalBorderSize()).
		Height(paneHeight).
		MaxHeight(paneHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m Model) renderResultsPane(paneWidth, paneHeight int) string {
	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}
	style := ContentBoxStyle
	if m.focus == focusResults {
		style = FocusedBoxStyle
	}

	titleText := "Home"
	if m.current != nil {
		titleText = fmt.Sprintf("Analysis: %s", truncate(singleLine(m.current.Message), max(paneWidth-16, 3)))
	}
	styledTitle := TitleStyle.Render(titleText)

	return style.
		Width(paneWidth - style.GetHorizontalBorderSize()).
		Height(paneHeight - style.GetVerticalBorderSize()).
		MaxHeight(paneHeight).
		Render(lipgloss.JoinVertical(lipgloss.Top, styledTitle, m.results.View()))
}

// renderResults builds the scrollable results content: badge, summary, tasks and reply.
func (m Model) renderResults(width int) string {
	if width <= 0 {
		width = 60
	}
	wrap := lipgloss.NewStyle().Width(width)

	if m.current == nil {
		if m.state == viewLoading {
			return "\n" + m.spinner.View() + " Analyzing message..."
		}
		return wrap.Render("\n[inboxagent]\n\nPaste a message on the left and press Ctrl+S to analyze it.\n\n" +
			HintStyle.Render("Tab switches panes. In the results pane f/p/s rewrite the reply, c copies it."))
	}

	var b strings.Builder
	if m.state == viewLoading {
		b.WriteString(m.spinner.View() + " Analyzing new message...\n\n")
	}

	b.WriteString(SectionStyle.MarginTop(0).Render("Classification") + "\n")
	b.WriteString(badge(m.current.Classification) + "\n")

	b.WriteString(SectionStyle.Render("Summary") + "\n")
	summary := strings.TrimSpace(m.current.Summary)
	if summary == "" {
		summary = "(no summary)"
	}
	b.WriteString(wrap.Render(BodyStyle.Render(summary)) + "\n")

	b.WriteString(SectionStyle.Render("Tasks") + "\n")
	b.WriteString(wrap.Render(strings.Join(taskLines(m.current.Tasks), "\n")) + "\n")

	replyHeader := SectionStyle.Render("Suggested reply") + "  "
	switch {
	case m.rewriting:
		replyHeader += m.spinner.View() + HintStyle.Render(fmt.Sprintf(" rewriting (%s)...", m.rewriteOf))
	case m.copied:
		replyHeader += CopiedStyle.Render("Copied!")
	default:
		replyHeader += HintStyle.Render("[c] copy")
	}
	b.WriteString(replyHeader + "\n")
	b.WriteString(ReplyStyle.Width(max(width-ReplyStyle.GetHorizontalBorderSize(), 1)).Render(m.DisplayedReply()) + "\n")

	if !m.rewriting {
		b.WriteString(HintStyle.Render("Rewrite: [f] friendly  [p] polished  [s] short"))
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	styleToUse := StatusBarNormalStyle
	if m.statusIsError {
		styleToUse = StatusBarErrorStyle
	} else if m.statusIsTemp {
		styleToUse = StatusBarSuccessStyle
	}
	return styleToUse.Width(m.width).Render(truncate(m.statusBarText, max(m.width-styleToUse.GetHorizontalPadding(), 0)))
}
