package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bassamadnan/inboxagent/history"
	"github.com/charmbracelet/lipgloss"
)

const noTasksPlaceholder = "No explicit tasks detected."

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// singleLine collapses all whitespace runs, newlines included, into single spaces.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// taskLines returns the bullet lines for the task list. An empty list yields the placeholder.
func taskLines(tasks []string) []string {
	var lines []string
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			lines = append(lines, "• "+t)
		}
	}
	if len(lines) == 0 {
		return []string{noTasksPlaceholder}
	}
	return lines
}

// formatEntryTime formats the entry time for the history list.
func formatEntryTime(t time.Time) string {
	if t.IsZero() {
		return "???"
	}
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return t.Local().Format("15:04:05") // Time only for today
	}
	return t.Local().Format("Jan02 15:04")
}

// formatHistoryItem formats a single history entry as a 4-line box.
// itemContentTextWidth is the width for the text inside the box lines.
func formatHistoryItem(e history.Entry, itemContentTextWidth int) string {
	boxCharStyle := NormalBoxCharStyle

	preview := singleLine(e.Preview)
	if preview == "" {
		preview = "(empty message)"
	}
	paddedPreview := fmt.Sprintf("%-*s", itemContentTextWidth, truncate(preview, itemContentTextWidth))

	// Badge and time share the first text line; badge is styled so pad by visible width.
	header := fmt.Sprintf("%s %s", badge(e.Classification), NormalSecondaryTextStyle.Render(formatEntryTime(e.ID)))
	if pad := itemContentTextWidth - lipgloss.Width(header); pad > 0 {
		header += strings.Repeat(" ", pad)
	}

	horizontalBar := strings.Repeat(BoxHorizontal, itemContentTextWidth+2)
	line1 := boxCharStyle.Render(BoxTopLeft + horizontalBar + BoxTopRight)
	line2 := fmt.Sprintf("%s %s %s", boxCharStyle.Render(BoxVertical), header, boxCharStyle.Render(BoxVertical))
	line3 := fmt.Sprintf("%s %s %s", boxCharStyle.Render(BoxVertical), NormalPreviewStyle.Render(paddedPreview), boxCharStyle.Render(BoxVertical))
	line4 := boxCharStyle.Render(BoxBottomLeft + horizontalBar + BoxBottomRight)

	return HistoryItemStyle.Render(strings.Join([]string{line1, line2, line3, line4}, "\n"))
}
