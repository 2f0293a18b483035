package tui

import (
	"context"
	"time"

	"github.com/bassamadnan/inboxagent/analysis"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	copiedDuration     = 1200 * time.Millisecond
	tempStatusDuration = 4 * time.Second
)

// analyzeCmd runs the remote analysis off the UI loop and reports back with analyzeDoneMsg.
func analyzeCmd(ctx context.Context, a analysis.Analyzer, gen uint64, message string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Analyze(ctx, message)
		return analyzeDoneMsg{gen: gen, result: res, err: err}
	}
}

// rewriteCmd runs the remote rewrite off the UI loop and reports back with rewriteDoneMsg.
func rewriteCmd(ctx context.Context, a analysis.Analyzer, analysisID uint64, req analysis.RewriteRequest) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.Rewrite(ctx, req)
		return rewriteDoneMsg{analysisID: analysisID, style: req.Style, reply: reply, err: err}
	}
}

func clearCopiedCmd(seq int) tea.Cmd {
	return tea.Tick(copiedDuration, func(time.Time) tea.Msg {
		return clearCopiedMsg{seq: seq}
	})
}

func clearTempStatusCmd(seq int) tea.Cmd {
	return tea.Tick(tempStatusDuration, func(time.Time) tea.Msg {
		return clearTempStatusMsg{seq: seq}
	})
}
