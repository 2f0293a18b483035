package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/bassamadnan/inboxagent/analysis"
	"github.com/bassamadnan/inboxagent/history"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type viewState int

const (
	viewIdle viewState = iota
	viewLoading
	viewResults
)

func (s viewState) String() string {
	switch s {
	case viewLoading:
		return "loading"
	case viewResults:
		return "results"
	}
	return "idle"
}

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

const (
	alertEmptyMessage  = "Please paste a message to analyze."
	alertNoAnalysis    = "Analyze a message first, there is no reply to rewrite yet."
	alertNothingToCopy = "There is no reply to copy yet."

	historyItemHeight  = 4
	minInputPaneHeight = 5
	minSidePaneWidth   = 30
	minResultPaneWidth = 40
)

// Model is the whole UI state. All mutation happens inside Update on the bubbletea loop.
type Model struct {
	ctx      context.Context
	analyzer analysis.Analyzer
	logger   *zap.Logger
	keys     keyMap

	input   textarea.Model
	spinner spinner.Model
	results viewport.Model

	state     viewState
	focus     focusArea
	rewriting bool
	// generation counts analyze requests; analysisID counts successful analyses.
	generation uint64
	analysisID uint64

	current *analysis.Result
	history *history.History

	alert     string
	copied    bool
	copySeq   int
	rewriteOf analysis.Style

	width, height int
	statusBarText string
	statusIsError bool
	statusIsTemp  bool
	tempSeq       int
}

func NewInitialModel(ctx context.Context, analyzer analysis.Analyzer, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste an email or chat message... (Ctrl+S or Alt+Enter to analyze)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		analyzer: analyzer,
		logger:   logger.Named("tui"),
		keys:     defaultKeyMap(),
		input:    ta,
		spinner:  sp,
		results:  viewport.New(60, 20),
		state:    viewIdle,
		focus:    focusInput,
		history:  history.New(history.DefaultLimit),
	}
	m.setStandardStatus()
	m.refreshResults()
	return m
}

func (m Model) Init() tea.Cmd {
	m.logger.Debug("TUI Model Init called")
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.updateStatusBar("Quitting...")
			return m, tea.Quit
		}
		// The alert is blocking: only dismissal gets through.
		if m.alert != "" {
			if key.Matches(msg, m.keys.Dismiss) {
				m.alert = ""
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.SwitchFocus) {
			m.toggleFocus()
			break
		}
		switch m.focus {
		case focusInput:
			if key.Matches(msg, m.keys.Analyze) {
				cmds = append(cmds, m.startAnalyze())
				break
			}
			if msg.Type == tea.KeyEsc {
				m.setFocus(focusResults)
				break
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		case focusResults:
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.updateStatusBar("Quitting...")
				return m, tea.Quit
			case key.Matches(msg, m.keys.Analyze):
				cmds = append(cmds, m.startAnalyze())
			case key.Matches(msg, m.keys.Friendly):
				cmds = append(cmds, m.startRewrite(analysis.StyleFriendly))
			case key.Matches(msg, m.keys.Polished):
				cmds = append(cmds, m.startRewrite(analysis.StylePolished))
			case key.Matches(msg, m.keys.Short):
				cmds = append(cmds, m.startRewrite(analysis.StyleShort))
			case key.Matches(msg, m.keys.Copy):
				cmds = append(cmds, m.copyReply())
			case key.Matches(msg, m.keys.ClearHistory):
				m.clearHistory()
			default:
				var cmd tea.Cmd
				m.results, cmd = m.results.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case analyzeDoneMsg:
		m.finishAnalyze(msg, &cmds)

	case rewriteDoneMsg:
		m.finishRewrite(msg, &cmds)

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refreshResults()
		}

	case clearCopiedMsg:
		if msg.seq == m.copySeq && m.copied {
			m.copied = false
			m.refreshResults()
		}

	case clearTempStatusMsg:
		if msg.seq == m.tempSeq && m.statusIsTemp {
			m.statusIsTemp = false
			m.setStandardStatus()
		}
	}

	return m, tea.Batch(cmds...)
}

// startAnalyze validates the input and issues the remote call. It is a no-op while an
// analysis is already loading, mirroring the disabled trigger.
func (m *Model) startAnalyze() tea.Cmd {
	if m.state == viewLoading {
		return nil
	}
	message := strings.TrimSpace(m.input.Value())
	if message == "" {
		m.showAlert(alertEmptyMessage)
		return nil
	}

	m.generation++
	m.state = viewLoading
	m.updateStatusBar("Analyzing message...")
	m.refreshResults()
	m.logger.Info("Analyze started", zap.Uint64("generation", m.generation), zap.Int("length", len(message)))

	return tea.Batch(m.spinner.Tick, analyzeCmd(m.ctx, m.analyzer, m.generation, message))
}

func (m *Model) finishAnalyze(msg analyzeDoneMsg, cmds *[]tea.Cmd) {
	if msg.gen != m.generation {
		m.logger.Info("Dropping stale analyze response", zap.Uint64("generation", msg.gen), zap.Uint64("current", m.generation))
		return
	}

	if msg.err != nil {
		m.logger.Warn("Analyze failed", zap.Error(msg.err))
		if m.current != nil {
			m.state = viewResults
		} else {
			m.state = viewIdle
		}
		m.setStandardStatus()
		m.refreshResults()
		m.showAlert(fmt.Sprintf("Error analyzing message: %v", msg.err))
		return
	}

	res := msg.result
	res.Classification = analysis.NormalizeClassification(string(res.Classification))
	m.current = &res
	m.analysisID++
	m.copied = false
	m.history.Add(res.Message, res.Classification, time.Now())
	m.state = viewResults
	m.setFocus(focusResults)
	m.results.GotoTop()
	m.refreshResults()
	m.showTemporaryStatus(fmt.Sprintf("Analyzed: %s", res.Classification), cmds)
	m.logger.Info("Analyze completed",
		zap.String("classification", string(res.Classification)),
		zap.Int("tasks", len(res.Tasks)))
}

// startRewrite asks for the current reply in a new style. Rewrite keys are disabled
// while a rewrite or an analysis is in flight.
func (m *Model) startRewrite(style analysis.Style) tea.Cmd {
	if m.rewriting || m.state == viewLoading {
		return nil
	}
	if !m.current.HasReply() {
		m.showAlert(alertNoAnalysis)
		return nil
	}

	m.rewriting = true
	m.rewriteOf = style
	m.updateStatusBar(fmt.Sprintf("Rewriting reply (%s)...", style))
	m.refreshResults()
	m.logger.Info("Rewrite started", zap.String("style", string(style)))

	req := analysis.RewriteRequest{
		OriginalMessage: m.current.Message,
		BaseReply:       m.current.SuggestedReply,
		Style:           style,
	}
	return tea.Batch(m.spinner.Tick, rewriteCmd(m.ctx, m.analyzer, m.analysisID, req))
}

func (m *Model) finishRewrite(msg rewriteDoneMsg, cmds *[]tea.Cmd) {
	m.rewriting = false
	defer m.refreshResults()

	// The reply belongs to an analysis that has since been replaced.
	if msg.analysisID != m.analysisID {
		m.logger.Info("Dropping stale rewrite response", zap.Uint64("analysis", msg.analysisID), zap.Uint64("current", m.analysisID))
		if m.state != viewLoading {
			m.setStandardStatus()
		}
		return
	}

	if msg.err != nil {
		m.logger.Warn("Rewrite failed", zap.String("style", string(msg.style)), zap.Error(msg.err))
		if m.state != viewLoading {
			m.updateStatusError("Rewrite failed. Showing last reply.")
		}
		return
	}

	m.current.SuggestedReply = msg.reply
	m.copied = false
	m.logger.Info("Rewrite completed", zap.String("style", string(msg.style)))
	// Keep "Analyzing message..." up while a newer request is in flight.
	if m.state != viewLoading {
		m.showTemporaryStatus(fmt.Sprintf("Reply rewritten (%s).", msg.style), cmds)
	}
}

func (m *Model) copyReply() tea.Cmd {
	reply := m.DisplayedReply()
	if strings.TrimSpace(reply) == "" {
		m.showAlert(alertNothingToCopy)
		return nil
	}
	if err := clipboardWriteAll(reply); err != nil {
		m.logger.Warn("Clipboard write failed", zap.Error(err))
		m.updateStatusError(fmt.Sprintf("Could not copy to clipboard: %v", err))
		return nil
	}
	m.copied = true
	m.copySeq++
	m.refreshResults()
	return clearCopiedCmd(m.copySeq)
}

func (m *Model) clearHistory() {
	m.history.Clear()
	m.logger.Info("History cleared")
	// A pending temporary status would hide the new count until its timer fires.
	m.statusIsTemp = false
	m.setStandardStatus()
}

// DisplayedReply is the reply currently shown to the user.
func (m Model) DisplayedReply() string {
	if m.current == nil {
		return ""
	}
	return m.current.SuggestedReply
}

// State names the lifecycle state: idle, loading, results or rewriting.
func (m Model) State() string {
	if m.rewriting && m.state == viewResults {
		return "rewriting"
	}
	return m.state.String()
}

func (m Model) busy() bool {
	return m.state == viewLoading || m.rewriting
}

func (m *Model) showAlert(text string) {
	m.alert = text
	m.logger.Debug("Alert shown", zap.String("alert", text))
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.setFocus(focusResults)
	} else {
		m.setFocus(focusInput)
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if !m.statusIsTemp && !m.statusIsError && !m.busy() {
		m.setStandardStatus()
	}
}

func (m *Model) showTemporaryStatus(text string, cmds *[]tea.Cmd) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = true
	m.tempSeq++
	*cmds = append(*cmds, clearTempStatusCmd(m.tempSeq))
}

func (m *Model) updateStatusBar(text string) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = false
}

func (m *Model) updateStatusError(text string) {
	m.statusBarText = text
	m.statusIsError = true
	m.statusIsTemp = false
}

func (m *Model) setStandardStatus() {
	if m.statusIsTemp {
		return
	}

	statusMsg := fmt.Sprintf(" %s | %d in history ", m.State(), m.history.Len())

	keyHints := hints(m.keys.ForceQuit, m.keys.SwitchFocus)
	switch m.focus {
	case focusInput:
		keyHints += " | " + hints(m.keys.Analyze)
	case focusResults:
		keyHints += " | " + hints(m.keys.Friendly, m.keys.Polished, m.keys.Short, m.keys.Copy, m.keys.ClearHistory, m.keys.Quit)
	}
	m.updateStatusBar(statusMsg + "| " + keyHints)
}

// resize lays the panes out for the current terminal size.
func (m *Model) resize() {
	side, content := m.paneWidths()
	m.input.SetWidth(max(side-InputStyle.GetHorizontalFrameSize(), 10))
	m.input.SetHeight(max(m.inputHeight()-InputStyle.GetVerticalFrameSize()-1, 1)) // -1 for the pane title

	m.results.Width = max(content-ContentBoxStyle.GetHorizontalFrameSize(), 0)
	m.results.Height = max(m.contentHeight()-ContentBoxStyle.GetVerticalFrameSize()-1, 0) // -1 for the title line
	m.refreshResults()
}

func (m Model) contentHeight() int {
	statusBarHeight := 1
	return max(m.height-statusBarHeight, 0)
}

func (m Model) inputHeight() int {
	return max(m.contentHeight()/3, minInputPaneHeight)
}

func (m Model) paneWidths() (side, content int) {
	side = int(float64(m.width) * 0.35) // Input and history take 35% of the width
	if side < minSidePaneWidth {
		side = minSidePaneWidth
	}
	// Results keep at least minResultPaneWidth; the side column gives way first
	if side > m.width-minResultPaneWidth && m.width > minResultPaneWidth {
		side = m.width - minResultPaneWidth
	}
	// Very narrow terminal: side column gets everything, results collapse to 0
	if side > m.width {
		side = m.width
	}
	if side < 0 {
		side = 0
	}
	return side, max(m.width-side, 0)
}

func (m *Model) refreshResults() {
	m.results.SetContent(m.renderResults(m.results.Width))
}
