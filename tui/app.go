package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassamadnan/inboxagent/analysis"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// App runs the interactive console on the alternate screen.
type App struct {
	program *tea.Program
	logger  *zap.Logger
}

func NewApp(ctx context.Context, analyzer analysis.Analyzer, logger *zap.Logger, opts ...tea.ProgramOption) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := NewInitialModel(ctx, analyzer, logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return &App{
		program: tea.NewProgram(model, opts...),
		logger:  logger,
	}
}

// Run blocks until the user quits or the context is cancelled.
func (a *App) Run() error {
	a.logger.Info("TUI starting")
	final, err := a.program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			a.logger.Info("TUI stopped by context cancellation")
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		a.logger.Info("TUI stopped", zap.Int("history", m.history.Len()), zap.String("state", m.State()))
	}
	return nil
}
