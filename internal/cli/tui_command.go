package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskboard/internal/board"
	"taskboard/internal/logging"
	"taskboard/internal/tui"
)

// debugLogFile receives board logs while the TUI owns the terminal.
const debugLogFile = "taskboard-debug.log"

// TUICommand runs the interactive terminal client.
type TUICommand struct {
	app *App
	eh  *ErrorHandler
}

// NewTUICommand creates a new tui command handler
func NewTUICommand(app *App) *TUICommand {
	return &TUICommand{app: app, eh: NewErrorHandler()}
}

// Execute runs the TUI until the user quits.
func (c *TUICommand) Execute(ctx context.Context, args []string) error {
	taskAPI, err := c.app.TaskAPI()
	if err != nil {
		return c.eh.Handle("start tui", err)
	}

	logger := logging.Discard()
	if c.app.config.Logging.Debug || logging.DebugEnabled() {
		f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		opts := logging.DefaultOptions()
		opts.Level = log.DebugLevel
		logger = logging.New(f, opts)
	}

	notices := &tui.Notices{}
	b := board.New(taskAPI, notices, board.WithLogger(logger), board.WithClock(timeNow))

	program := tea.NewProgram(tui.NewModel(ctx, b, notices), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
