package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"choreboard/internal/engine"
)

func RunBoard(ctx context.Context, session *engine.Session, out io.Writer) error {
	m := newBoardModel(ctx, session)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
