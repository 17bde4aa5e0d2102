package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/agentpay/agentpay/internal/store"
)

// turnDoneMsg carries the agent messages a completed turn produced.
type turnDoneMsg struct {
	messages []store.Message
}

// turnErrorMsg carries a failed turn's error.
type turnErrorMsg struct {
	err error
}

// startTurn runs one conversational turn in the background. The turn is
// bounded by turnTimeout and aborted by Esc/Ctrl+C via the stored cancel.
func (t *TUI) startTurn(query string) tea.Cmd {
	ctx, cancel := context.WithTimeout(t.ctx, turnTimeout)
	t.turnCancel = cancel

	ag, session := t.agent, t.session
	return func() tea.Msg {
		msgs, err := ag.Process(ctx, session, query)
		if err != nil {
			return turnErrorMsg{err: err}
		}
		return turnDoneMsg{messages: msgs}
	}
}
