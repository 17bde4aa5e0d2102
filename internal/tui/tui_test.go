package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/log"
	"github.com/agentpay/agentpay/internal/store"
)

func newTestTUI(t *testing.T) *TUI {
	t.Helper()
	ag, err := agent.New(agent.Config{Logger: log.NewNop()})
	require.NoError(t, err)
	session := agent.NewSession(store.DefaultCatalog())
	tui, err := New(context.Background(), ag, session)
	require.NoError(t, err)
	t.Cleanup(func() { tui.ctxCancel() })
	return tui
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	ag, err := agent.New(agent.Config{Logger: log.NewNop()})
	require.NoError(t, err)
	session := agent.NewSession(store.DefaultCatalog())

	_, err = New(context.Background(), nil, session)
	assert.Error(t, err)

	_, err = New(context.Background(), ag, nil)
	assert.Error(t, err)

	tui, err := New(context.Background(), ag, session)
	require.NoError(t, err)
	assert.Equal(t, StateInput, tui.state)
	tui.ctxCancel()
}

func TestAddMessageBound(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)

	for i := 0; i < maxMessages+10; i++ {
		tui.addMessage(Message{Role: roleUser, Text: fmt.Sprintf("msg %d", i)})
	}
	assert.Len(t, tui.messages, maxMessages)
	// Oldest messages were evicted.
	assert.Equal(t, "msg 10", tui.messages[0].Text)
}

func TestTurnDoneAppendsAgentMessages(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)
	tui.state = StateThinking

	products := []store.Product{{ID: "p1", Name: "Wireless Mouse", Price: 24.99}}
	_, _ = tui.Update(turnDoneMsg{messages: []store.Message{
		{Role: store.RoleAgent, Text: "Here you go", Rich: store.ProductsContent(products)},
	}})

	assert.Equal(t, StateInput, tui.state)
	require.Len(t, tui.messages, 1)
	assert.Equal(t, roleAssistant, tui.messages[0].Role)
	require.NotNil(t, tui.messages[0].Rich)
	assert.Equal(t, store.ContentProducts, tui.messages[0].Rich.Kind)
}

func TestTurnErrorShowsError(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)
	tui.state = StateThinking

	_, _ = tui.Update(turnErrorMsg{err: errors.New("boom")})
	assert.Equal(t, StateInput, tui.state)
	require.Len(t, tui.messages, 1)
	assert.Equal(t, roleError, tui.messages[0].Role)

	tui.state = StateThinking
	_, _ = tui.Update(turnErrorMsg{err: context.Canceled})
	assert.Equal(t, roleSystem, tui.messages[1].Role)
	assert.Equal(t, "(Canceled)", tui.messages[1].Text)
}

func TestSlashCommands(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)

	_, _ = tui.handleSlashCommand(cmdHelp)
	require.NotEmpty(t, tui.messages)
	assert.Equal(t, roleSystem, tui.messages[len(tui.messages)-1].Role)

	_, _ = tui.handleSlashCommand(cmdCart)
	assert.Contains(t, tui.messages[len(tui.messages)-1].Text, "empty")

	_, _ = tui.handleSlashCommand(cmdOrders)
	assert.Contains(t, tui.messages[len(tui.messages)-1].Text, "No orders")

	_, _ = tui.handleSlashCommand("/nope")
	assert.Equal(t, roleError, tui.messages[len(tui.messages)-1].Role)

	_, _ = tui.handleSlashCommand(cmdClear)
	assert.Empty(t, tui.messages)
}

func TestNavigateHistory(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)
	tui.history = []string{"first", "second"}
	tui.historyIdx = len(tui.history)

	_, _ = tui.navigateHistory(-1)
	assert.Equal(t, "second", tui.input.Value())

	_, _ = tui.navigateHistory(-1)
	assert.Equal(t, "first", tui.input.Value())

	// Below zero clamps at the oldest entry.
	_, _ = tui.navigateHistory(-1)
	assert.Equal(t, "first", tui.input.Value())

	_, _ = tui.navigateHistory(1)
	_, _ = tui.navigateHistory(1)
	assert.Empty(t, tui.input.Value())
}

// ansiRe matches SGR escape sequences emitted by lipgloss styles.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestRenderContent(t *testing.T) {
	t.Parallel()
	tui := newTestTUI(t)

	products := []store.Product{
		{ID: "w1", Name: "Desk Lamp", Price: 30, Category: "Home", Image: "🔍", URL: "https://example.com/lamp"},
	}
	out := stripANSI(tui.renderContent(store.ProductsContent(products)))
	assert.Contains(t, out, "Desk Lamp")
	assert.Contains(t, out, "$30.00")
	assert.Contains(t, out, "https://example.com/lamp")

	items := []store.CartItem{{Product: store.Product{Name: "Mug", Price: 14.99}, Quantity: 2}}
	out = stripANSI(tui.renderContent(store.CartContent(items, 29.98)))
	assert.Contains(t, out, "Mug x2")
	assert.Contains(t, out, "$29.98")

	order := store.Order{ID: "A1B2C3D4", Status: store.OrderConfirmed, Items: items, Total: 29.98}
	out = stripANSI(tui.renderContent(store.OrderContent(order)))
	assert.Contains(t, out, "A1B2C3D4")
	assert.Contains(t, out, "confirmed")

	out = stripANSI(tui.renderContent(store.ProcessingContent()))
	assert.Contains(t, out, "processing")
}
