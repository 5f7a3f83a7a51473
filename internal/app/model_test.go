package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriMail/internal/dispatcher"
	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/internal/update"
)

func newTestModel(t *testing.T) (*AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)

	m := &AppModel{
		appModel:   models.NewAppModel("work", "http://mail.internal:8000"),
		dispatcher: dispatcher.NewEventDispatcher(eb),
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, eb
}

func TestView_Conversation(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(update.CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		Messages: []models.Message{
			models.NewMessage(models.Query, "hello"),
			models.NewMessage(models.Response, "Hi there"),
		},
	}}})
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "work")
	assert.Contains(t, view, "http://mail.internal:8000")
	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "Hi there")
	assert.Contains(t, view, "Ready")
}

func TestView_ApprovalModal(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(update.CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		PendingApproval: &models.PendingApproval{
			ID:       "p-1",
			ToolName: "send_email",
			Args:     map[string]any{"to": "a@b.com"},
		},
	}}})
	m.Update(update.CoreEventMsg{Event: eventbus.NotificationEvent{Kind: models.NotifySuccess, Message: "Action requires your approval"}})

	view := m.View()
	assert.Contains(t, view, "Approval Required")
	assert.Contains(t, view, "send_email")
	assert.Contains(t, view, "a@b.com")
	assert.Contains(t, view, "Action requires your approval")
}

func TestView_BeforeFirstResize(t *testing.T) {
	m := &AppModel{appModel: models.NewAppModel("default", "http://localhost:8000")}
	assert.Equal(t, "Starting...", m.View())
}
