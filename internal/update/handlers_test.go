package update

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/models"
)

func newModel(t *testing.T) (*models.AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)

	m := models.NewAppModel("default", "http://localhost:8000")
	HandleWindowSizeMsg(&m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return &m, eb
}

func typeText(m *models.AppModel, eb *eventbus.EventBus, text string) {
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}, eb)
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func drainCore(eb *eventbus.EventBus) []eventbus.UIEvent {
	var out []eventbus.UIEvent
	for {
		select {
		case ev := <-eb.UIToCore():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func pendingSnapshot() models.ConversationSnapshot {
	return models.ConversationSnapshot{
		Messages: []models.Message{models.NewMessage(models.Query, "schedule a meeting")},
		PendingApproval: &models.PendingApproval{
			ID:               "p-1",
			ToolName:         "send_email",
			Args:             map[string]any{"to": "a@b.com"},
			RequiresApproval: true,
		},
	}
}

func TestEnterSubmitsQuery(t *testing.T) {
	m, eb := newModel(t)

	typeText(m, eb, "draft a reply")
	assert.Equal(t, "draft a reply", m.Input.Value())

	HandleKeyMsgWithEventBus(m, enter(), eb)

	assert.Equal(t, []eventbus.UIEvent{eventbus.SubmitQueryEvent{Query: "draft a reply"}}, drainCore(eb))
	assert.True(t, m.Submitted)
	assert.Equal(t, StatusLoading, m.Status)

	// A second Enter before the core answers is swallowed.
	HandleKeyMsgWithEventBus(m, enter(), eb)
	assert.Empty(t, drainCore(eb))
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	m, eb := newModel(t)

	typeText(m, eb, "   ")
	HandleKeyMsgWithEventBus(m, enter(), eb)

	assert.Empty(t, drainCore(eb))
	assert.False(t, m.Submitted)
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m, eb := newModel(t)

	typeText(m, eb, "line one")
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, eb)
	typeText(m, eb, "line two")

	assert.Equal(t, "line one\nline two", m.Input.Value())
	assert.Empty(t, drainCore(eb))
}

func TestInputClearedWhenSubmissionFinishes(t *testing.T) {
	m, eb := newModel(t)

	typeText(m, eb, "hello")
	HandleKeyMsgWithEventBus(m, enter(), eb)
	drainCore(eb)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		Messages: []models.Message{models.NewMessage(models.Query, "hello")},
		Query:    "hello",
		Loading:  true,
	}}})
	assert.Equal(t, "hello", m.Input.Value())
	assert.Equal(t, StatusLoading, m.Status)

	// Typing while loading does nothing.
	typeText(m, eb, "x")
	assert.Equal(t, "hello", m.Input.Value())

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		Messages: []models.Message{
			models.NewMessage(models.Query, "hello"),
			models.NewMessage(models.Response, "Hi there"),
		},
	}}})
	assert.Empty(t, m.Input.Value())
	assert.False(t, m.Submitted)
	assert.Equal(t, StatusReady, m.Status)
	assert.Contains(t, m.Log.View(), "Hi there")
}

func TestModalDecisions(t *testing.T) {
	tests := []struct {
		key      tea.KeyMsg
		approved bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			m, eb := newModel(t)
			HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: pendingSnapshot()}})
			require.True(t, m.Modal())
			assert.Equal(t, StatusAwaiting, m.Status)

			HandleKeyMsgWithEventBus(m, tt.key, eb)

			assert.Equal(t, []eventbus.UIEvent{
				eventbus.ApprovalDecisionEvent{ID: "p-1", Approved: tt.approved},
			}, drainCore(eb))
			assert.True(t, m.Conversation.Resolving)

			// Ignored until the core answers.
			HandleKeyMsgWithEventBus(m, tt.key, eb)
			assert.Empty(t, drainCore(eb))
		})
	}
}

func TestModalSwallowsOtherKeys(t *testing.T) {
	m, eb := newModel(t)
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: pendingSnapshot()}})

	typeText(m, eb, "x")

	assert.Empty(t, drainCore(eb))
	assert.Empty(t, m.Input.Value())
	assert.False(t, m.Conversation.Resolving)
}

func TestInvalidPendingDoesNotOpenModal(t *testing.T) {
	m, _ := newModel(t)
	snap := pendingSnapshot()
	snap.PendingApproval.Args = nil

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}})

	assert.False(t, m.Modal())
	assert.Equal(t, StatusReady, m.Status)
}

func TestToastsExpire(t *testing.T) {
	m, _ := newModel(t)
	now := time.Now()

	AddToast(m, models.NotifySuccess, "Action completed successfully", now)
	AddToast(m, models.NotifyInfo, "Action cancelled", now.Add(2*time.Second))
	require.Len(t, m.Toasts, 2)

	HandleTickMsg(m, TickMsg(now.Add(ToastTTL+time.Second)))
	require.Len(t, m.Toasts, 1)
	assert.Equal(t, "Action cancelled", m.Toasts[0].Message)

	HandleTickMsg(m, TickMsg(now.Add(10*time.Second)))
	assert.Empty(t, m.Toasts)
}

func TestToastsAreCapped(t *testing.T) {
	m, _ := newModel(t)
	for i := 0; i < maxToasts+2; i++ {
		HandleCoreEvent(m, CoreEventMsg{Event: eventbus.NotificationEvent{Kind: models.NotifyInfo, Message: "n"}})
	}
	assert.Len(t, m.Toasts, maxToasts)
}

func TestCtrlCQuits(t *testing.T) {
	m, eb := newModel(t)
	cmd := HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlC}, eb)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeLayout(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, 100, m.Log.Width)
	assert.Equal(t, 30-headerHeight-inputHeight-statusHeight, m.Log.Height)
}

func TestModalWaitTextFollowsDecision(t *testing.T) {
	tests := []struct {
		key    tea.KeyMsg
		status string
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, StatusResolving},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, StatusCancelling},
		{tea.KeyMsg{Type: tea.KeyEsc}, StatusCancelling},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			m, eb := newModel(t)
			snap := pendingSnapshot()
			snap.Version = 3
			HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}})

			HandleKeyMsgWithEventBus(m, tt.key, eb)
			assert.Equal(t, tt.status, m.Status)

			// The core's own resolving snapshot keeps the same text.
			snap.Resolving = true
			snap.Version = 4
			HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}})
			assert.Equal(t, tt.status, m.Status)
		})
	}
}

func TestStaleSnapshotIsDropped(t *testing.T) {
	m, _ := newModel(t)

	fresh := models.ConversationSnapshot{
		Messages: []models.Message{
			models.NewMessage(models.Query, "hello"),
			models.NewMessage(models.Response, "Hi there"),
		},
		Version: 5,
	}
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: fresh}})

	stale := models.ConversationSnapshot{
		Messages: []models.Message{models.NewMessage(models.Query, "hello")},
		Loading:  true,
		Version:  2,
	}
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: stale}})

	assert.False(t, m.Conversation.Loading)
	assert.Len(t, m.Conversation.Messages, 2)
	assert.Equal(t, uint64(5), m.Conversation.Version)
	assert.Equal(t, StatusReady, m.Status)
}

func TestSubmissionUnlocksWithoutLoadingSnapshot(t *testing.T) {
	m, eb := newModel(t)
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		Messages: []models.Message{
			models.NewMessage(models.Query, "earlier"),
			models.NewMessage(models.Response, "done"),
		},
		Version: 6,
	}}})

	typeText(m, eb, "hello")
	HandleKeyMsgWithEventBus(m, enter(), eb)
	require.True(t, m.Submitted)

	// A not-loading snapshot without the new query leaves the input locked.
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: m.Conversation}})
	assert.True(t, m.Submitted)
	assert.Equal(t, "hello", m.Input.Value())

	// The loading snapshot was lost; the finished one alone unlocks input.
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.ConversationSnapshot{
		Messages: []models.Message{
			models.NewMessage(models.Query, "earlier"),
			models.NewMessage(models.Response, "done"),
			models.NewMessage(models.Query, "hello"),
			models.NewMessage(models.Response, "Hi there"),
		},
		Version: 9,
	}}})
	assert.False(t, m.Submitted)
	assert.Empty(t, m.Input.Value())
	assert.Equal(t, StatusReady, m.Status)
}
