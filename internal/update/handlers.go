package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/components"
)

const (
	ToastTTL  = 3 * time.Second
	maxToasts = 5

	// Rows taken by everything except the conversation log.
	headerHeight = 1
	inputHeight  = 5
	statusHeight = 1
)

const (
	StatusReady      = "Ready"
	StatusLoading    = "Processing"
	StatusAwaiting   = "Awaiting approval"
	StatusResolving  = "Executing action"
	StatusCancelling = "Cancelling action"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}

	if appModel.Modal() {
		handleModalKey(appModel, keyMsg, eb)
		return nil
	}

	switch keyMsg.String() {
	case "pgup":
		appModel.Log.SetYOffset(appModel.Log.YOffset - appModel.Log.Height)
		return nil
	case "pgdown":
		appModel.Log.SetYOffset(appModel.Log.YOffset + appModel.Log.Height)
		return nil
	case "enter":
		submit(appModel, eb)
		return nil
	}

	if appModel.Conversation.Loading || appModel.Submitted {
		return nil
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

func submit(appModel *models.AppModel, eb *eventbus.EventBus) {
	if appModel.Conversation.Loading || appModel.Submitted {
		return
	}
	text := appModel.Input.Value()
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := eb.SendToCore(eventbus.SubmitQueryEvent{Query: text}); err != nil {
		appModel.Status = "Error sending query: " + err.Error()
		return
	}
	appModel.Submitted = true
	appModel.SentAt = len(appModel.Conversation.Messages)
	appModel.Status = StatusLoading
}

func handleModalKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) {
	if appModel.Conversation.Resolving {
		return
	}

	var approved bool
	switch keyMsg.String() {
	case "y", "Y", "a", "A", "enter":
		approved = true
	case "n", "N", "r", "R", "esc":
		approved = false
	default:
		return
	}

	pending := appModel.Conversation.PendingApproval
	if err := eb.SendToCore(eventbus.ApprovalDecisionEvent{ID: pending.ID, Approved: approved}); err != nil {
		appModel.Status = "Error sending decision: " + err.Error()
		return
	}
	// Further keys are ignored until the core confirms.
	appModel.Conversation.Resolving = true
	appModel.Approving = approved
	appModel.Status = statusFor(appModel)
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		if event.Snapshot.Version < appModel.Conversation.Version {
			return nil
		}
		wasLoading := appModel.Conversation.Loading
		appModel.Conversation = event.Snapshot

		if appModel.Submitted && submissionDone(appModel, wasLoading) {
			appModel.Submitted = false
			appModel.Input.Reset()
		}

		appModel.Status = statusFor(appModel)
		refreshLog(appModel)

		if event.Snapshot.Loading && !wasLoading {
			return appModel.Spinner.Tick
		}
	case eventbus.NotificationEvent:
		AddToast(appModel, event.Kind, event.Message, time.Now())
	}

	return nil
}

// submissionDone reports whether the snapshot just applied shows the sent
// query finished, even if the loading snapshot itself was never seen.
func submissionDone(appModel *models.AppModel, wasLoading bool) bool {
	if appModel.Conversation.Loading {
		return false
	}
	return wasLoading || len(appModel.Conversation.Messages) > appModel.SentAt
}

func statusFor(appModel *models.AppModel) string {
	switch {
	case appModel.Conversation.Resolving && !appModel.Approving:
		return StatusCancelling
	case appModel.Conversation.Resolving:
		return StatusResolving
	case appModel.Modal():
		return StatusAwaiting
	case appModel.Conversation.Loading, appModel.Submitted:
		return StatusLoading
	default:
		return StatusReady
	}
}

// AddToast shows a notification until now+ToastTTL. The oldest toast is
// dropped once maxToasts are visible.
func AddToast(appModel *models.AppModel, kind models.NotificationKind, message string, now time.Time) {
	appModel.Toasts = append(appModel.Toasts, models.Toast{
		Kind:      kind,
		Message:   message,
		ExpiresAt: now.Add(ToastTTL),
	})
	if len(appModel.Toasts) > maxToasts {
		appModel.Toasts = appModel.Toasts[len(appModel.Toasts)-maxToasts:]
	}
}

func refreshLog(appModel *models.AppModel) {
	appModel.Log.SetContent(components.RenderMessages(appModel.Conversation.Messages, appModel.Log.Width))
	appModel.Log.GotoBottom()
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	appModel.Input.SetWidth(max(sizeMsg.Width-6, 10))
	appModel.Log.Width = sizeMsg.Width
	appModel.Log.Height = max(sizeMsg.Height-headerHeight-inputHeight-statusHeight, 1)
	refreshLog(appModel)
}

// HandleTickMsg expires toasts.
func HandleTickMsg(appModel *models.AppModel, tick TickMsg) tea.Cmd {
	now := time.Time(tick)
	kept := appModel.Toasts[:0]
	for _, t := range appModel.Toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	appModel.Toasts = kept
	return TickCmd()
}
