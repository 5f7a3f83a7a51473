package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriMail/internal/update"
	"github.com/Rorical/RoriMail/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.appModel.Input.Focus(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	am := &m.appModel
	if am.Width == 0 {
		return "Starting..."
	}

	if am.Modal() {
		modal := components.RenderApprovalModal(am.Conversation.PendingApproval, am.Conversation.Resolving, am.Approving, am.Width, am.Height-1)
		return lipgloss.JoinVertical(lipgloss.Left,
			overlayToasts(modal, components.RenderToasts(am.Toasts, am.Width)),
			components.RenderStatus(am.Status, true, am.Width),
		)
	}

	var b strings.Builder
	b.WriteString(components.RenderHeader(am.Profile, am.BaseURL, am.Width))
	b.WriteString("\n")
	b.WriteString(overlayToasts(am.Log.View(), components.RenderToasts(am.Toasts, am.Width)))
	b.WriteString("\n")
	b.WriteString(components.RenderInput(am.Input.View(), am.Conversation.Loading, am.Spinner.View(), am.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(am.Status, false, am.Width))

	return b.String()
}

// overlayToasts replaces the top lines of view with the toast stack.
func overlayToasts(view, toasts string) string {
	if toasts == "" {
		return view
	}
	lines := strings.Split(view, "\n")
	for i, line := range strings.Split(toasts, "\n") {
		if i >= len(lines) {
			break
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
