package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// ConversationSnapshot is a copy of the controller state handed to renderers
type ConversationSnapshot struct {
	Messages        []Message
	Query           string
	Loading         bool
	Resolving       bool
	PendingApproval *PendingApproval
	Version         uint64 // Orders snapshots; a lower version is stale
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Conversation ConversationSnapshot // Last snapshot received from core
	Toasts       []Toast              // Visible notifications
	Status       string               // Status bar text
	Profile      string               // Active profile name
	BaseURL      string               // Backend base URL of the active profile
	Width        int                  // Terminal width
	Height       int                  // Terminal height
	Submitted    bool                 // A submission was sent and its completion not yet seen
	SentAt       int                  // Log length when the submission was sent
	Approving    bool                 // Last decision sent was an approval

	Input   textarea.Model
	Spinner spinner.Model
	Log     viewport.Model
}

// NewAppModel builds the initial UI state. Width and height stay zero until
// the first window size message.
func NewAppModel(profile, baseURL string) AppModel {
	input := textarea.New()
	input.Placeholder = "Ask the assistant to draft, reply to or send an email..."
	input.ShowLineNumbers = false
	input.CharLimit = 4000
	input.SetHeight(3)
	input.KeyMap.InsertNewline.SetKeys("alt+enter")
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		Conversation: ConversationSnapshot{Messages: make([]Message, 0)},
		Toasts:       make([]Toast, 0),
		Status:       "Ready",
		Profile:      profile,
		BaseURL:      baseURL,
		Input:        input,
		Spinner:      sp,
		Log:          viewport.New(0, 0),
	}
}

// Modal reports whether a decision is required before anything else.
func (m *AppModel) Modal() bool {
	return m.Conversation.PendingApproval.Valid()
}
