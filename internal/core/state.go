package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/RoriMail/internal/backend"
	"github.com/Rorical/RoriMail/internal/models"
)

// ConversationState owns the message log, the input buffer, the in-flight
// flags and the pending-approval slot. All transitions happen under mu.
type ConversationState struct {
	mu        sync.RWMutex
	messages  []models.Message
	query     string
	loading   bool
	resolving bool
	pending   *models.PendingApproval
	version   uint64 // bumped on every change
}

func NewConversationState() *ConversationState {
	return &ConversationState{
		messages: make([]models.Message, 0),
	}
}

func (cs *ConversationState) Snapshot() models.ConversationSnapshot {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	messages := make([]models.Message, len(cs.messages))
	copy(messages, cs.messages)

	return models.ConversationSnapshot{
		Messages:        messages,
		Query:           cs.query,
		Loading:         cs.loading,
		Resolving:       cs.resolving,
		PendingApproval: cs.pending.Clone(),
		Version:         cs.version,
	}
}

func (cs *ConversationState) IsLoading() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.loading
}

// BeginSubmission atomically appends the query message and marks the
// conversation as loading. Returns false when a submission is already in flight.
func (cs *ConversationState) BeginSubmission(text string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.loading {
		return false
	}
	cs.messages = append(cs.messages, models.NewMessage(models.Query, text))
	cs.query = text
	cs.loading = true
	cs.version++
	return true
}

// FinishSubmission clears the in-flight flag and the input buffer.
func (cs *ConversationState) FinishSubmission() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.loading = false
	cs.query = ""
	cs.version++
}

func (cs *ConversationState) AppendResponse(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.messages = append(cs.messages, models.NewMessage(models.Response, content))
	cs.version++
}

// SetPending stores resp as the pending approval, replacing any previous one.
func (cs *ConversationState) SetPending(resp *backend.EmailResponse) *models.PendingApproval {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.pending = &models.PendingApproval{
		ID:               uuid.New().String(),
		ToolName:         resp.ToolName,
		Args:             models.CopyArgs(resp.Args),
		RequiresApproval: resp.RequiresApproval,
		Result:           resp.Result,
		Error:            resp.Error,
	}
	cs.version++
	return cs.pending.Clone()
}

type resolutionStatus int

const (
	resolutionStarted resolutionStatus = iota
	resolutionInvalid
	resolutionInFlight
)

// BeginResolution hands out a copy of the pending record and marks a
// decision as in progress. id, when non-empty, must match the record.
func (cs *ConversationState) BeginResolution(id string) (*models.PendingApproval, resolutionStatus) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.pending.Valid() || (id != "" && cs.pending.ID != id) {
		return nil, resolutionInvalid
	}
	if cs.resolving {
		return nil, resolutionInFlight
	}
	cs.resolving = true
	cs.version++
	return cs.pending.Clone(), resolutionStarted
}

// FinishResolution clears the pending slot unconditionally.
func (cs *ConversationState) FinishResolution() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.pending = nil
	cs.resolving = false
	cs.version++
}
