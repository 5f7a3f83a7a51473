package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/RoriMail/internal/models"
)

const defaultBufferSize = 100

var (
	ErrUIChannelFull   = errors.New("UI to Core channel is full")
	ErrCoreChannelFull = errors.New("Core to UI channel is full")
	ErrClosed          = errors.New("event bus is closed")
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SubmitQueryEvent - UI asks core to submit a query
type SubmitQueryEvent struct {
	Query string
}

func (e SubmitQueryEvent) UIEvent() {}

// ApprovalDecisionEvent - UI sends the user's decision on a pending approval
type ApprovalDecisionEvent struct {
	ID       string // Must match the pending approval ID
	Approved bool
}

func (e ApprovalDecisionEvent) UIEvent() {}

// StateUpdateEvent - Core pushes a full conversation snapshot to UI
type StateUpdateEvent struct {
	Snapshot models.ConversationSnapshot
}

func (e StateUpdateEvent) CoreEvent() {}

// NotificationEvent - Core asks UI to show a toast
type NotificationEvent struct {
	Kind    models.NotificationKind
	Message string
}

func (e NotificationEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// EventBus handles communication between UI and Core
type EventBus struct {
	mu            sync.RWMutex
	closed        bool
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	errorCallback func(EventBusError)
}

func NewEventBus() *EventBus {
	return NewEventBusWithSize(defaultBufferSize)
}

func NewEventBusWithSize(size int) *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, size),
		coreToUI: make(chan CoreEvent, size),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

// reportError expects eb.mu to be held for reading.
func (eb *EventBus) reportError(operation string, err error) error {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
	return busError
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return eb.reportError("SendToCore", ErrClosed)
	}

	select {
	case eb.uiToCore <- event:
		return nil
	default:
		return eb.reportError("SendToCore", ErrUIChannelFull)
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return eb.reportError("SendToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	default:
		return eb.reportError("SendToUI", ErrCoreChannelFull)
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// Close closes both channels. Sends after Close return ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
