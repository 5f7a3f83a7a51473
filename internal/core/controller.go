package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Rorical/RoriMail/internal/backend"
	apperrors "github.com/Rorical/RoriMail/internal/errors"
	"github.com/Rorical/RoriMail/internal/models"
)

// Fixed user-facing texts.
const (
	FallbackProcessResult  = "Process completed successfully"
	FallbackApprovalResult = "Action completed successfully"
	CancelledMessage       = "Action cancelled"

	NoticeApprovalNeeded  = "Action requires your approval"
	NoticeProcessDone     = "Process completed successfully"
	NoticeApprovalDone    = "Action completed successfully"
	NoticeCancelled       = "Action cancelled"
	NoticeProcessFailed   = "An error occurred while processing your request"
	NoticeApprovalFailed  = "An error occurred while processing approval"
	NoticeAlreadyInFlight = "A request is already in progress"
)

// Notifier receives fire-and-forget user feedback.
type Notifier interface {
	Notify(kind models.NotificationKind, message string)
}

// StateListener is called with a fresh snapshot after every state change.
type StateListener interface {
	StateChanged(snapshot models.ConversationSnapshot)
}

type NotifierFunc func(kind models.NotificationKind, message string)

func (f NotifierFunc) Notify(kind models.NotificationKind, message string) { f(kind, message) }

type noopNotifier struct{}

func (noopNotifier) Notify(models.NotificationKind, string) {}

type noopListener struct{}

func (noopListener) StateChanged(models.ConversationSnapshot) {}

// Controller runs the request/approval protocol for one conversation.
type Controller struct {
	gateway  backend.Gateway
	state    *ConversationState
	notifier Notifier
	listener StateListener
	logger   zerolog.Logger
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithStateListener(l StateListener) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l.With().Str("component", "controller").Logger()
	}
}

func NewController(gateway backend.Gateway, opts ...ControllerOption) *Controller {
	c := &Controller{
		gateway:  gateway,
		state:    NewConversationState(),
		notifier: noopNotifier{},
		listener: noopListener{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Snapshot() models.ConversationSnapshot {
	return c.state.Snapshot()
}

func (c *Controller) publish() {
	c.listener.StateChanged(c.state.Snapshot())
}

// SubmitQuery sends text to the assistant. Blank text is ignored and a
// second submission while one is in flight is rejected.
func (c *Controller) SubmitQuery(ctx context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return OutcomeIgnored
	}

	if !c.state.BeginSubmission(text) {
		c.logger.Debug().Msg("Submission rejected, another one is in flight")
		c.notifier.Notify(models.NotifyInfo, NoticeAlreadyInFlight)
		return OutcomeBusy
	}
	c.publish()

	defer func() {
		c.state.FinishSubmission()
		c.publish()
	}()

	resp, err := c.gateway.Process(ctx, backend.QueryRequest{Query: text})
	if err != nil {
		c.logFailure(apperrors.Wrap(apperrors.SubmissionFailure, "process", err))
		c.notifier.Notify(models.NotifyError, NoticeProcessFailed)
		return OutcomeFailed
	}

	if resp.RequiresApproval {
		pending := c.state.SetPending(resp)
		c.logger.Info().
			Str("approval_id", pending.ID).
			Str("tool", pending.ToolName).
			Msg("Action requires approval")
		c.notifier.Notify(models.NotifySuccess, NoticeApprovalNeeded)
		return OutcomeAwaitingApproval
	}

	c.state.AppendResponse(orDefault(resp.Result, FallbackProcessResult))
	c.notifier.Notify(models.NotifySuccess, NoticeProcessDone)
	return OutcomeCompleted
}

// ResolveApproval acts on the user's decision for the current pending record.
func (c *Controller) ResolveApproval(ctx context.Context, approved bool) Outcome {
	return c.ResolveApprovalFor(ctx, "", approved)
}

// ResolveApprovalFor is ResolveApproval restricted to the pending record with
// the given ID. An empty id matches any record.
func (c *Controller) ResolveApprovalFor(ctx context.Context, id string, approved bool) Outcome {
	pending, status := c.state.BeginResolution(id)
	switch status {
	case resolutionInvalid:
		return OutcomeIgnored
	case resolutionInFlight:
		return OutcomeBusy
	}
	c.publish()

	defer func() {
		c.state.FinishResolution()
		c.publish()
	}()

	log := c.logger.With().Str("approval_id", pending.ID).Str("tool", pending.ToolName).Logger()

	if !approved {
		log.Info().Msg("Action rejected by user")
		c.state.AppendResponse(CancelledMessage)
		c.notifier.Notify(models.NotifyInfo, NoticeCancelled)
		return OutcomeCancelled
	}

	resp, err := c.gateway.Approve(ctx, backend.ApprovalDecisionRequest{
		ToolName: pending.ToolName,
		Args:     pending.Args,
	})
	if err != nil {
		c.logFailure(apperrors.Wrap(apperrors.ApprovalFailure, "approve "+pending.ToolName, err))
		c.notifier.Notify(models.NotifyError, NoticeApprovalFailed)
		return OutcomeFailed
	}

	log.Info().Msg("Action approved and executed")
	c.state.AppendResponse(orDefault(resp.Result, FallbackApprovalResult))
	c.notifier.Notify(models.NotifySuccess, NoticeApprovalDone)
	return OutcomeCompleted
}

func (c *Controller) logFailure(err *apperrors.E) {
	c.logger.Error().
		Err(err).
		Str("kind", string(err.Kind)).
		Str("error_class", backend.Classify(err.Err)).
		Msg("Backend call failed")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
