package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rorical/RoriMail/internal/backend"
	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/models"
)

// Service connects the event bus to a Controller. UI events are handled
// on their own goroutine; the Controller serializes what must be serialized.
type Service struct {
	controller *Controller
	eventBus   *eventbus.EventBus
	logger     zerolog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once
}

func NewService(gateway backend.Gateway, eb *eventbus.EventBus, logger zerolog.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		eventBus: eb,
		logger:   logger.With().Str("component", "service").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.controller = NewController(gateway,
		WithNotifier(s),
		WithStateListener(s),
		WithLogger(logger),
	)
	return s
}

// Controller exposes the owned controller, mainly for tests.
func (s *Service) Controller() *Controller {
	return s.controller
}

// Start pushes the initial state and runs the event loop in a goroutine
func (s *Service) Start() {
	s.startOnce.Do(func() {
		s.StateChanged(s.controller.Snapshot())
		s.wg.Add(1)
		go s.eventLoop()
	})
}

// Stop cancels in-flight backend calls and waits for handlers to return.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

func (s *Service) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleUIEvent(event)
			}()
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitQueryEvent:
		outcome := s.controller.SubmitQuery(s.ctx, e.Query)
		s.logger.Debug().Str("outcome", outcome.String()).Msg("Query handled")
	case eventbus.ApprovalDecisionEvent:
		outcome := s.controller.ResolveApprovalFor(s.ctx, e.ID, e.Approved)
		if outcome == OutcomeIgnored {
			s.logger.Warn().Str("approval_id", e.ID).Msg("Decision for unknown or stale approval ignored")
			return
		}
		s.logger.Debug().Str("outcome", outcome.String()).Msg("Decision handled")
	default:
		s.logger.Warn().Msgf("Unhandled UI event %T", event)
	}
}

// Notify implements Notifier by forwarding to the UI.
func (s *Service) Notify(kind models.NotificationKind, message string) {
	if err := s.eventBus.SendToUI(eventbus.NotificationEvent{Kind: kind, Message: message}); err != nil {
		s.logger.Warn().Err(err).Msg("Dropped notification")
	}
}

// StateChanged implements StateListener by forwarding to the UI.
func (s *Service) StateChanged(snapshot models.ConversationSnapshot) {
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: snapshot}); err != nil {
		s.logger.Warn().Err(err).Msg("Error sending state to UI")
	}
}
