package app

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Rorical/RoriMail/internal/backend"
	"github.com/Rorical/RoriMail/internal/config"
	"github.com/Rorical/RoriMail/internal/core"
	"github.com/Rorical/RoriMail/internal/dispatcher"
	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/logging"
	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/styles"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     zerolog.Logger
	logCloser  io.Closer
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication(cfg *config.Config) (*Application, error) {
	logger, closer, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn().Err(e.Err).Str("operation", e.Operation).Msg("Event bus error")
	})

	disp := dispatcher.NewEventDispatcher(eb)

	gateway := backend.New(cfg.GetBaseURL(), backend.WithLogger(logger))
	service := core.NewService(gateway, eb, logger)

	logger.Info().
		Str("profile", cfg.ActiveProfile).
		Str("base_url", gateway.BaseURL()).
		Msg("Application initialized")

	return &Application{
		config:     cfg,
		logger:     logger,
		logCloser:  closer,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model: &AppModel{
			appModel:   createInitialAppModel(cfg, gateway.BaseURL()),
			dispatcher: disp,
		},
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		app.logger.Error().Err(err).Msg("UI exited with error")
	}
	return err
}

// Stop cancels in-flight requests, then tears down the bus and the log file.
func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()

	app.logger.Info().Msg("Application stopped")
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}

func createInitialAppModel(cfg *config.Config, baseURL string) models.AppModel {
	// Conversation content comes from core as single source of truth
	m := models.NewAppModel(cfg.ActiveProfile, baseURL)
	m.Spinner.Style = styles.SpinnerStyle()
	return m
}
