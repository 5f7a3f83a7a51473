package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriMail/internal/eventbus"
	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	defer ed.Stop()

	event := eventbus.NotificationEvent{Kind: models.NotifyError, Message: "An error occurred while processing your request"}
	require.NoError(t, eb.SendToUI(event))

	msg := ed.ListenForCoreEvents()()
	assert.Equal(t, update.CoreEventMsg{Event: event}, msg)
}

func TestListenForCoreEvents_StopAndClose(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb)

	ed.Stop()
	assert.Nil(t, ed.ListenForCoreEvents()())

	eb.Close()
	assert.Nil(t, NewEventDispatcher(eb).ListenForCoreEvents()())
}
