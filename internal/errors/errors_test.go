package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *E
		expected string
	}{
		{
			name:     "with cause",
			err:      Wrap(Transport, "post /process", stderrors.New("connection refused")),
			expected: "transport: post /process: connection refused",
		},
		{
			name:     "without cause",
			err:      New(Config, "no profiles defined"),
			expected: "config: no profiles defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindOfAndIs(t *testing.T) {
	inner := Wrap(Status, "approve returned 500", nil)
	outer := Wrap(ApprovalFailure, "approve", inner)
	wrapped := fmt.Errorf("handler: %w", outer)

	assert.Equal(t, ApprovalFailure, KindOf(wrapped))
	assert.True(t, Is(wrapped, ApprovalFailure))
	assert.True(t, Is(wrapped, Status))
	assert.False(t, Is(wrapped, Decode))
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.False(t, Is(nil, Status))
}
