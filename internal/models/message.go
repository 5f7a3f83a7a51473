package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageType int

const (
	Query MessageType = iota
	Response
)

func (t MessageType) String() string {
	switch t {
	case Query:
		return "query"
	case Response:
		return "response"
	default:
		return "unknown"
	}
}

// Message is one entry of the conversation log. Never mutated after creation.
type Message struct {
	ID        string
	Type      MessageType
	Content   string
	CreatedAt time.Time
}

func NewMessage(msgType MessageType, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
