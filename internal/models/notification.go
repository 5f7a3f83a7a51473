package models

import "time"

type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
	NotifyInfo
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	case NotifyInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Toast is a notification as displayed by the terminal UI.
type Toast struct {
	Kind      NotificationKind
	Message   string
	ExpiresAt time.Time
}
