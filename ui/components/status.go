package components

import (
	"github.com/Rorical/RoriMail/ui/styles"
)

const (
	chatHints  = "Enter send · Alt+Enter newline · PgUp/PgDn scroll · Ctrl+C quit"
	modalHints = "y/a/Enter approve · n/r/Esc reject · Ctrl+C quit"
)

func RenderStatus(status string, modal bool, width int) string {
	hints := chatHints
	if modal {
		hints = modalHints
	}
	return styles.StatusStyle(width).Render(status + "  " + styles.HelpStyle().Render(hints))
}
