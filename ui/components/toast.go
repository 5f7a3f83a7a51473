package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/styles"
)

// RenderToasts stacks visible notifications, newest last, flush right.
func RenderToasts(toasts []models.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(toasts))
	for _, t := range toasts {
		blocks = append(blocks, styles.ToastStyle(t.Kind).Render(t.Message))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, blocks...)
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(stack)), lipgloss.Right, stack)
}
