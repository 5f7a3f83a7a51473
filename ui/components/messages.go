package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/styles"
)

const emptyConversation = "No messages yet. Ask the assistant to draft or send an email."

// RenderMessages lays out the conversation log: queries on the left,
// responses on the right.
func RenderMessages(messages []models.Message, width int) string {
	if len(messages) == 0 {
		return styles.SystemStyle().Render(emptyConversation)
	}

	queryStyle := styles.QueryStyle()
	responseStyle := styles.ResponseStyle()
	bubbleWidth := max(width*3/4, 20)

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Type {
		case models.Query:
			b.WriteString(queryStyle.Width(fit(msg.Content, bubbleWidth)).Render(msg.Content))
		case models.Response:
			block := responseStyle.Width(fit(msg.Content, bubbleWidth)).Render(msg.Content)
			b.WriteString(lipgloss.PlaceHorizontal(max(width, lipgloss.Width(block)), lipgloss.Right, block))
		}
	}
	return b.String()
}

// fit returns the style width for content: its natural width plus padding,
// capped so long messages wrap.
func fit(content string, limit int) int {
	return min(lipgloss.Width(content)+2, limit)
}
