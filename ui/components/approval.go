package components

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriMail/internal/models"
	"github.com/Rorical/RoriMail/ui/styles"
)

// FormatArgs renders approval arguments as indented JSON.
func FormatArgs(args map[string]any) string {
	out, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(out)
}

// RenderApprovalModal centers the decision dialog for p on a width x height canvas.
// While a decision is being resolved the key hints give way to a wait line
// matching that decision.
func RenderApprovalModal(p *models.PendingApproval, resolving, approving bool, width, height int) string {
	modalWidth := min(max(width*3/5, 40), max(width-4, 20))

	prompt := styles.ApproveHintStyle().Render("[y/a/Enter] Approve") + "    " +
		styles.RejectHintStyle().Render("[n/r/Esc] Reject")
	switch {
	case resolving && approving:
		prompt = styles.HelpStyle().Render("Executing action...")
	case resolving:
		prompt = styles.HelpStyle().Render("Cancelling...")
	}

	body := strings.Join([]string{
		styles.ModalTitleStyle().Render("Approval Required"),
		"",
		"The assistant wants to run " + lipgloss.NewStyle().Bold(true).Render(p.ToolName) + " with:",
		"",
		styles.ArgsStyle().Render(FormatArgs(p.Args)),
		"",
		prompt,
	}, "\n")

	return lipgloss.Place(
		max(width, modalWidth),
		max(height, 1),
		lipgloss.Center,
		lipgloss.Center,
		styles.ModalStyle(modalWidth).Render(body),
	)
}
