package components

import (
	"github.com/Rorical/RoriMail/ui/styles"
)

// RenderInput frames the textarea view. While a request is in flight the
// spinner replaces the editable area.
func RenderInput(inputView string, loading bool, spinnerView string, width int) string {
	inputStyle := styles.InputStyle(width)
	if loading {
		return inputStyle.Render(spinnerView + " Processing...")
	}
	return inputStyle.Render(inputView)
}

func RenderHeader(profile, baseURL string, width int) string {
	return styles.HeaderStyle(width).Render("RoriMail · " + profile + " · " + baseURL)
}
