// Package view renders the widget state as an HTML page or a terminal card.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/weatherwidget/backend/internal/domain"
)

//go:embed templates/widget.html
var templateFS embed.FS

var widgetTemplate = template.Must(
	template.New("widget.html").
		Funcs(template.FuncMap{"iconURL": domain.IconURL}).
		ParseFS(templateFS, "templates/widget.html"),
)

type page struct {
	State        domain.SessionState
	IconTemplate string
}

// RenderHTML renders the full widget page for state.
func RenderHTML(state domain.SessionState, iconTemplate string) ([]byte, error) {
	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, page{State: state, IconTemplate: iconTemplate}); err != nil {
		return nil, fmt.Errorf("view: failed to render widget: %w", err)
	}
	return buf.Bytes(), nil
}
