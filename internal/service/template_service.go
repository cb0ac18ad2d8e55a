package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer produces notification body content from a named template
// and a parameter map. Implementations may be unavailable; the dispatcher
// degrades to a minimal body instead of failing the send.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
}

// HTMLTemplateRenderer renders the embedded e-mail templates.
type HTMLTemplateRenderer struct {
	templates *template.Template
}

func NewHTMLTemplateRenderer() (*HTMLTemplateRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLTemplateRenderer{templates: tmpl}, nil
}

func (r *HTMLTemplateRenderer) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// fallbackBody builds a minimally-styled body when no renderer is available
// or rendering fails. It must never fail itself.
func fallbackBody(title string, data map[string]any) string {
	var buf bytes.Buffer
	buf.WriteString("<html><body>")
	buf.WriteString("<h2>" + template.HTMLEscapeString(title) + "</h2>")
	for _, key := range []string{"PatientName", "DoctorName", "StartsAt", "EndsAt", "OldStartsAt", "Reason", "Notes"} {
		value, ok := data[key].(string)
		if !ok || value == "" {
			continue
		}
		buf.WriteString(fmt.Sprintf("<p>%s: %s</p>",
			template.HTMLEscapeString(fieldLabels[key]),
			template.HTMLEscapeString(value)))
	}
	buf.WriteString("</body></html>")
	return buf.String()
}

var fieldLabels = map[string]string{
	"PatientName": "Paciente",
	"DoctorName":  "Médico",
	"StartsAt":    "Inicio",
	"EndsAt":      "Fin",
	"OldStartsAt": "Horario anterior",
	"Reason":      "Motivo",
	"Notes":       "Notas",
}
