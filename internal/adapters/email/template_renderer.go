package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"efgportal/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// funcs are available to every template.
var funcs = map[string]any{
	"date": func(t time.Time) string { return t.Format("Monday, 2 January 2006") },
	"title": func(s any) string {
		v := fmt.Sprint(s)
		if v == "" {
			return v
		}
		return strings.ToUpper(v[:1]) + v[1:]
	},
}

// Each email <name> is three files: <name>_subject.txt, <name>.txt and <name>.html.
var (
	textTemplates = texttemplate.Must(texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
)

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates, parsed once at init.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{text: textTemplates, html: htmlTemplates}
}

// Render executes the named email with data. The subject is trimmed to a single line.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
