package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type pointConfirmationEmailData struct {
	baseEmailData
	Name  string
	City  string
	UF    string
	Items []string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderPointConfirmation(data PointConfirmation) (string, string, error) {
	subject := fmt.Sprintf(subjectPointConfirmationFmt, data.Name)
	content, err := renderEmailTemplate("point_confirmation.html", pointConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:      "Ponto de coleta cadastrado",
			Heading:    "Ponto de coleta cadastrado",
			Subheading: "Obrigado por ajudar pessoas a encontrarem pontos de coleta de forma eficiente.",
			CTALabel:   "Ver ponto de coleta",
			CTAURL:     data.PointURL,
		},
		Name:  data.Name,
		City:  data.City,
		UF:    data.UF,
		Items: data.Items,
	})
	if err != nil {
		return "", "", err
	}
	return subject, content, nil
}
