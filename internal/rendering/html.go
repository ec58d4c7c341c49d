package rendering

import (
	"bytes"
	"html/template"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering/templates"
	"github.com/pkg/errors"
)

type HTMLRenderer struct {
	formatter *Formatter
	tmpl      *template.Template
}

type htmlLine struct {
	Label string
	Value string
}

type htmlView struct {
	Title       string
	Period      string
	GeneratedAt string
	Summary     []htmlLine
	Rows        [][]htmlLine
}

func NewHTMLRenderer(formatter *Formatter) (*HTMLRenderer, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templates.FS, "report.html")
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar template HTML")
	}

	return &HTMLRenderer{formatter: formatter, tmpl: tmpl}, nil
}

// Render gera o corpo HTML com estilos inline, usado no email e no download
func (r *HTMLRenderer) Render(report *domain.Report) (string, error) {
	view := htmlView{
		Title:       report.Title,
		Period:      report.Period.String(),
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC1123),
		Summary:     make([]htmlLine, 0, len(report.Summary)),
	}

	for _, metric := range report.Summary {
		view.Summary = append(view.Summary, htmlLine{
			Label: Humanize(metric.Key),
			Value: r.formatter.FormatSummaryValue(metric.Value),
		})
	}

	for _, record := range report.Records() {
		lines := make([]htmlLine, 0, len(record))
		for _, field := range record {
			lines = append(lines, htmlLine{
				Label: Humanize(field.Name),
				Value: r.formatter.FormatFieldValue(field.Value),
			})
		}
		view.Rows = append(view.Rows, lines)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "report.html", view); err != nil {
		return "", errors.Wrap(err, "erro ao renderizar HTML")
	}

	return buf.String(), nil
}

// RenderText gera a alternativa em texto simples do email
func (r *HTMLRenderer) RenderText(report *domain.Report) string {
	var buf bytes.Buffer
	buf.WriteString(report.Title + "\n")
	buf.WriteString("Period: " + report.Period.String() + "\n\n")
	for _, metric := range report.Summary {
		buf.WriteString(Humanize(metric.Key) + ": " + r.formatter.FormatSummaryValue(metric.Value) + "\n")
	}
	buf.WriteString("\nThe full report is attached as PDF.\n")
	return buf.String()
}
