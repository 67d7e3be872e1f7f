package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
)

type Orientation string

const (
	Portrait  Orientation = "Portrait"
	Landscape Orientation = "Landscape"
)

// Page describes the paper the PDF backend lays the document out on.
type Page struct {
	Size        string
	Orientation Orientation
}

// LandscapeA4 is the page every report is printed on.
var LandscapeA4 = Page{Size: "A4", Orientation: Landscape}

// Renderer converts a self-contained HTML document to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html []byte, page Page) ([]byte, error)
}

//go:embed report.html.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string { return t.Format(format.TimestampLayout) },
}).Parse(reportTemplate))

// Document is everything the HTML template prints.
type Document struct {
	Header  domain.SummaryHeader
	Columns []string
	Rows    [][]string
}

// HTML renders the document into a standalone HTML page.
func HTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render report html: %w", err)
	}
	return buf.Bytes(), nil
}
