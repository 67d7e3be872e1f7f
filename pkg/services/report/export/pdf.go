package export

import (
	"context"
	"fmt"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/report/render"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type PDFExporter[T any] struct {
	layout      Layout
	transformer transform.Transformer[T]
	renderer    render.Renderer
	currency    string
	opts        Options
}

func NewPDFExporter[T any](
	layout Layout,
	tr transform.Transformer[T],
	renderer render.Renderer,
	currency string,
	opts Options,
) *PDFExporter[T] {
	return &PDFExporter[T]{
		layout:      layout,
		transformer: tr,
		renderer:    renderer,
		currency:    currency,
		opts:        opts.withDefaults(),
	}
}

func (e *PDFExporter[T]) Export(ctx context.Context, req domain.ReportRequest, records T) (*domain.Artifact, error) {
	logger := zerolog.Ctx(ctx)

	if count := e.transformer.Count(records); count > e.opts.MaxPDFRows {
		logger.Warn().
			Str("report", e.layout.Name).
			Int("records", count).
			Int("limit", e.opts.MaxPDFRows).
			Msg("refusing pdf export over row limit")
		return tooManyRecords(), nil
	}

	doc := render.Document{
		Header:  Header(e.transformer, e.opts, req, records),
		Columns: columnNames(e.transformer.Columns()),
		Rows:    e.cells(e.transformer.Rows(records), e.currencyFor(req)),
	}

	html, err := render.HTML(doc)
	if err != nil {
		return nil, err
	}

	content, err := e.renderer.Render(ctx, html, render.LandscapeA4)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s pdf: %w", e.layout.Name, err)
	}

	return &domain.Artifact{
		Format:      domain.FormatPDF,
		Filename:    filename(e.layout, req, domain.FormatPDF),
		ContentType: domain.FormatPDF.ContentType(),
		Content:     content,
	}, nil
}

func (e *PDFExporter[T]) currencyFor(req domain.ReportRequest) string {
	if req.Currency != "" {
		return req.Currency
	}
	return e.currency
}

// cells turns rows into display strings in column order.
func (e *PDFExporter[T]) cells(rows []domain.ReportRow, currency string) [][]string {
	columns := e.transformer.Columns()
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, col := range columns {
			line = append(line, cell(col, row[col.Name], currency))
		}
		out = append(out, line)
	}
	return out
}

func cell(col domain.Column, value interface{}, currency string) string {
	if v, ok := value.(decimal.Decimal); ok && col.Money {
		return format.Money(v, currency)
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func columnNames(columns []domain.Column) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}
