package export

import (
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/render"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
)

// Factory picks a family's exporter for a requested format.
type Factory[T any] struct {
	layout      Layout
	transformer transform.Transformer[T]
	renderer    render.Renderer
	currency    string
	opts        Options
}

func NewFactory[T any](
	layout Layout,
	tr transform.Transformer[T],
	renderer render.Renderer,
	currency string,
	opts Options,
) *Factory[T] {
	return &Factory[T]{
		layout:      layout,
		transformer: tr,
		renderer:    renderer,
		currency:    currency,
		opts:        opts,
	}
}

// Make returns nil for formats without an exporter.
func (f *Factory[T]) Make(format domain.ExportFormat) Exporter[T] {
	switch format {
	case domain.FormatPDF:
		return NewPDFExporter(f.layout, f.transformer, f.renderer, f.currency, f.opts)
	case domain.FormatXLSX:
		return NewExcelExporter(f.layout, f.transformer, f.opts)
	}
	return nil
}
