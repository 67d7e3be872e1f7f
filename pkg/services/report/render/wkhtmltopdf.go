package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

type wkRenderer struct {
	binPath string
}

// NewWkhtmltopdf returns a Renderer backed by the wkhtmltopdf binary. An
// empty binPath falls back to the WKHTMLTOPDF_PATH env var and then $PATH.
func NewWkhtmltopdf(binPath string) Renderer {
	return &wkRenderer{binPath: binPath}
}

func (r *wkRenderer) Render(ctx context.Context, html []byte, page Page) ([]byte, error) {
	if r.binPath != "" {
		wkhtmltopdf.SetPath(r.binPath)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.PageSize.Set(page.Size)
	pdfg.Orientation.Set(string(page.Orientation))
	pdfg.Dpi.Set(300)

	p := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	p.Encoding.Set("utf-8")
	pdfg.AddPage(p)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to convert html to pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}
