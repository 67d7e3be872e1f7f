package export

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
)

const (
	// DefaultMaxPDFRows is the largest record set the PDF exporters render.
	DefaultMaxPDFRows = 1000

	DefaultBusinessName = "Gym Management System"

	TooManyRecordsMessage = "The report contains too many records. Please reduce the data set and try again."
)

// Exporter turns one family's records into a downloadable artifact.
type Exporter[T any] interface {
	Export(ctx context.Context, req domain.ReportRequest, records T) (*domain.Artifact, error)
}

// Layout names a report family's outputs.
type Layout struct {
	// Name is the file name stem, e.g. "collection-report".
	Name      string
	SheetName string
}

func CollectionLayout() Layout {
	return Layout{Name: "collection-report", SheetName: "Collection Report"}
}

func ExpenseLayout() Layout {
	return Layout{Name: "expense-report", SheetName: "Expense Report"}
}

func SummaryLayout() Layout {
	return Layout{Name: "summary-report", SheetName: "Summary Report"}
}

// Options shared by both exporter kinds of a family.
type Options struct {
	BusinessName string
	MaxPDFRows   int
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BusinessName == "" {
		o.BusinessName = DefaultBusinessName
	}
	if o.MaxPDFRows <= 0 {
		o.MaxPDFRows = DefaultMaxPDFRows
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Header runs the transformer's summary in the request's locale and stamps
// the request-specific fields on it.
func Header[T any](tr transform.Transformer[T], opts Options, req domain.ReportRequest, records T) domain.SummaryHeader {
	opts = opts.withDefaults()
	h := tr.Localize(req).Summarize(records)
	h.BusinessName = req.BusinessName
	if h.BusinessName == "" {
		h.BusinessName = opts.BusinessName
	}
	h.PeriodLabel = format.PeriodLabel(req.PeriodLabel, req.DateFrom, req.DateTo)
	h.GeneratedAt = opts.Now()
	return h
}

func filename(layout Layout, req domain.ReportRequest, f domain.ExportFormat) string {
	return fmt.Sprintf("%s-%s.%s", layout.Name, format.Date(req.DateFrom), f.Extension())
}

func tooManyRecords() *domain.Artifact {
	return &domain.Artifact{
		Format: domain.FormatPDF,
		Rejection: &domain.Rejection{
			Status:  http.StatusBadRequest,
			Message: TooManyRecordsMessage,
		},
	}
}
