package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRequest = errors.New("invalid report request")

// ExportFormat is the closed set of output formats an exporter can produce.
type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat normalises the boundary value ("pdf", "excel", "xlsx").
func ParseExportFormat(value string) (ExportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pdf":
		return FormatPDF, true
	case "excel", "xlsx":
		return FormatXLSX, true
	}
	return ExportFormat(value), false
}

func (f ExportFormat) Extension() string {
	return string(f)
}

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

type ReportFamily string

const (
	FamilyCollection ReportFamily = "collection"
	FamilyExpense    ReportFamily = "expense"
	FamilySummary    ReportFamily = "summary"
)

// ReportRequest carries everything a single export call needs.
// It is built once per request and never mutated afterwards.
type ReportRequest struct {
	AccountID    int64
	DateFrom     time.Time
	DateTo       time.Time
	Format       ExportFormat
	PeriodLabel  string
	BusinessName string
	// Currency and Location override the service defaults for one tenant.
	Currency string
	Location *time.Location
}

func (r ReportRequest) Validate() error {
	if r.AccountID <= 0 {
		return fmt.Errorf("%w: account id is required", ErrInvalidRequest)
	}
	if r.DateFrom.IsZero() || r.DateTo.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidRequest)
	}
	if r.DateFrom.After(r.DateTo) {
		return fmt.Errorf("%w: date_from (%s) must not be after date_to (%s)",
			ErrInvalidRequest,
			r.DateFrom.Format("2006-01-02"),
			r.DateTo.Format("2006-01-02"))
	}
	return nil
}

// ReportRow is one line of tabular output keyed by column name.
// Money cells hold decimal.Decimal, counts hold int, every other cell holds
// a display string.
type ReportRow map[string]interface{}

// Column describes one column of a family's data table.
type Column struct {
	Name  string
	Money bool
}

type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SummaryHeader is the block printed above the data table.
type SummaryHeader struct {
	BusinessName string       `json:"business_name"`
	Title        string       `json:"title"`
	PeriodLabel  string       `json:"period_label"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Rows         []SummaryRow `json:"rows"`
}

// Value returns the formatted value of the summary row with the given label.
func (h SummaryHeader) Value(label string) (string, bool) {
	for _, row := range h.Rows {
		if row.Label == label {
			return row.Value, true
		}
	}
	return "", false
}

// Rejection is returned in place of a rendered document when an exporter
// refuses the request.
type Rejection struct {
	Status  int
	Message string
}

type Artifact struct {
	Format      ExportFormat
	Filename    string
	ContentType string
	Content     []byte
	Rejection   *Rejection
}

func (a *Artifact) Rejected() bool {
	return a != nil && a.Rejection != nil
}
