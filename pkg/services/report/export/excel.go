package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"

	// numFmtMoney is the built-in "#,##0.00" number format.
	numFmtMoney = 4
)

type ExcelExporter[T any] struct {
	layout      Layout
	transformer transform.Transformer[T]
	opts        Options
}

func NewExcelExporter[T any](layout Layout, tr transform.Transformer[T], opts Options) *ExcelExporter[T] {
	return &ExcelExporter[T]{
		layout:      layout,
		transformer: tr,
		opts:        opts.withDefaults(),
	}
}

// Export builds the two-sheet workbook. Unlike the PDF exporter there is no
// row limit here.
func (e *ExcelExporter[T]) Export(ctx context.Context, req domain.ReportRequest, records T) (*domain.Artifact, error) {
	logger := zerolog.Ctx(ctx)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	h := Header(e.transformer, e.opts, req, records)
	if err := writeSummarySheet(f, styles, h); err != nil {
		return nil, err
	}
	if err := e.writeDataSheet(f, styles, e.transformer.Rows(records)); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write %s workbook: %w", e.layout.Name, err)
	}

	return &domain.Artifact{
		Format:      domain.FormatXLSX,
		Filename:    filename(e.layout, req, domain.FormatXLSX),
		ContentType: domain.FormatXLSX.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

type sheetStyles struct {
	bold  int
	title int
	money int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create bold style: %w", err)
	}
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, fmt.Errorf("failed to create title style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}
	return s, nil
}

func writeSummarySheet(f *excelize.File, styles sheetStyles, h domain.SummaryHeader) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	lines := [][]interface{}{
		{h.BusinessName},
		{strings.ToUpper(h.Title)},
		{"Period: " + h.PeriodLabel},
		{"Generated: " + h.GeneratedAt.Format(format.TimestampLayout)},
		{},
		{"Summary", "Value"},
	}
	for _, r := range h.Rows {
		lines = append(lines, []interface{}{r.Label, r.Value})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		if err := setRow(f, summarySheet, i+1, line); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(summarySheet, "A1", "A1", styles.title); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A2", "A2", styles.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A6", "B6", styles.bold); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "B", 28)
}

func (e *ExcelExporter[T]) writeDataSheet(f *excelize.File, styles sheetStyles, rows []domain.ReportRow) error {
	sheet := e.layout.SheetName
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	columns := e.transformer.Columns()
	head := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		head = append(head, c.Name)
	}
	if err := setRow(f, sheet, 1, head); err != nil {
		return err
	}

	for i, row := range rows {
		line := make([]interface{}, 0, len(columns))
		for _, c := range columns {
			line = append(line, sheetValue(row[c.Name]))
		}
		if err := setRow(f, sheet, i+2, line); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", styles.bold); err != nil {
		return err
	}
	for i, c := range columns {
		if !c.Money || len(rows) == 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, len(rows)+1), styles.money); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", last, 20)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// sheetValue keeps money numeric so the cell style formats it.
func sheetValue(value interface{}) interface{} {
	if v, ok := value.(decimal.Decimal); ok {
		return v.Round(2).InexactFloat64()
	}
	return value
}
