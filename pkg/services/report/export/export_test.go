package export

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/render"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeRenderer struct {
	calls int
	html  []byte
	page  render.Page
	err   error
}

func (r *fakeRenderer) Render(_ context.Context, html []byte, page render.Page) ([]byte, error) {
	r.calls++
	r.html = html
	r.page = page
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

var generatedAt = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

func settings() transform.Settings {
	return transform.Settings{
		Currency: "PHP",
		Location: time.UTC,
		Now:      func() time.Time { return generatedAt },
	}
}

func options(maxRows int) Options {
	return Options{
		BusinessName: "Iron Paradise Gym",
		MaxPDFRows:   maxRows,
		Now:          func() time.Time { return generatedAt },
	}
}

func january(format domain.ExportFormat) domain.ReportRequest {
	return domain.ReportRequest{
		AccountID: 7,
		DateFrom:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Format:    format,
	}
}

func bills(amounts ...string) []domain.Bill {
	out := make([]domain.Bill, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.Bill{
			ID:         int64(i + 1),
			Date:       time.Date(2024, 1, 5+i%20, 0, 0, 0, 0, time.UTC),
			MemberName: "Member",
			BillType:   "Membership",
			PaidAmount: decimal.RequireFromString(a),
			Status:     "paid",
		})
	}
	return out
}

func TestPDFExporter_CollectionScenario(t *testing.T) {
	renderer := &fakeRenderer{}
	exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), renderer, "PHP", options(10))

	artifact, err := exporter.Export(context.Background(), january(domain.FormatPDF), bills("100.00", "250.50", "49.50"))

	require.NoError(t, err)
	require.False(t, artifact.Rejected())
	assert.Equal(t, "collection-report-2024-01-01.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 fake"), artifact.Content)
	assert.Equal(t, render.LandscapeA4, renderer.page)

	html := string(renderer.html)
	assert.Contains(t, html, "Period: 2024-01-01 – 2024-01-31")
	assert.Contains(t, html, "<td>Total Collected</td><td>PHP 400.00</td>")
	assert.Contains(t, html, "<td>Transactions</td><td>3</td>")
	assert.Contains(t, html, "<td>Average Transaction</td><td>PHP 133.33</td>")
	assert.Contains(t, html, "Iron Paradise Gym")
	assert.Contains(t, html, "Generated: 2024-02-01 09:30")
	assert.Contains(t, html, "<th>Date</th><th>Member</th><th>Type</th><th>Amount</th><th>Status</th>")
	assert.Contains(t, html, "<td>PHP 250.50</td>")
}

func TestPDFExporter_ExplicitPeriodLabel(t *testing.T) {
	renderer := &fakeRenderer{}
	exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), renderer, "PHP", options(10))
	req := january(domain.FormatPDF)
	req.PeriodLabel = "January 2024"
	req.BusinessName = "Tenant Gym"

	_, err := exporter.Export(context.Background(), req, bills("1"))

	require.NoError(t, err)
	assert.Contains(t, string(renderer.html), "Period: January 2024")
	assert.Contains(t, string(renderer.html), "Tenant Gym")
}

func TestPDFExporter_TenantCurrency(t *testing.T) {
	renderer := &fakeRenderer{}
	exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), renderer, "PHP", options(10))
	req := january(domain.FormatPDF)
	req.Currency = "USD"

	_, err := exporter.Export(context.Background(), req, bills("1250.505", "49.50"))

	require.NoError(t, err)
	html := string(renderer.html)
	assert.Contains(t, html, "<td>Total Collected</td><td>USD 1,300.01</td>")
	assert.Contains(t, html, "<td>USD 1,250.51</td>")
	assert.NotContains(t, html, "PHP")
}

func TestPDFExporter_RowLimit(t *testing.T) {
	amounts := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "10"
		}
		return out
	}

	t.Run("at limit renders", func(t *testing.T) {
		renderer := &fakeRenderer{}
		exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), renderer, "PHP", options(5))

		artifact, err := exporter.Export(context.Background(), january(domain.FormatPDF), bills(amounts(5)...))

		require.NoError(t, err)
		assert.False(t, artifact.Rejected())
		assert.Equal(t, 1, renderer.calls)
	})

	t.Run("over limit is rejected without rendering", func(t *testing.T) {
		renderer := &fakeRenderer{}
		exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), renderer, "PHP", options(5))

		artifact, err := exporter.Export(context.Background(), january(domain.FormatPDF), bills(amounts(6)...))

		require.NoError(t, err)
		require.True(t, artifact.Rejected())
		assert.Equal(t, http.StatusBadRequest, artifact.Rejection.Status)
		assert.Equal(t, TooManyRecordsMessage, artifact.Rejection.Message)
		assert.Empty(t, artifact.Content)
		assert.Equal(t, 0, renderer.calls)
	})
}

func TestPDFExporter_RendererError(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("wkhtmltopdf missing")}
	exporter := NewPDFExporter(ExpenseLayout(), transform.NewExpense(settings()), renderer, "PHP", options(10))

	artifact, err := exporter.Export(context.Background(), january(domain.FormatPDF), nil)

	assert.Nil(t, artifact)
	assert.ErrorContains(t, err, "wkhtmltopdf missing")
}

func TestPDFExporter_DefaultLimit(t *testing.T) {
	exporter := NewPDFExporter(CollectionLayout(), transform.NewCollection(settings()), &fakeRenderer{}, "PHP", Options{})

	assert.Equal(t, DefaultMaxPDFRows, exporter.opts.MaxPDFRows)
	assert.Equal(t, DefaultBusinessName, exporter.opts.BusinessName)
}

func openWorkbook(t *testing.T, artifact *domain.Artifact) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(artifact.Content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func summaryValue(t *testing.T, f *excelize.File, label string) string {
	t.Helper()
	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	for _, r := range rows {
		if len(r) >= 2 && r[0] == label {
			return r[1]
		}
	}
	t.Fatalf("summary row %q not found", label)
	return ""
}

func TestExcelExporter_SummaryScenario(t *testing.T) {
	exporter := NewExcelExporter(SummaryLayout(), transform.NewSummary(settings()), options(10))
	ledger := domain.Ledger{
		Bills: bills("700.00", "300.00"),
		Expenses: []domain.Expense{
			{ID: 1, Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), CategoryID: 1, CategoryName: "Rent", Amount: decimal.RequireFromString("250.00")},
			{ID: 2, Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), CategoryID: 2, CategoryName: "Utilities", Amount: decimal.RequireFromString("100.10")},
			{ID: 3, Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), CategoryID: 2, CategoryName: "Utilities", Amount: decimal.RequireFromString("49.90")},
		},
	}

	artifact, err := exporter.Export(context.Background(), january(domain.FormatXLSX), ledger)

	require.NoError(t, err)
	assert.Equal(t, "summary-report-2024-01-01.xlsx", artifact.Filename)
	assert.Equal(t, domain.FormatXLSX.ContentType(), artifact.ContentType)

	f := openWorkbook(t, artifact)
	assert.Equal(t, []string{"Summary", "Summary Report"}, f.GetSheetList())

	assert.Equal(t, "PHP 600.00", summaryValue(t, f, "Net Profit"))
	assert.Equal(t, "60.0%", summaryValue(t, f, "Profit Margin"))
	assert.Equal(t, "PHP 1,000.00", summaryValue(t, f, "Total Revenue"))

	title, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "SUMMARY REPORT", title)
	period, err := f.GetCellValue("Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Period: 2024-01-01 – 2024-01-31", period)
	blank, err := f.GetCellValue("Summary", "A5")
	require.NoError(t, err)
	assert.Empty(t, blank)

	rows, err := f.GetRows("Summary Report", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Category", "Transactions", "Amount"}, rows[0])

	total := decimal.Zero
	for _, r := range rows[1:] {
		total = total.Add(decimal.RequireFromString(r[2]))
	}
	assert.True(t, decimal.RequireFromString("400.00").Equal(total), "category rows sum to %s", total)
}

func TestExcelExporter_NoRowLimit(t *testing.T) {
	exporter := NewExcelExporter(CollectionLayout(), transform.NewCollection(settings()), options(1))

	artifact, err := exporter.Export(context.Background(), january(domain.FormatXLSX), bills("1", "2", "3"))

	require.NoError(t, err)
	assert.False(t, artifact.Rejected())
	f := openWorkbook(t, artifact)
	rows, err := f.GetRows("Collection Report")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Member", "Type", "Amount", "Status"}, rows[0])
}

func TestFactory_Make(t *testing.T) {
	factory := NewFactory(CollectionLayout(), transform.NewCollection(settings()), &fakeRenderer{}, "PHP", options(10))

	pdf := factory.Make(domain.FormatPDF)
	xlsx := factory.Make(domain.FormatXLSX)

	require.NotNil(t, pdf)
	require.NotNil(t, xlsx)
	assert.IsType(t, &PDFExporter[[]domain.Bill]{}, pdf)
	assert.IsType(t, &ExcelExporter[[]domain.Bill]{}, xlsx)
	assert.Nil(t, factory.Make(domain.ExportFormat("csv")))
	assert.Nil(t, factory.Make(domain.ExportFormat("")))
}
