package transform

import (
	"strconv"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/shopspring/decimal"
)

const (
	ColDate        = "Date"
	ColMember      = "Member"
	ColType        = "Type"
	ColAmount      = "Amount"
	ColStatus      = "Status"
	ColCategory    = "Category"
	ColDescription = "Description"
	ColCount       = "Transactions"
)

type collection struct {
	settings Settings
}

// NewCollection returns the transformer for bill collections.
func NewCollection(settings Settings) Transformer[[]domain.Bill] {
	return &collection{settings: settings}
}

func (c *collection) Columns() []domain.Column {
	return []domain.Column{
		{Name: ColDate},
		{Name: ColMember},
		{Name: ColType},
		{Name: ColAmount, Money: true},
		{Name: ColStatus},
	}
}

func (c *collection) Rows(bills []domain.Bill) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, domain.ReportRow{
			ColDate:   format.Date(b.Date),
			ColMember: b.MemberName,
			ColType:   b.BillType,
			ColAmount: b.PaidAmount,
			ColStatus: StatusLabel(b.Status),
		})
	}
	return rows
}

func (c *collection) Summarize(bills []domain.Bill) domain.SummaryHeader {
	today := c.settings.today()

	total := decimal.Zero
	todayTotal := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.PaidAmount)
		if format.Date(b.Date) == today {
			todayTotal = todayTotal.Add(b.PaidAmount)
		}
	}

	cur := c.settings.Currency
	return domain.SummaryHeader{
		Title: "Collection Report",
		Rows: []domain.SummaryRow{
			{Label: "Total Collected", Value: format.Money(total, cur)},
			{Label: "Transactions", Value: strconv.Itoa(len(bills))},
			{Label: "Average Transaction", Value: format.Money(average(total, len(bills)), cur)},
			{Label: "Today's Collection", Value: format.Money(todayTotal, cur)},
		},
	}
}

func (c *collection) Count(bills []domain.Bill) int {
	return len(bills)
}

func (c *collection) Localize(req domain.ReportRequest) Transformer[[]domain.Bill] {
	return &collection{settings: c.settings.localize(req)}
}
