package transform

import (
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type summary struct {
	settings Settings
}

// NewSummary returns the revenue-versus-expense roll-up transformer.
func NewSummary(settings Settings) Transformer[domain.Ledger] {
	return &summary{settings: settings}
}

func (s *summary) Columns() []domain.Column {
	return []domain.Column{
		{Name: ColCategory},
		{Name: ColCount},
		{Name: ColAmount, Money: true},
	}
}

type categoryTotal struct {
	name  string
	count int
	total decimal.Decimal
}

// groupByCategory keeps categories in the order they first appear.
func groupByCategory(expenses []domain.Expense) []*categoryTotal {
	index := make(map[int64]*categoryTotal)
	var groups []*categoryTotal
	for _, x := range expenses {
		g, ok := index[x.CategoryID]
		if !ok {
			g = &categoryTotal{name: x.CategoryName, total: decimal.Zero}
			index[x.CategoryID] = g
			groups = append(groups, g)
		}
		g.count++
		g.total = g.total.Add(x.Amount)
	}
	return groups
}

func (s *summary) Rows(ledger domain.Ledger) []domain.ReportRow {
	groups := groupByCategory(ledger.Expenses)
	rows := make([]domain.ReportRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.ReportRow{
			ColCategory: g.name,
			ColCount:    g.count,
			ColAmount:   g.total,
		})
	}
	return rows
}

func (s *summary) Summarize(ledger domain.Ledger) domain.SummaryHeader {
	revenue := decimal.Zero
	for _, b := range ledger.Bills {
		revenue = revenue.Add(b.PaidAmount)
	}
	expenses := decimal.Zero
	for _, x := range ledger.Expenses {
		expenses = expenses.Add(x.Amount)
	}

	net := revenue.Sub(expenses)
	cur := s.settings.Currency

	return domain.SummaryHeader{
		Title: "Summary Report",
		Rows: []domain.SummaryRow{
			{Label: "Total Revenue", Value: format.Money(revenue, cur)},
			{Label: "Total Expenses", Value: format.Money(expenses, cur)},
			{Label: "Net Profit", Value: format.Money(net, cur)},
			{Label: "Profit Margin", Value: format.Percent(ProfitMargin(revenue, net))},
		},
	}
}

func (s *summary) Count(ledger domain.Ledger) int {
	return len(ledger.Expenses)
}

// ProfitMargin is net/revenue in percent rounded to one decimal, zero when
// there is no revenue.
func ProfitMargin(revenue, net decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return net.Div(revenue).Mul(hundred).Round(1)
}

func (s *summary) Localize(req domain.ReportRequest) Transformer[domain.Ledger] {
	return &summary{settings: s.settings.localize(req)}
}
