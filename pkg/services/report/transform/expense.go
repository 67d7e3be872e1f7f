package transform

import (
	"strconv"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/shopspring/decimal"
)

type expense struct {
	settings Settings
}

func NewExpense(settings Settings) Transformer[[]domain.Expense] {
	return &expense{settings: settings}
}

func (e *expense) Columns() []domain.Column {
	return []domain.Column{
		{Name: ColDate},
		{Name: ColCategory},
		{Name: ColDescription},
		{Name: ColAmount, Money: true},
		{Name: ColStatus},
	}
}

func (e *expense) Rows(expenses []domain.Expense) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(expenses))
	for _, x := range expenses {
		rows = append(rows, domain.ReportRow{
			ColDate:        format.Date(x.Date),
			ColCategory:    x.CategoryName,
			ColDescription: x.Description,
			ColAmount:      x.Amount,
			ColStatus:      StatusLabel(x.Status),
		})
	}
	return rows
}

func (e *expense) Summarize(expenses []domain.Expense) domain.SummaryHeader {
	today := e.settings.today()

	total := decimal.Zero
	todayTotal := decimal.Zero
	for _, x := range expenses {
		total = total.Add(x.Amount)
		if format.Date(x.Date) == today {
			todayTotal = todayTotal.Add(x.Amount)
		}
	}

	cur := e.settings.Currency
	return domain.SummaryHeader{
		Title: "Expense Report",
		Rows: []domain.SummaryRow{
			{Label: "Total Expenses", Value: format.Money(total, cur)},
			{Label: "Transactions", Value: strconv.Itoa(len(expenses))},
			{Label: "Average Expense", Value: format.Money(average(total, len(expenses)), cur)},
			{Label: "Today's Expenses", Value: format.Money(todayTotal, cur)},
		},
	}
}

func (e *expense) Count(expenses []domain.Expense) int {
	return len(expenses)
}

func (e *expense) Localize(req domain.ReportRequest) Transformer[[]domain.Expense] {
	return &expense{settings: e.settings.localize(req)}
}
