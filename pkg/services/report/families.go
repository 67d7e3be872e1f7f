package report

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/adapters"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/export"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/report/render"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
	"github.com/de-tools/gym-reports/pkg/store/billing"
)

// Settings wires the three report families.
type Settings struct {
	Currency string
	Location *time.Location
	Renderer render.Renderer
	Options  export.Options
}

func (s Settings) transform() transform.Settings {
	currency := s.Currency
	if currency == "" {
		currency = format.DefaultCurrency
	}
	return transform.Settings{
		Currency: currency,
		Location: s.Location,
		Now:      s.Options.Now,
	}
}

func NewCollectionService(store billing.Store, settings Settings) *Service[[]domain.Bill] {
	ts := settings.transform()
	tr := transform.NewCollection(ts)
	factory := export.NewFactory(export.CollectionLayout(), tr, settings.Renderer, ts.Currency, settings.Options)
	return NewService(domain.FamilyCollection, factory, tr, fetchBills(store), settings.Options)
}

func NewExpenseService(store billing.Store, settings Settings) *Service[[]domain.Expense] {
	ts := settings.transform()
	tr := transform.NewExpense(ts)
	factory := export.NewFactory(export.ExpenseLayout(), tr, settings.Renderer, ts.Currency, settings.Options)
	return NewService(domain.FamilyExpense, factory, tr, fetchExpenses(store), settings.Options)
}

func NewSummaryService(store billing.Store, settings Settings) *Service[domain.Ledger] {
	ts := settings.transform()
	tr := transform.NewSummary(ts)
	factory := export.NewFactory(export.SummaryLayout(), tr, settings.Renderer, ts.Currency, settings.Options)
	return NewService(domain.FamilySummary, factory, tr, fetchLedger(store), settings.Options)
}

func fetchBills(store billing.Store) Fetcher[[]domain.Bill] {
	return func(ctx context.Context, req domain.ReportRequest) ([]domain.Bill, error) {
		records, err := store.ListBills(ctx, req.AccountID, req.DateFrom, req.DateTo)
		if err != nil {
			return nil, err
		}
		return adapters.MapStoreBillsToDomain(records), nil
	}
}

func fetchExpenses(store billing.Store) Fetcher[[]domain.Expense] {
	return func(ctx context.Context, req domain.ReportRequest) ([]domain.Expense, error) {
		records, err := store.ListExpenses(ctx, req.AccountID, req.DateFrom, req.DateTo)
		if err != nil {
			return nil, err
		}
		return adapters.MapStoreExpensesToDomain(records), nil
	}
}

// fetchLedger loads both record sets of the same range.
func fetchLedger(store billing.Store) Fetcher[domain.Ledger] {
	bills := fetchBills(store)
	expenses := fetchExpenses(store)
	return func(ctx context.Context, req domain.ReportRequest) (domain.Ledger, error) {
		b, err := bills(ctx, req)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("bills: %w", err)
		}
		e, err := expenses(ctx, req)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("expenses: %w", err)
		}
		return domain.Ledger{Bills: b, Expenses: e}, nil
	}
}
