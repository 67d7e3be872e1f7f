package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store reads the records the reports are built from. Both range ends are
// inclusive dates.
type Store interface {
	ListBills(ctx context.Context, accountID int64, from, to time.Time) ([]store.BillRecord, error)
	ListExpenses(ctx context.Context, accountID int64, from, to time.Time) ([]store.ExpenseRecord, error)
}

// Queries use $n placeholders, understood by both DuckDB and PostgreSQL.
const (
	billsQuery = `
		SELECT b.id, b.account_id, b.billed_on, m.full_name, b.bill_type,
			CAST(b.paid_amount AS VARCHAR), b.status
		FROM bills b
		LEFT JOIN members m ON m.id = b.member_id AND m.account_id = b.account_id
		WHERE b.account_id = $1 AND b.billed_on >= $2 AND b.billed_on <= $3
		ORDER BY b.billed_on, b.id`

	expensesQuery = `
		SELECT e.id, e.account_id, e.spent_on, e.category_id, c.name, e.description,
			CAST(e.amount AS VARCHAR), e.status
		FROM expenses e
		LEFT JOIN expense_categories c ON c.id = e.category_id AND c.account_id = e.account_id
		WHERE e.account_id = $1 AND e.spent_on >= $2 AND e.spent_on <= $3
		ORDER BY e.spent_on, e.id`
)

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &sqlStore{db: db}, nil
}

func (s *sqlStore) ListBills(ctx context.Context, accountID int64, from, to time.Time) ([]store.BillRecord, error) {
	rows, err := s.db.QueryContext(ctx, billsQuery, accountID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.BillRecord, 0)
	for rows.Next() {
		var (
			r      store.BillRecord
			amount sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.AccountID, &r.BilledOn, &r.MemberName, &r.BillType, &amount, &r.Status); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if r.PaidAmount, err = parseAmount(amount); err != nil {
			return nil, fmt.Errorf("bill %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return records, nil
}

func (s *sqlStore) ListExpenses(ctx context.Context, accountID int64, from, to time.Time) ([]store.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, expensesQuery, accountID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.ExpenseRecord, 0)
	for rows.Next() {
		var (
			r      store.ExpenseRecord
			amount sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.AccountID, &r.SpentOn, &r.CategoryID, &r.CategoryName, &r.Description, &amount, &r.Status); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if r.Amount, err = parseAmount(amount); err != nil {
			return nil, fmt.Errorf("expense %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

// parseAmount treats a NULL amount as zero.
func parseAmount(v sql.NullString) (decimal.Decimal, error) {
	if !v.Valid || v.String == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", v.String, err)
	}
	return d, nil
}

// dateOnly drops the clock so the parameter binds as a plain calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close rows")
	}
}
