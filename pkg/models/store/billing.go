package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// BillRecord is a bills row joined with its (optional) member.
type BillRecord struct {
	ID         int64
	AccountID  int64
	BilledOn   time.Time
	MemberName sql.NullString
	BillType   sql.NullString
	PaidAmount decimal.Decimal
	Status     sql.NullString
}

// ExpenseRecord is an expenses row joined with its (optional) category.
type ExpenseRecord struct {
	ID           int64
	AccountID    int64
	SpentOn      time.Time
	CategoryID   sql.NullInt64
	CategoryName sql.NullString
	Description  sql.NullString
	Amount       decimal.Decimal
	Status       sql.NullString
}
