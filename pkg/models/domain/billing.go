package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a member bill with its relations already resolved to labels.
type Bill struct {
	ID         int64
	Date       time.Time
	MemberName string
	BillType   string
	PaidAmount decimal.Decimal
	Status     string
}

// Expense is a gym expense with its category already resolved.
type Expense struct {
	ID           int64
	Date         time.Time
	CategoryID   int64
	CategoryName string
	Description  string
	Amount       decimal.Decimal
	Status       string
}

// Ledger is the input of the summary report: revenue and spending over the
// same period.
type Ledger struct {
	Bills    []Bill
	Expenses []Expense
}
