package adapters

import (
	"strings"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/models/store"
)

const (
	UnknownLabel  = "Unknown"
	NotAvailLabel = "N/A"
)

func MapStoreBillToDomain(record store.BillRecord) domain.Bill {
	return domain.Bill{
		ID:         record.ID,
		Date:       record.BilledOn,
		MemberName: labelOr(record.MemberName.String, record.MemberName.Valid, UnknownLabel),
		BillType:   labelOr(record.BillType.String, record.BillType.Valid, NotAvailLabel),
		PaidAmount: record.PaidAmount,
		Status:     strings.TrimSpace(record.Status.String),
	}
}

func MapStoreBillsToDomain(records []store.BillRecord) []domain.Bill {
	bills := make([]domain.Bill, 0, len(records))
	for _, r := range records {
		bills = append(bills, MapStoreBillToDomain(r))
	}
	return bills
}

func MapStoreExpenseToDomain(record store.ExpenseRecord) domain.Expense {
	var categoryID int64
	if record.CategoryID.Valid {
		categoryID = record.CategoryID.Int64
	}

	name := UnknownLabel
	if record.CategoryID.Valid {
		name = labelOr(record.CategoryName.String, record.CategoryName.Valid, UnknownLabel)
	}

	return domain.Expense{
		ID:           record.ID,
		Date:         record.SpentOn,
		CategoryID:   categoryID,
		CategoryName: name,
		Description:  labelOr(record.Description.String, record.Description.Valid, NotAvailLabel),
		Amount:       record.Amount,
		Status:       strings.TrimSpace(record.Status.String),
	}
}

func MapStoreExpensesToDomain(records []store.ExpenseRecord) []domain.Expense {
	expenses := make([]domain.Expense, 0, len(records))
	for _, r := range records {
		expenses = append(expenses, MapStoreExpenseToDomain(r))
	}
	return expenses
}

func labelOr(value string, valid bool, fallback string) string {
	value = strings.TrimSpace(value)
	if !valid || value == "" {
		return fallback
	}
	return value
}
