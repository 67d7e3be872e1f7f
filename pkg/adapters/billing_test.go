package adapters

import (
	"database/sql"
	"testing"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapStoreBillToDomain(t *testing.T) {
	billed := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		record     store.BillRecord
		wantMember string
		wantType   string
	}{
		{
			name: "joined member",
			record: store.BillRecord{
				MemberName: sql.NullString{String: " Ana Cruz ", Valid: true},
				BillType:   sql.NullString{String: "membership", Valid: true},
			},
			wantMember: "Ana Cruz",
			wantType:   "membership",
		},
		{
			name:       "missing relations",
			record:     store.BillRecord{},
			wantMember: UnknownLabel,
			wantType:   NotAvailLabel,
		},
		{
			name: "blank values",
			record: store.BillRecord{
				MemberName: sql.NullString{String: "  ", Valid: true},
				BillType:   sql.NullString{String: "", Valid: true},
			},
			wantMember: UnknownLabel,
			wantType:   NotAvailLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.ID = 3
			tt.record.BilledOn = billed
			tt.record.PaidAmount = decimal.RequireFromString("49.50")

			bill := MapStoreBillToDomain(tt.record)

			assert.Equal(t, int64(3), bill.ID)
			assert.Equal(t, billed, bill.Date)
			assert.Equal(t, tt.wantMember, bill.MemberName)
			assert.Equal(t, tt.wantType, bill.BillType)
			assert.True(t, bill.PaidAmount.Equal(decimal.RequireFromString("49.5")))
		})
	}
}

func TestMapStoreExpenseToDomain(t *testing.T) {
	t.Run("category present", func(t *testing.T) {
		e := MapStoreExpenseToDomain(store.ExpenseRecord{
			ID:           1,
			CategoryID:   sql.NullInt64{Int64: 4, Valid: true},
			CategoryName: sql.NullString{String: "Rent", Valid: true},
			Description:  sql.NullString{String: "January", Valid: true},
			Status:       sql.NullString{String: "paid ", Valid: true},
		})
		assert.Equal(t, int64(4), e.CategoryID)
		assert.Equal(t, "Rent", e.CategoryName)
		assert.Equal(t, "January", e.Description)
		assert.Equal(t, "paid", e.Status)
	})

	t.Run("dangling category id", func(t *testing.T) {
		e := MapStoreExpenseToDomain(store.ExpenseRecord{
			CategoryID: sql.NullInt64{Int64: 99, Valid: true},
		})
		assert.Equal(t, UnknownLabel, e.CategoryName)
		assert.Equal(t, NotAvailLabel, e.Description)
	})

	t.Run("no category", func(t *testing.T) {
		e := MapStoreExpenseToDomain(store.ExpenseRecord{
			CategoryName: sql.NullString{String: "Stale", Valid: true},
		})
		assert.Equal(t, int64(0), e.CategoryID)
		assert.Equal(t, UnknownLabel, e.CategoryName)
	})
}

func TestMapStoreRecordsKeepsOrder(t *testing.T) {
	bills := MapStoreBillsToDomain([]store.BillRecord{{ID: 2}, {ID: 1}})
	assert.Equal(t, int64(2), bills[0].ID)
	assert.Equal(t, int64(1), bills[1].ID)

	assert.Empty(t, MapStoreExpensesToDomain(nil))
}
