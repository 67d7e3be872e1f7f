package schedule

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/delivery"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(
	ctx context.Context,
	family domain.ReportFamily,
	req domain.ReportRequest,
	recipients []string,
) (delivery.Receipt, error) {
	args := m.Called(ctx, family, req, recipients)
	return args.Get(0).(delivery.Receipt), args.Error(1)
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFrom string
		wantTo   string
	}{
		{"mid month", time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), "2024-01-01", "2024-01-31"},
		{"leap february", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"year boundary", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "2023-12-01", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := PreviousMonth(tt.now)
			assert.Equal(t, tt.wantFrom, from.Format("2006-01-02"))
			assert.Equal(t, tt.wantTo, to.Format("2006-01-02"))
		})
	}
}

const tenantsFile = `
[7]
business_name = Iron Paradise Gym

[9]
business_name = Flex Hub
currency      = USD
timezone      = Asia/Manila
report_email  = owner@flexhub.ph
`

func tenants(t *testing.T) tenant.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenants.ini")
	require.NoError(t, os.WriteFile(path, []byte(tenantsFile), 0o644))
	r, err := tenant.NewRegistry(path)
	require.NoError(t, err)
	return r
}

func TestScheduler_Run(t *testing.T) {
	d := new(mockDispatcher)
	s := NewScheduler(d, Settings{
		Location: time.UTC,
		Tenants:  tenants(t),
		Now:      func() time.Time { return time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC) },
	})
	entry := Entry{
		Spec:       "0 6 1 * *",
		AccountID:  7,
		Family:     domain.FamilySummary,
		Format:     domain.FormatXLSX,
		Recipients: []string{"owner@example.com"},
	}

	expected := domain.ReportRequest{
		AccountID:    7,
		DateFrom:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:       time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Format:       domain.FormatXLSX,
		PeriodLabel:  "January 2024",
		BusinessName: "Iron Paradise Gym",
	}
	d.On("Dispatch", mock.Anything, domain.FamilySummary, expected, entry.Recipients).
		Return(delivery.Receipt{JobID: "job-1"}, nil)

	receipt, err := s.Run(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "job-1", receipt.JobID)
	d.AssertExpectations(t)
}

func TestScheduler_RunPropagatesErrors(t *testing.T) {
	d := new(mockDispatcher)
	d.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(delivery.Receipt{}, errors.New("db down"))
	s := NewScheduler(d, Settings{Location: time.UTC})

	_, err := s.Run(context.Background(), Entry{AccountID: 7, Recipients: []string{"a@b.c"}})

	assert.EqualError(t, err, "db down")
}

func TestScheduler_Add(t *testing.T) {
	s := NewScheduler(new(mockDispatcher), Settings{Location: time.UTC})
	ctx := context.Background()

	_, err := s.Add(ctx, Entry{Spec: "0 6 1 * *", AccountID: 7, Recipients: []string{"a@b.c"}})
	require.NoError(t, err)

	_, err = s.Add(ctx, Entry{Spec: "not a spec", AccountID: 7, Recipients: []string{"a@b.c"}})
	assert.ErrorContains(t, err, "invalid schedule")

	_, err = s.Add(ctx, Entry{Spec: "0 6 1 * *", Recipients: []string{"a@b.c"}})
	assert.Error(t, err)

	_, err = s.Add(ctx, Entry{Spec: "0 6 1 * *", AccountID: 7})
	assert.ErrorContains(t, err, "recipients are required")

	assert.Equal(t, 1, s.Entries())

	s.Start()
	<-s.Stop().Done()
}

func TestScheduler_TenantDefaults(t *testing.T) {
	d := new(mockDispatcher)
	s := NewScheduler(d, Settings{
		Location: time.UTC,
		Tenants:  tenants(t),
		// Still January in UTC, already February in Manila.
		Now: func() time.Time { return time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC) },
	})
	entry := Entry{Spec: "0 6 1 * *", AccountID: 9, Family: domain.FamilyExpense, Format: domain.FormatPDF}

	_, err := s.Add(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	d.On("Dispatch", mock.Anything, domain.FamilyExpense,
		mock.MatchedBy(func(req domain.ReportRequest) bool {
			return req.DateFrom.Format("2006-01-02") == "2024-01-01" &&
				req.DateTo.Format("2006-01-02") == "2024-01-31" &&
				req.PeriodLabel == "January 2024" &&
				req.BusinessName == "Flex Hub" &&
				req.Currency == "USD" &&
				req.Location != nil && req.Location.String() == "Asia/Manila"
		}),
		[]string{"owner@flexhub.ph"}).
		Return(delivery.Receipt{JobID: "job-9"}, nil)

	receipt, err := s.Run(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, "job-9", receipt.JobID)
	d.AssertExpectations(t)
}
