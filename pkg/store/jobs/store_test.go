package jobs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/store"
	"github.com/de-tools/gym-reports/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func newJob(id string, accountID int64) *store.DeliveryJob {
	return &store.DeliveryJob{
		ID:         id,
		AccountID:  accountID,
		Family:     "summary",
		Recipients: "owner@example.com,manager@example.com",
		Filename:   "summary-report-2024-01-01.xlsx",
		Status:     "pending",
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)

		// The schema statement is idempotent.
		_, err := NewStore(context.Background(), f.db)
		assert.NoError(t, err)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_CreateAndGetJob(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	job := newJob("job-1", 7)
	require.NoError(t, f.store.CreateJob(ctx, job))
	assert.False(t, job.CreatedAt.IsZero())

	got, err := f.store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AccountID)
	assert.Equal(t, "owner@example.com,manager@example.com", got.Recipients)
	assert.Equal(t, "pending", got.Status)
	assert.Nil(t, got.Error)
	assert.WithinDuration(t, job.CreatedAt, got.CreatedAt, time.Second)

	_, err = f.store.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestStore_UpdateJobStatus(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.CreateJob(ctx, newJob("job-1", 7)))

	t.Run("records failure", func(t *testing.T) {
		reason := "smtp unavailable"
		require.NoError(t, f.store.UpdateJobStatus(ctx, "job-1", "failed", 3, &reason))

		got, err := f.store.GetJob(ctx, "job-1")
		require.NoError(t, err)
		assert.Equal(t, "failed", got.Status)
		assert.Equal(t, 3, got.Attempts)
		require.NotNil(t, got.Error)
		assert.Equal(t, reason, *got.Error)
	})

	t.Run("update nonexistent job", func(t *testing.T) {
		err := f.store.UpdateJobStatus(ctx, "nonexistent", "sent", 1, nil)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestStore_ListJobs(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateJob(ctx, newJob("job-1", 7)))
	require.NoError(t, f.store.CreateJob(ctx, newJob("job-2", 7)))
	require.NoError(t, f.store.CreateJob(ctx, newJob("job-3", 8)))
	require.NoError(t, f.store.UpdateJobStatus(ctx, "job-2", "sent", 1, nil))

	t.Run("list all for account", func(t *testing.T) {
		jobs, err := f.store.ListJobs(ctx, 7, nil)
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("list by status", func(t *testing.T) {
		jobs, err := f.store.ListJobs(ctx, 7, []string{"sent", "failed"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "job-2", jobs[0].ID)
	})
}
