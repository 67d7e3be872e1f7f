package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/store"
	"github.com/rs/zerolog"
)

var ErrJobNotFound = errors.New("delivery job not found")

const Schema = `
	CREATE TABLE IF NOT EXISTS delivery_jobs (
		id VARCHAR PRIMARY KEY,
		account_id BIGINT NOT NULL,
		family VARCHAR NOT NULL,
		recipients VARCHAR NOT NULL,
		filename VARCHAR,
		status VARCHAR NOT NULL,
		attempts INTEGER NOT NULL,
		last_error VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`

const selectJobs = `
	SELECT id, account_id, family, recipients, filename, status, attempts, last_error, created_at, updated_at
	FROM delivery_jobs`

type Store interface {
	CreateJob(ctx context.Context, job *store.DeliveryJob) error
	UpdateJobStatus(ctx context.Context, id string, status string, attempts int, lastError *string) error
	GetJob(ctx context.Context, id string) (*store.DeliveryJob, error)
	ListJobs(ctx context.Context, accountID int64, statuses []string) ([]*store.DeliveryJob, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates the delivery_jobs table when missing.
func NewStore(ctx context.Context, db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return nil, fmt.Errorf("failed to create delivery_jobs table: %w", err)
	}
	return &defaultStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *defaultStore) CreateJob(ctx context.Context, job *store.DeliveryJob) error {
	now := s.now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO delivery_jobs
			(id, account_id, family, recipients, filename, status, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		job.ID, job.AccountID, job.Family, job.Recipients, job.Filename,
		job.Status, job.Attempts, job.Error, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery job: %w", err)
	}
	return nil
}

func (s *defaultStore) UpdateJobStatus(ctx context.Context, id string, status string, attempts int, lastError *string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE delivery_jobs
		SET status = $1, attempts = $2, last_error = $3, updated_at = $4
		WHERE id = $5`,
		status, attempts, lastError, s.now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return nil
}

func (s *defaultStore) GetJob(ctx context.Context, id string) (*store.DeliveryJob, error) {
	row := s.db.QueryRowContext(ctx, selectJobs+` WHERE id = $1`, id)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *defaultStore) ListJobs(ctx context.Context, accountID int64, statuses []string) ([]*store.DeliveryJob, error) {
	query := selectJobs + ` WHERE account_id = $1`
	args := []interface{}{accountID}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", i+2)
		}
		query += ` AND status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery jobs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close rows")
		}
	}()

	jobs := make([]*store.DeliveryJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delivery jobs: %w", err)
	}
	return jobs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (*store.DeliveryJob, error) {
	var (
		job       store.DeliveryJob
		filename  sql.NullString
		lastError sql.NullString
	)
	err := row.Scan(
		&job.ID, &job.AccountID, &job.Family, &job.Recipients, &filename,
		&job.Status, &job.Attempts, &lastError, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan delivery job: %w", err)
	}
	job.Filename = filename.String
	if lastError.Valid {
		job.Error = &lastError.String
	}
	return &job, nil
}
