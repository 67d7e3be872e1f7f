package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/gym-reports/pkg/adapters"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/store/jobs"
)

var ErrJobNotFound = errors.New("delivery job not found")

// Journal keeps the status history of queued report emails.
type Journal interface {
	Record(ctx context.Context, job domain.DeliveryJob) error
	Update(ctx context.Context, id string, status domain.DeliveryStatus, attempts int, cause error) error
	Get(ctx context.Context, accountID int64, id string) (*domain.DeliveryJob, error)
	List(ctx context.Context, accountID int64, statuses []domain.DeliveryStatus) ([]domain.DeliveryJob, error)
}

type storeJournal struct {
	store jobs.Store
}

func NewJournal(store jobs.Store) Journal {
	return &storeJournal{store: store}
}

func (j *storeJournal) Record(ctx context.Context, job domain.DeliveryJob) error {
	return j.store.CreateJob(ctx, adapters.MapDomainDeliveryJobToStore(&job))
}

func (j *storeJournal) Update(ctx context.Context, id string, status domain.DeliveryStatus, attempts int, cause error) error {
	var reason *string
	if cause != nil {
		msg := cause.Error()
		reason = &msg
	}
	return j.store.UpdateJobStatus(ctx, id, string(status), attempts, reason)
}

// Get hides jobs owned by other accounts behind ErrJobNotFound.
func (j *storeJournal) Get(ctx context.Context, accountID int64, id string) (*domain.DeliveryJob, error) {
	job, err := j.store.GetJob(ctx, id)
	if errors.Is(err, jobs.ErrJobNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if job.AccountID != accountID {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return adapters.MapStoreDeliveryJobToDomain(job), nil
}

func (j *storeJournal) List(ctx context.Context, accountID int64, statuses []domain.DeliveryStatus) ([]domain.DeliveryJob, error) {
	filter := make([]string, len(statuses))
	for i, s := range statuses {
		filter[i] = string(s)
	}

	stored, err := j.store.ListJobs(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DeliveryJob, 0, len(stored))
	for _, s := range stored {
		result = append(result, *adapters.MapStoreDeliveryJobToDomain(s))
	}
	return result, nil
}

type noopJournal struct{}

func (noopJournal) Record(context.Context, domain.DeliveryJob) error { return nil }

func (noopJournal) Update(context.Context, string, domain.DeliveryStatus, int, error) error {
	return nil
}

func (noopJournal) Get(_ context.Context, _ int64, id string) (*domain.DeliveryJob, error) {
	return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
}

func (noopJournal) List(context.Context, int64, []domain.DeliveryStatus) ([]domain.DeliveryJob, error) {
	return []domain.DeliveryJob{}, nil
}
