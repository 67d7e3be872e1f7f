package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/delivery"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Entry exports the previous calendar month of one family on every tick of
// Spec and mails it to Recipients, or to the tenant's report email when no
// recipients are listed.
type Entry struct {
	Spec       string
	AccountID  int64
	Family     domain.ReportFamily
	Format     domain.ExportFormat
	Recipients []string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, family domain.ReportFamily, req domain.ReportRequest, recipients []string) (delivery.Receipt, error)
}

type Settings struct {
	Location *time.Location
	Tenants  tenant.Registry
	Now      func() time.Time
}

type Scheduler struct {
	cron       *cron.Cron
	dispatcher Dispatcher
	settings   Settings
}

func NewScheduler(dispatcher Dispatcher, settings Settings) *Scheduler {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(settings.Location)),
		dispatcher: dispatcher,
		settings:   settings,
	}
}

// Add registers an entry. ctx carries the logger used by every run.
func (s *Scheduler) Add(ctx context.Context, entry Entry) (cron.EntryID, error) {
	if entry.AccountID <= 0 {
		return 0, fmt.Errorf("schedule %q: account id is required", entry.Spec)
	}
	entry.Recipients = s.recipients(ctx, entry)
	if len(entry.Recipients) == 0 {
		return 0, fmt.Errorf("schedule %q: recipients are required when account %d has no report email",
			entry.Spec, entry.AccountID)
	}

	id, err := s.cron.AddFunc(entry.Spec, func() {
		if _, err := s.Run(ctx, entry); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).
				Str("family", string(entry.Family)).
				Int64("account_id", entry.AccountID).
				Msg("scheduled report failed")
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q: %w", entry.Spec, err)
	}
	return id, nil
}

// Run performs one scheduled export immediately.
func (s *Scheduler) Run(ctx context.Context, entry Entry) (delivery.Receipt, error) {
	loc := s.settings.Location
	if t := tenant.Lookup(ctx, s.settings.Tenants, entry.AccountID); t.Location != nil {
		loc = t.Location
	}

	from, to := PreviousMonth(s.settings.Now().In(loc))
	req := tenant.Apply(ctx, s.settings.Tenants, domain.ReportRequest{
		AccountID:   entry.AccountID,
		DateFrom:    from,
		DateTo:      to,
		Format:      entry.Format,
		PeriodLabel: from.Format("January 2006"),
	})

	receipt, err := s.dispatcher.Dispatch(ctx, entry.Family, req, s.recipients(ctx, entry))
	if err != nil {
		return delivery.Receipt{}, err
	}

	logger := zerolog.Ctx(ctx)
	if receipt.Rejection != nil {
		logger.Warn().
			Str("family", string(entry.Family)).
			Int64("account_id", entry.AccountID).
			Msg(receipt.Rejection.Message)
		return receipt, nil
	}
	logger.Info().
		Str("family", string(entry.Family)).
		Int64("account_id", entry.AccountID).
		Str("job_id", receipt.JobID).
		Msg("scheduled report queued")
	return receipt, nil
}

func (s *Scheduler) recipients(ctx context.Context, entry Entry) []string {
	if len(entry.Recipients) > 0 {
		return entry.Recipients
	}
	if email := tenant.Lookup(ctx, s.settings.Tenants, entry.AccountID).ReportEmail; email != "" {
		return []string{email}
	}
	return nil
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// PreviousMonth returns the first and last day of the month before now.
func PreviousMonth(now time.Time) (time.Time, time.Time) {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := firstOfThis.AddDate(0, -1, 0)
	to := firstOfThis.AddDate(0, 0, -1)
	return from, to
}
