package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
)

var ErrNoRecipients = errors.New("at least one recipient is required")

type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message) (string, error)
}

// Receipt describes the outcome of a dispatch: either a queued job or the
// exporter's rejection.
type Receipt struct {
	JobID     string
	Rejection *domain.Rejection
}

// Dispatcher exports a report and queues it for email delivery.
type Dispatcher struct {
	reports report.Registry
	queue   Enqueuer
}

func NewDispatcher(reports report.Registry, queue Enqueuer) *Dispatcher {
	return &Dispatcher{reports: reports, queue: queue}
}

func (d *Dispatcher) Dispatch(
	ctx context.Context,
	family domain.ReportFamily,
	req domain.ReportRequest,
	recipients []string,
) (Receipt, error) {
	recipients = cleanRecipients(recipients)
	if len(recipients) == 0 {
		return Receipt{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, ErrNoRecipients)
	}

	exporter, err := d.reports.Get(family)
	if err != nil {
		return Receipt{}, err
	}

	artifact, err := exporter.Export(ctx, req)
	if err != nil {
		return Receipt{}, err
	}
	if artifact.Rejected() {
		return Receipt{Rejection: artifact.Rejection}, nil
	}

	period := format.PeriodLabel(req.PeriodLabel, req.DateFrom, req.DateTo)
	jobID, err := d.queue.Enqueue(ctx, Message{
		AccountID:  req.AccountID,
		Family:     family,
		To:         recipients,
		Subject:    subject(req.BusinessName, family, period),
		Body:       fmt.Sprintf("Attached is the %s report for %s.\n", family, period),
		Attachment: artifact,
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{JobID: jobID}, nil
}

func subject(business string, family domain.ReportFamily, period string) string {
	title := strings.ToUpper(string(family[:1])) + string(family[1:]) + " Report"
	if business == "" {
		return fmt.Sprintf("%s (%s)", title, period)
	}
	return fmt.Sprintf("%s: %s (%s)", business, title, period)
}

func cleanRecipients(recipients []string) []string {
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
