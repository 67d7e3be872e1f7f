package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/schedule"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/spf13/cobra"
)

// requestFlags are shared by every command that builds a report request.
type requestFlags struct {
	accountID   int64
	family      string
	from        string
	to          string
	periodLabel string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.accountID, "account", 0, "Account (gym) id")
	cmd.Flags().StringVar(&f.family, "family", "", "Report family (collection, expense, summary)")
	cmd.Flags().StringVar(&f.from, "from", "", "First day of the range, YYYY-MM-DD (default: first day of last month)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day of the range, YYYY-MM-DD (default: last day of last month)")
	cmd.Flags().StringVar(&f.periodLabel, "period-label", "", "Period label printed on the report")

	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("family")
}

func (f *requestFlags) build(ctx context.Context, tenants tenant.Registry, now time.Time, exportFormat domain.ExportFormat) (domain.ReportRequest, error) {
	from, to := schedule.PreviousMonth(now)

	var err error
	if f.from != "" {
		if from, err = time.Parse(format.DateLayout, f.from); err != nil {
			return domain.ReportRequest{}, fmt.Errorf("invalid --from date %q: %w", f.from, err)
		}
	}
	if f.to != "" {
		if to, err = time.Parse(format.DateLayout, f.to); err != nil {
			return domain.ReportRequest{}, fmt.Errorf("invalid --to date %q: %w", f.to, err)
		}
	}

	req := tenant.Apply(ctx, tenants, domain.ReportRequest{
		AccountID:   f.accountID,
		DateFrom:    from,
		DateTo:      to,
		Format:      exportFormat,
		PeriodLabel: f.periodLabel,
	})
	return req, req.Validate()
}
