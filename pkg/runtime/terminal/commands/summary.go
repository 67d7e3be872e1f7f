package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	request  requestFlags
	registry report.Registry
	tenants  tenant.Registry
	reporter *export.Reporter
	now      func() time.Time
}

func NewSummaryCmd(registry report.Registry, tenants tenant.Registry, reporter *export.Reporter, now func() time.Time) *cobra.Command {
	sc := &SummaryCmd{registry: registry, tenants: tenants, reporter: reporter, now: now}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary figures of a report",
		RunE:  sc.run,
	}

	sc.request.register(cmd)

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	exporter, err := sc.registry.Get(domain.ReportFamily(sc.request.family))
	if err != nil {
		return err
	}

	req, err := sc.request.build(ctx, sc.tenants, sc.now(), domain.FormatPDF)
	if err != nil {
		return err
	}

	header, err := exporter.Preview(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to summarize %s report: %w", sc.request.family, err)
	}

	return sc.reporter.Handle(header)
}
