package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	request  requestFlags
	format   string
	outDir   string
	registry report.Registry
	tenants  tenant.Registry
	now      func() time.Time
}

func NewExportCmd(registry report.Registry, tenants tenant.Registry, now func() time.Time) *cobra.Command {
	ec := &ExportCmd{registry: registry, tenants: tenants, now: now}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report as PDF or Excel",
		RunE:  ec.run,
	}

	ec.request.register(cmd)
	cmd.Flags().StringVar(&ec.format, "format", "pdf", "Export type (pdf, excel)")
	cmd.Flags().StringVar(&ec.outDir, "out", ".", "Directory the report is written to")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	exporter, err := ec.registry.Get(domain.ReportFamily(ec.request.family))
	if err != nil {
		return err
	}

	exportFormat, _ := domain.ParseExportFormat(ec.format)
	req, err := ec.request.build(ctx, ec.tenants, ec.now(), exportFormat)
	if err != nil {
		return err
	}

	artifact, err := exporter.Export(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to export %s report: %w", ec.request.family, err)
	}
	if artifact.Rejected() {
		return fmt.Errorf("export rejected: %s", artifact.Rejection.Message)
	}

	path := filepath.Join(ec.outDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d bytes)\n", path, len(artifact.Content))
	return nil
}
