package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/gym-reports/pkg/config"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/report/export"
	"github.com/de-tools/gym-reports/pkg/services/report/render"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/de-tools/gym-reports/pkg/store/billing"
	"github.com/de-tools/gym-reports/pkg/store/duckdb"
	"github.com/de-tools/gym-reports/pkg/store/jobs"
	"github.com/de-tools/gym-reports/pkg/store/postgres"
)

type App struct {
	DB      *sql.DB
	Reports report.Registry
	Tenants tenant.Registry
	Jobs    jobs.Store
}

func (a *App) Close() error {
	return a.DB.Close()
}

func OpenDB(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.NewDB(ctx, postgres.Settings{
			DSN:          cfg.DSN,
			MaxOpenConns: cfg.MaxOpenConns,
		})
	case "duckdb":
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DuckDBPath})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}

// New opens the datastore and registers every report family.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	tenants, err := tenant.NewRegistry(cfg.Tenants)
	if err != nil {
		return nil, err
	}

	db, err := OpenDB(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	store, err := billing.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create billing store: %w", err)
	}

	reports, err := report.NewDefaultRegistry(store, report.Settings{
		Currency: cfg.Report.Currency,
		Location: loc,
		Renderer: render.NewWkhtmltopdf(cfg.Report.WkhtmltopdfBin),
		Options: export.Options{
			BusinessName: cfg.Report.BusinessName,
			MaxPDFRows:   cfg.Report.MaxPDFRows,
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to register reports: %w", err)
	}

	jobStore, err := jobs.NewStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create delivery job store: %w", err)
	}

	return &App{DB: db, Reports: reports, Tenants: tenants, Jobs: jobStore}, nil
}
