package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/export"
	"github.com/de-tools/gym-reports/pkg/services/report/transform"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat is returned when a family has no exporter for the
// requested format. Nothing is fetched in that case.
var ErrUnsupportedFormat = errors.New("unsupported export type")

// Exporter is the entry point of one report family.
type Exporter interface {
	Export(ctx context.Context, req domain.ReportRequest) (*domain.Artifact, error)
	Preview(ctx context.Context, req domain.ReportRequest) (*domain.SummaryHeader, error)
}

// Fetcher loads a family's records for the request's account and inclusive
// date range.
type Fetcher[T any] func(ctx context.Context, req domain.ReportRequest) (T, error)

type Service[T any] struct {
	family      domain.ReportFamily
	factory     *export.Factory[T]
	transformer transform.Transformer[T]
	fetch       Fetcher[T]
	opts        export.Options
}

func NewService[T any](
	family domain.ReportFamily,
	factory *export.Factory[T],
	tr transform.Transformer[T],
	fetch Fetcher[T],
	opts export.Options,
) *Service[T] {
	return &Service[T]{
		family:      family,
		factory:     factory,
		transformer: tr,
		fetch:       fetch,
		opts:        opts,
	}
}

func (s *Service[T]) Export(ctx context.Context, req domain.ReportRequest) (*domain.Artifact, error) {
	exporter := s.factory.Make(req.Format)
	if exporter == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("family", string(s.family)).
		Str("format", string(req.Format)).
		Int64("account_id", req.AccountID).
		Logger()
	started := time.Now()

	records, err := s.fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s records: %w", s.family, err)
	}

	artifact, err := exporter.Export(logger.WithContext(ctx), req, records)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("records", s.transformer.Count(records)).
		Bool("rejected", artifact.Rejected()).
		Dur("took", time.Since(started)).
		Msg("report exported")
	return artifact, nil
}

// Preview computes the summary header without rendering a document.
func (s *Service[T]) Preview(ctx context.Context, req domain.ReportRequest) (*domain.SummaryHeader, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s records: %w", s.family, err)
	}

	h := export.Header(s.transformer, s.opts, req, records)
	return &h, nil
}
