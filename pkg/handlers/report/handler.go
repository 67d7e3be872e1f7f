package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/gym-reports/pkg/adapters"
	"github.com/de-tools/gym-reports/pkg/models/api"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/server/middleware"
	"github.com/de-tools/gym-reports/pkg/services/delivery"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, family domain.ReportFamily, req domain.ReportRequest, recipients []string) (delivery.Receipt, error)
}

type Handler struct {
	reports    report.Registry
	tenants    tenant.Registry
	dispatcher Dispatcher
	deliveries Deliveries
}

func NewHandler(reports report.Registry, tenants tenant.Registry, dispatcher Dispatcher, deliveries Deliveries) *Handler {
	return &Handler{
		reports:    reports,
		tenants:    tenants,
		dispatcher: dispatcher,
		deliveries: deliveries,
	}
}

func (h *Handler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families := h.reports.Families()
	response := make([]api.ReportFamily, 0, len(families))
	for _, f := range families {
		response = append(response, adapters.MapFamilyDomainToApi(f))
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	family := domain.ReportFamily(chi.URLParam(r, "family"))

	exporter, err := h.reports.Get(family)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	req, err := h.buildRequest(ctx, q.Get("date_from"), q.Get("date_to"), q.Get("export_type"), q.Get("period_label"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	artifact, err := exporter.Export(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if artifact.Rejected() {
		writeJSON(ctx, w, artifact.Rejection.Status, api.ErrorResponse{Error: artifact.Rejection.Message})
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Content); err != nil {
		logger.Error().
			Err(err).
			Str("family", string(family)).
			Msg("failed to write report")
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	family := domain.ReportFamily(chi.URLParam(r, "family"))

	exporter, err := h.reports.Get(family)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	req, err := h.buildRequest(ctx, q.Get("date_from"), q.Get("date_to"), string(domain.FormatPDF), q.Get("period_label"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	header, err := exporter.Preview(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapSummaryHeaderDomainToApi(family, *header))
}

func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	family := domain.ReportFamily(chi.URLParam(r, "family"))

	var body api.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: malformed body", domain.ErrInvalidRequest))
		return
	}

	req, err := h.buildRequest(ctx, body.DateFrom, body.DateTo, body.ExportType, body.PeriodLabel)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	receipt, err := h.dispatcher.Dispatch(ctx, family, req, body.Recipients)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if receipt.Rejection != nil {
		writeJSON(ctx, w, receipt.Rejection.Status, api.ErrorResponse{Error: receipt.Rejection.Message})
		return
	}
	writeJSON(ctx, w, http.StatusAccepted, api.EmailResponse{JobID: receipt.JobID})
}

func (h *Handler) buildRequest(ctx context.Context, from, to, exportType, periodLabel string) (domain.ReportRequest, error) {
	accountID, ok := middleware.AccountFromContext(ctx)
	if !ok {
		return domain.ReportRequest{}, fmt.Errorf("%w: missing account", domain.ErrInvalidRequest)
	}

	dateFrom, err := parseDate("date_from", from)
	if err != nil {
		return domain.ReportRequest{}, err
	}
	dateTo, err := parseDate("date_to", to)
	if err != nil {
		return domain.ReportRequest{}, err
	}

	if exportType == "" {
		exportType = string(domain.FormatPDF)
	}
	exportFormat, _ := domain.ParseExportFormat(exportType)

	req := tenant.Apply(ctx, h.tenants, domain.ReportRequest{
		AccountID:   accountID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Format:      exportFormat,
		PeriodLabel: periodLabel,
	})
	if err := req.Validate(); err != nil {
		return domain.ReportRequest{}, err
	}
	return req, nil
}

func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: '%s' is required", domain.ErrInvalidRequest, name)
	}
	t, err := time.Parse(format.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid '%s' date format. Expected format: YYYY-MM-DD", domain.ErrInvalidRequest, name)
	}
	return t, nil
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "failed to export report"

	switch {
	case errors.Is(err, report.ErrUnknownFamily), errors.Is(err, delivery.ErrJobNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, report.ErrUnsupportedFormat), errors.Is(err, domain.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, delivery.ErrQueueFull), errors.Is(err, delivery.ErrQueueClosed):
		status, message = http.StatusServiceUnavailable, err.Error()
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("report request failed")
	}

	writeJSON(ctx, w, status, api.ErrorResponse{Error: message})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
