package report

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/de-tools/gym-reports/pkg/adapters"
	"github.com/de-tools/gym-reports/pkg/models/api"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
)

type Deliveries interface {
	Get(ctx context.Context, accountID int64, id string) (*domain.DeliveryJob, error)
	List(ctx context.Context, accountID int64, statuses []domain.DeliveryStatus) ([]domain.DeliveryJob, error)
}

func (h *Handler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := middleware.AccountFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing account", domain.ErrInvalidRequest))
		return
	}

	job, err := h.deliveries.Get(ctx, accountID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapDeliveryJobDomainToApi(*job))
}

// ListDeliveries accepts an optional comma separated status filter.
func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := middleware.AccountFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing account", domain.ErrInvalidRequest))
		return
	}

	statuses, err := parseStatuses(r.URL.Query().Get("status"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	jobs, err := h.deliveries.List(ctx, accountID, statuses)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	response := make([]api.DeliveryJob, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, adapters.MapDeliveryJobDomainToApi(job))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func parseStatuses(value string) ([]domain.DeliveryStatus, error) {
	if value == "" {
		return nil, nil
	}

	var statuses []domain.DeliveryStatus
	for _, part := range strings.Split(value, ",") {
		status := domain.DeliveryStatus(strings.TrimSpace(part))
		switch status {
		case domain.DeliveryStatusPending, domain.DeliveryStatusSent,
			domain.DeliveryStatusFailed, domain.DeliveryStatusCancelled:
			statuses = append(statuses, status)
		default:
			return nil, fmt.Errorf("%w: unknown delivery status '%s'", domain.ErrInvalidRequest, part)
		}
	}
	return statuses, nil
}
