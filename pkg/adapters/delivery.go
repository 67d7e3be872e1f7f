package adapters

import (
	"strings"

	"github.com/de-tools/gym-reports/pkg/models/api"
	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/models/store"
)

const recipientSeparator = ","

func MapStoreDeliveryJobToDomain(j *store.DeliveryJob) *domain.DeliveryJob {
	if j == nil {
		return nil
	}

	var recipients []string
	if j.Recipients != "" {
		recipients = strings.Split(j.Recipients, recipientSeparator)
	}

	return &domain.DeliveryJob{
		ID:         j.ID,
		AccountID:  j.AccountID,
		Family:     domain.ReportFamily(j.Family),
		Recipients: recipients,
		Filename:   j.Filename,
		Status:     domain.DeliveryStatus(j.Status),
		Attempts:   j.Attempts,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
		Error:      j.Error,
	}
}

func MapDomainDeliveryJobToStore(dj *domain.DeliveryJob) *store.DeliveryJob {
	return &store.DeliveryJob{
		ID:         dj.ID,
		AccountID:  dj.AccountID,
		Family:     string(dj.Family),
		Recipients: strings.Join(dj.Recipients, recipientSeparator),
		Filename:   dj.Filename,
		Status:     string(dj.Status),
		Attempts:   dj.Attempts,
		CreatedAt:  dj.CreatedAt,
		UpdatedAt:  dj.UpdatedAt,
		Error:      dj.Error,
	}
}

func MapDeliveryJobDomainToApi(dj domain.DeliveryJob) api.DeliveryJob {
	job := api.DeliveryJob{
		ID:         dj.ID,
		Family:     string(dj.Family),
		Recipients: dj.Recipients,
		Filename:   dj.Filename,
		Status:     string(dj.Status),
		Attempts:   dj.Attempts,
		CreatedAt:  dj.CreatedAt,
		UpdatedAt:  dj.UpdatedAt,
	}
	if dj.Error != nil {
		job.Error = *dj.Error
	}
	return job
}
