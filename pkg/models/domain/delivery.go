package domain

import "time"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// DeliveryJob is the journal entry of one emailed report.
type DeliveryJob struct {
	ID         string
	AccountID  int64
	Family     ReportFamily
	Recipients []string
	Filename   string
	Status     DeliveryStatus
	Attempts   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Error      *string
}
