package store

import "time"

type DeliveryJob struct {
	ID         string
	AccountID  int64
	Family     string
	Recipients string
	Filename   string
	Status     string
	Attempts   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Error      *string
}
