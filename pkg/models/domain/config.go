package domain

import (
	"fmt"
	"time"
)

// Tenant carries the per-account branding applied to exported reports.
// Empty fields fall back to the service defaults.
type Tenant struct {
	AccountID    int64
	BusinessName string
	Currency     string
	Timezone     string
	Location     *time.Location
	ReportEmail  string
}

func (t Tenant) String() string {
	return fmt.Sprintf("%d:%s", t.AccountID, t.BusinessName)
}
