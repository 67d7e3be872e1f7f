package transform

import (
	"strings"
	"time"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Transformer shapes one family's records into table rows and a summary
// header. Implementations never fail: missing data degrades to labels.
type Transformer[T any] interface {
	Columns() []domain.Column
	Rows(records T) []domain.ReportRow
	Summarize(records T) domain.SummaryHeader
	// Count reports the size of the record set that produces the data rows.
	Count(records T) int
	// Localize returns a transformer using the request's currency and time
	// zone where they are set.
	Localize(req domain.ReportRequest) Transformer[T]
}

// Settings shared by every family transformer.
type Settings struct {
	Currency string
	Location *time.Location
	Now      func() time.Time
}

func (s Settings) localize(req domain.ReportRequest) Settings {
	if req.Currency != "" {
		s.Currency = req.Currency
	}
	if req.Location != nil {
		s.Location = req.Location
	}
	return s
}

func (s Settings) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc).Format("2006-01-02")
}

const notAvailable = "N/A"

var knownStatuses = map[string]string{
	"paid":      "Paid",
	"unpaid":    "Unpaid",
	"partial":   "Partial",
	"pending":   "Pending",
	"overdue":   "Overdue",
	"cancelled": "Cancelled",
	"refunded":  "Refunded",
	"approved":  "Approved",
	"rejected":  "Rejected",
}

// StatusLabel maps a raw status code to its display label.
func StatusLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return notAvailable
	}
	if label, ok := knownStatuses[strings.ToLower(code)]; ok {
		return label
	}
	return code
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
