package api

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ReportFamily struct {
	Name    string   `json:"name"`
	Formats []string `json:"formats"`
}

type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ReportSummary struct {
	Family       string       `json:"family"`
	BusinessName string       `json:"business_name"`
	Title        string       `json:"title"`
	PeriodLabel  string       `json:"period_label"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Rows         []SummaryRow `json:"rows"`
}

type EmailRequest struct {
	Recipients  []string `json:"recipients"`
	DateFrom    string   `json:"date_from"`
	DateTo      string   `json:"date_to"`
	ExportType  string   `json:"export_type"`
	PeriodLabel string   `json:"period_label"`
}

type EmailResponse struct {
	JobID string `json:"job_id"`
}

type DeliveryJob struct {
	ID         string    `json:"id"`
	Family     string    `json:"family"`
	Recipients []string  `json:"recipients"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Error      string    `json:"error,omitempty"`
}
