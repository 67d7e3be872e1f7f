package adapters

import (
	"github.com/de-tools/gym-reports/pkg/models/api"
	"github.com/de-tools/gym-reports/pkg/models/domain"
)

func MapSummaryRowsDomainToApi(rows []domain.SummaryRow) []api.SummaryRow {
	result := make([]api.SummaryRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.SummaryRow{Label: r.Label, Value: r.Value})
	}
	return result
}

func MapSummaryHeaderDomainToApi(family domain.ReportFamily, h domain.SummaryHeader) api.ReportSummary {
	return api.ReportSummary{
		Family:       string(family),
		BusinessName: h.BusinessName,
		Title:        h.Title,
		PeriodLabel:  h.PeriodLabel,
		GeneratedAt:  h.GeneratedAt,
		Rows:         MapSummaryRowsDomainToApi(h.Rows),
	}
}

func MapFamilyDomainToApi(family domain.ReportFamily) api.ReportFamily {
	return api.ReportFamily{
		Name:    string(family),
		Formats: []string{string(domain.FormatPDF), string(domain.FormatXLSX)},
	}
}
