package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/gym-reports/pkg/models/domain"
	"github.com/de-tools/gym-reports/pkg/services/report/format"
)

type TableConfig struct {
	LabelWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 28,
		ValueWidth: 24,
	}
}

// Reporter prints summary headers as a text table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(header *domain.SummaryHeader) error {
	funcMap := template.FuncMap{
		"formatRow": func(label, value string) string {
			return fmt.Sprintf("| %-*s | %*s |",
				c.config.LabelWidth, label,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.LabelWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"upper":     strings.ToUpper,
		"timestamp": func() string { return header.GeneratedAt.Format(format.TimestampLayout) },
	}

	tmpl := `
{{.BusinessName}}
{{upper .Title}}
Period: {{.PeriodLabel}}
Generated: {{timestamp}}

{{separator}}
{{formatRow "Summary" "Value"}}
{{separator}}
{{range .Rows}}{{formatRow .Label .Value}}
{{end}}{{separator}}
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, header)
}
