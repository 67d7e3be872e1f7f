package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCurrency = "PHP"

	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04"

	// PeriodSeparator joins the two ends of a derived period label.
	PeriodSeparator = " – "
)

var printer = message.NewPrinter(language.English)

// Money renders an amount as "<currency> 1,234.56".
func Money(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return printer.Sprintf("%s %.2f", currency, amount.Round(2).InexactFloat64())
}

// Percent renders a ratio already expressed in percent with one decimal.
func Percent(value decimal.Decimal) string {
	return value.Round(1).StringFixed(1) + "%"
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// PeriodLabel returns label when set, otherwise "<from> – <to>".
func PeriodLabel(label string, from, to time.Time) string {
	if label != "" {
		return label
	}
	return Date(from) + PeriodSeparator + Date(to)
}
