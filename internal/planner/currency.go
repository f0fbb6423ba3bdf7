package planner

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter formats prices with locale digits followed by the
// currency symbol separated by a no-break space, e.g. "12,50 €" for fr/EUR.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter builds a formatter for a BCP 47 locale and an ISO
// 4217 code. Unknown values fall back to fr and EUR.
func NewCurrencyFormatter(locale, code string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.EUR
	}
	p := message.NewPrinter(tag)
	return &CurrencyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
	}
}

func (f *CurrencyFormatter) FormatPrice(amount float64) string {
	return f.printer.Sprint(number.Decimal(amount, number.Scale(2))) + "\u00a0" + f.symbol
}
