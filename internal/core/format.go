// Package core implements the finance aggregation and period-filtering
// engine: pure functions over in-memory category and transaction sets.
package core

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts and counts for a fixed locale and currency.
// Amounts are whole currency units, so currency output carries no decimals.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for the given BCP 47 tag and ISO 4217
// currency code. Defaults to Indonesian rupiah when either is empty or
// unparsable, the locale the dashboard ships with.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.Indonesian
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil || currencyCode == "" {
		unit = currency.IDR
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Currency renders an amount as symbol plus locale-grouped integer,
// e.g. Rp5.000.000 for id-ID/IDR.
func (f *Formatter) Currency(amount int64) string {
	return f.printer.Sprintf("%v%d", currency.NarrowSymbol(f.unit), amount)
}

// Number renders a locale-grouped integer.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}
