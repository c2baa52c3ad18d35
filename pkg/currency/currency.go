// Package currency formatea importes monetarios según el código ISO 4217.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default es la moneda usada cuando ni la factura, ni la empresa ni el cliente definen una.
const Default = "USD"

var printer = message.NewPrinter(language.English)

// Valid indica si code es un código ISO 4217 reconocido.
func Valid(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	return err == nil
}

// Normalize devuelve el código ISO en mayúsculas si es válido, o Default.
func Normalize(code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Default
	}
	return unit.String()
}

// Format devuelve "<ISO> <importe>" con separador de miles y los decimales estándar de la moneda.
// Ej: Format(1234.5, "USD") → "USD 1,234.50"; Format(1000, "JPY") → "JPY 1,000".
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))
	return unit.String() + " " + printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(scale)))
}
