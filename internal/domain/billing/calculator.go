// Package billing contiene el cálculo de importes de factura (servicio de dominio puro).
//
// Ninguna función redondea: la precisión se resuelve al formatear la moneda.
// Cantidades y tarifas negativas o cero se rechazan antes, en la validación de entrada.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/pkg/currency"
)

var hundred = decimal.NewFromInt(100)

// LineAmount = Quantity × Rate.
func LineAmount(item entity.InvoiceItem) decimal.Decimal {
	return item.Quantity.Mul(item.Rate)
}

// Subtotal suma LineAmount de todas las líneas; una lista vacía da cero.
func Subtotal(items []entity.InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineAmount(it))
	}
	return total
}

// Tax = subtotal × ratePercent / 100.
func Tax(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	if ratePercent.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(ratePercent).Div(hundred)
}

// GrandTotal = subtotal + Tax(subtotal, ratePercent).
func GrandTotal(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Add(Tax(subtotal, ratePercent))
}

// ApplyTotals recalcula el importe de cada línea, TotalAmount y TaxAmount.
// Se invoca antes de persistir: los importes recibidos nunca se toman como válidos.
func ApplyTotals(inv *entity.Invoice) {
	for i := range inv.Items {
		inv.Items[i].Amount = LineAmount(inv.Items[i])
	}
	inv.TotalAmount = Subtotal(inv.Items)
	inv.TaxAmount = Tax(inv.TotalAmount, inv.TaxRate)
}

// InvoiceGrandTotal total a pagar de una factura ya calculada.
func InvoiceGrandTotal(inv *entity.Invoice) decimal.Decimal {
	return inv.TotalAmount.Add(inv.TaxAmount)
}

// ResolveCurrency aplica la precedencia factura → empresa → cliente → USD.
// Un código ilegible no cuenta y se pasa al siguiente.
func ResolveCurrency(inv *entity.Invoice) string {
	for _, c := range []string{inv.Currency, inv.Company.Currency, inv.Client.Currency} {
		if currency.Valid(c) {
			return currency.Normalize(c)
		}
	}
	return currency.Default
}
