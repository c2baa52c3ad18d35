package billing_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(qty, rate string) entity.InvoiceItem {
	return entity.InvoiceItem{Quantity: d(qty), Rate: d(rate)}
}

func TestLineAmount(t *testing.T) {
	assert.True(t, d("37.5").Equal(billing.LineAmount(item("2.5", "15"))))
}

func TestSubtotal_ListaVaciaEsCero(t *testing.T) {
	assert.True(t, billing.Subtotal(nil).IsZero())
	assert.True(t, billing.Subtotal([]entity.InvoiceItem{}).IsZero())
}

// Propiedad: Subtotal(items) == Σ LineAmount(item) para listas aleatorias.
func TestSubtotal_EsSumaDeLineas(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		items := make([]entity.InvoiceItem, rng.Intn(8))
		want := decimal.Zero
		for i := range items {
			items[i] = entity.InvoiceItem{
				Quantity: decimal.New(rng.Int63n(10000)+1, -2),
				Rate:     decimal.New(rng.Int63n(1000000)+1, -2),
			}
			want = want.Add(billing.LineAmount(items[i]))
		}
		assert.True(t, want.Equal(billing.Subtotal(items)), "iteración %d", n)
	}
}

func TestTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		rate     string
		want     string
	}{
		{"sin impuesto", "250", "0", "0"},
		{"21 por ciento", "100", "21", "21"},
		{"tasa decimal", "200", "7.5", "15"},
		{"subtotal cero", "0", "19", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.Tax(d(tt.subtotal), d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

// Propiedad: Tax(s, r) == s × r / 100 para s, r ≥ 0.
func TestTax_Propiedad(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		s := decimal.New(rng.Int63n(10000000), -2)
		r := decimal.New(rng.Int63n(3000), -2)
		want := s.Mul(r).Div(decimal.NewFromInt(100))
		assert.True(t, want.Equal(billing.Tax(s, r)))
	}
}

func TestGrandTotal(t *testing.T) {
	assert.True(t, d("121").Equal(billing.GrandTotal(d("100"), d("21"))))
	assert.True(t, d("100").Equal(billing.GrandTotal(d("100"), decimal.Zero)))
}

func TestApplyTotals_RecalculaImportesRecibidos(t *testing.T) {
	inv := &entity.Invoice{
		Items: []entity.InvoiceItem{
			{Quantity: d("2"), Rate: d("50"), Amount: d("999")}, // importe manipulado
			{Quantity: d("1"), Rate: d("25.5")},
		},
		TaxRate:     d("10"),
		TotalAmount: d("1"),
	}
	billing.ApplyTotals(inv)

	assert.True(t, d("100").Equal(inv.Items[0].Amount))
	assert.True(t, d("25.5").Equal(inv.Items[1].Amount))
	assert.True(t, d("125.5").Equal(inv.TotalAmount))
	assert.True(t, d("12.55").Equal(inv.TaxAmount))
	assert.True(t, d("138.05").Equal(billing.InvoiceGrandTotal(inv)))
}

func TestResolveCurrency_Precedencia(t *testing.T) {
	inv := &entity.Invoice{}
	assert.Equal(t, "USD", billing.ResolveCurrency(inv))

	inv.Client.Currency = "gbp"
	assert.Equal(t, "GBP", billing.ResolveCurrency(inv))

	inv.Company.Currency = "EUR"
	assert.Equal(t, "EUR", billing.ResolveCurrency(inv))

	inv.Currency = "CHF"
	assert.Equal(t, "CHF", billing.ResolveCurrency(inv))
}

func TestResolveCurrency_CodigoInvalidoPasaAlSiguiente(t *testing.T) {
	inv := &entity.Invoice{Currency: "XX"}
	inv.Company.Currency = "EUR"
	inv.Client.Currency = "GBP"
	assert.Equal(t, "EUR", billing.ResolveCurrency(inv))

	inv.Company.Currency = "???"
	assert.Equal(t, "GBP", billing.ResolveCurrency(inv))

	inv.Client.Currency = ""
	assert.Equal(t, "USD", billing.ResolveCurrency(inv))
}
