package currency_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/pkg/currency"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "EUR", currency.Normalize("eur"))
	assert.Equal(t, "USD", currency.Normalize(""))
	assert.Equal(t, "USD", currency.Normalize("no-es-moneda"))
}

func TestFormat_UsaCodigoISO(t *testing.T) {
	out := currency.Format(decimal.RequireFromString("1234.5"), "EUR")
	assert.True(t, strings.HasPrefix(out, "EUR "), out)
	assert.Contains(t, out, "234")
}

func TestFormat_MonedaInvalidaCaeEnUSD(t *testing.T) {
	out := currency.Format(decimal.NewFromInt(10), "???")
	assert.True(t, strings.HasPrefix(out, "USD "), out)
}

func TestValid(t *testing.T) {
	assert.True(t, currency.Valid("eur"))
	assert.True(t, currency.Valid(" USD "))
	assert.False(t, currency.Valid(""))
	assert.False(t, currency.Valid("XX"))
}
