package ubl_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/ubl"
)

func invoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "8d1e",
		InvoiceNumber: "INV-101",
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		Company:       entity.CompanyTemplate{Name: "Mi Estudio SL", Currency: "EUR", TaxID: "B12345678"},
		Client:        entity.ClientInfo{Name: "Acme & Co"},
		Items: []entity.InvoiceItem{
			{Description: "Diseño", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50)},
		},
		TaxRate: decimal.NewFromInt(21),
		Status:  entity.InvoiceStatusSent,
	}
}

func TestXMLRenderer_ContieneTotalesYMoneda(t *testing.T) {
	out, err := ubl.NewXMLRenderer().Render(context.Background(), invoice())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)

	assert.Equal(t, "INV-101", root.FindElement("./cbc:ID").Text())
	assert.Equal(t, "EUR", root.FindElement("./cbc:DocumentCurrencyCode").Text())

	payable := root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount")
	require.NotNil(t, payable)
	assert.Equal(t, "121.00", payable.Text())
	assert.Equal(t, "EUR", payable.SelectAttrValue("currencyID", ""))

	name := root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name")
	require.NotNil(t, name)
	assert.Equal(t, "Acme & Co", name.Text())
}

func TestXMLRenderer_SalidaDeterminista(t *testing.T) {
	r := ubl.NewXMLRenderer()
	a, err := r.Render(context.Background(), invoice())
	require.NoError(t, err)
	b, err := r.Render(context.Background(), invoice())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
