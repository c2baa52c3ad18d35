package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func TestSnapshot_CopiasSobrevivenAlJSONB(t *testing.T) {
	company := entity.CompanyTemplate{ID: "c1", Name: "Globex GmbH", IsEU: true, Currency: "EUR", TaxID: "DE1"}
	client := entity.ClientInfo{Name: "Acme", City: "New York", Currency: "USD"}
	items := []entity.InvoiceItem{{
		ID: "i1", Description: "Soporte", Quantity: decimal.RequireFromString("1.5"),
		Rate: decimal.RequireFromString("80"), Amount: decimal.RequireFromString("120"),
	}}

	rawCompany, err := encodeCompany(company)
	require.NoError(t, err)
	rawClient, err := encodeClient(client)
	require.NoError(t, err)
	rawItems, err := encodeItems(items)
	require.NoError(t, err)

	inv := invoiceRow{Company: rawCompany, Client: rawClient, Items: rawItems, Status: "paid"}.toEntity()
	assert.Equal(t, company, inv.Company)
	assert.Equal(t, client, inv.Client)
	require.Len(t, inv.Items, 1)
	assert.True(t, items[0].Quantity.Equal(inv.Items[0].Quantity))
	assert.True(t, items[0].Amount.Equal(inv.Items[0].Amount))
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

func TestSnapshot_JSONIlegibleUsaValoresVacios(t *testing.T) {
	inv := invoiceRow{
		Company: []byte("{roto"),
		Client:  nil,
		Items:   []byte(`"no es una lista"`),
		Status:  "archivada",
	}.toEntity()

	assert.Empty(t, inv.Company.Name)
	assert.Empty(t, inv.Client.Name)
	assert.NotNil(t, inv.Items)
	assert.Empty(t, inv.Items)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
}

func TestSnapshot_TotalesSeRecalculanDesdeLasLineas(t *testing.T) {
	rawItems, err := encodeItems([]entity.InvoiceItem{{
		ID: "i1", Quantity: decimal.RequireFromString("0.333"), Rate: decimal.RequireFromString("12.345"),
	}})
	require.NoError(t, err)

	// columnas NUMERIC redondeadas a 4 decimales
	inv := invoiceRow{
		Items:       rawItems,
		Status:      "sent",
		TotalAmount: decimal.RequireFromString("4.1109"),
		TaxRate:     decimal.RequireFromString("10"),
		TaxAmount:   decimal.RequireFromString("0.4111"),
	}.toEntity()

	assert.True(t, decimal.RequireFromString("4.110885").Equal(inv.Items[0].Amount))
	assert.True(t, decimal.RequireFromString("4.110885").Equal(inv.TotalAmount), "got %s", inv.TotalAmount)
	assert.True(t, decimal.RequireFromString("0.4110885").Equal(inv.TaxAmount), "got %s", inv.TaxAmount)
}
