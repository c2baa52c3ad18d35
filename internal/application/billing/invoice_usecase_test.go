package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

func invoiceRequest() dto.InvoiceRequest {
	return dto.InvoiceRequest{
		Date:    "2025-04-01",
		DueDate: "2025-04-30",
		Client:  &dto.ClientInfoDTO{Name: "Acme", Currency: "usd"},
		Items: []dto.InvoiceItemRequest{
			{Description: "Diseño", Quantity: d("3"), Rate: d("40")},
			{Description: "Hosting", Quantity: d("1"), Rate: d("15.5")},
		},
		TaxRate: d("10"),
	}
}

func TestInvoiceUseCase_CreateAsignaNumeroYTotales(t *testing.T) {
	f := newFixture().withCompany()
	out, err := f.invoiceUC.Create(context.Background(), userID, invoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV-101", out.InvoiceNumber)
	assert.Equal(t, "Mi Estudio SL", out.Company.Name)
	assert.Equal(t, "draft", out.Status)
	assert.True(t, d("135.5").Equal(out.TotalAmount))
	assert.True(t, d("13.55").Equal(out.TaxAmount))
	assert.True(t, d("149.05").Equal(out.GrandTotal))
	assert.Equal(t, "EUR", out.Currency, "la moneda de la empresa precede a la del cliente")

	second, err := f.invoiceUC.Create(context.Background(), userID, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-102", second.InvoiceNumber)
}

func TestInvoiceUseCase_CreateConPlantillaCopiaElCliente(t *testing.T) {
	ctx := context.Background()
	f := newFixture().withCompany()
	templates, err := f.tplStore.List(ctx, userID)
	require.NoError(t, err)

	in := invoiceRequest()
	in.Client = nil
	in.TemplateID = templates[1].ID
	out, err := f.invoiceUC.Create(ctx, userID, in)
	require.NoError(t, err)
	assert.Equal(t, templates[1].Name, out.Client.Name)

	// Editar la plantilla no altera la factura emitida.
	tpl := templates[1]
	tpl.Name = "Nombre nuevo"
	_, err = f.tplStore.Update(ctx, userID, tpl)
	require.NoError(t, err)
	got, err := f.invoiceUC.Get(ctx, userID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, templates[1].Name, got.Client.Name)
}

func TestInvoiceUseCase_CreateValidaEntrada(t *testing.T) {
	f := newFixture().withCompany()
	tests := []struct {
		name   string
		mutate func(*dto.InvoiceRequest)
	}{
		{"sin líneas", func(r *dto.InvoiceRequest) { r.Items = nil }},
		{"cantidad cero", func(r *dto.InvoiceRequest) { r.Items[0].Quantity = d("0") }},
		{"tarifa negativa", func(r *dto.InvoiceRequest) { r.Items[0].Rate = d("-1") }},
		{"fecha inválida", func(r *dto.InvoiceRequest) { r.Date = "01/04/2025" }},
		{"estado desconocido", func(r *dto.InvoiceRequest) { r.Status = "archived" }},
		{"sin cliente", func(r *dto.InvoiceRequest) { r.Client = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := invoiceRequest()
			tt.mutate(&in)
			_, err := f.invoiceUC.Create(context.Background(), userID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInvoiceUseCase_CreateSinEmpresaConfigurada(t *testing.T) {
	f := newFixture()
	_, err := f.invoiceUC.Create(context.Background(), userID, invoiceRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_UpdateConservaNumero(t *testing.T) {
	ctx := context.Background()
	f := newFixture().withCompany()
	created, err := f.invoiceUC.Create(ctx, userID, invoiceRequest())
	require.NoError(t, err)

	in := invoiceRequest()
	in.Items = in.Items[:1]
	in.Status = "sent"
	updated, err := f.invoiceUC.Update(ctx, userID, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, "sent", updated.Status)
	assert.True(t, d("120").Equal(updated.TotalAmount))
}

func TestInvoiceUseCase_ListFiltraPapelera(t *testing.T) {
	ctx := context.Background()
	f := newFixture().withCompany()
	a, err := f.invoiceUC.Create(ctx, userID, invoiceRequest())
	require.NoError(t, err)
	_, err = f.invoiceUC.Create(ctx, userID, invoiceRequest())
	require.NoError(t, err)
	_, err = f.invoiceUC.SoftDelete(ctx, userID, a.ID)
	require.NoError(t, err)

	active, err := f.invoiceUC.List(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	trash, err := f.invoiceUC.List(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, a.ID, trash[0].ID)
}

func TestInvoiceUseCase_BulkUpdateFechaMalFormada(t *testing.T) {
	f := newFixture()
	bad := "ayer"
	_, err := f.invoiceUC.BulkUpdate(context.Background(), userID, dto.BulkUpdateRequest{IDs: []string{"a"}, Date: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
