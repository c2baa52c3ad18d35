package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

func bulkRequest(f *fixture, t *testing.T, amounts ...string) dto.BulkGenerateRequest {
	t.Helper()
	templates, err := f.tplStore.List(context.Background(), userID)
	require.NoError(t, err)
	in := dto.BulkGenerateRequest{Date: "2025-04-01", DueDate: "2025-04-15"}
	for i, a := range amounts {
		in.Rows = append(in.Rows, dto.BulkGenerateRowRequest{
			TemplateID:  templates[i%len(templates)].ID,
			Amount:      a,
			Description: "Cuota mensual",
		})
	}
	return in
}

func TestBulkGenerate_SoloFilasConImportePositivo(t *testing.T) {
	f := newFixture().withCompany()
	res, err := f.bulkUC.Generate(context.Background(), userID, bulkRequest(f, t, "100", "", "-5"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Invoices, 1)

	inv := res.Invoices[0]
	require.Len(t, inv.Items, 1)
	assert.True(t, d("1").Equal(inv.Items[0].Quantity))
	assert.True(t, d("100").Equal(inv.Items[0].Rate))
	assert.True(t, d("100").Equal(inv.TotalAmount))
	assert.Equal(t, "Cuota mensual", inv.Items[0].Description)
	assert.Equal(t, "Mi Estudio SL", inv.Company.Name)
}

func TestBulkGenerate_SinFilasValidasInformaFallo(t *testing.T) {
	f := newFixture().withCompany()
	res, err := f.bulkUC.Generate(context.Background(), userID, bulkRequest(f, t, "abc", "0", ""))
	assert.ErrorIs(t, err, domain.ErrNoValidRows)
	require.NotNil(t, res)
	assert.Zero(t, res.Created)

	list, err := f.store.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBulkGenerate_SiempreMarcaPagadas(t *testing.T) {
	f := newFixture().withCompany()
	res, err := f.bulkUC.Generate(context.Background(), userID, bulkRequest(f, t, "10", "20.50", "30"))
	require.NoError(t, err)
	require.Len(t, res.Invoices, 3)

	numbers := map[string]bool{}
	for _, inv := range res.Invoices {
		assert.Equal(t, "paid", inv.Status)
		numbers[inv.InvoiceNumber] = true
	}
	assert.Len(t, numbers, 3, "cada factura recibe un número propio")
}

func TestBulkGenerate_DescripcionGlobalTienePrioridad(t *testing.T) {
	f := newFixture().withCompany()
	in := bulkRequest(f, t, "10")
	in.Description = "Servicios de abril"
	res, err := f.bulkUC.Generate(context.Background(), userID, in)
	require.NoError(t, err)
	assert.Equal(t, "Servicios de abril", res.Invoices[0].Items[0].Description)
}

func TestBulkGenerate_SinEmpresaConfigurada(t *testing.T) {
	f := newFixture()
	_, err := f.bulkUC.Generate(context.Background(), userID, bulkRequest(f, t, "10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkGenerate_NingunaGuardadaEsFallo(t *testing.T) {
	f := newFixture().withCompany()
	in := bulkRequest(f, t, "10", "20")
	f.invoices.failCreate = true

	res, err := f.bulkUC.Generate(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrBulkGenerationFailed)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Failed)
}
