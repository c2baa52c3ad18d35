package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func TestInvoiceStore_ListSinUsuarioDevuelveVacio(t *testing.T) {
	f := newFixture()
	list, err := f.store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceStore_AddSinUsuarioNoEscribe(t *testing.T) {
	f := newFixture()
	_, err := f.store.Add(context.Background(), "", sampleInvoice("INV-1"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	rows, _ := f.invoices.InvoiceRepository.ListByUser(context.Background(), "")
	assert.Empty(t, rows)
}

func TestInvoiceStore_AddRecalculaTotales(t *testing.T) {
	f := newFixture()
	inv := sampleInvoice("INV-1")
	inv.TotalAmount = d("1")

	saved, err := f.store.Add(context.Background(), userID, inv)
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, entity.InvoiceStatusDraft, saved.Status)
	assert.False(t, saved.Deleted)
	assert.True(t, d("300").Equal(saved.TotalAmount))
	assert.True(t, d("63").Equal(saved.TaxAmount))
}

func TestInvoiceStore_FalloDelRepositorioNoTocaLaCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	require.NoError(t, err)

	f.invoices.failCreate = true
	_, err = f.store.Add(ctx, userID, sampleInvoice("INV-2"))
	require.Error(t, err)

	f.invoices.failList = true
	list, err := f.store.List(ctx, userID)
	require.Error(t, err)
	require.Len(t, list, 1, "debe devolver la caché previa")
	assert.Equal(t, "INV-1", list[0].InvoiceNumber)
}

func TestInvoiceStore_PapeleraIdaYVuelta(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	saved, err := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	require.NoError(t, err)

	deleted, err := f.store.SoftDelete(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	require.NotNil(t, deleted.DeletedAt)

	list, err := f.store.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, billing.FilterDeleted(list, true), 1)
	assert.Empty(t, billing.FilterDeleted(list, false))

	restored, err := f.store.Restore(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deleted)
	assert.Nil(t, restored.DeletedAt)

	assert.Equal(t, saved.InvoiceNumber, restored.InvoiceNumber)
	assert.Equal(t, saved.Items, restored.Items)
	assert.True(t, saved.TotalAmount.Equal(restored.TotalAmount))
}

func TestInvoiceStore_SoftDeleteFallidoConservaEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	saved, err := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	require.NoError(t, err)

	f.invoices.failIDs[saved.ID] = true
	_, err = f.store.SoftDelete(ctx, userID, saved.ID)
	require.Error(t, err)

	got, err := f.store.Get(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.False(t, got.Deleted)
}

func TestInvoiceStore_HardDeleteEsIrreversible(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	saved, err := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	require.NoError(t, err)

	require.NoError(t, f.store.HardDelete(ctx, userID, saved.ID))
	_, err = f.store.Get(ctx, userID, saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.Restore(ctx, userID, saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceStore_NoVeFacturasDeOtroUsuario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	saved, err := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	require.NoError(t, err)

	_, err = f.store.Get(ctx, "otro", saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = f.store.HardDelete(ctx, "otro", saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceStore_BulkUpdateSoloNotasNoTocaFechas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, _ := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	b, _ := f.store.Add(ctx, userID, sampleInvoice("INV-2"))

	notes := "x"
	res, err := f.store.BulkUpdate(ctx, userID, []string{a.ID, b.ID}, entity.InvoicePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)

	for _, src := range []*entity.Invoice{a, b} {
		cached, err := f.store.Get(ctx, userID, src.ID)
		require.NoError(t, err)
		assert.Equal(t, "x", cached.Notes)
		assert.Equal(t, src.Date, cached.Date)
		assert.Equal(t, src.DueDate, cached.DueDate)
	}

	// El repositorio tampoco cambió las fechas.
	fresh := billing.NewInvoiceStore(f.invoices, zerolog.Nop())
	list, err := fresh.List(ctx, userID)
	require.NoError(t, err)
	for _, inv := range list {
		assert.Equal(t, "x", inv.Notes)
		assert.Equal(t, a.Date, inv.Date)
	}
}

func TestInvoiceStore_BulkUpdateContinuaTrasUnFallo(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a, _ := f.store.Add(ctx, userID, sampleInvoice("INV-1"))
	b, _ := f.store.Add(ctx, userID, sampleInvoice("INV-2"))
	c, _ := f.store.Add(ctx, userID, sampleInvoice("INV-3"))
	f.invoices.failIDs[b.ID] = true

	notes := "revisado"
	res, err := f.store.BulkUpdate(ctx, userID, []string{a.ID, b.ID, c.ID}, entity.InvoicePatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, b.ID, res.Errors[0].ID)

	got, _ := f.store.Get(ctx, userID, b.ID)
	assert.Empty(t, got.Notes)
	got, _ = f.store.Get(ctx, userID, c.ID)
	assert.Equal(t, "revisado", got.Notes)
}

func TestInvoiceStore_BulkUpdateSinCampos(t *testing.T) {
	f := newFixture()
	_, err := f.store.BulkUpdate(context.Background(), userID, []string{"a"}, entity.InvoicePatch{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
