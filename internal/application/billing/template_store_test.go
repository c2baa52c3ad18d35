package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func TestTemplateStore_SiembraEjemplosParaUsuarioNuevo(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	list, err := f.tplStore.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, tpl := range list {
		assert.False(t, billing.IsSampleID(tpl.ID), "las sembradas llevan uuid propio")
		assert.Equal(t, userID, tpl.UserID)
	}

	rows, err := f.templates.TemplateRepository.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// Una segunda carga no vuelve a sembrar.
	list, err = f.tplStore.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTemplateStore_ErrorDeLecturaDevuelveEjemplos(t *testing.T) {
	f := newFixture()
	f.templates.failList = true

	list, err := f.tplStore.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, billing.IsSampleID(list[0].ID))
}

func TestTemplateStore_ErrorAlSembrarDevuelveEjemplos(t *testing.T) {
	f := newFixture()
	f.templates.failCreate = true

	list, err := f.tplStore.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, billing.IsSampleID(list[2].ID))
}

func TestTemplateStore_BorrarEjemploSimulaExito(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	require.NoError(t, f.tplStore.Delete(ctx, userID, "sample-acme"))
	require.NoError(t, f.tplStore.Delete(ctx, "", "cualquier-id"))
	assert.Zero(t, f.templates.deletes)
}

func TestTemplateStore_BorradoRealAcotadoPorUsuario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tpl, err := f.tplStore.Add(ctx, userID, &entity.CompanyTemplate{Name: "Cliente Uno"})
	require.NoError(t, err)

	err = f.tplStore.Delete(ctx, "otro", tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.tplStore.Delete(ctx, userID, tpl.ID))
	_, err = f.tplStore.Get(ctx, userID, tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateStore_AddRequiereNombre(t *testing.T) {
	f := newFixture()
	_, err := f.tplStore.Add(context.Background(), userID, &entity.CompanyTemplate{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateStore_NoSeEditanEjemplos(t *testing.T) {
	f := newFixture()
	_, err := f.tplStore.Update(context.Background(), userID, &entity.CompanyTemplate{ID: "sample-acme", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
