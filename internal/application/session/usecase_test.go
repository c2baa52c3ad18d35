package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/session"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
)

func TestLastRoute_GuardaPorUsuario(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	uc := session.NewUseCase(kv)

	route, err := uc.LastRoute(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, route)

	require.NoError(t, uc.SaveLastRoute(ctx, "u1", "/invoices/42"))
	require.NoError(t, uc.SaveLastRoute(ctx, "u2", "/templates"))

	route, err = uc.LastRoute(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "/invoices/42", route)

	raw, ok, err := kv.Get(ctx, "last_route:u2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/templates", raw)
}

func TestSaveLastRoute_RechazaRutasExternas(t *testing.T) {
	uc := session.NewUseCase(memory.NewKVStore())
	for _, r := range []string{"", "invoices", "//evil.example", "https://evil.example"} {
		assert.ErrorIs(t, uc.SaveLastRoute(context.Background(), "u1", r), domain.ErrInvalidInput, r)
	}
}

func TestLastRoute_SinUsuario(t *testing.T) {
	_, err := session.NewUseCase(memory.NewKVStore()).LastRoute(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
