package numbering_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/numbering"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
)

func TestNext_EmpiezaEn101(t *testing.T) {
	g := numbering.NewGenerator(memory.NewKVStore(), zerolog.Nop())
	assert.Equal(t, "INV-101", g.Next(context.Background()))
}

func TestNext_EstrictamenteCrecienteYUnico(t *testing.T) {
	ctx := context.Background()
	g := numbering.NewGenerator(memory.NewKVStore(), zerolog.Nop())

	seen := make(map[string]bool)
	prev := 0
	for i := 0; i < 50; i++ {
		num := g.Next(ctx)
		require.True(t, strings.HasPrefix(num, "INV-"), num)
		n, err := strconv.Atoi(strings.TrimPrefix(num, "INV-"))
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
		prev = n
	}
}

func TestNext_PersisteElContador(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	numbering.NewGenerator(kv, zerolog.Nop()).Next(ctx)

	// Un segundo generador sobre el mismo almacén continúa la secuencia.
	assert.Equal(t, "INV-102", numbering.NewGenerator(kv, zerolog.Nop()).Next(ctx))
	v, ok, err := kv.Get(ctx, numbering.CounterKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "102", v)
}

func TestNext_ValorCorruptoVuelveA100(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(ctx, numbering.CounterKey, "abc"))

	assert.Equal(t, "INV-101", numbering.NewGenerator(kv, zerolog.Nop()).Next(ctx))
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("kv caído")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("kv caído") }

func TestNext_ErroresDelAlmacenNoSePropagan(t *testing.T) {
	g := numbering.NewGenerator(failingKV{}, zerolog.Nop())
	assert.Equal(t, "INV-101", g.Next(context.Background()))
}

func TestPeek_NoConsume(t *testing.T) {
	ctx := context.Background()
	g := numbering.NewGenerator(memory.NewKVStore(), zerolog.Nop())
	assert.Equal(t, "INV-101", g.Peek(ctx))
	assert.Equal(t, "INV-101", g.Next(ctx))
	assert.Equal(t, "INV-102", g.Peek(ctx))
}
