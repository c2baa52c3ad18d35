// Package numbering asigna los números legibles de factura ("INV-101", "INV-102", ...).
package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

const (
	// CounterKey clave del contador global en el KVStore.
	CounterKey = "invoice_counter"
	// InitialCounter valor usado cuando el contador no existe o está corrupto.
	InitialCounter = 100
	// Prefix de los números de factura.
	Prefix = "INV-"
)

// Generator contador monotónico persistido en un KVStore inyectado.
// El mutex serializa a los llamadores de este proceso; dos procesos con el mismo
// KVStore pueden seguir produciendo duplicados.
type Generator struct {
	kv  repository.KVStore
	log zerolog.Logger
	mu  sync.Mutex
}

// NewGenerator construye el generador.
func NewGenerator(kv repository.KVStore, log zerolog.Logger) *Generator {
	return &Generator{kv: kv, log: log}
}

// Next incrementa el contador, lo persiste y devuelve "INV-{n}".
// No falla: un valor ilegible vuelve a 100 y un error de escritura solo se registra.
func (g *Generator) Next(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.current(ctx) + 1
	if err := g.kv.Set(ctx, CounterKey, strconv.Itoa(n)); err != nil {
		g.log.Error().Err(err).Int("counter", n).Msg("persistir contador de facturas")
	}
	return Format(n)
}

// Peek devuelve el número que asignaría Next sin consumirlo.
func (g *Generator) Peek(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Format(g.current(ctx) + 1)
}

func (g *Generator) current(ctx context.Context) int {
	raw, ok, err := g.kv.Get(ctx, CounterKey)
	if err != nil {
		g.log.Warn().Err(err).Msg("leer contador de facturas, se usa el valor inicial")
		return InitialCounter
	}
	if !ok {
		return InitialCounter
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		g.log.Warn().Str("value", raw).Msg("contador de facturas corrupto, se reinicia")
		return InitialCounter
	}
	return n
}

// Format devuelve el número de factura para el contador n.
func Format(n int) string {
	return fmt.Sprintf("%s%d", Prefix, n)
}
