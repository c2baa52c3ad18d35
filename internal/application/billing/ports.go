package billing

import "context"

// NumberGenerator asigna el número legible de cada factura nueva (implementado por numbering.Generator).
type NumberGenerator interface {
	Next(ctx context.Context) string
}
