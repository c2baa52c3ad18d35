package export

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Formatos de documento admitidos.
const (
	FormatPDF = "pdf"
	FormatXML = "xml"
)

// Renderer produce el documento de una factura en un formato concreto.
type Renderer interface {
	Render(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
	// ContentType tipo MIME del documento generado.
	ContentType() string
}

// File entrada con nombre dentro de un archivo comprimido.
type File struct {
	Name string
	Data []byte
}

// Archiver empaqueta varios documentos en un único archivo.
type Archiver interface {
	Build(files []File) ([]byte, error)
}
