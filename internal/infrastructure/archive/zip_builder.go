// Package archive empaqueta documentos exportados en un ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/jhoicas/Facturador-api/internal/application/export"
)

var _ export.Archiver = (*ZipBuilder)(nil)

// ZipBuilder implementa export.Archiver con archive/zip.
type ZipBuilder struct {
	now func() time.Time
}

// NewZipBuilder construye el empaquetador.
func NewZipBuilder() *ZipBuilder {
	return &ZipBuilder{now: time.Now}
}

// Build devuelve los bytes de un ZIP con una entrada por archivo, en el orden recibido.
func (b *ZipBuilder) Build(files []export.File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := b.now()

	for _, f := range files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
