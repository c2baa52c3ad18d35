package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/archive"
)

func TestZipBuilder_ConservaNombresYContenido(t *testing.T) {
	data, err := archive.NewZipBuilder().Build([]export.File{
		{Name: "INV-101.pdf", Data: []byte("uno")},
		{Name: "INV-102.pdf", Data: []byte("dos")},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	want := map[string]string{"INV-101.pdf": "uno", "INV-102.pdf": "dos"}
	for i, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Equal(t, want[f.Name], string(body), "entrada %d", i)
	}
	assert.Equal(t, "INV-101.pdf", zr.File[0].Name)
}
