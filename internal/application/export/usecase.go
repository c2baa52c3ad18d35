// Package export genera los documentos de factura (PDF, XML) y los empaqueta en un ZIP.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ArchiveContentType tipo MIME del archivo comprimido.
const ArchiveContentType = "application/zip"

// Document documento listo para descargar.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UseCase exportación de facturas del usuario.
type UseCase struct {
	store         *billing.InvoiceStore
	renderers     map[string]Renderer
	archiver      Archiver
	defaultFormat string
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso. renderers se indexa por formato (FormatPDF, FormatXML).
func NewUseCase(
	store *billing.InvoiceStore,
	renderers map[string]Renderer,
	archiver Archiver,
	defaultFormat string,
	log zerolog.Logger,
) *UseCase {
	if defaultFormat == "" {
		defaultFormat = FormatPDF
	}
	return &UseCase{
		store:         store,
		renderers:     renderers,
		archiver:      archiver,
		defaultFormat: defaultFormat,
		log:           log,
	}
}

// RenderOne genera el documento de una factura.
func (uc *UseCase) RenderOne(ctx context.Context, userID, id, format string) (*Document, error) {
	format, r, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	inv, err := uc.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	data, err := r.Render(ctx, inv)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", id).Str("format", format).Msg("generar documento")
		return nil, fmt.Errorf("generar documento: %w", err)
	}
	return &Document{
		Filename:    DocumentFilename(inv, format),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// RenderMany genera cada documento por separado. Una factura que falla se registra y se omite.
func (uc *UseCase) RenderMany(ctx context.Context, invoices []*entity.Invoice, format string) ([]File, error) {
	format, r, err := uc.renderer(format)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(invoices))
	used := make(map[string]int, len(invoices))
	for _, inv := range invoices {
		data, err := r.Render(ctx, inv)
		if err != nil {
			uc.log.Error().Err(err).Str("invoice_id", inv.ID).Str("invoice_number", inv.InvoiceNumber).Msg("exportación: factura omitida")
			continue
		}
		files = append(files, File{Name: uniqueName(used, DocumentFilename(inv, format)), Data: data})
	}
	return files, nil
}

// ExportArchive genera los documentos de ids y los empaqueta en un ZIP.
// Las ids inexistentes se ignoran; sin ningún documento generado devuelve ErrNothingExported.
func (uc *UseCase) ExportArchive(ctx context.Context, userID string, ids []string, format string) (*Document, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: seleccione al menos una factura", domain.ErrInvalidInput)
	}
	invoices, err := uc.store.GetMany(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, domain.ErrNotFound
	}
	files, err := uc.RenderMany(ctx, invoices, format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.ErrNothingExported
	}
	data, err := uc.archiver.Build(files)
	if err != nil {
		return nil, fmt.Errorf("empaquetar documentos: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Int("requested", len(ids)).Int("exported", len(files)).Msg("exportación")
	return &Document{
		Filename:    ArchiveFilename(invoices),
		ContentType: ArchiveContentType,
		Data:        data,
	}, nil
}

func (uc *UseCase) renderer(format string) (string, Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = uc.defaultFormat
	}
	r, ok := uc.renderers[format]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return format, r, nil
}

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// sanitize deja un fragmento apto para nombre de archivo ("Acme Corp." → "Acme_Corp.").
func sanitize(s string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_"), "_")
}

// DocumentFilename nombre del documento de una factura: "{número}.{formato}".
func DocumentFilename(inv *entity.Invoice, format string) string {
	base := sanitize(inv.InvoiceNumber)
	if base == "" {
		base = inv.ID
	}
	return base + "." + format
}

// ArchiveFilename nombre del ZIP a partir del año y mes de la primera factura:
// "2025_April_Acme_Invoices.zip" si todas comparten cliente, "2025_April_Invoices.zip" si no.
func ArchiveFilename(invoices []*entity.Invoice) string {
	if len(invoices) == 0 {
		return "Invoices.zip"
	}
	first := invoices[0]
	prefix := fmt.Sprintf("%d_%s_", first.Date.Year(), first.Date.Month().String())

	client := first.Client.Name
	for _, inv := range invoices[1:] {
		if inv.Client.Name != client {
			client = ""
			break
		}
	}
	if name := sanitize(client); name != "" {
		return prefix + name + "_Invoices.zip"
	}
	return prefix + "Invoices.zip"
}

// uniqueName agrega "-2", "-3"... cuando el nombre ya está en el ZIP.
// Cada nombre devuelto queda registrado, también los sufijados.
func uniqueName(used map[string]int, name string) string {
	if used[name] == 0 {
		used[name] = 1
		return name
	}
	base, ext := name, ""
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		base, ext = name[:dot], name[dot:]
	}
	for n := used[name] + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if used[candidate] == 0 {
			used[name] = n
			used[candidate] = 1
			return candidate
		}
	}
}
