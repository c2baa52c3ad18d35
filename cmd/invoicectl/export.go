package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/archive"
	infrapdf "github.com/jhoicas/Facturador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/ubl"
)

var (
	exportUser   string
	exportIDs    []string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Genera un ZIP con los documentos de las facturas indicadas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		store := billing.NewInvoiceStore(postgres.NewInvoiceRepository(e.pool), e.log.Component("invoice_store"))
		uc := export.NewUseCase(store, map[string]export.Renderer{
			export.FormatPDF: infrapdf.NewMarotoPDFGenerator(),
			export.FormatXML: ubl.NewXMLRenderer(),
		}, archive.NewZipBuilder(), e.cfg.Export.DefaultFormat, e.log.Component("export"))

		doc, err := uc.ExportArchive(ctx, exportUser, exportIDs, exportFormat)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = doc.Filename
		}
		if err := os.WriteFile(out, doc.Data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, len(doc.Data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "id del usuario dueño de las facturas")
	exportCmd.Flags().StringSliceVar(&exportIDs, "ids", nil, "ids de factura separados por coma")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "pdf o xml (por defecto EXPORT_DEFAULT_FORMAT)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "archivo de salida (por defecto el nombre sugerido)")
	_ = exportCmd.MarkFlagRequired("user")
	_ = exportCmd.MarkFlagRequired("ids")
}
