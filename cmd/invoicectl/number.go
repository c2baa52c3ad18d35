package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturador-api/internal/application/numbering"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
)

var peekNumber bool

var nextNumberCmd = &cobra.Command{
	Use:   "next-number",
	Short: "Consume y muestra el siguiente número de factura (--peek solo lo muestra)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		gen := numbering.NewGenerator(postgres.NewKVStore(e.pool), e.log.Component("numbering"))
		if peekNumber {
			fmt.Fprintln(cmd.OutOrStdout(), gen.Peek(ctx))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), gen.Next(ctx))
		return nil
	},
}

func init() {
	nextNumberCmd.Flags().BoolVar(&peekNumber, "peek", false, "mostrar el número sin consumirlo")
}
