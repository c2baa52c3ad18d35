package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
)

var seedUser string

var seedTemplatesCmd = &cobra.Command{
	Use:   "seed-templates",
	Short: "Siembra las tres plantillas de ejemplo para un usuario sin plantillas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		store := billing.NewTemplateStore(postgres.NewTemplateRepository(e.pool), e.log.Component("template_store"))
		n, err := store.Seed(ctx, seedUser)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "el usuario ya tiene plantillas, no se sembró nada")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d plantillas sembradas\n", n)
		return nil
	},
}

func init() {
	seedTemplatesCmd.Flags().StringVar(&seedUser, "user", "", "id del usuario")
	_ = seedTemplatesCmd.MarkFlagRequired("user")
}
