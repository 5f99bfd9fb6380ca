package main

import (
	"github.com/spf13/cobra"

	"github.com/johnwards/vitrine/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vitrine",
		Short: "Storefront catalog listing service",
		Long: `vitrine serves a product catalog whose listing view is driven by
URL query parameters (marca, categoria, genero, preco, estado, ordenar,
pagina, itens, q).

Configuration comes from VITRINE_* environment variables or a .env file.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newQueryCmd(), newBrowseCmd())
	return root
}

// loadConfig applies the flags shared by the subcommands on top of the
// environment.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DSN = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.DBDriver = v
	}
	return cfg
}

func addDBFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "database DSN (overrides VITRINE_DB)")
	cmd.Flags().String("driver", "", "database driver: sqlite or postgres (overrides VITRINE_DB_DRIVER)")
}
