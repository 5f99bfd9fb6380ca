package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/store"
)

type renderedSQL struct {
	Count      string `json:"count"`
	CountArgs  []any  `json:"countArgs"`
	Select     string `json:"select"`
	SelectArgs []any  `json:"selectArgs"`
}

type queryReport struct {
	State    listing.State `json:"state"`
	URL      string        `json:"url"`
	ClearURL string        `json:"clearUrl"`
	Query    listing.Query `json:"query"`
	SQL      renderedSQL   `json:"sql"`
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <url>",
		Short: "Decode a listing URL and print its state, query and SQL",
		Long: `Decode a listing URL (full URL, path with query, or bare query string),
resolve its brand and category slugs against the catalog and print the
canonical URL, the catalog query and the SQL it renders to as JSON.

With --offline no database is opened; brand and category filters are then
dropped as unresolvable.`,
		Example: `  vitrine query '/produtos?categoria=tenis&preco=R%2450+a+R%24100&ordenar=menor_preco&pagina=2'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			offline, _ := cmd.Flags().GetBool("offline")

			if offline {
				d, err := database.ParseDriver(cfg.DBDriver)
				if err != nil {
					return err
				}
				return describe(cmd.Context(), cmd.OutOrStdout(), args[0], nil, d, zap.NewNop())
			}

			a, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			return describe(cmd.Context(), cmd.OutOrStdout(), args[0], a.resolver, a.store.Dialect, a.logger)
		},
	}
	addDBFlags(cmd)
	cmd.Flags().Bool("offline", false, "do not open the database; render for --driver")
	return cmd
}

// describe writes the query report for raw as indented JSON.
func describe(ctx context.Context, w io.Writer, raw string, r listing.Resolver, d database.Dialect, logger *zap.Logger) error {
	st, err := listing.ParseURL(raw)
	if err != nil {
		return err
	}
	q := listing.BuildQuery(ctx, st, r, logger)
	stmt, err := store.Render(q, d)
	if err != nil {
		return fmt.Errorf("render query: %w", err)
	}

	report := queryReport{State: st, URL: st.URL(), ClearURL: st.ClearAll().URL(), Query: q}
	report.SQL.Count, report.SQL.CountArgs = stmt.CountSQL()
	report.SQL.Select, report.SQL.SelectArgs = stmt.SelectSQL()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
