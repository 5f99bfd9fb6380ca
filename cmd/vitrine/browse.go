package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnwards/vitrine/internal/browse"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [url]",
		Short: "Browse the catalog interactively",
		Long: `Start a line-oriented listing session on stdin. Commands:

  marca <slug>, categoria <slug>, genero <valor>   toggle a filter
  preco "<faixa>", estado Novo|Usado                select a single filter
  ordenar <ordem>, busca <texto>                    sort and search
  pagina <n>, itens <n>                             paginate
  limpar, repetir, abrir <url>, ajuda, sair`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), loadConfig(cmd))
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			sess := browse.New(a.store.Catalog, a.resolver,
				browse.WithLogger(a.logger),
				browse.WithTimeout(a.cfg.FetchTimeout),
			)
			in := cmd.InOrStdin()
			if len(args) == 1 {
				in = io.MultiReader(strings.NewReader("abrir "+args[0]+"\n"), in)
			}
			return browse.RunREPL(cmd.Context(), sess, in, cmd.OutOrStdout())
		},
	}
	addDBFlags(cmd)
	return cmd
}
