package browse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/textnorm"
)

const replHelp = `comandos:
  marca <slug>        categoria <slug>     genero <valor>
  preco "<faixa>"     estado Novo|Usado    ordenar <nome>
  busca <texto>       pagina <n>           itens <n>
  limpar              repetir              abrir <url>
  ajuda               sair`

// RunREPL reads commands from in, applies them to sess and prints the
// resulting view to out until "sair", end of input or ctx is done.
func RunREPL(ctx context.Context, sess *Session, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, replHelp)

	view, err := sess.Retry(ctx)
	printView(out, view, err)

	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		cmd, arg := splitCommand(sc.Text())
		if cmd == "" {
			continue
		}
		if cmd == "sair" {
			return nil
		}
		if cmd == "ajuda" {
			fmt.Fprintln(out, replHelp)
			continue
		}

		view, err := runCommand(ctx, sess, cmd, arg)
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(out, usage.Error())
			continue
		}
		printView(out, view, err)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func runCommand(ctx context.Context, sess *Session, cmd, arg string) (View, error) {
	switch cmd {
	case "marca", "categoria", "genero", "preco", "estado":
		if arg == "" {
			return View{}, usageError("uso: " + cmd + " <valor>")
		}
		return sess.ToggleFilter(ctx, listing.Dimension(cmd), arg)
	case "ordenar":
		order, ok := listing.ParseSortOrder(arg)
		if !ok {
			names := make([]string, 0, len(listing.SortOrders()))
			for _, o := range listing.SortOrders() {
				names = append(names, o.String())
			}
			return View{}, usageError("ordenação desconhecida; use: " + strings.Join(names, ", "))
		}
		return sess.SetSort(ctx, order)
	case "busca":
		return sess.SetSearchQuery(ctx, arg)
	case "pagina", "itens":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return View{}, usageError("uso: " + cmd + " <número>")
		}
		if cmd == "pagina" {
			return sess.SetPage(ctx, n)
		}
		return sess.SetPageSize(ctx, n)
	case "limpar":
		return sess.ClearAll(ctx)
	case "repetir":
		return sess.Retry(ctx)
	case "abrir":
		values, err := listing.QueryValues(arg)
		if err != nil {
			return View{}, usageError("url inválida: " + err.Error())
		}
		return sess.Navigate(ctx, values)
	}
	return View{}, usageError("comando desconhecido: " + cmd + " (digite ajuda)")
}

// splitCommand splits a line into its first word and the rest, dropping one
// pair of surrounding quotes from the rest.
func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ = strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 && (arg[0] == '"' && arg[len(arg)-1] == '"' || arg[0] == '\'' && arg[len(arg)-1] == '\'') {
		arg = arg[1 : len(arg)-1]
	}
	return strings.ToLower(cmd), arg
}

func printView(out io.Writer, v View, err error) {
	fmt.Fprintln(out, v.URL)
	if err != nil {
		fmt.Fprintln(out, FetchErrorMessage, "(digite repetir)")
		return
	}
	fmt.Fprintf(out, "%d produto(s)\n", v.Total)
	for _, p := range v.Products {
		line := fmt.Sprintf("  %-40s %s", p.Name, textnorm.Money(p.CurrentPrice()))
		if p.CurrentPrice() < p.OriginalPrice {
			line += " (de " + textnorm.Money(p.OriginalPrice) + ")"
		}
		fmt.Fprintln(out, line)
	}
	if pages := listing.TotalPages(v.Total, v.State.Page.Size); pages > 1 {
		fmt.Fprintf(out, "página %d de %d\n", v.State.Page.Page, pages)
	}
}
