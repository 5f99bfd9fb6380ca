package browse_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/johnwards/vitrine/internal/browse"
)

func TestRunREPL(t *testing.T) {
	f := &stubFetcher{}
	s := browse.New(f, nil)
	in := strings.NewReader(strings.Join([]string{
		"categoria tenis",
		`preco "R$50 a R$100"`,
		"ordenar menor_preco",
		"pagina 2",
		"ordenar aleatorio",
		"pagina dois",
		"voar",
		"",
		"limpar",
		"abrir /produtos?marca=nike&q=bone",
		"sair",
		"busca nunca",
	}, "\n"))
	var out bytes.Buffer

	if err := browse.RunREPL(context.Background(), s, in, &out); err != nil {
		t.Fatalf("repl: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"/produtos?categoria=tenis\n",
		"/produtos?categoria=tenis&preco=R%2450+a+R%24100&ordenar=menor_preco&pagina=2\n",
		"ordenação desconhecida",
		"uso: pagina <número>",
		"comando desconhecido: voar",
		"> /produtos\n",
		"/produtos?marca=nike&q=bone\n",
		"R$ 10,00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "q=nunca") {
		t.Error("command after sair was executed")
	}
}

func TestRunREPLShowsFetchError(t *testing.T) {
	f := &stubFetcher{}
	f.setErr(context.DeadlineExceeded)
	s := browse.New(f, nil)
	var out bytes.Buffer

	if err := browse.RunREPL(context.Background(), s, strings.NewReader("repetir\n"), &out); err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.Contains(out.String(), browse.FetchErrorMessage) {
		t.Errorf("output missing fetch error:\n%s", out.String())
	}
}
