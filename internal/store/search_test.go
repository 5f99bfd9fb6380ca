package store_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/store"
)

func TestRenderSQLite(t *testing.T) {
	q := listing.Compile(
		listing.NewState().
			ToggleFilter(listing.DimensionGender, "Feminino").
			ToggleFilter(listing.DimensionPrice, "R$50 a R$100").
			SetSort(listing.SortPriceAsc).
			SetSearchQuery("Tênis de corrida").
			SetPage(2),
		listing.Resolved{BrandIDs: []int64{1, 2}},
	)

	st, err := store.Render(q, database.SQLite)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	price := "COALESCE(NULLIF(p.preco_promocional, 0), p.preco_original)"
	wantWhere := " WHERE p.ativo = ? AND p.marca_id IN (?,?) AND p.genero IN (?)" +
		" AND " + price + " >= ? AND " + price + " <= ?" +
		" AND (p.nome_busca LIKE ? AND p.nome_busca LIKE ?)"

	countSQL, countArgs := st.CountSQL()
	wantCount := "SELECT COUNT(*) FROM produtos p LEFT JOIN marcas m ON m.id = p.marca_id" +
		" LEFT JOIN categorias c ON c.id = p.categoria_id" + wantWhere
	if countSQL != wantCount {
		t.Errorf("count SQL:\n got %s\nwant %s", countSQL, wantCount)
	}
	wantArgs := []any{true, int64(1), int64(2), "Feminino", 50.0, 100.0, "%tenis%", "%corrida%"}
	if diff := cmp.Diff(wantArgs, countArgs); diff != "" {
		t.Errorf("count args (-want +got):\n%s", diff)
	}

	selectSQL, selectArgs := st.SelectSQL()
	wantTail := wantWhere + " ORDER BY " + price + " ASC, p.id ASC LIMIT ? OFFSET ?"
	if got := selectSQL[len(selectSQL)-len(wantTail):]; got != wantTail {
		t.Errorf("select SQL tail:\n got %s\nwant %s", got, wantTail)
	}
	if diff := cmp.Diff(append(wantArgs, 12, 12), selectArgs); diff != "" {
		t.Errorf("select args (-want +got):\n%s", diff)
	}
}

func TestRenderPostgres(t *testing.T) {
	q := listing.Compile(
		listing.NewState().ToggleFilter(listing.DimensionCondition, "Novo").SetSearchQuery("tênis"),
		listing.Resolved{CategoryIDs: []int64{7}},
	)

	st, err := store.Render(q, database.Postgres)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	countSQL, args := st.CountSQL()
	wantWhere := " WHERE p.ativo = $1 AND p.categoria_id IN ($2) AND p.estado = $3" +
		" AND to_tsvector(CAST($4 AS regconfig), p.nome) @@ plainto_tsquery(CAST($5 AS regconfig), $6)"
	if got := countSQL[len(countSQL)-len(wantWhere):]; got != wantWhere {
		t.Errorf("where:\n got %s\nwant %s", got, wantWhere)
	}
	wantArgs := []any{true, int64(7), "Novo", "portuguese", "portuguese", "tênis"}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}

	selectSQL, _ := st.SelectSQL()
	wantTail := "ORDER BY p.destacado DESC, p.quantidade_vendas DESC, p.id ASC LIMIT $7 OFFSET $8"
	if got := selectSQL[len(selectSQL)-len(wantTail):]; got != wantTail {
		t.Errorf("select tail = %q, want %q", got, wantTail)
	}
}

func TestRenderEmptyIn(t *testing.T) {
	q := listing.Query{Predicates: []listing.Predicate{listing.In(listing.FieldGender)}}
	st, err := store.Render(q, database.SQLite)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if sql, _ := st.CountSQL(); sql[len(sql)-len(" WHERE 1=0"):] != " WHERE 1=0" {
		t.Errorf("count SQL = %q, want WHERE 1=0", sql)
	}
}

func TestRenderValidation(t *testing.T) {
	tests := map[string]listing.Query{
		"unknown field":    {Predicates: []listing.Predicate{listing.Eq("cor", "azul")}},
		"unknown operator": {Predicates: []listing.Predicate{{Field: listing.FieldSales, Op: "between", Value: 1}}},
		"missing value":    {Predicates: []listing.Predicate{{Field: listing.FieldSales, Op: listing.OpGt}}},
		"unknown order":    {Orders: []listing.Order{{Field: "peso"}}},
		"text on slug":     {Text: &listing.TextMatch{Field: "slug", Query: "x"}},
	}
	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := store.Render(q, database.SQLite)
			var verr *store.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want *ValidationError", err)
			}
		})
	}
}

func TestRenderStopwordOnlySearch(t *testing.T) {
	q := listing.Query{Text: &listing.TextMatch{Field: listing.FieldName, Query: "de da"}}
	st, err := store.Render(q, database.SQLite)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if sql, args := st.CountSQL(); len(args) != 0 || sql != "SELECT COUNT(*) FROM produtos p LEFT JOIN marcas m ON m.id = p.marca_id LEFT JOIN categorias c ON c.id = p.categoria_id WHERE 1=0" {
		t.Errorf("count = %q %v, want WHERE 1=0", sql, args)
	}
}
