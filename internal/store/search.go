package store

import (
	"fmt"
	"strings"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/textnorm"
)

// columns maps query fields to SQL expressions over the product join.
var columns = map[listing.Field]string{
	listing.FieldID:         "p.id",
	listing.FieldActive:     "p.ativo",
	listing.FieldBrandID:    "p.marca_id",
	listing.FieldCategoryID: "p.categoria_id",
	listing.FieldGender:     "p.genero",
	listing.FieldCondition:  "p.estado",
	listing.FieldPrice:      "COALESCE(NULLIF(p.preco_promocional, 0), p.preco_original)",
	listing.FieldName:       "p.nome",
	listing.FieldFeatured:   "p.destacado",
	listing.FieldSales:      "p.quantidade_vendas",
	listing.FieldCreatedAt:  "p.data_criacao",
}

var comparisons = map[listing.Operator]string{
	listing.OpEq:  "=",
	listing.OpLt:  "<",
	listing.OpLte: "<=",
	listing.OpGt:  ">",
	listing.OpGte: ">=",
}

const productFrom = " FROM produtos p" +
	" LEFT JOIN marcas m ON m.id = p.marca_id" +
	" LEFT JOIN categorias c ON c.id = p.categoria_id"

const productColumns = "SELECT p.id, p.nome, p.slug, p.descricao, p.preco_original, p.preco_promocional," +
	" p.desconto_porcentagem, p.destacado, p.quantidade_vendas, p.genero, p.estado, p.ativo, p.data_criacao," +
	" m.id, m.nome, m.slug, c.id, c.nome, c.slug, c.imagem_url"

// Statement is a listing query rendered for one dialect.
type Statement struct {
	dialect database.Dialect
	where   string
	args    []any
	orderBy string
	limit   int
	offset  int
}

// CountSQL returns the total-count query and its arguments.
func (s Statement) CountSQL() (string, []any) {
	return s.dialect.Rebind("SELECT COUNT(*)" + productFrom + s.where), s.args
}

// SelectSQL returns the paged row query and its arguments.
func (s Statement) SelectSQL() (string, []any) {
	args := make([]any, 0, len(s.args)+2)
	args = append(args, s.args...)
	args = append(args, s.limit, s.offset)
	return s.dialect.Rebind(productColumns + productFrom + s.where + s.orderBy + " LIMIT ? OFFSET ?"), args
}

// Render translates a listing query into SQL for the dialect.
func Render(q listing.Query, d database.Dialect) (Statement, error) {
	st := Statement{dialect: d, limit: q.Limit, offset: q.Offset}
	if st.limit <= 0 {
		st.limit = listing.DefaultPageSize
	}
	if st.offset < 0 {
		st.offset = 0
	}

	var clauses []string
	for i := range q.Predicates {
		clause, args, err := buildPredicateClause(&q.Predicates[i])
		if err != nil {
			return Statement{}, err
		}
		clauses = append(clauses, clause)
		st.args = append(st.args, args...)
	}

	if q.Text != nil && strings.TrimSpace(q.Text.Query) != "" {
		clause, args, err := buildTextClause(q.Text, d)
		if err != nil {
			return Statement{}, err
		}
		if clause != "" {
			clauses = append(clauses, clause)
			st.args = append(st.args, args...)
		}
	}

	if len(clauses) > 0 {
		st.where = " WHERE " + strings.Join(clauses, " AND ")
	}

	order := make([]string, 0, len(q.Orders))
	for _, o := range q.Orders {
		col, ok := columns[o.Field]
		if !ok {
			return Statement{}, &ValidationError{Message: fmt.Sprintf("unsupported order field: %s", o.Field)}
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		order = append(order, col+" "+dir)
	}
	if len(order) == 0 {
		order = append(order, "p.id ASC")
	}
	st.orderBy = " ORDER BY " + strings.Join(order, ", ")

	return st, nil
}

func buildPredicateClause(p *listing.Predicate) (clause string, args []any, err error) {
	col, ok := columns[p.Field]
	if !ok {
		return "", nil, &ValidationError{Message: fmt.Sprintf("unsupported field: %s", p.Field)}
	}

	if p.Op == listing.OpIn {
		if len(p.Values) == 0 {
			return "1=0", nil, nil
		}
		placeholders := make([]string, len(p.Values))
		for i := range p.Values {
			placeholders[i] = "?"
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ",")), p.Values, nil
	}

	op, ok := comparisons[p.Op]
	if !ok {
		return "", nil, &ValidationError{Message: fmt.Sprintf("unsupported operator: %s", p.Op)}
	}
	if p.Value == nil {
		return "", nil, &ValidationError{Message: fmt.Sprintf("operator %s on %s needs a value", p.Op, p.Field)}
	}
	return fmt.Sprintf("%s %s ?", col, op), []any{p.Value}, nil
}

// buildTextClause matches the product name. PostgreSQL uses its text search
// configuration for the language; SQLite requires every folded token of the
// query to occur in the folded name column.
func buildTextClause(m *listing.TextMatch, d database.Dialect) (clause string, args []any, err error) {
	if m.Field != listing.FieldName {
		return "", nil, &ValidationError{Message: fmt.Sprintf("unsupported text field: %s", m.Field)}
	}
	query := strings.TrimSpace(m.Query)

	if d == database.Postgres {
		lang := m.Language
		if lang == "" {
			lang = listing.TextSearchLanguage
		}
		return "to_tsvector(CAST(? AS regconfig), p.nome) @@ plainto_tsquery(CAST(? AS regconfig), ?)",
			[]any{lang, lang, query}, nil
	}

	if query == "" {
		return "", nil, nil
	}
	tokens := textnorm.Tokens(query)
	if len(tokens) == 0 {
		// Only stopwords: plainto_tsquery matches nothing for these either.
		return "1=0", nil, nil
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = "p.nome_busca LIKE ?"
		args = append(args, "%"+tok+"%")
	}
	return "(" + strings.Join(parts, " AND ") + ")", args, nil
}
