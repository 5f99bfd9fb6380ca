package database

import "strings"

// DataTables lists the catalog tables in an order that is safe to delete
// from.
var DataTables = []string{"imagens_produto", "produtos", "categorias", "marcas"}

// migration is a group of statements applied in one transaction. Statements
// may use {{pk}} for an auto-assigned integer primary key; postgresOnly
// statements are skipped on SQLite.
type migration struct {
	common       []string
	postgresOnly []string
}

func (m migration) statements(d Dialect) []string {
	pk := "INTEGER PRIMARY KEY"
	if d == Postgres {
		pk = "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	out := make([]string, 0, len(m.common)+len(m.postgresOnly))
	for _, s := range m.common {
		out = append(out, strings.ReplaceAll(s, "{{pk}}", pk))
	}
	if d == Postgres {
		out = append(out, m.postgresOnly...)
	}
	return out
}

// migrations is the ordered schema history. The version number is the
// 1-based index into this slice.
var migrations = []migration{
	// Migration 1: catalog tables
	{
		common: []string{
			`CREATE TABLE marcas (
				id {{pk}},
				nome TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				ativo BOOLEAN NOT NULL DEFAULT TRUE
			)`,

			`CREATE TABLE categorias (
				id {{pk}},
				nome TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				imagem_url TEXT,
				ativo BOOLEAN NOT NULL DEFAULT TRUE
			)`,

			`CREATE TABLE produtos (
				id {{pk}},
				nome TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				descricao TEXT NOT NULL DEFAULT '',
				nome_busca TEXT NOT NULL DEFAULT '',
				preco_original DOUBLE PRECISION NOT NULL,
				preco_promocional DOUBLE PRECISION,
				desconto_porcentagem INTEGER,
				destacado BOOLEAN NOT NULL DEFAULT FALSE,
				quantidade_vendas INTEGER NOT NULL DEFAULT 0,
				genero TEXT,
				estado TEXT,
				ativo BOOLEAN NOT NULL DEFAULT TRUE,
				data_criacao TIMESTAMP NOT NULL,
				marca_id BIGINT REFERENCES marcas(id),
				categoria_id BIGINT REFERENCES categorias(id)
			)`,

			`CREATE TABLE imagens_produto (
				id {{pk}},
				produto_id BIGINT NOT NULL REFERENCES produtos(id) ON DELETE CASCADE,
				url TEXT NOT NULL,
				principal BOOLEAN NOT NULL DEFAULT FALSE,
				ordem INTEGER NOT NULL DEFAULT 0
			)`,

			`CREATE INDEX idx_produtos_marca ON produtos(marca_id)`,
			`CREATE INDEX idx_produtos_categoria ON produtos(categoria_id)`,
			`CREATE INDEX idx_produtos_ativo_destacado ON produtos(ativo, destacado)`,
			`CREATE INDEX idx_imagens_produto ON imagens_produto(produto_id, principal, ordem)`,
		},
		postgresOnly: []string{
			`CREATE INDEX idx_produtos_nome_fts ON produtos USING GIN (to_tsvector('portuguese', nome))`,
		},
	},
}
