package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/listing"
)

var slugTables = map[listing.Kind]string{
	listing.KindBrand:    "marcas",
	listing.KindCategory: "categorias",
}

// SQLSlugResolver maps brand and category slugs to ids. Only active rows
// resolve.
type SQLSlugResolver struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLSlugResolver creates a new SQLSlugResolver.
func NewSQLSlugResolver(db *sql.DB, d database.Dialect) *SQLSlugResolver {
	return &SQLSlugResolver{db: db, dialect: d}
}

// Resolve implements listing.Resolver.
func (r *SQLSlugResolver) Resolve(ctx context.Context, kind listing.Kind, slugs []string) (map[string]int64, error) {
	table, ok := slugTables[kind]
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown slug kind: %s", kind)}
	}
	out := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(slugs))
	args := make([]any, 0, len(slugs)+1)
	args = append(args, true)
	for i, s := range slugs {
		placeholders[i] = "?"
		args = append(args, s)
	}

	// Inactive brands and categories never resolve.
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(
		`SELECT id, slug FROM `+table+` WHERE ativo = ? AND slug IN (`+strings.Join(placeholders, ",")+`)`),
		args...)
	if err != nil {
		return nil, fmt.Errorf("resolve %s slugs: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, fmt.Errorf("scan %s slug: %w", kind, err)
		}
		out[slug] = id
	}
	return out, rows.Err()
}
