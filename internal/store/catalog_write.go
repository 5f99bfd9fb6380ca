package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/textnorm"
)

// CreateBrand inserts a brand and returns it with its id.
func (s *SQLCatalogStore) CreateBrand(ctx context.Context, b domain.Brand) (*domain.Brand, error) {
	if b.Name == "" || b.Slug == "" {
		return nil, &ValidationError{Message: "brand name and slug are required"}
	}
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO marcas (nome, slug, ativo) VALUES (?, ?, ?) RETURNING id`),
		b.Name, b.Slug, b.Active,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("brand %q already exists: %w", b.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("insert brand: %w", err)
	}
	return &b, nil
}

// CreateCategory inserts a category and returns it with its id.
func (s *SQLCatalogStore) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" || c.Slug == "" {
		return nil, &ValidationError{Message: "category name and slug are required"}
	}
	var image sql.NullString
	if c.ImageURL != "" {
		image = sql.NullString{String: c.ImageURL, Valid: true}
	}
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind(`INSERT INTO categorias (nome, slug, imagem_url, ativo) VALUES (?, ?, ?, ?) RETURNING id`),
		c.Name, c.Slug, image, c.Active,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q already exists: %w", c.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

// CreateProduct inserts a product and its images in one transaction and
// returns the new id. The folded search name is derived from the name.
func (s *SQLCatalogStore) CreateProduct(ctx context.Context, np domain.NewProduct) (int64, error) {
	candidate := domain.Product{
		Name:            np.Name,
		Slug:            np.Slug,
		OriginalPrice:   np.OriginalPrice,
		PromoPrice:      np.PromoPrice,
		DiscountPercent: np.DiscountPercent,
	}
	if err := candidate.Validate(); err != nil {
		return 0, &ValidationError{Message: err.Error()}
	}
	created := np.CreatedAt.UTC()
	if np.CreatedAt.IsZero() {
		created = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	brandID, err := lookupID(ctx, tx, s.dialect, "marcas", np.BrandSlug)
	if err != nil {
		return 0, err
	}
	categoryID, err := lookupID(ctx, tx, s.dialect, "categorias", np.CategorySlug)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, s.dialect.Rebind(`INSERT INTO produtos
		(nome, slug, descricao, nome_busca, preco_original, preco_promocional, desconto_porcentagem,
		 destacado, quantidade_vendas, genero, estado, ativo, data_criacao, marca_id, categoria_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		np.Name, np.Slug, np.Description, textnorm.Searchable(np.Name),
		np.OriginalPrice, nullFloat(np.PromoPrice), nullInt(np.DiscountPercent),
		np.Featured, np.Sales, nullString(np.Gender), nullString(np.Condition),
		!np.Inactive, created, brandID, categoryID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("product %q already exists: %w", np.Slug, ErrConflict)
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}

	for _, img := range np.Images {
		if _, err := tx.ExecContext(ctx,
			s.dialect.Rebind(`INSERT INTO imagens_produto (produto_id, url, principal, ordem) VALUES (?, ?, ?, ?)`),
			id, img.URL, img.Principal, img.Order,
		); err != nil {
			return 0, fmt.Errorf("insert image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit product: %w", err)
	}
	return id, nil
}

// CountProducts returns the number of stored products, active or not.
func (s *SQLCatalogStore) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM produtos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Reset deletes every catalog row.
func (s *SQLCatalogStore) Reset(ctx context.Context) error {
	if s.dialect == database.Postgres {
		if _, err := s.db.ExecContext(ctx,
			"TRUNCATE "+strings.Join(database.DataTables, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("truncate catalog: %w", err)
		}
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range database.DataTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// lookupID returns the id for slug in table, or NULL for an empty slug.
func lookupID(ctx context.Context, tx *sql.Tx, d database.Dialect, table, slug string) (sql.NullInt64, error) {
	if slug == "" {
		return sql.NullInt64{}, nil
	}
	var id int64
	err := tx.QueryRowContext(ctx, d.Rebind("SELECT id FROM "+table+" WHERE slug = ?"), slug).Scan(&id)
	if err != nil {
		return sql.NullInt64{}, notFound(err, fmt.Sprintf("%s %q", table, slug))
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
