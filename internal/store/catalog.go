package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/listing"
)

// CatalogStore defines the read side of the product catalog.
type CatalogStore interface {
	Find(ctx context.Context, q listing.Query) (*domain.ProductPage, error)
	Brands(ctx context.Context) ([]domain.Brand, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Featured(ctx context.Context, limit int) ([]*domain.Product, error)
}

// SQLCatalogStore implements CatalogStore over SQLite or PostgreSQL.
type SQLCatalogStore struct {
	db      *sql.DB
	dialect database.Dialect
	logger  *zap.Logger
}

// NewSQLCatalogStore creates a new SQLCatalogStore.
func NewSQLCatalogStore(db *sql.DB, d database.Dialect, logger *zap.Logger) *SQLCatalogStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLCatalogStore{db: db, dialect: d, logger: logger}
}

// Find runs a listing query: the total match count, then one page of
// products with brand, category and images. Rows that fail validation are
// logged and left out of the page.
func (s *SQLCatalogStore) Find(ctx context.Context, q listing.Query) (*domain.ProductPage, error) {
	st, err := Render(q, s.dialect)
	if err != nil {
		return nil, err
	}

	countSQL, countArgs := st.CountSQL()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	page := &domain.ProductPage{Total: total, Products: []*domain.Product{}}
	if total == 0 {
		return page, nil
	}

	selectSQL, selectArgs := st.SelectSQL()
	products, err := s.queryProducts(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, err
	}
	if err := s.loadImages(ctx, products); err != nil {
		return nil, err
	}
	page.Products = s.valid(products)
	return page, nil
}

// ProductBySlug returns an active product with its images.
func (s *SQLCatalogStore) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := s.dialect.Rebind(productColumns + productFrom + " WHERE p.slug = ? AND p.ativo = ?")
	products, err := s.queryProducts(ctx, query, slug, true)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}
	if err := s.loadImages(ctx, products); err != nil {
		return nil, err
	}
	p := products[0]
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("load product %q: %w", slug, err)
	}
	return p, nil
}

// Featured returns up to limit active featured products, best sellers first.
func (s *SQLCatalogStore) Featured(ctx context.Context, limit int) ([]*domain.Product, error) {
	page, err := s.Find(ctx, listing.Query{
		Predicates: []listing.Predicate{
			listing.Eq(listing.FieldActive, true),
			listing.Eq(listing.FieldFeatured, true),
		},
		Orders: []listing.Order{
			{Field: listing.FieldSales, Desc: true},
			{Field: listing.FieldID},
		},
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	return page.Products, nil
}

// Brands returns the active brands ordered by name.
func (s *SQLCatalogStore) Brands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`SELECT id, nome, slug, ativo FROM marcas WHERE ativo = ? ORDER BY nome, id`), true)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Active); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Categories returns the active categories ordered by name.
func (s *SQLCatalogStore) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind(`SELECT id, nome, slug, imagem_url, ativo FROM categorias WHERE ativo = ? ORDER BY nome, id`), true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		var image sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &image, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ImageURL = image.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLCatalogStore) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product rows: %w", err)
	}
	return out, nil
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var (
		p                          domain.Product
		promo                      sql.NullFloat64
		discount                   sql.NullInt64
		gender, condition          sql.NullString
		created                    timestamp
		brandID, categoryID        sql.NullInt64
		brandName, brandSlug       sql.NullString
		catName, catSlug, catImage sql.NullString
	)
	err := rows.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.OriginalPrice, &promo,
		&discount, &p.Featured, &p.Sales, &gender, &condition, &p.Active, &created,
		&brandID, &brandName, &brandSlug, &categoryID, &catName, &catSlug, &catImage,
	)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if promo.Valid {
		v := promo.Float64
		p.PromoPrice = &v
	}
	if discount.Valid {
		v := int(discount.Int64)
		p.DiscountPercent = &v
	}
	p.Gender = gender.String
	p.Condition = condition.String
	p.CreatedAt = created.Time
	if brandID.Valid {
		p.Brand = &domain.Brand{ID: brandID.Int64, Name: brandName.String, Slug: brandSlug.String, Active: true}
	}
	if categoryID.Valid {
		p.Category = &domain.Category{ID: categoryID.Int64, Name: catName.String, Slug: catSlug.String, ImageURL: catImage.String, Active: true}
	}
	return &p, nil
}

// loadImages fills the images of every product with one query.
func (s *SQLCatalogStore) loadImages(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Product, len(products))
	placeholders := make([]string, len(products))
	args := make([]any, len(products))
	for i, p := range products {
		byID[p.ID] = p
		placeholders[i] = "?"
		args[i] = p.ID
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(
		`SELECT produto_id, url, principal, ordem FROM imagens_produto WHERE produto_id IN (`+
			strings.Join(placeholders, ",")+`) ORDER BY produto_id, principal DESC, ordem, id`),
		args...)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var img domain.Image
		if err := rows.Scan(&id, &img.URL, &img.Principal, &img.Order); err != nil {
			return fmt.Errorf("scan image: %w", err)
		}
		if p, ok := byID[id]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

func (s *SQLCatalogStore) valid(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			s.logger.Warn("skipping invalid product", zap.Int64("id", p.ID), zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out
}

// timestamp scans a TIMESTAMP column. PostgreSQL returns time.Time; SQLite
// may hand back the stored text.
type timestamp struct {
	Time time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
