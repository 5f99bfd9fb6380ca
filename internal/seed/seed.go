package seed

import (
	"context"
	"fmt"

	"github.com/johnwards/vitrine/internal/domain"
)

// Writer is the part of the catalog store the seed needs.
type Writer interface {
	CountProducts(ctx context.Context) (int, error)
	CreateBrand(ctx context.Context, b domain.Brand) (*domain.Brand, error)
	CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	CreateProduct(ctx context.Context, p domain.NewProduct) (int64, error)
}

// Seed inserts the demo catalog. It is idempotent: a catalog that already has
// products is left untouched, and brands or categories that already exist are
// skipped. Call order matters: brands and categories before products.
func Seed(ctx context.Context, w Writer) error {
	n, err := w.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := Brands(ctx, w); err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}
	if err := Categories(ctx, w); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := Products(ctx, w); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}
