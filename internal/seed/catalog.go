package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/store"
)

var defaultBrands = []domain.Brand{
	{Name: "Nike", Slug: "nike", Active: true},
	{Name: "Adidas", Slug: "adidas", Active: true},
	{Name: "Puma", Slug: "puma", Active: true},
	{Name: "Olympikus", Slug: "olympikus", Active: true},
	{Name: "Mizuno", Slug: "mizuno", Active: true},
	{Name: "Vans", Slug: "vans", Active: true},
	{Name: "Reebok", Slug: "reebok", Active: false},
}

var defaultCategories = []domain.Category{
	{Name: "Tênis", Slug: "tenis", ImageURL: "/images/categories/tenis.png", Active: true},
	{Name: "Camisetas", Slug: "camisetas", ImageURL: "/images/categories/camisetas.png", Active: true},
	{Name: "Calças", Slug: "calcas", ImageURL: "/images/categories/calcas.png", Active: true},
	{Name: "Jaquetas", Slug: "jaquetas", ImageURL: "/images/categories/jaquetas.png", Active: true},
	{Name: "Bonés", Slug: "bones", ImageURL: "/images/categories/bones.png", Active: true},
	{Name: "Meias", Slug: "meias", Active: false},
}

// Brands inserts the demo brands, skipping those already present.
func Brands(ctx context.Context, w Writer) error {
	for _, b := range defaultBrands {
		if _, err := w.CreateBrand(ctx, b); err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("insert brand %s: %w", b.Slug, err)
		}
	}
	return nil
}

// Categories inserts the demo categories, skipping those already present.
func Categories(ctx context.Context, w Writer) error {
	for _, c := range defaultCategories {
		if _, err := w.CreateCategory(ctx, c); err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("insert category %s: %w", c.Slug, err)
		}
	}
	return nil
}
