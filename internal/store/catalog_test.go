package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/johnwards/vitrine/internal/database"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/listing"
	"github.com/johnwards/vitrine/internal/seed"
	"github.com/johnwards/vitrine/internal/store"
	"github.com/johnwards/vitrine/internal/testhelpers"
)

var (
	_ store.CatalogStore = (*store.SQLCatalogStore)(nil)
	_ listing.Resolver   = (*store.SQLSlugResolver)(nil)
	_ seed.Writer        = (*store.SQLCatalogStore)(nil)
)

func setupCatalog(t *testing.T) *store.Store {
	t.Helper()
	db := testhelpers.NewMigratedDB(t)
	s := store.New(db, database.SQLite, nil)
	if err := seed.Seed(context.Background(), s.Catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func find(t *testing.T, s *store.Store, state listing.State) *domain.ProductPage {
	t.Helper()
	ctx := context.Background()
	page, err := s.Catalog.Find(ctx, listing.BuildQuery(ctx, state, s.Slugs, nil))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	return page
}

func slugs(page *domain.ProductPage) []string {
	out := make([]string, 0, len(page.Products))
	for _, p := range page.Products {
		out = append(out, p.Slug)
	}
	return out
}

func TestFindAllActive(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState())
	if page.Total != seed.ProductCount()-1 {
		t.Errorf("total = %d, want %d", page.Total, seed.ProductCount()-1)
	}
	if len(page.Products) != listing.DefaultPageSize {
		t.Errorf("page length = %d, want %d", len(page.Products), listing.DefaultPageSize)
	}
	for _, p := range page.Products {
		if !p.Active {
			t.Errorf("inactive product %s listed", p.Slug)
		}
	}
}

func TestFindPriceBoundaryAt100(t *testing.T) {
	s := setupCatalog(t)
	wide := listing.NewState().SetPageSize(50).SetSort(listing.SortPriceAsc)

	low := slugs(find(t, s, wide.ToggleFilter(listing.DimensionPrice, "R$50 a R$100")))
	high := slugs(find(t, s, wide.ToggleFilter(listing.DimensionPrice, "R$100 a R$200")))

	for _, slug := range []string{"camiseta-adidas-essentials", "tenis-vans-old-skool"} {
		if !contains(low, slug) {
			t.Errorf("%s (price 100) missing from R$50 a R$100: %v", slug, low)
		}
		if !contains(high, slug) {
			t.Errorf("%s (price 100) missing from R$100 a R$200: %v", slug, high)
		}
	}
	if !contains(low, "camiseta-puma-logo") {
		t.Errorf("promo price 50 missing from R$50 a R$100: %v", low)
	}
	if !contains(high, "tenis-adidas-runfalcon-3") {
		t.Errorf("promo price 200 missing from R$100 a R$200: %v", high)
	}
	if len(low) != 6 || len(high) != 6 {
		t.Errorf("bucket sizes = %d/%d, want 6/6", len(low), len(high))
	}

	under := find(t, s, wide.ToggleFilter(listing.DimensionPrice, "Até R$50"))
	for _, p := range under.Products {
		if p.CurrentPrice() >= 50 {
			t.Errorf("%s priced %.2f in Até R$50", p.Slug, p.CurrentPrice())
		}
	}
	over := find(t, s, wide.ToggleFilter(listing.DimensionPrice, "Acima de R$200"))
	for _, p := range over.Products {
		if p.CurrentPrice() <= 200 {
			t.Errorf("%s priced %.2f in Acima de R$200", p.Slug, p.CurrentPrice())
		}
	}
}

func TestFindAccentInsensitiveSearch(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState().SetSearchQuery("tenis"))
	if page.Total != 8 {
		t.Errorf("tenis total = %d, want 8", page.Total)
	}

	page = find(t, s, listing.NewState().SetSearchQuery("TÊNIS Nike").SetSort(listing.SortNewest))
	want := []string{"tenis-nike-air-max-sc", "tenis-nike-revolution-7"}
	if diff := cmp.Diff(want, slugs(page)); diff != "" {
		t.Errorf("search (-want +got):\n%s", diff)
	}
}

func TestFindBrandAndCategory(t *testing.T) {
	s := setupCatalog(t)

	state := listing.NewState().
		ToggleFilter(listing.DimensionBrand, "nike").
		ToggleFilter(listing.DimensionBrand, "adidas").
		ToggleFilter(listing.DimensionCategory, "jaquetas").
		SetSort(listing.SortPriceDesc)

	want := []string{"jaqueta-nike-windrunner", "jaqueta-adidas-corta-vento"}
	if diff := cmp.Diff(want, slugs(find(t, s, state))); diff != "" {
		t.Errorf("brand+category (-want +got):\n%s", diff)
	}
}

func TestFindUnknownSlugDropsFilter(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState().ToggleFilter(listing.DimensionBrand, "inexistente"))
	if page.Total != seed.ProductCount()-1 {
		t.Errorf("total = %d, want unfiltered %d", page.Total, seed.ProductCount()-1)
	}
}

func TestFindGenderAndCondition(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState().
		ToggleFilter(listing.DimensionGender, "Feminino").
		ToggleFilter(listing.DimensionCondition, "Usado"))
	want := []string{"calca-puma-essentials", "bone-puma-archive"}
	if diff := cmp.Diff(want, slugs(page)); diff != "" {
		t.Errorf("gender+condition (-want +got):\n%s", diff)
	}
}

func TestFindPagination(t *testing.T) {
	s := setupCatalog(t)
	base := listing.NewState().SetSort(listing.SortPriceAsc).SetPageSize(5)

	var seen []string
	for page := 1; page <= 5; page++ {
		got := find(t, s, base.SetPage(page))
		if got.Total != 23 {
			t.Fatalf("page %d total = %d, want 23", page, got.Total)
		}
		seen = append(seen, slugs(got)...)
	}
	if len(seen) != 23 {
		t.Errorf("paged through %d products, want 23", len(seen))
	}
	if seen[0] != "bone-olympikus-aba-curva" {
		t.Errorf("cheapest = %s, want bone-olympikus-aba-curva", seen[0])
	}

	if beyond := find(t, s, base.SetPage(9)); len(beyond.Products) != 0 || beyond.Total != 23 {
		t.Errorf("page past end = %d products / total %d", len(beyond.Products), beyond.Total)
	}
}

func TestFindNoMatches(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState().SetSearchQuery("guarda-chuva"))
	if page.Total != 0 || len(page.Products) != 0 {
		t.Errorf("page = %d/%d, want empty", page.Total, len(page.Products))
	}
	if page.Products == nil {
		t.Error("Products is nil, want empty slice")
	}
}

func TestFindStopwordOnlySearch(t *testing.T) {
	s := setupCatalog(t)

	page := find(t, s, listing.NewState().SetSearchQuery("de"))
	if page.Total != 0 || len(page.Products) != 0 {
		t.Errorf("q=de page = %d/%d, want empty", page.Total, len(page.Products))
	}
}

func TestProductBySlug(t *testing.T) {
	s := setupCatalog(t)
	ctx := context.Background()

	p, err := s.Catalog.ProductBySlug(ctx, "tenis-nike-revolution-7")
	if err != nil {
		t.Fatalf("by slug: %v", err)
	}
	if p.Brand == nil || p.Brand.Slug != "nike" {
		t.Errorf("brand = %+v, want nike", p.Brand)
	}
	if p.Category == nil || p.Category.Name != "Tênis" {
		t.Errorf("category = %+v, want Tênis", p.Category)
	}
	if p.PromoPrice == nil || *p.PromoPrice != 319.99 {
		t.Errorf("promo price = %v, want 319.99", p.PromoPrice)
	}
	if len(p.Images) != 3 || !p.Images[0].Principal {
		t.Errorf("images = %+v, want 3 with principal first", p.Images)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created at not loaded")
	}

	_, err = s.Catalog.ProductBySlug(ctx, "nao-existe")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing slug err = %v, want ErrNotFound", err)
	}
}

func TestFeatured(t *testing.T) {
	s := setupCatalog(t)

	products, err := s.Catalog.Featured(context.Background(), 4)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	var got []string
	for _, p := range products {
		got = append(got, p.Slug)
	}
	want := []string{"camiseta-nike-dri-fit", "tenis-nike-revolution-7", "tenis-nike-air-max-sc", "calca-adidas-tiro"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("featured (-want +got):\n%s", diff)
	}
}

func TestBrandsAndCategories(t *testing.T) {
	s := setupCatalog(t)
	ctx := context.Background()

	brands, err := s.Catalog.Brands(ctx)
	if err != nil {
		t.Fatalf("brands: %v", err)
	}
	var names []string
	for _, b := range brands {
		names = append(names, b.Name)
	}
	want := []string{"Adidas", "Mizuno", "Nike", "Olympikus", "Puma", "Vans"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("brands (-want +got):\n%s", diff)
	}

	categories, err := s.Catalog.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 5 {
		t.Errorf("categories = %d, want 5", len(categories))
	}
}

func TestCreateConflicts(t *testing.T) {
	s := setupCatalog(t)
	ctx := context.Background()

	if _, err := s.Catalog.CreateBrand(ctx, domain.Brand{Name: "Nike", Slug: "nike", Active: true}); !errors.Is(err, store.ErrConflict) {
		t.Errorf("duplicate brand err = %v, want ErrConflict", err)
	}
	_, err := s.Catalog.CreateProduct(ctx, domain.NewProduct{Name: "X", Slug: "x", OriginalPrice: 10, BrandSlug: "nao-existe"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown brand err = %v, want ErrNotFound", err)
	}
	_, err = s.Catalog.CreateProduct(ctx, domain.NewProduct{Name: "X", Slug: "x", OriginalPrice: -10})
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("negative price err = %v, want *ValidationError", err)
	}
}

func TestReset(t *testing.T) {
	s := setupCatalog(t)
	ctx := context.Background()

	if err := s.Catalog.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	n, err := s.Catalog.CountProducts(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("products after reset = %d, want 0", n)
	}
	if err := seed.Seed(ctx, s.Catalog); err != nil {
		t.Fatalf("reseed: %v", err)
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
