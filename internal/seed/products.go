package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/store"
)

type productDef struct {
	name      string
	slug      string
	price     float64
	promo     float64
	discount  int
	featured  bool
	sales     int
	gender    string
	condition string
	brand     string
	category  string
	inactive  bool
	ageDays   int
	images    int
}

// epoch anchors the demo creation dates so seeded data is reproducible.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var defaultProducts = []productDef{
	{name: "Tênis Nike Revolution 7", slug: "tenis-nike-revolution-7", price: 399.99, promo: 319.99, discount: 20, featured: true, sales: 340, gender: "Masculino", condition: "Novo", brand: "nike", category: "tenis", ageDays: 10, images: 3},
	{name: "Tênis Nike Air Max SC", slug: "tenis-nike-air-max-sc", price: 599.99, featured: true, sales: 210, gender: "Unisex", condition: "Novo", brand: "nike", category: "tenis", ageDays: 3, images: 2},
	{name: "Tênis Adidas Runfalcon 3", slug: "tenis-adidas-runfalcon-3", price: 299.9, promo: 200, discount: 33, sales: 150, gender: "Feminino", condition: "Novo", brand: "adidas", category: "tenis", ageDays: 25, images: 2},
	{name: "Tênis Olympikus Corre 3", slug: "tenis-olympikus-corre-3", price: 199.99, sales: 420, gender: "Masculino", condition: "Novo", brand: "olympikus", category: "tenis", ageDays: 40, images: 1},
	{name: "Tênis Mizuno Wave Prophecy", slug: "tenis-mizuno-wave-prophecy", price: 1199.99, featured: true, sales: 35, gender: "Masculino", condition: "Novo", brand: "mizuno", category: "tenis", ageDays: 5, images: 2},
	{name: "Tênis Vans Old Skool", slug: "tenis-vans-old-skool", price: 249.99, promo: 100, discount: 60, sales: 95, gender: "Unisex", condition: "Usado", brand: "vans", category: "tenis", ageDays: 60, images: 1},
	{name: "Tênis Puma Smash", slug: "tenis-puma-smash", price: 279.9, sales: 60, gender: "Feminino", condition: "Novo", brand: "puma", category: "tenis", ageDays: 14, images: 0},
	{name: "Camiseta Nike Dri-FIT", slug: "camiseta-nike-dri-fit", price: 129.99, promo: 99.99, discount: 23, featured: true, sales: 510, gender: "Masculino", condition: "Novo", brand: "nike", category: "camisetas", ageDays: 8, images: 2},
	{name: "Camiseta Adidas Essentials", slug: "camiseta-adidas-essentials", price: 100, sales: 275, gender: "Feminino", condition: "Novo", brand: "adidas", category: "camisetas", ageDays: 30, images: 1},
	{name: "Camiseta Puma Logo", slug: "camiseta-puma-logo", price: 89.9, promo: 50, discount: 44, sales: 180, gender: "Unisex", condition: "Novo", brand: "puma", category: "camisetas", ageDays: 18, images: 1},
	{name: "Camiseta Vans Classic", slug: "camiseta-vans-classic", price: 49.9, sales: 75, gender: "Masculino", condition: "Usado", brand: "vans", category: "camisetas", ageDays: 90, images: 1},
	{name: "Camiseta Olympikus Básica", slug: "camiseta-olympikus-basica", price: 39.99, sales: 300, gender: "Feminino", condition: "Novo", brand: "olympikus", category: "camisetas", ageDays: 45, images: 1},
	{name: "Calça Adidas Tiro", slug: "calca-adidas-tiro", price: 249.99, featured: true, sales: 160, gender: "Masculino", condition: "Novo", brand: "adidas", category: "calcas", ageDays: 12, images: 2},
	{name: "Calça Nike Club Fleece", slug: "calca-nike-club-fleece", price: 349.99, promo: 279.99, discount: 20, sales: 90, gender: "Unisex", condition: "Novo", brand: "nike", category: "calcas", ageDays: 20, images: 1},
	{name: "Calça Puma Essentials", slug: "calca-puma-essentials", price: 199.9, sales: 55, gender: "Feminino", condition: "Usado", brand: "puma", category: "calcas", ageDays: 70, images: 1},
	{name: "Jaqueta Nike Windrunner", slug: "jaqueta-nike-windrunner", price: 499.99, featured: true, sales: 120, gender: "Masculino", condition: "Novo", brand: "nike", category: "jaquetas", ageDays: 2, images: 2},
	{name: "Jaqueta Adidas Corta-Vento", slug: "jaqueta-adidas-corta-vento", price: 399.99, promo: 299.99, discount: 25, sales: 70, gender: "Feminino", condition: "Novo", brand: "adidas", category: "jaquetas", ageDays: 35, images: 1},
	{name: "Jaqueta Mizuno Run", slug: "jaqueta-mizuno-run", price: 199.99, sales: 20, gender: "Unisex", condition: "Usado", brand: "mizuno", category: "jaquetas", ageDays: 100, images: 0},
	{name: "Boné Nike Heritage86", slug: "bone-nike-heritage86", price: 99.99, sales: 230, gender: "Unisex", condition: "Novo", brand: "nike", category: "bones", ageDays: 22, images: 1},
	{name: "Boné Vans Drop V", slug: "bone-vans-drop-v", price: 79.9, promo: 49.9, discount: 38, sales: 140, gender: "Unisex", condition: "Novo", brand: "vans", category: "bones", ageDays: 16, images: 1},
	{name: "Boné Puma Archive", slug: "bone-puma-archive", price: 69.9, sales: 40, gender: "Feminino", condition: "Usado", brand: "puma", category: "bones", ageDays: 80, images: 1},
	{name: "Boné Olympikus Aba Curva", slug: "bone-olympikus-aba-curva", price: 29.9, sales: 65, gender: "Masculino", condition: "Novo", brand: "olympikus", category: "bones", ageDays: 50, images: 0},
	{name: "Tênis Reebok Club C", slug: "tenis-reebok-club-c", price: 449.9, sales: 10, gender: "Unisex", condition: "Novo", brand: "reebok", category: "tenis", ageDays: 120, images: 1},
	{name: "Meia Nike Everyday", slug: "meia-nike-everyday", price: 59.99, sales: 500, gender: "Unisex", condition: "Novo", brand: "nike", category: "meias", inactive: true, ageDays: 200, images: 1},
}

// Products inserts the demo products, skipping those already present.
func Products(ctx context.Context, w Writer) error {
	for _, pd := range defaultProducts {
		if _, err := w.CreateProduct(ctx, pd.newProduct()); err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("insert product %s: %w", pd.slug, err)
		}
	}
	return nil
}

func (pd productDef) newProduct() domain.NewProduct {
	np := domain.NewProduct{
		Name:          pd.name,
		Slug:          pd.slug,
		Description:   pd.name + ", produto original com garantia.",
		OriginalPrice: pd.price,
		Featured:      pd.featured,
		Sales:         pd.sales,
		Gender:        pd.gender,
		Condition:     pd.condition,
		Inactive:      pd.inactive,
		BrandSlug:     pd.brand,
		CategorySlug:  pd.category,
		CreatedAt:     epoch.AddDate(0, 0, -pd.ageDays),
	}
	if pd.promo > 0 {
		promo := pd.promo
		np.PromoPrice = &promo
	}
	if pd.discount > 0 {
		discount := pd.discount
		np.DiscountPercent = &discount
	}
	for i := 0; i < pd.images; i++ {
		np.Images = append(np.Images, domain.Image{
			URL:       fmt.Sprintf("/images/products/%s-%d.jpg", pd.slug, i+1),
			Principal: i == 0,
			Order:     i,
		})
	}
	return np
}

// ProductCount is the number of demo products Seed inserts.
func ProductCount() int { return len(defaultProducts) }
