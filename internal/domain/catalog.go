package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

// PlaceholderImage is shown for products without any image.
const PlaceholderImage = "/images/products/produc-image-0.png"

// ErrInvalidProduct is returned by Product.Validate.
var ErrInvalidProduct = errors.New("invalid product")

// Brand is a product brand.
type Brand struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Slug   string `json:"slug"`
	Active bool   `json:"-"`
}

// Category is a product category.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imagemUrl,omitempty"`
	Active   bool   `json:"-"`
}

// Image is a product picture. Principal marks the cover image; Order sorts
// the rest.
type Image struct {
	URL       string `json:"url"`
	Principal bool   `json:"principal"`
	Order     int    `json:"ordem"`
}

// Product is a catalog item as stored. Optional columns are pointers.
type Product struct {
	ID              int64
	Name            string
	Slug            string
	Description     string
	OriginalPrice   float64
	PromoPrice      *float64
	DiscountPercent *int
	Featured        bool
	Sales           int
	Gender          string
	Condition       string
	Active          bool
	CreatedAt       time.Time
	Brand           *Brand
	Category        *Category
	Images          []Image
}

// Validate checks the invariants every stored product must hold.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.ID)
	case p.Slug == "":
		return fmt.Errorf("%w: product %d has no slug", ErrInvalidProduct, p.ID)
	case p.OriginalPrice < 0:
		return fmt.Errorf("%w: product %q has negative price", ErrInvalidProduct, p.Slug)
	case p.PromoPrice != nil && *p.PromoPrice < 0:
		return fmt.Errorf("%w: product %q has negative promotional price", ErrInvalidProduct, p.Slug)
	case p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100):
		return fmt.Errorf("%w: product %q discount %d out of range", ErrInvalidProduct, p.Slug, *p.DiscountPercent)
	}
	return nil
}

// CurrentPrice is the promotional price when one is set, else the original
// price.
func (p *Product) CurrentPrice() float64 {
	if p.PromoPrice != nil && *p.PromoPrice > 0 {
		return *p.PromoPrice
	}
	return p.OriginalPrice
}

// SortedImages returns the images with the principal image first, then by
// order.
func (p *Product) SortedImages() []Image {
	out := slices.Clone(p.Images)
	slices.SortStableFunc(out, func(a, b Image) int {
		if a.Principal != b.Principal {
			if a.Principal {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// PrimaryImage returns the cover image URL, falling back to the first image
// and then to PlaceholderImage.
func (p *Product) PrimaryImage() string {
	if imgs := p.SortedImages(); len(imgs) > 0 && imgs[0].URL != "" {
		return imgs[0].URL
	}
	return PlaceholderImage
}

// ProductCard is the listing projection of a product.
type ProductCard struct {
	ID            int64   `json:"id"`
	Name          string  `json:"nome"`
	Slug          string  `json:"slug"`
	OriginalPrice float64 `json:"precoOriginal"`
	CurrentPrice  float64 `json:"precoAtual"`
	Discount      *int    `json:"desconto,omitempty"`
	Category      string  `json:"categoria,omitempty"`
	Brand         string  `json:"marca,omitempty"`
	ImageURL      string  `json:"imagemUrl"`
}

// Card projects the product for listing pages.
func (p *Product) Card() ProductCard {
	c := ProductCard{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		OriginalPrice: p.OriginalPrice,
		CurrentPrice:  p.CurrentPrice(),
		Discount:      p.DiscountPercent,
		ImageURL:      p.PrimaryImage(),
	}
	if p.Category != nil {
		c.Category = p.Category.Name
	}
	if p.Brand != nil {
		c.Brand = p.Brand.Name
	}
	return c
}

// ProductDetail is the product page projection.
type ProductDetail struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	OldPrice    *float64  `json:"oldPrice,omitempty"`
	Discount    *int      `json:"discount,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Condition   string    `json:"condition,omitempty"`
	Brand       *Brand    `json:"brand,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Images      []string  `json:"images"`
}

// Detail projects the product for its own page. OldPrice is set only when a
// promotion lowers the price.
func (p *Product) Detail() ProductDetail {
	d := ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.CurrentPrice(),
		Discount:    p.DiscountPercent,
		Gender:      p.Gender,
		Condition:   p.Condition,
		Brand:       p.Brand,
		Category:    p.Category,
		Images:      []string{},
	}
	if d.Price < p.OriginalPrice {
		old := p.OriginalPrice
		d.OldPrice = &old
	}
	for _, img := range p.SortedImages() {
		d.Images = append(d.Images, img.URL)
	}
	if len(d.Images) == 0 {
		d.Images = append(d.Images, PlaceholderImage)
	}
	return d
}

// ProductPage is one page of a product query plus the total match count.
type ProductPage struct {
	Products []*Product
	Total    int
}

// Cards projects every product of the page.
func (pp *ProductPage) Cards() []ProductCard {
	out := make([]ProductCard, 0, len(pp.Products))
	for _, p := range pp.Products {
		out = append(out, p.Card())
	}
	return out
}

// NewProduct holds the data needed to create a product. Brand and category
// are referenced by slug and may be empty.
type NewProduct struct {
	Name            string
	Slug            string
	Description     string
	OriginalPrice   float64
	PromoPrice      *float64
	DiscountPercent *int
	Featured        bool
	Sales           int
	Gender          string
	Condition       string
	Inactive        bool
	BrandSlug       string
	CategorySlug    string
	CreatedAt       time.Time
	Images          []Image
}
