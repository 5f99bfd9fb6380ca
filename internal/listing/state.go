// Package listing holds the product-listing filter state, the operations that
// change it, and its two derived forms: the catalog query description and the
// canonical URL query string.
package listing

import "strings"

const (
	// DefaultPageSize is the page size used when the URL does not carry one.
	DefaultPageSize = 12
	// MaxPageSize caps page sizes accepted from URLs and SetPageSize.
	MaxPageSize = 100
)

// Dimension names a filter dimension. The values double as URL parameter names.
type Dimension string

const (
	DimensionBrand     Dimension = "marca"
	DimensionCategory  Dimension = "categoria"
	DimensionGender    Dimension = "genero"
	DimensionPrice     Dimension = "preco"
	DimensionCondition Dimension = "estado"
)

// PriceBucket is one of the fixed price ranges offered by the listing.
type PriceBucket int

const (
	PriceAny PriceBucket = iota
	PriceUpTo50
	Price50To100
	Price100To200
	PriceOver200
)

var priceLabels = map[PriceBucket]string{
	PriceUpTo50:   "Até R$50",
	Price50To100:  "R$50 a R$100",
	Price100To200: "R$100 a R$200",
	PriceOver200:  "Acima de R$200",
}

// PriceBuckets returns the selectable buckets in display order.
func PriceBuckets() []PriceBucket {
	return []PriceBucket{PriceUpTo50, Price50To100, Price100To200, PriceOver200}
}

// String returns the bucket label as it appears in the URL. PriceAny is "".
func (b PriceBucket) String() string {
	return priceLabels[b]
}

// ParsePriceBucket maps a URL label to its bucket.
func ParsePriceBucket(label string) (PriceBucket, bool) {
	for b, l := range priceLabels {
		if l == label {
			return b, true
		}
	}
	return PriceAny, false
}

// Condition is the product condition filter.
type Condition int

const (
	ConditionAny Condition = iota
	ConditionNew
	ConditionUsed
)

// Conditions returns the selectable conditions in display order.
func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionUsed}
}

// String returns the condition label used in the URL and stored on products.
func (c Condition) String() string {
	switch c {
	case ConditionNew:
		return "Novo"
	case ConditionUsed:
		return "Usado"
	}
	return ""
}

// ParseCondition maps a URL label to its condition.
func ParseCondition(label string) (Condition, bool) {
	switch label {
	case "Novo":
		return ConditionNew, true
	case "Usado":
		return ConditionUsed, true
	}
	return ConditionAny, false
}

// Genders lists the gender values offered by the filter sidebar. The filter
// itself accepts any value.
func Genders() []string {
	return []string{"Masculino", "Feminino", "Unisex"}
}

// SortOrder selects the listing order.
type SortOrder int

const (
	SortRelevance SortOrder = iota
	SortPriceAsc
	SortPriceDesc
	SortNewest
	SortBestSelling
)

var sortNames = []struct {
	order SortOrder
	name  string
	label string
}{
	{SortRelevance, "relevancia", "Relevância"},
	{SortPriceAsc, "menor_preco", "Menor preço"},
	{SortPriceDesc, "maior_preco", "Maior preço"},
	{SortNewest, "mais_recente", "Mais recente"},
	{SortBestSelling, "mais_vendido", "Mais vendido"},
}

// SortOrders returns every sort order in display order.
func SortOrders() []SortOrder {
	out := make([]SortOrder, len(sortNames))
	for i, s := range sortNames {
		out[i] = s.order
	}
	return out
}

// String returns the URL name of the sort order.
func (o SortOrder) String() string {
	for _, s := range sortNames {
		if s.order == o {
			return s.name
		}
	}
	return sortNames[0].name
}

// Label returns the human readable name of the sort order.
func (o SortOrder) Label() string {
	for _, s := range sortNames {
		if s.order == o {
			return s.label
		}
	}
	return sortNames[0].label
}

// ParseSortOrder maps a URL name to its sort order.
func ParseSortOrder(name string) (SortOrder, bool) {
	for _, s := range sortNames {
		if s.name == name {
			return s.order, true
		}
	}
	return SortRelevance, false
}

// FilterState is the set of user-selected filters. The zero value means no
// filter. Set-valued fields keep selection order and hold no duplicates.
type FilterState struct {
	Brands     []string    `json:"brands,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Price      PriceBucket `json:"price,omitempty"`
	Genders    []string    `json:"genders,omitempty"`
	Condition  Condition   `json:"condition,omitempty"`
	Search     string      `json:"search,omitempty"`
}

// IsEmpty reports whether no filter and no search text is set.
func (f FilterState) IsEmpty() bool {
	return len(f.Brands) == 0 && len(f.Categories) == 0 && len(f.Genders) == 0 &&
		f.Price == PriceAny && f.Condition == ConditionAny && f.Search == ""
}

// HasSearch reports whether the search text has any non-blank content.
func (f FilterState) HasSearch() bool {
	return strings.TrimSpace(f.Search) != ""
}

// PageState is the current page position.
type PageState struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Offset returns the zero-based row offset of the page.
func (p PageState) Offset() int {
	offset := (p.Page - 1) * p.Limit()
	if offset < 0 {
		return 0
	}
	return offset
}

// Limit returns the page size, falling back to DefaultPageSize.
func (p PageState) Limit() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// State is everything the listing view mirrors into its URL. State values are
// immutable in practice: operations return a new State and never modify the
// slices of the receiver, so copies may share them.
type State struct {
	Filters FilterState `json:"filters"`
	Sort    SortOrder   `json:"sort"`
	Page    PageState   `json:"page"`
}

// NewState returns the default listing state: no filters, relevance, page 1.
func NewState() State {
	return State{Page: PageState{Page: 1, Size: DefaultPageSize}}
}

// MarshalText encodes the bucket as its label.
func (b PriceBucket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// MarshalText encodes the condition as its label.
func (c Condition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText encodes the sort order as its URL name.
func (o SortOrder) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
