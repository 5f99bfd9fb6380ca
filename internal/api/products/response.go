package products

import (
	"github.com/johnwards/vitrine/internal/browse"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/internal/listing"
)

type listingResponse struct {
	Title      string               `json:"titulo"`
	Total      int                  `json:"total"`
	URL        string               `json:"url"`
	ClearURL   string               `json:"limparUrl"`
	Products   []domain.ProductCard `json:"produtos"`
	Applied    []appliedFilter      `json:"filtrosAplicados"`
	Sorts      []sortOption         `json:"ordenacoes"`
	Pagination pagination           `json:"paginacao"`
}

// appliedFilter is one removable chip above the listing.
type appliedFilter struct {
	Dimension string `json:"dimensao"`
	Value     string `json:"valor"`
	Label     string `json:"rotulo"`
	RemoveURL string `json:"removerUrl"`
}

type sortOption struct {
	Value  string `json:"valor"`
	Label  string `json:"rotulo"`
	URL    string `json:"url"`
	Active bool   `json:"ativo"`
}

type pageLink struct {
	Number int    `json:"numero"`
	URL    string `json:"url"`
	Active bool   `json:"ativo"`
}

type pagination struct {
	Page       int        `json:"pagina"`
	PageSize   int        `json:"itens"`
	TotalPages int        `json:"totalPaginas"`
	Pages      []pageLink `json:"paginas"`
	PrevURL    string     `json:"anteriorUrl,omitempty"`
	NextURL    string     `json:"proximaUrl,omitempty"`
}

// facetOption is one entry of the filter sidebar. URL is the listing
// produced by toggling the option.
type facetOption struct {
	Value  string `json:"valor"`
	Label  string `json:"rotulo"`
	Active bool   `json:"ativo"`
	URL    string `json:"url"`
}

type facetsResponse struct {
	Brands     []facetOption `json:"marcas"`
	Categories []facetOption `json:"categorias"`
	Prices     []facetOption `json:"precos"`
	Genders    []facetOption `json:"generos"`
	Conditions []facetOption `json:"estados"`
	ClearURL   string        `json:"limparUrl"`
}

func newListingResponse(v browse.View, names listing.Names) listingResponse {
	st := v.State
	page := domain.ProductPage{Products: v.Products, Total: v.Total}
	return listingResponse{
		Title:      listing.Title(st, names),
		Total:      v.Total,
		URL:        v.URL,
		ClearURL:   st.ClearAll().URL(),
		Products:   page.Cards(),
		Applied:    appliedFilters(st, names),
		Sorts:      sortOptions(st),
		Pagination: newPagination(st, v.Total),
	}
}

func appliedFilters(st listing.State, names listing.Names) []appliedFilter {
	out := []appliedFilter{}
	add := func(dim listing.Dimension, value, label string) {
		out = append(out, appliedFilter{
			Dimension: string(dim),
			Value:     value,
			Label:     label,
			RemoveURL: st.ToggleFilter(dim, value).URL(),
		})
	}
	for _, slug := range st.Filters.Brands {
		add(listing.DimensionBrand, slug, labelOr(names.Brands, slug))
	}
	for _, slug := range st.Filters.Categories {
		add(listing.DimensionCategory, slug, labelOr(names.Categories, slug))
	}
	for _, g := range st.Filters.Genders {
		add(listing.DimensionGender, g, g)
	}
	if st.Filters.Price != listing.PriceAny {
		add(listing.DimensionPrice, st.Filters.Price.String(), st.Filters.Price.String())
	}
	if st.Filters.Condition != listing.ConditionAny {
		add(listing.DimensionCondition, st.Filters.Condition.String(), st.Filters.Condition.String())
	}
	if st.Filters.HasSearch() {
		out = append(out, appliedFilter{
			Dimension: listing.ParamQuery,
			Value:     st.Filters.Search,
			Label:     `"` + st.Filters.Search + `"`,
			RemoveURL: st.SetSearchQuery("").URL(),
		})
	}
	return out
}

func labelOr(names map[string]string, slug string) string {
	if n := names[slug]; n != "" {
		return n
	}
	return slug
}

func sortOptions(st listing.State) []sortOption {
	orders := listing.SortOrders()
	out := make([]sortOption, 0, len(orders))
	for _, o := range orders {
		out = append(out, sortOption{
			Value:  o.String(),
			Label:  o.Label(),
			URL:    st.SetSort(o).URL(),
			Active: st.Sort == o,
		})
	}
	return out
}

func newPagination(st listing.State, total int) pagination {
	totalPages := listing.TotalPages(total, st.Page.Size)
	p := pagination{
		Page:       st.Page.Page,
		PageSize:   st.Page.Limit(),
		TotalPages: totalPages,
		Pages:      []pageLink{},
	}
	for _, n := range listing.PageWindow(st.Page.Page, totalPages) {
		p.Pages = append(p.Pages, pageLink{Number: n, URL: st.SetPage(n).URL(), Active: n == st.Page.Page})
	}
	if st.Page.Page > 1 && st.Page.Page <= totalPages {
		p.PrevURL = st.SetPage(st.Page.Page - 1).URL()
	}
	if st.Page.Page < totalPages {
		p.NextURL = st.SetPage(st.Page.Page + 1).URL()
	}
	return p
}

func newFacetsResponse(st listing.State, brands []domain.Brand, categories []domain.Category) facetsResponse {
	option := func(dim listing.Dimension, value, label string) facetOption {
		return facetOption{
			Value:  value,
			Label:  label,
			Active: st.Active(dim, value),
			URL:    st.ToggleFilter(dim, value).URL(),
		}
	}

	resp := facetsResponse{
		Brands:     make([]facetOption, 0, len(brands)),
		Categories: make([]facetOption, 0, len(categories)),
		ClearURL:   st.ClearAll().URL(),
	}
	for _, b := range brands {
		resp.Brands = append(resp.Brands, option(listing.DimensionBrand, b.Slug, b.Name))
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, option(listing.DimensionCategory, c.Slug, c.Name))
	}
	for _, b := range listing.PriceBuckets() {
		resp.Prices = append(resp.Prices, option(listing.DimensionPrice, b.String(), b.String()))
	}
	for _, g := range listing.Genders() {
		resp.Genders = append(resp.Genders, option(listing.DimensionGender, g, g))
	}
	for _, c := range listing.Conditions() {
		resp.Conditions = append(resp.Conditions, option(listing.DimensionCondition, c.String(), c.String()))
	}
	return resp
}
