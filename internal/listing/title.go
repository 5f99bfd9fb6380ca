package listing

// Names maps brand and category slugs to display names.
type Names struct {
	Brands     map[string]string
	Categories map[string]string
}

// Title returns the listing heading for the state.
func Title(s State, names Names) string {
	if s.Filters.HasSearch() {
		return `Resultados para "` + s.Filters.Search + `"`
	}
	if len(s.Filters.Categories) == 1 {
		if name := names.Categories[s.Filters.Categories[0]]; name != "" {
			return name
		}
		return "Produtos"
	}
	if len(s.Filters.Brands) == 1 {
		if name := names.Brands[s.Filters.Brands[0]]; name != "" {
			return "Produtos " + name
		}
	}
	return "Produtos"
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (total + pageSize - 1) / pageSize
}

// PageWindow returns the page numbers shown around page: two on each side,
// clamped to [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	start := max(page-2, 1)
	end := min(page+2, totalPages)
	if start > end {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out
}
