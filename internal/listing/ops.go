package listing

import "fmt"

// ToggleFilter flips value in the given dimension and returns to page 1.
//
// Set-valued dimensions (brand, category, gender) add the value when absent
// and remove it when present; an empty value leaves the set unchanged.
// Single-valued dimensions (price, condition) select the value, or clear the
// dimension when the value is already selected or is not a known label.
// An unknown dimension panics.
func (s State) ToggleFilter(dim Dimension, value string) State {
	next := s
	switch dim {
	case DimensionBrand:
		next.Filters.Brands = toggle(s.Filters.Brands, value)
	case DimensionCategory:
		next.Filters.Categories = toggle(s.Filters.Categories, value)
	case DimensionGender:
		next.Filters.Genders = toggle(s.Filters.Genders, value)
	case DimensionPrice:
		b, ok := ParsePriceBucket(value)
		if !ok || b == s.Filters.Price {
			b = PriceAny
		}
		next.Filters.Price = b
	case DimensionCondition:
		c, ok := ParseCondition(value)
		if !ok || c == s.Filters.Condition {
			c = ConditionAny
		}
		next.Filters.Condition = c
	default:
		panic(fmt.Sprintf("listing: unknown filter dimension %q", dim))
	}
	next.Page.Page = 1
	return next
}

// Active reports whether value is currently selected in the dimension.
func (s State) Active(dim Dimension, value string) bool {
	switch dim {
	case DimensionBrand:
		return contains(s.Filters.Brands, value)
	case DimensionCategory:
		return contains(s.Filters.Categories, value)
	case DimensionGender:
		return contains(s.Filters.Genders, value)
	case DimensionPrice:
		return s.Filters.Price != PriceAny && s.Filters.Price.String() == value
	case DimensionCondition:
		return s.Filters.Condition != ConditionAny && s.Filters.Condition.String() == value
	}
	return false
}

// SetSort replaces the sort order and returns to page 1.
func (s State) SetSort(order SortOrder) State {
	next := s
	next.Sort = order
	next.Page.Page = 1
	return next
}

// SetSearchQuery replaces the free-text search and returns to page 1. The
// empty string clears the search.
func (s State) SetSearchQuery(text string) State {
	next := s
	next.Filters.Search = text
	next.Page.Page = 1
	return next
}

// ClearAll returns the default state, so the listing URL becomes the bare
// BasePath. The page size is reset too.
func (s State) ClearAll() State {
	return NewState()
}

// SetPage moves to page n. It does not validate n and keeps the filters.
func (s State) SetPage(n int) State {
	next := s
	next.Page.Page = n
	return next
}

// SetPageSize changes the page size, clamped to [1, MaxPageSize], and returns
// to page 1. Sizes below 1 select DefaultPageSize.
func (s State) SetPageSize(n int) State {
	next := s
	switch {
	case n < 1:
		n = DefaultPageSize
	case n > MaxPageSize:
		n = MaxPageSize
	}
	next.Page.Size = n
	next.Page.Page = 1
	return next
}

// toggle returns a new slice with value added or removed.
func toggle(values []string, value string) []string {
	if value == "" {
		return values
	}
	for i, v := range values {
		if v == value {
			out := make([]string, 0, len(values)-1)
			out = append(out, values[:i]...)
			out = append(out, values[i+1:]...)
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values...)
	return append(out, value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
