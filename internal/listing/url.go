package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BasePath is the path of the product listing.
const BasePath = "/produtos"

// URL query parameter names.
const (
	ParamBrand     = "marca"
	ParamCategory  = "categoria"
	ParamGender    = "genero"
	ParamPrice     = "preco"
	ParamCondition = "estado"
	ParamSort      = "ordenar"
	ParamPage      = "pagina"
	ParamPageSize  = "itens"
	ParamQuery     = "q"
)

// Encode serialises the state into a query string without the leading "?".
// Parameters are written in a fixed order, multi-valued dimensions as
// repeated keys; defaults (relevance, page 1, page size 12, empty search) are
// omitted so the empty state encodes to "".
func Encode(s State) string {
	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	for _, v := range s.Filters.Brands {
		add(ParamBrand, v)
	}
	for _, v := range s.Filters.Categories {
		add(ParamCategory, v)
	}
	for _, v := range s.Filters.Genders {
		add(ParamGender, v)
	}
	if s.Filters.Price != PriceAny {
		add(ParamPrice, s.Filters.Price.String())
	}
	if s.Filters.Condition != ConditionAny {
		add(ParamCondition, s.Filters.Condition.String())
	}
	if s.Sort != SortRelevance {
		add(ParamSort, s.Sort.String())
	}
	if s.Page.Page > 1 {
		add(ParamPage, strconv.Itoa(s.Page.Page))
	}
	if s.Page.Size > 0 && s.Page.Size != DefaultPageSize {
		add(ParamPageSize, strconv.Itoa(s.Page.Size))
	}
	if s.Filters.Search != "" {
		add(ParamQuery, s.Filters.Search)
	}
	return b.String()
}

// URL returns the canonical listing URL for the state.
func (s State) URL() string {
	if q := Encode(s); q != "" {
		return BasePath + "?" + q
	}
	return BasePath
}

// Decode reads a state from URL query values. Absent parameters take their
// defaults; unknown enum labels, unparsable numbers and empty repeated values
// are ignored.
func Decode(values url.Values) State {
	s := NewState()

	s.Filters.Brands = uniq(values[ParamBrand])
	s.Filters.Categories = uniq(values[ParamCategory])
	s.Filters.Genders = uniq(values[ParamGender])

	if b, ok := ParsePriceBucket(values.Get(ParamPrice)); ok {
		s.Filters.Price = b
	}
	if c, ok := ParseCondition(values.Get(ParamCondition)); ok {
		s.Filters.Condition = c
	}
	if o, ok := ParseSortOrder(values.Get(ParamSort)); ok {
		s.Sort = o
	}
	if n, err := strconv.Atoi(values.Get(ParamPage)); err == nil && n >= 1 {
		s.Page.Page = n
	}
	if n, err := strconv.Atoi(values.Get(ParamPageSize)); err == nil && n >= 1 && n <= MaxPageSize {
		s.Page.Size = n
	}
	s.Filters.Search = values.Get(ParamQuery)

	return s
}

// ParseURL decodes a listing URL. It accepts a full URL, a path with a query
// string, or a bare query string with or without the leading "?".
func ParseURL(raw string) (State, error) {
	values, err := QueryValues(raw)
	if err != nil {
		return State{}, err
	}
	return Decode(values), nil
}

// QueryValues extracts the query parameters of any form accepted by ParseURL.
func QueryValues(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	var query string
	switch i := strings.IndexByte(raw, '?'); {
	case i >= 0:
		query = raw[i+1:]
	case strings.Contains(raw, "="):
		query = raw
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("parse listing query: %w", err)
	}
	return values, nil
}

// uniq drops empty strings and later duplicates, keeping first-seen order.
func uniq(values []string) []string {
	var out []string
	for _, v := range values {
		if v == "" || contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
