package listing

// Field is a product attribute the catalog collaborator can filter or order by.
type Field string

const (
	FieldID         Field = "id"
	FieldActive     Field = "ativo"
	FieldBrandID    Field = "marca_id"
	FieldCategoryID Field = "categoria_id"
	FieldGender     Field = "genero"
	FieldCondition  Field = "estado"
	// FieldPrice is the effective price: promotional when set, else original.
	FieldPrice     Field = "preco"
	FieldName      Field = "nome"
	FieldFeatured  Field = "destacado"
	FieldSales     Field = "quantidade_vendas"
	FieldCreatedAt Field = "data_criacao"
)

// Operator is a predicate comparison.
type Operator string

const (
	OpEq  Operator = "eq"
	OpIn  Operator = "in"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
)

// TextSearchLanguage is the language used for product name matching.
const TextSearchLanguage = "portuguese"

// Predicate is a single condition. Value is used by every operator except
// OpIn, which uses Values.
type Predicate struct {
	Field  Field    `json:"field"`
	Op     Operator `json:"op"`
	Value  any      `json:"value,omitempty"`
	Values []any    `json:"values,omitempty"`
}

// Eq builds an equality predicate.
func Eq(f Field, v any) Predicate { return Predicate{Field: f, Op: OpEq, Value: v} }

// In builds a membership predicate.
func In(f Field, vs ...any) Predicate { return Predicate{Field: f, Op: OpIn, Values: vs} }

// TextMatch is a language-aware full-text match.
type TextMatch struct {
	Field    Field  `json:"field"`
	Query    string `json:"query"`
	Language string `json:"language"`
}

// Order is one ordering key.
type Order struct {
	Field Field `json:"field"`
	Desc  bool  `json:"desc,omitempty"`
}

// Query describes a page of products for the catalog collaborator: every
// predicate must hold (AND), the optional text match too, rows come back in
// Orders order, skipping Offset and returning at most Limit.
type Query struct {
	Predicates []Predicate `json:"predicates"`
	Text       *TextMatch  `json:"text,omitempty"`
	Orders     []Order     `json:"orders"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

// Bound is one end of a numeric range.
type Bound struct {
	Value     float64 `json:"value"`
	Inclusive bool    `json:"inclusive"`
}

// Range is a numeric interval; a nil bound is open.
type Range struct {
	Min *Bound `json:"min,omitempty"`
	Max *Bound `json:"max,omitempty"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil {
		if v < r.Min.Value || (v == r.Min.Value && !r.Min.Inclusive) {
			return false
		}
	}
	if r.Max != nil {
		if v > r.Max.Value || (v == r.Max.Value && !r.Max.Inclusive) {
			return false
		}
	}
	return true
}

// Predicates expresses the range as comparisons on f.
func (r Range) Predicates(f Field) []Predicate {
	var out []Predicate
	if r.Min != nil {
		op := OpGt
		if r.Min.Inclusive {
			op = OpGte
		}
		out = append(out, Predicate{Field: f, Op: op, Value: r.Min.Value})
	}
	if r.Max != nil {
		op := OpLt
		if r.Max.Inclusive {
			op = OpLte
		}
		out = append(out, Predicate{Field: f, Op: op, Value: r.Max.Value})
	}
	return out
}

// Range returns the price interval of the bucket. The 50-100 and 100-200
// buckets are both closed, so a price of exactly 100 falls in both.
func (b PriceBucket) Range() (Range, bool) {
	switch b {
	case PriceUpTo50:
		return Range{Min: &Bound{Value: 0, Inclusive: true}, Max: &Bound{Value: 50}}, true
	case Price50To100:
		return Range{Min: &Bound{Value: 50, Inclusive: true}, Max: &Bound{Value: 100, Inclusive: true}}, true
	case Price100To200:
		return Range{Min: &Bound{Value: 100, Inclusive: true}, Max: &Bound{Value: 200, Inclusive: true}}, true
	case PriceOver200:
		return Range{Min: &Bound{Value: 200}}, true
	}
	return Range{}, false
}

// orderings maps each sort order to its ordering list. Relevance has no
// scoring behind it and falls back to featured first, then best sellers.
var orderings = map[SortOrder][]Order{
	SortRelevance:   {{Field: FieldFeatured, Desc: true}, {Field: FieldSales, Desc: true}},
	SortPriceAsc:    {{Field: FieldPrice}},
	SortPriceDesc:   {{Field: FieldPrice, Desc: true}},
	SortNewest:      {{Field: FieldCreatedAt, Desc: true}},
	SortBestSelling: {{Field: FieldSales, Desc: true}},
}

// Orders returns the ordering for the sort order, ending with an id tiebreaker.
func (o SortOrder) Orders() []Order {
	base, ok := orderings[o]
	if !ok {
		base = orderings[SortRelevance]
	}
	out := make([]Order, 0, len(base)+1)
	out = append(out, base...)
	return append(out, Order{Field: FieldID})
}
