package listing

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kind selects the catalog table a slug belongs to.
type Kind string

const (
	KindBrand    Kind = "marca"
	KindCategory Kind = "categoria"
)

// Resolver maps catalog slugs to internal ids. Slugs with no matching entry
// are simply absent from the result.
type Resolver interface {
	Resolve(ctx context.Context, kind Kind, slugs []string) (map[string]int64, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, kind Kind, slugs []string) (map[string]int64, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, kind Kind, slugs []string) (map[string]int64, error) {
	return f(ctx, kind, slugs)
}

// Resolved holds the ids found for the brand and category slugs of a state,
// in slug selection order.
type Resolved struct {
	BrandIDs    []int64 `json:"brandIds,omitempty"`
	CategoryIDs []int64 `json:"categoryIds,omitempty"`
}

// Resolve looks up the brand and category slugs of s concurrently. A failed
// or empty lookup leaves that dimension without ids and is logged; it never
// fails the whole resolution.
func Resolve(ctx context.Context, s State, r Resolver, logger *zap.Logger) Resolved {
	if logger == nil {
		logger = zap.NewNop()
	}
	var out Resolved
	var g errgroup.Group
	if len(s.Filters.Brands) > 0 {
		g.Go(func() error {
			out.BrandIDs = resolveKind(ctx, r, KindBrand, s.Filters.Brands, logger)
			return nil
		})
	}
	if len(s.Filters.Categories) > 0 {
		g.Go(func() error {
			out.CategoryIDs = resolveKind(ctx, r, KindCategory, s.Filters.Categories, logger)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func resolveKind(ctx context.Context, r Resolver, kind Kind, slugs []string, logger *zap.Logger) []int64 {
	if r == nil {
		logger.Warn("no slug resolver configured, dropping filter", zap.String("kind", string(kind)))
		return nil
	}
	found, err := r.Resolve(ctx, kind, slugs)
	if err != nil {
		logger.Warn("slug lookup failed, dropping filter",
			zap.String("kind", string(kind)),
			zap.Strings("slugs", slugs),
			zap.Error(err),
		)
		return nil
	}
	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		if id, ok := found[slug]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		logger.Info("no catalog entry for slugs, dropping filter",
			zap.String("kind", string(kind)),
			zap.Strings("slugs", slugs),
		)
		return nil
	}
	return ids
}

// Compile turns a state and its resolved ids into a query description. It is
// pure: the same inputs always give the same query.
func Compile(s State, ids Resolved) Query {
	q := Query{
		Predicates: []Predicate{Eq(FieldActive, true)},
	}

	if len(ids.BrandIDs) > 0 {
		q.Predicates = append(q.Predicates, In(FieldBrandID, int64s(ids.BrandIDs)...))
	}
	if len(ids.CategoryIDs) > 0 {
		q.Predicates = append(q.Predicates, In(FieldCategoryID, int64s(ids.CategoryIDs)...))
	}
	if len(s.Filters.Genders) > 0 {
		q.Predicates = append(q.Predicates, In(FieldGender, strs(s.Filters.Genders)...))
	}
	if s.Filters.Condition != ConditionAny {
		q.Predicates = append(q.Predicates, Eq(FieldCondition, s.Filters.Condition.String()))
	}
	if r, ok := s.Filters.Price.Range(); ok {
		q.Predicates = append(q.Predicates, r.Predicates(FieldPrice)...)
	}

	if s.Filters.HasSearch() {
		q.Text = &TextMatch{
			Field:    FieldName,
			Query:    strings.TrimSpace(s.Filters.Search),
			Language: TextSearchLanguage,
		}
	}

	q.Orders = s.Sort.Orders()
	q.Offset = s.Page.Offset()
	q.Limit = s.Page.Limit()
	return q
}

// BuildQuery resolves the slugs of s and compiles the query description.
func BuildQuery(ctx context.Context, s State, r Resolver, logger *zap.Logger) Query {
	return Compile(s, Resolve(ctx, s, r, logger))
}

func int64s(vs []int64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func strs(vs []string) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
