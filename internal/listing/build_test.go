package listing_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnwards/vitrine/internal/listing"
)

// fakeResolver serves slugs from fixed tables and records the calls it saw.
type fakeResolver struct {
	mu    sync.Mutex
	ids   map[listing.Kind]map[string]int64
	fail  map[listing.Kind]error
	calls map[listing.Kind][]string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		ids: map[listing.Kind]map[string]int64{
			listing.KindBrand:    {"nike": 1, "adidas": 2, "puma": 3},
			listing.KindCategory: {"tenis": 10, "camisetas": 11},
		},
		fail:  map[listing.Kind]error{},
		calls: map[listing.Kind][]string{},
	}
}

func (f *fakeResolver) Resolve(_ context.Context, kind listing.Kind, slugs []string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind] = append([]string(nil), slugs...)
	if err := f.fail[kind]; err != nil {
		return nil, err
	}
	out := map[string]int64{}
	for _, s := range slugs {
		if id, ok := f.ids[kind][s]; ok {
			out[s] = id
		}
	}
	return out, nil
}

func TestCompileFullState(t *testing.T) {
	s := listing.NewState().
		ToggleFilter(listing.DimensionBrand, "nike").
		ToggleFilter(listing.DimensionBrand, "puma").
		ToggleFilter(listing.DimensionCategory, "tenis").
		ToggleFilter(listing.DimensionGender, "Feminino").
		ToggleFilter(listing.DimensionCondition, "Novo").
		ToggleFilter(listing.DimensionPrice, "R$50 a R$100").
		SetSort(listing.SortPriceAsc).
		SetSearchQuery("  corrida  ").
		SetPage(3)

	got := listing.Compile(s, listing.Resolved{BrandIDs: []int64{1, 3}, CategoryIDs: []int64{10}})

	want := listing.Query{
		Predicates: []listing.Predicate{
			listing.Eq(listing.FieldActive, true),
			listing.In(listing.FieldBrandID, int64(1), int64(3)),
			listing.In(listing.FieldCategoryID, int64(10)),
			listing.In(listing.FieldGender, "Feminino"),
			listing.Eq(listing.FieldCondition, "Novo"),
			{Field: listing.FieldPrice, Op: listing.OpGte, Value: 50.0},
			{Field: listing.FieldPrice, Op: listing.OpLte, Value: 100.0},
		},
		Text: &listing.TextMatch{
			Field:    listing.FieldName,
			Query:    "corrida",
			Language: listing.TextSearchLanguage,
		},
		Orders: []listing.Order{
			{Field: listing.FieldPrice},
			{Field: listing.FieldID},
		},
		Offset: 24,
		Limit:  12,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile (-want +got):\n%s", diff)
	}
}

func TestCompileDefaultState(t *testing.T) {
	got := listing.Compile(listing.NewState(), listing.Resolved{})

	want := listing.Query{
		Predicates: []listing.Predicate{listing.Eq(listing.FieldActive, true)},
		Orders: []listing.Order{
			{Field: listing.FieldFeatured, Desc: true},
			{Field: listing.FieldSales, Desc: true},
			{Field: listing.FieldID},
		},
		Offset: 0,
		Limit:  listing.DefaultPageSize,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile (-want +got):\n%s", diff)
	}
}

func TestCompileBlankSearchOmitted(t *testing.T) {
	got := listing.Compile(listing.NewState().SetSearchQuery("   "), listing.Resolved{})
	if got.Text != nil {
		t.Errorf("Text = %+v, want nil", got.Text)
	}
}

func TestCompileIsPure(t *testing.T) {
	s := listing.NewState().
		ToggleFilter(listing.DimensionGender, "Masculino").
		ToggleFilter(listing.DimensionPrice, "Acima de R$200")
	ids := listing.Resolved{BrandIDs: []int64{2}}

	if diff := cmp.Diff(listing.Compile(s, ids), listing.Compile(s, ids)); diff != "" {
		t.Errorf("Compile not deterministic:\n%s", diff)
	}
}

func TestCompileOffsets(t *testing.T) {
	tests := []struct {
		page, size, offset, limit int
	}{
		{1, 12, 0, 12},
		{2, 12, 12, 12},
		{4, 24, 72, 24},
		{0, 12, 0, 12},
		{-3, 12, 0, 12},
	}
	for _, tt := range tests {
		s := listing.NewState().SetPageSize(tt.size).SetPage(tt.page)
		q := listing.Compile(s, listing.Resolved{})
		if q.Offset != tt.offset || q.Limit != tt.limit {
			t.Errorf("page %d size %d: offset/limit = %d/%d, want %d/%d",
				tt.page, tt.size, q.Offset, q.Limit, tt.offset, tt.limit)
		}
	}
}

func TestSortOrders(t *testing.T) {
	tests := []struct {
		sort listing.SortOrder
		want []listing.Order
	}{
		{listing.SortPriceDesc, []listing.Order{{Field: listing.FieldPrice, Desc: true}, {Field: listing.FieldID}}},
		{listing.SortNewest, []listing.Order{{Field: listing.FieldCreatedAt, Desc: true}, {Field: listing.FieldID}}},
		{listing.SortBestSelling, []listing.Order{{Field: listing.FieldSales, Desc: true}, {Field: listing.FieldID}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.sort.Orders()); diff != "" {
			t.Errorf("%s orders (-want +got):\n%s", tt.sort, diff)
		}
	}
}

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		bucket listing.PriceBucket
		price  float64
		want   bool
	}{
		{listing.PriceUpTo50, 0, true},
		{listing.PriceUpTo50, 49.99, true},
		{listing.PriceUpTo50, 50, false},
		{listing.Price50To100, 50, true},
		{listing.Price50To100, 100, true},
		{listing.Price50To100, 100.01, false},
		{listing.Price100To200, 100, true},
		{listing.Price100To200, 200, true},
		{listing.Price100To200, 99.99, false},
		{listing.PriceOver200, 200, false},
		{listing.PriceOver200, 200.01, true},
	}
	for _, tt := range tests {
		r, ok := tt.bucket.Range()
		if !ok {
			t.Fatalf("%q has no range", tt.bucket)
		}
		if got := r.Contains(tt.price); got != tt.want {
			t.Errorf("%q contains %.2f = %v, want %v", tt.bucket, tt.price, got, tt.want)
		}
	}

	if _, ok := listing.PriceAny.Range(); ok {
		t.Error("PriceAny should have no range")
	}
}

func TestResolveKeepsSelectionOrder(t *testing.T) {
	r := newFakeResolver()
	s := listing.NewState().
		ToggleFilter(listing.DimensionBrand, "puma").
		ToggleFilter(listing.DimensionBrand, "desconhecida").
		ToggleFilter(listing.DimensionBrand, "nike").
		ToggleFilter(listing.DimensionCategory, "camisetas")

	got := listing.Resolve(context.Background(), s, r, zap.NewNop())

	want := listing.Resolved{BrandIDs: []int64{3, 1}, CategoryIDs: []int64{11}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"puma", "desconhecida", "nike"}, r.calls[listing.KindBrand]); diff != "" {
		t.Errorf("brand lookup (-want +got):\n%s", diff)
	}
}

func TestResolveSkipsUnselectedDimensions(t *testing.T) {
	r := newFakeResolver()
	_ = listing.Resolve(context.Background(), listing.NewState(), r, nil)
	if len(r.calls) != 0 {
		t.Errorf("resolver called for empty state: %v", r.calls)
	}
}

func TestResolveFailureDropsDimension(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := newFakeResolver()
	r.fail[listing.KindCategory] = errors.New("connection refused")

	s := listing.NewState().
		ToggleFilter(listing.DimensionBrand, "adidas").
		ToggleFilter(listing.DimensionCategory, "tenis").
		ToggleFilter(listing.DimensionGender, "Unisex")

	q := listing.BuildQuery(context.Background(), s, r, zap.New(core))

	want := []listing.Predicate{
		listing.Eq(listing.FieldActive, true),
		listing.In(listing.FieldBrandID, int64(2)),
		listing.In(listing.FieldGender, "Unisex"),
	}
	if diff := cmp.Diff(want, q.Predicates); diff != "" {
		t.Errorf("predicates (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage("slug lookup failed, dropping filter").Len(); n != 1 {
		t.Errorf("logged %d lookup failures, want 1", n)
	}
}

func TestResolveNoMatchesDropsDimension(t *testing.T) {
	r := newFakeResolver()
	s := listing.NewState().ToggleFilter(listing.DimensionBrand, "inexistente")

	q := listing.BuildQuery(context.Background(), s, r, zap.NewNop())

	want := []listing.Predicate{listing.Eq(listing.FieldActive, true)}
	if diff := cmp.Diff(want, q.Predicates, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("predicates (-want +got):\n%s", diff)
	}
}

func TestResolveNilResolver(t *testing.T) {
	s := listing.NewState().ToggleFilter(listing.DimensionCategory, "tenis")
	got := listing.Resolve(context.Background(), s, nil, nil)
	if len(got.CategoryIDs) != 0 {
		t.Errorf("CategoryIDs = %v, want none", got.CategoryIDs)
	}
}
