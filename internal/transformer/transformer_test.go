package transformer

import (
	"reflect"
	"testing"

	"autos/internal/listing"
)

/*
identityTransformer is a no-op transformer used in tests.
*/
type identityTransformer struct{}

func (identityTransformer) Name() string                          { return "identity" }
func (identityTransformer) Apply(in listing.Table) listing.Table { return in }

/*
dropBrandTransformer removes rows of one brand; it filters in place.
*/
type dropBrandTransformer struct{ brand string }

func (t dropBrandTransformer) Name() string { return "drop_" + t.brand }
func (t dropBrandTransformer) Apply(in listing.Table) listing.Table {
	return in.Filter(func(l *listing.Listing) bool { return l.Brand != t.brand })
}

/*
counterTransformer appends its id to *calls so ordering can be checked.
*/
type counterTransformer struct {
	id    string
	calls *[]string
}

func (t counterTransformer) Name() string { return t.id }
func (t counterTransformer) Apply(in listing.Table) listing.Table {
	*t.calls = append(*t.calls, t.id)
	return in
}

func sample() listing.Table {
	return listing.NewTable([]listing.Listing{
		{Brand: "audi"}, {Brand: "bmw"}, {Brand: "audi"}, {Brand: "fiat"},
	})
}

func TestChainApply_Empty(t *testing.T) {
	in := sample()
	out := Chain(nil).Apply(in)
	if out.Len() != 4 {
		t.Fatalf("empty chain changed row count: %d", out.Len())
	}
}

func TestChainApply_OrderAndFiltering(t *testing.T) {
	var calls []string
	c := Chain{
		counterTransformer{id: "first", calls: &calls},
		dropBrandTransformer{brand: "audi"},
		identityTransformer{},
		counterTransformer{id: "last", calls: &calls},
	}
	out := c.Apply(sample())

	if !reflect.DeepEqual(calls, []string{"first", "last"}) {
		t.Fatalf("calls = %v", calls)
	}
	brands, _ := out.Texts(listing.Brand)
	if !reflect.DeepEqual(brands, []string{"bmw", "fiat"}) {
		t.Fatalf("brands = %v", brands)
	}
}

func TestChainApplyWith_ReportsCounts(t *testing.T) {
	type step struct {
		name          string
		before, after int
	}
	var got []step
	c := Chain{dropBrandTransformer{brand: "audi"}, dropBrandTransformer{brand: "fiat"}}
	c.ApplyWith(sample(), func(name string, before, after int) {
		got = append(got, step{name, before, after})
	})
	want := []step{{"drop_audi", 4, 2}, {"drop_fiat", 2, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("observed %+v; want %+v", got, want)
	}
}
