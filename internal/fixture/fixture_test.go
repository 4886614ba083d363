package fixture

import (
	"bytes"
	"strings"
	"testing"

	"autos/internal/parser/csv"
	"autos/internal/schema"
	"autos/internal/transformer/builtin"
)

func TestWriteDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Write(&a, Options{Rows: 20, Seed: 7}); err != nil {
		t.Fatal(err)
	}
	if err := Write(&b, Options{Rows: 20, Seed: 7}); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Fatalf("same seed produced different output")
	}
	header := strings.SplitN(a.String(), "\n", 2)[0]
	if header != strings.Join(schema.Autos.SourceHeaders(), ",") {
		t.Fatalf("header = %q", header)
	}
}

/*
TestWriteRoundTripsThroughCleaning parses a generated export with the real
loader stages and checks that exactly the planted outliers are filtered.
*/
func TestWriteRoundTripsThroughCleaning(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Options{Rows: 100, Seed: 42, Outliers: 9}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	raw, err := csv.NewParser(csv.Options{}).Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r, c := raw.Shape(); r != 100 || c != 20 {
		t.Fatalf("raw shape = (%d, %d)", r, c)
	}
	norm, err := schema.NewNormalizer(schema.UnmappedError).Apply(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !strings.HasPrefix(norm.Rows[0][norm.Index("price")], "$") {
		t.Fatalf("price cell %q lacks $", norm.Rows[0][norm.Index("price")])
	}
	if !strings.HasSuffix(norm.Rows[0][norm.Index("odometer")], "km") {
		t.Fatalf("odometer cell %q lacks km", norm.Rows[0][norm.Index("odometer")])
	}
	tbl, err := builtin.Coerce{}.Apply(norm)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}

	var hi, lo, pricey int
	for _, l := range tbl.Rows {
		switch {
		case l.RegistrationYear == OutlierYearHi:
			hi++
		case l.RegistrationYear == OutlierYearLow:
			lo++
		case l.Price == OutlierPrice:
			pricey++
		}
	}
	if hi != 3 || lo != 3 || pricey != 3 {
		t.Fatalf("outliers = %d/%d/%d; want 3/3/3", hi, lo, pricey)
	}
	if got := builtin.DefaultOutliers().Apply(tbl).Len(); got != 91 {
		t.Fatalf("rows after filter = %d; want 91", got)
	}
}

func TestWriteHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Options{Outliers: 3}); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Fatalf("lines = %d; want header only", n)
	}
}

func TestWriteMoreOutliersThanRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Options{Rows: 4, Seed: 3, Outliers: 10}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	raw, err := csv.NewParser(csv.Options{}).Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	norm, err := schema.NewNormalizer(schema.UnmappedError).Apply(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	tbl, err := builtin.Coerce{}.Apply(norm)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("rows = %d; want 4", tbl.Len())
	}
	if got := builtin.DefaultOutliers().Apply(tbl).Len(); got != 0 {
		t.Fatalf("rows after filter = %d; want every row to be an outlier", got)
	}
}
