package csv

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_HeaderAndRows(t *testing.T) {
	in := "\uFEFFdateCrawled, name ,price\n" +
		"2016-03-26 17:47:46,Peugeot_807,\"$5,000\"\n" +
		"2016-04-04 13:38:56,Ford_Focus,\"$8,500\"\n"

	got, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []string{"dateCrawled", "name", "price"}; !reflect.DeepEqual(got.Header, want) {
		t.Fatalf("Header = %q; want %q", got.Header, want)
	}
	if r, c := got.Shape(); r != 2 || c != 3 {
		t.Fatalf("Shape() = (%d, %d); want (2, 3)", r, c)
	}
	if got.Rows[1][2] != "$8,500" {
		t.Fatalf("Rows[1][2] = %q", got.Rows[1][2])
	}
	if got.Index("price") != 2 || got.Index("missing") != -1 {
		t.Fatalf("Index lookups wrong: price=%d missing=%d", got.Index("price"), got.Index("missing"))
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := NewParser(Options{}).Parse(strings.NewReader(""))
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("Parse(empty) error = %v; want ErrNoHeader", err)
	}
}

/*
TestParse_WidthMismatch verifies strict mode fails on the first short row with
its line number, while lenient mode skips and counts it.
*/
func TestParse_WidthMismatch(t *testing.T) {
	in := "a,b,c\n1,2,3\n4,5\n6,7,8\n"

	_, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("strict Parse() error = %v; want line 3 width error", err)
	}

	got, err := NewParser(Options{Lenient: true}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("lenient Parse() error = %v", err)
	}
	if got.Skipped != 1 || len(got.Rows) != 2 {
		t.Fatalf("lenient: skipped=%d rows=%d; want 1 and 2", got.Skipped, len(got.Rows))
	}
}

func TestParse_CustomComma(t *testing.T) {
	got, err := NewParser(Options{Comma: ';'}).Parse(strings.NewReader("a;b\n1;2\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(got.Rows, [][]string{{"1", "2"}}) {
		t.Fatalf("Rows = %q", got.Rows)
	}
}
