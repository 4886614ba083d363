package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"autos/internal/aggregate"
)

func doc() Document {
	return Document{GroupBy: "brand", Groups: aggregate.Groups{
		{Key: "volkswagen", Count: 9862, MeanPrice: 5402, MeanMileage: 128707},
		{Key: "bmw", Count: 5283, MeanPrice: 8332, MeanMileage: 132573},
	}}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, doc(), FormatTable); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if f := strings.Fields(lines[0]); strings.Join(f, ",") != "brand,mean_price,mean_mileage" {
		t.Fatalf("header = %q", lines[0])
	}
	if f := strings.Fields(lines[2]); strings.Join(f, ",") != "bmw,8332,132573" {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, doc(), FormatJSON); err != nil {
		t.Fatal(err)
	}
	var got Document
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.GroupBy != "brand" || got.Groups[1].MeanMileage != 132573 {
		t.Fatalf("decoded = %+v", got)
	}
	if !strings.Contains(buf.String(), `"mean_price": 5402`) {
		t.Fatalf("json lacks mean_price:\n%s", buf.String())
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, doc(), FormatYAML); err != nil {
		t.Fatal(err)
	}
	var got Document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if len(got.Groups) != 2 || got.Groups[0].Key != "volkswagen" {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(csv) err = %v", err)
	}
	if err := Render(&bytes.Buffer{}, doc(), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Render(xml) err = %v", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Document{GroupBy: "brand"}, FormatTable); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); strings.Join(strings.Fields(got), ",") != "brand,mean_price,mean_mileage" {
		t.Fatalf("empty table = %q", got)
	}
}
