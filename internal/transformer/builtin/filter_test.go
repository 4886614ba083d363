package builtin

import (
	"testing"

	"autos/internal/listing"
)

func listings(pairs ...[2]int) listing.Table {
	rows := make([]listing.Listing, len(pairs))
	for i, p := range pairs {
		rows[i] = listing.Listing{Price: p[0], RegistrationYear: p[1], Brand: "x"}
	}
	return listing.NewTable(rows)
}

/*
TestOutlierBoundaries pins the inclusive/exclusive edges of both checks.
*/
func TestOutlierBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		price int
		year  int
		keep  bool
	}{
		{"price at ceiling excluded", 999990, 2000, false},
		{"price just below ceiling kept", 999989, 2000, true},
		{"price far above excluded", 99999999, 2000, false},
		{"year lower bound kept", 1000, 1910, true},
		{"year below lower bound excluded", 1000, 1909, false},
		{"year upper bound kept", 1000, 2016, true},
		{"year above upper bound excluded", 1000, 2017, false},
		{"year 9999 excluded", 1000, 9999, false},
		{"free listing kept", 0, 2005, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DefaultOutliers().Apply(listings([2]int{tt.price, tt.year}))
			if got := out.Len() == 1; got != tt.keep {
				t.Fatalf("kept=%v; want %v", got, tt.keep)
			}
		})
	}
}

func TestOutliersInvariant(t *testing.T) {
	in := listings(
		[2]int{500, 1000}, [2]int{12000000, 2010}, [2]int{2500, 2005},
		[2]int{999990, 2001}, [2]int{700, 9999}, [2]int{350000, 1910},
	)
	out := DefaultOutliers().Apply(in)
	if out.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", out.Len())
	}
	for _, l := range out.Rows {
		if l.Price >= DefaultPriceMax || l.RegistrationYear < DefaultYearMin || l.RegistrationYear > DefaultYearMax {
			t.Fatalf("row escaped the filter: %+v", l)
		}
	}
}

func TestOutliersReportsPerStage(t *testing.T) {
	dropped := map[string]int{}
	DefaultOutliers().ApplyWith(
		listings([2]int{1, 2000}, [2]int{999990, 2000}, [2]int{1, 1800}, [2]int{1, 2017}),
		func(name string, before, after int) { dropped[name] = before - after },
	)
	if dropped["price"] != 1 || dropped["registration_year"] != 2 {
		t.Fatalf("dropped = %v", dropped)
	}
}

func TestOutliersCustomBounds(t *testing.T) {
	out := Outliers(100, 2000, 2001).Apply(listings([2]int{99, 2000}, [2]int{100, 2000}, [2]int{50, 2002}))
	if out.Len() != 1 || out.Rows[0].Price != 99 {
		t.Fatalf("out = %+v", out.Rows)
	}
}
