package builtin

import (
	"log"

	"autos/internal/listing"
	"autos/internal/transformer"
)

// Outlier bounds picked by inspecting the export. Prices jump from 350000 to
// 999990 with nothing in between; registrations cannot predate motor
// vehicles or follow the 2016 crawl.
const (
	DefaultPriceMax = 999990
	DefaultYearMin  = 1910
	DefaultYearMax  = 2016
)

// PriceCeiling keeps rows whose price is strictly below Max.
type PriceCeiling struct {
	Max int
}

func (PriceCeiling) Name() string { return "price" }

func (p PriceCeiling) Apply(in listing.Table) listing.Table {
	before := in.Len()
	out := in.Filter(func(l *listing.Listing) bool { return l.Price < p.Max })
	logShape("price", before, out)
	return out
}

// YearRange keeps rows with Min <= registration_year <= Max.
type YearRange struct {
	Min, Max int
}

func (YearRange) Name() string { return "registration_year" }

func (y YearRange) Apply(in listing.Table) listing.Table {
	before := in.Len()
	out := in.Filter(func(l *listing.Listing) bool {
		return l.RegistrationYear >= y.Min && l.RegistrationYear <= y.Max
	})
	logShape("registration_year", before, out)
	return out
}

// Outliers returns the price and registration-year filters as one chain.
func Outliers(priceMax, yearMin, yearMax int) transformer.Chain {
	return transformer.Chain{
		PriceCeiling{Max: priceMax},
		YearRange{Min: yearMin, Max: yearMax},
	}
}

// DefaultOutliers is Outliers with the default bounds.
func DefaultOutliers() transformer.Chain {
	return Outliers(DefaultPriceMax, DefaultYearMin, DefaultYearMax)
}

func logShape(stage string, before int, out listing.Table) {
	r, c := out.Shape()
	log.Printf("filter %s: dropped=%d shape=(%d, %d)", stage, before-r, r, c)
}
