// Package fixture generates synthetic listing exports in the marketplace's
// raw layout: camelCase headers, "$5,000" prices and "150,000km" odometers.
package fixture

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"autos/internal/schema"
)

// Options controls the generated file.
type Options struct {
	Rows int
	Seed int64
	// Outliers is how many of the Rows carry an implausible value: a
	// registration year of 1000 or 9999, or a price of $99,999,999.
	Outliers int
}

// Outlier values written into outlier rows.
const (
	OutlierPrice   = 99999999
	OutlierYearLow = 1000
	OutlierYearHi  = 9999
)

var (
	brands       = []string{"volkswagen", "bmw", "opel", "mercedes_benz", "audi", "ford", "renault", "peugeot", "fiat", "seat"}
	vehicleTypes = []string{"limousine", "kleinwagen", "kombi", "bus", "cabrio", "coupe", "suv", ""}
	gearboxes    = []string{"manuell", "automatik", ""}
	fuelTypes    = []string{"benzin", "diesel", "lpg", ""}
	damage       = []string{"nein", "ja", ""}
	odometers    = []int{5000, 10000, 20000, 30000, 40000, 50000, 60000, 70000, 80000, 90000, 100000, 125000, 150000}

	crawlStart = time.Date(2016, 3, 5, 0, 0, 0, 0, time.UTC)
	crawlEnd   = time.Date(2016, 4, 7, 0, 0, 0, 0, time.UTC)
)

// Write emits a header and opt.Rows listings to w. The same seed yields the
// same bytes.
func Write(w io.Writer, opt Options) error {
	f := gofakeit.New(opt.Seed)
	p := message.NewPrinter(language.English)

	cw := csv.NewWriter(w)
	if err := cw.Write(schema.Autos.SourceHeaders()); err != nil {
		return fmt.Errorf("fixture: write header: %w", err)
	}
	if opt.Outliers > opt.Rows {
		opt.Outliers = opt.Rows
	}
	step := 0
	if opt.Outliers > 0 {
		step = max(1, opt.Rows/opt.Outliers)
	}
	outliers := 0
	for i := 0; i < opt.Rows; i++ {
		rec := listing(f)
		if step > 0 && outliers < opt.Outliers && i%step == step-1 {
			markOutlier(rec, outliers)
			outliers++
		}
		row := make([]string, len(schema.Autos.Fields))
		for j, fld := range schema.Autos.Fields {
			row[j] = rec.cell(fld.Source, p)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("fixture: write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type record struct {
	crawled, created, seen time.Time
	brand, model           string
	price, year, month     int
	power, km, postal      int
	vehicle, gear, fuel    string
	damage, abtest         string
}

func listing(f *gofakeit.Faker) *record {
	crawled := f.DateRange(crawlStart, crawlEnd).Truncate(time.Second)
	created := crawled.AddDate(0, 0, -f.Number(0, 30)).Truncate(24 * time.Hour)
	return &record{
		crawled: crawled,
		created: created,
		seen:    crawled.Add(time.Duration(f.Number(0, 30*24)) * time.Hour),
		brand:   f.RandomString(brands),
		model:   f.CarModel(),
		price:   f.Number(0, 35000),
		year:    f.Number(1960, 2016),
		month:   f.Number(0, 12),
		power:   f.Number(0, 450),
		km:      odometers[f.Number(0, len(odometers)-1)],
		postal:  f.Number(1067, 99998),
		vehicle: f.RandomString(vehicleTypes),
		gear:    f.RandomString(gearboxes),
		fuel:    f.RandomString(fuelTypes),
		damage:  f.RandomString(damage),
		abtest:  f.RandomString([]string{"test", "control"}),
	}
}

func markOutlier(r *record, n int) {
	switch n % 3 {
	case 0:
		r.year = OutlierYearHi
	case 1:
		r.price = OutlierPrice
	case 2:
		r.year = OutlierYearLow
	}
}

const stamp = "2006-01-02 15:04:05"

func (r *record) cell(source string, p *message.Printer) string {
	switch source {
	case "dateCrawled":
		return r.crawled.Format(stamp)
	case "name":
		return r.brand + "_" + r.model
	case "seller":
		return "privat"
	case "offerType":
		return "Angebot"
	case "price":
		return p.Sprintf("$%d", r.price)
	case "abtest":
		return r.abtest
	case "vehicleType":
		return r.vehicle
	case "yearOfRegistration":
		return strconv.Itoa(r.year)
	case "gearbox":
		return r.gear
	case "powerPS":
		return strconv.Itoa(r.power)
	case "model":
		return r.model
	case "odometer":
		return p.Sprintf("%dkm", r.km)
	case "monthOfRegistration":
		return strconv.Itoa(r.month)
	case "fuelType":
		return r.fuel
	case "brand":
		return r.brand
	case "notRepairedDamage":
		return r.damage
	case "dateCreated":
		return r.created.Format(stamp)
	case "nrOfPictures":
		return "0"
	case "postalCode":
		return strconv.Itoa(r.postal)
	case "lastSeen":
		return r.seen.Format(stamp)
	}
	return ""
}
