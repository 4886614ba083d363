// Package listing defines the typed Listing Table that flows through the
// cleaning pipeline once the raw CSV has been normalized and coerced.
//
// Columns are addressed by the enumerated Column type rather than by free-form
// strings, so a typo is a compile error instead of a silent miss.
package listing

import "fmt"

// Column identifies one field of a Listing. Its String form is the canonical
// snake_case column name.
type Column int

const (
	DateCrawled Column = iota
	Name
	Price
	ABTest
	VehicleType
	RegistrationYear
	Gearbox
	PowerPS
	Model
	OdometerKM
	RegistrationMonth
	FuelType
	Brand
	UnrepairedDamage
	DateCreated
	PostalCode
	LastSeen

	numColumns
)

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
)

func (k Kind) String() string {
	if k == KindInt {
		return "int"
	}
	return "text"
}

var columnNames = [numColumns]string{
	DateCrawled:       "date_crawled",
	Name:              "name",
	Price:             "price",
	ABTest:            "abtest",
	VehicleType:       "vehicle_type",
	RegistrationYear:  "registration_year",
	Gearbox:           "gearbox",
	PowerPS:           "power_ps",
	Model:             "model",
	OdometerKM:        "odometer_km",
	RegistrationMonth: "registration_month",
	FuelType:          "fuel_type",
	Brand:             "brand",
	UnrepairedDamage:  "unrepaired_damage",
	DateCreated:       "date_created",
	PostalCode:        "postal_code",
	LastSeen:          "last_seen",
}

// String returns the snake_case column name.
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Kind reports whether the column holds text or integers.
func (c Column) Kind() Kind {
	switch c {
	case Price, RegistrationYear, PowerPS, OdometerKM, RegistrationMonth, PostalCode:
		return KindInt
	default:
		return KindText
	}
}

// Columns returns every column in file order.
func Columns() []Column {
	out := make([]Column, numColumns)
	for i := range out {
		out[i] = Column(i)
	}
	return out
}

// ParseColumn resolves a snake_case name to its Column.
func ParseColumn(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// Listing is one used-vehicle classified ad. Empty text fields mean the
// source cell was empty.
type Listing struct {
	DateCrawled       string `json:"date_crawled"`
	Name              string `json:"name"`
	Price             int    `json:"price"`
	ABTest            string `json:"abtest"`
	VehicleType       string `json:"vehicle_type"`
	RegistrationYear  int    `json:"registration_year"`
	Gearbox           string `json:"gearbox"`
	PowerPS           int    `json:"power_ps"`
	Model             string `json:"model"`
	OdometerKM        int    `json:"odometer_km"`
	RegistrationMonth int    `json:"registration_month"`
	FuelType          string `json:"fuel_type"`
	Brand             string `json:"brand"`
	UnrepairedDamage  string `json:"unrepaired_damage"`
	DateCreated       string `json:"date_created"`
	PostalCode        int    `json:"postal_code"`
	LastSeen          string `json:"last_seen"`
}

// Int returns the value of an integer column. ok is false for text columns.
func (l *Listing) Int(c Column) (v int, ok bool) {
	switch c {
	case Price:
		return l.Price, true
	case RegistrationYear:
		return l.RegistrationYear, true
	case PowerPS:
		return l.PowerPS, true
	case OdometerKM:
		return l.OdometerKM, true
	case RegistrationMonth:
		return l.RegistrationMonth, true
	case PostalCode:
		return l.PostalCode, true
	}
	return 0, false
}

// Text returns the value of a text column. ok is false for integer columns.
func (l *Listing) Text(c Column) (v string, ok bool) {
	switch c {
	case DateCrawled:
		return l.DateCrawled, true
	case Name:
		return l.Name, true
	case ABTest:
		return l.ABTest, true
	case VehicleType:
		return l.VehicleType, true
	case Gearbox:
		return l.Gearbox, true
	case Model:
		return l.Model, true
	case FuelType:
		return l.FuelType, true
	case Brand:
		return l.Brand, true
	case UnrepairedDamage:
		return l.UnrepairedDamage, true
	case DateCreated:
		return l.DateCreated, true
	case LastSeen:
		return l.LastSeen, true
	}
	return "", false
}

// SetInt assigns an integer column. It panics on a text column, which is a
// programming error.
func (l *Listing) SetInt(c Column, v int) {
	switch c {
	case Price:
		l.Price = v
	case RegistrationYear:
		l.RegistrationYear = v
	case PowerPS:
		l.PowerPS = v
	case OdometerKM:
		l.OdometerKM = v
	case RegistrationMonth:
		l.RegistrationMonth = v
	case PostalCode:
		l.PostalCode = v
	default:
		panic(fmt.Sprintf("listing: SetInt on %s column %s", c.Kind(), c))
	}
}

// SetText assigns a text column. It panics on an integer column.
func (l *Listing) SetText(c Column, v string) {
	switch c {
	case DateCrawled:
		l.DateCrawled = v
	case Name:
		l.Name = v
	case ABTest:
		l.ABTest = v
	case VehicleType:
		l.VehicleType = v
	case Gearbox:
		l.Gearbox = v
	case Model:
		l.Model = v
	case FuelType:
		l.FuelType = v
	case Brand:
		l.Brand = v
	case UnrepairedDamage:
		l.UnrepairedDamage = v
	case DateCreated:
		l.DateCreated = v
	case LastSeen:
		l.LastSeen = v
	default:
		panic(fmt.Sprintf("listing: SetText on %s column %s", c.Kind(), c))
	}
}
