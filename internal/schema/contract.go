// Package schema holds the fixed column contract of the listing export and
// the normalizer that maps raw camelCase headers onto it.
package schema

// Field describes one column of the source export.
type Field struct {
	Name    string `json:"name"`   // snake_case name after normalization
	Source  string `json:"source"` // header as published by the marketplace
	Type    string `json:"type"`   // "int" | "text"
	Dropped bool   `json:"dropped,omitempty"`
}

// Contract is an ordered set of fields.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Autos is the eBay Kleinanzeigen used-car export, in file column order.
// num_pictures, offer_type and seller are near-constant and dropped.
var Autos = Contract{
	Name: "autos",
	Fields: []Field{
		{Name: "date_crawled", Source: "dateCrawled", Type: "text"},
		{Name: "name", Source: "name", Type: "text"},
		{Name: "seller", Source: "seller", Type: "text", Dropped: true},
		{Name: "offer_type", Source: "offerType", Type: "text", Dropped: true},
		{Name: "price", Source: "price", Type: "text"},
		{Name: "abtest", Source: "abtest", Type: "text"},
		{Name: "vehicle_type", Source: "vehicleType", Type: "text"},
		{Name: "registration_year", Source: "yearOfRegistration", Type: "int"},
		{Name: "gearbox", Source: "gearbox", Type: "text"},
		{Name: "power_ps", Source: "powerPS", Type: "int"},
		{Name: "model", Source: "model", Type: "text"},
		{Name: "odometer", Source: "odometer", Type: "text"},
		{Name: "registration_month", Source: "monthOfRegistration", Type: "int"},
		{Name: "fuel_type", Source: "fuelType", Type: "text"},
		{Name: "brand", Source: "brand", Type: "text"},
		{Name: "unrepaired_damage", Source: "notRepairedDamage", Type: "text"},
		{Name: "date_created", Source: "dateCreated", Type: "text"},
		{Name: "num_pictures", Source: "nrOfPictures", Type: "int", Dropped: true},
		{Name: "postal_code", Source: "postalCode", Type: "int"},
		{Name: "last_seen", Source: "lastSeen", Type: "text"},
	},
}

// HeaderMap returns source header -> normalized name for every field.
func (c Contract) HeaderMap() map[string]string {
	m := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		m[f.Source] = f.Name
	}
	return m
}

// SourceHeaders returns the raw headers in file order.
func (c Contract) SourceHeaders() []string {
	out := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		out[i] = f.Source
	}
	return out
}

// Dropped returns the normalized names of dropped fields.
func (c Contract) Dropped() []string {
	var out []string
	for _, f := range c.Fields {
		if f.Dropped {
			out = append(out, f.Name)
		}
	}
	return out
}

// Expected returns the normalized names that must survive normalization, in
// file order.
func (c Contract) Expected() []string {
	var out []string
	for _, f := range c.Fields {
		if !f.Dropped {
			out = append(out, f.Name)
		}
	}
	return out
}
