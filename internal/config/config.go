// Package config defines the run configuration of the autos pipeline and
// loads it from defaults, an optional config file and AUTOS_* environment
// variables.
//
// Example (yaml):
//
//	job: autos
//	source:
//	  path: autos.csv
//	  encoding: Latin-1
//	filter:
//	  price_max: 999990
//	aggregate:
//	  group_by: brand
//	  top: 6
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Pipeline is the full configuration of one run.
type Pipeline struct {
	Job       string    `mapstructure:"job" yaml:"job" json:"job"`
	Verbose   bool      `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Source    Source    `mapstructure:"source" yaml:"source" json:"source"`
	Schema    Schema    `mapstructure:"schema" yaml:"schema" json:"schema"`
	Filter    Filter    `mapstructure:"filter" yaml:"filter" json:"filter"`
	Aggregate Aggregate `mapstructure:"aggregate" yaml:"aggregate" json:"aggregate"`
	Report    Report    `mapstructure:"report" yaml:"report" json:"report"`
	Metrics   Metrics   `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// Source locates and decodes the input export.
type Source struct {
	Path     string `mapstructure:"path" yaml:"path" json:"path"`
	Encoding string `mapstructure:"encoding" yaml:"encoding" json:"encoding"`
	// Comma is the field delimiter, a single character.
	Comma string `mapstructure:"comma" yaml:"comma" json:"comma"`
	// Lenient skips rows whose width differs from the header instead of
	// failing the load.
	Lenient bool `mapstructure:"lenient" yaml:"lenient" json:"lenient"`
}

// Schema controls header normalization.
type Schema struct {
	Unmapped string `mapstructure:"unmapped" yaml:"unmapped" json:"unmapped"`
}

// Filter holds the outlier bounds.
type Filter struct {
	PriceMax int `mapstructure:"price_max" yaml:"price_max" json:"price_max"`
	YearMin  int `mapstructure:"year_min" yaml:"year_min" json:"year_min"`
	YearMax  int `mapstructure:"year_max" yaml:"year_max" json:"year_max"`
}

// Aggregate selects the grouping column and how many groups to keep.
type Aggregate struct {
	GroupBy string `mapstructure:"group_by" yaml:"group_by" json:"group_by"`
	Top     int    `mapstructure:"top" yaml:"top" json:"top"`
	Sort    string `mapstructure:"sort" yaml:"sort" json:"sort"`
}

// Report selects the output format.
type Report struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Metrics selects the metrics backend. Backend is one of none, pushgateway
// or datadog.
type Metrics struct {
	Backend        string `mapstructure:"backend" yaml:"backend" json:"backend"`
	PushgatewayURL string `mapstructure:"pushgateway_url" yaml:"pushgateway_url" json:"pushgateway_url"`
	StatsdAddr     string `mapstructure:"statsd_addr" yaml:"statsd_addr" json:"statsd_addr"`
}

var defaults = map[string]any{
	"job":                     "autos",
	"verbose":                 false,
	"source.path":             "autos.csv",
	"source.encoding":         "Latin-1",
	"source.comma":            ",",
	"source.lenient":          false,
	"schema.unmapped":         "error",
	"filter.price_max":        999990,
	"filter.year_min":         1910,
	"filter.year_max":         2016,
	"aggregate.group_by":      "brand",
	"aggregate.top":           6,
	"aggregate.sort":          "price",
	"report.format":           "table",
	"metrics.backend":         "none",
	"metrics.pushgateway_url": "",
	"metrics.statsd_addr":     "",
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("AUTOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Defaults returns the configuration with no file and no environment. It
// panics if the built-in defaults table does not decode.
func Defaults() Pipeline {
	p, err := decodeDefaults(defaults)
	if err != nil {
		panic(err)
	}
	return p
}

func decodeDefaults(d map[string]any) (Pipeline, error) {
	v := viper.New()
	for k, val := range d {
		v.SetDefault(k, val)
	}
	var p Pipeline
	if err := v.Unmarshal(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode defaults: %w", err)
	}
	return p, nil
}

// Load builds the configuration. Precedence: env > config file > defaults.
// With an empty path, ./autos.{yaml,json,toml} is read when present.
func Load(path string) (Pipeline, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Pipeline{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("autos")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Pipeline{}, fmt.Errorf("read config: %w", err)
			}
		}
	}
	var p Pipeline
	if err := v.Unmarshal(&p); err != nil {
		return Pipeline{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return p, nil
}

// CommaRune returns the delimiter as a rune, ',' when unset.
func (s Source) CommaRune() rune {
	if s.Comma == "" {
		return ','
	}
	return []rune(s.Comma)[0]
}
