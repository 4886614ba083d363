package config

// This file holds a small linter for Pipeline values. It performs static
// checks and returns a list of issues (errors and warnings) that callers can
// surface in the CLI or tests.

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"autos/internal/aggregate"
	"autos/internal/datasource/file"
	"autos/internal/listing"
	"autos/internal/report"
	"autos/internal/schema"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "filter.year_min").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of p. It does not mutate p.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and run logs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	if _, err := schema.ParseUnmappedPolicy(p.Schema.Unmapped); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Path: "schema.unmapped", Message: err.Error()})
	}
	issues = append(issues, validateFilter(p.Filter)...)
	issues = append(issues, validateAggregate(p.Aggregate)...)
	if _, err := report.ParseFormat(p.Report.Format); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Path: "report.format", Message: err.Error()})
	}
	issues = append(issues, validateMetrics(p.Metrics)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.path",
			Message:  "source.path must not be empty",
		})
	}
	if err := file.ValidateEncoding(s.Encoding); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.encoding",
			Message:  err.Error(),
		})
	}
	if s.Comma != "" {
		r, size := utf8.DecodeRuneInString(s.Comma)
		if size != len(s.Comma) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.comma",
				Message:  fmt.Sprintf("comma %q must be a single character other than quote or newline", s.Comma),
			})
		}
	}
	if s.Lenient {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.lenient",
			Message:  "lenient parsing skips malformed rows; counts may not match the file",
		})
	}

	return issues
}

func validateFilter(f Filter) []Issue {
	var issues []Issue

	if f.PriceMax <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "filter.price_max",
			Message:  fmt.Sprintf("price_max=%d; the ceiling must be positive", f.PriceMax),
		})
	}
	if f.YearMin > f.YearMax {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "filter.year_min",
			Message:  fmt.Sprintf("year_min=%d is after year_max=%d; every row would be dropped", f.YearMin, f.YearMax),
		})
	}

	return issues
}

func validateAggregate(a Aggregate) []Issue {
	var issues []Issue

	col, ok := listing.ParseColumn(a.GroupBy)
	switch {
	case !ok:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "aggregate.group_by",
			Message:  fmt.Sprintf("unknown column %q", a.GroupBy),
		})
	case col.Kind() != listing.KindText:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "aggregate.group_by",
			Message:  fmt.Sprintf("column %q is numeric; group by a categorical column", a.GroupBy),
		})
	}
	if a.Top < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "aggregate.top",
			Message:  "top must not be negative",
		})
	} else if a.Top == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "aggregate.top",
			Message:  "top=0 reports every group",
		})
	}
	if _, err := aggregate.ParseOrder(a.Sort); err != nil {
		issues = append(issues, Issue{Severity: SeverityError, Path: "aggregate.sort", Message: err.Error()})
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch strings.ToLower(m.Backend) {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires a URL",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.StatsdAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "metrics.statsd_addr",
				Message:  "statsd_addr is empty; the agent address is read from DD_AGENT_HOST",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q (want none, pushgateway or datadog)", m.Backend),
		})
	}

	return issues
}
