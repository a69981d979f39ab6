// Package export writes catalog snapshots and statistics for the command
// line: JSON in the same shape as the persisted slot, YAML for reading, and a
// plain text summary for `bloom stats`.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/five82/bloom/internal/catalog"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat accepts json, yaml (or yml) and text, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or text)", s)
	}
}

// StatsReport is Statistics plus the derived progress figure.
type StatsReport struct {
	catalog.Statistics `yaml:",inline"`
	ProgressPercent    int `json:"progressPercent" yaml:"progressPercent"`
}

// NewStatsReport wraps stats for encoding.
func NewStatsReport(stats catalog.Statistics) StatsReport {
	return StatsReport{Statistics: stats, ProgressPercent: stats.ProgressPercent()}
}

// WriteRecords encodes records to w. The JSON form matches the persisted
// slot; an empty catalog is written as an empty list rather than null.
func WriteRecords(w io.Writer, f Format, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatText:
		return writeRecordsText(w, records)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// WriteStats encodes statistics for the snapshot to w.
func WriteStats(w io.Writer, f Format, stats catalog.Statistics) error {
	report := NewStatsReport(stats)
	if report.CategoryBreakdown == nil {
		report.CategoryBreakdown = map[string]int{}
	}
	if report.Categories == nil {
		report.Categories = []catalog.CategoryCount{}
	}
	if report.TopCategories == nil {
		report.TopCategories = []catalog.CategoryCount{}
	}
	switch f {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatText:
		return writeStatsText(w, report)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

func writeRecordsText(w io.Writer, records []catalog.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPRICE\tCATEGORY\tSIZE\tPURCHASED")
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = "-"
		}
		size := r.Size
		if size == "" {
			size = "-"
		}
		purchased := "no"
		if r.Purchased {
			purchased = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, FormatPrice(r.Price), category, size, purchased)
	}
	return tw.Flush()
}

func writeStatsText(w io.Writer, r StatsReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total bouquets\t%d\n", r.Total)
	fmt.Fprintf(tw, "Purchased\t%d\n", r.Purchased)
	fmt.Fprintf(tw, "Not purchased\t%d\n", r.Unpurchased)
	fmt.Fprintf(tw, "Progress\t%d%%\n", r.ProgressPercent)
	fmt.Fprintf(tw, "Total value\t%s\n", FormatPrice(r.TotalValue))
	fmt.Fprintf(tw, "Purchased value\t%s\n", FormatPrice(r.PurchasedValue))
	if len(r.TopCategories) > 0 {
		fmt.Fprintln(tw, "\nTop categories\t")
		for i, c := range r.TopCategories {
			fmt.Fprintf(tw, "%d. %s\t%d\n", i+1, c.Label, c.Count)
		}
	}
	return tw.Flush()
}

// FormatPrice renders an amount the way Indonesian rupiah are usually shown:
// "Rp 150.000", "Rp 12,5". Dots group thousands, a comma separates up to
// three fraction digits.
func FormatPrice(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	fixed := strconv.FormatFloat(math.Round(amount*1000)/1000, 'f', 3, 64)
	whole, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString("Rp ")
	b.WriteString(sign)
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}
