package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/bloom/internal/export"
)

// formatPrice renders a price as rupiah, "Rp 150.000".
func formatPrice(amount float64) string {
	return export.FormatPrice(amount)
}

// shortID shows the first eight characters of an id followed by "...".
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// orDash substitutes a dash for blank optional fields.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// truncate shortens s to limit runes, ending in an ellipsis when cut.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// truncateMiddle keeps both ends of long values such as image URLs.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// humanizeAge renders how long ago t was, relative to now.
func humanizeAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// progressBar draws a filled/empty bar of width cells for ratio in [0,1].
func progressBar(ratio float64, width int) (filled, empty string) {
	if width <= 0 {
		return "", ""
	}
	ratio = max(0, min(ratio, 1))
	n := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}
