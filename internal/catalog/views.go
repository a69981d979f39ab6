package catalog

import (
	"math"
	"sort"
	"strings"
)

// UncategorizedLabel groups records with an empty category in statistics.
// It is never written back into a record.
const UncategorizedLabel = "Uncategorized"

// TopCategoryLimit caps Statistics.TopCategories.
const TopCategoryLimit = 5

// FilterByName returns the records whose name contains query, ignoring case.
// An empty query returns the whole snapshot in order.
func FilterByName(snapshot []Record, query string) []Record {
	if query == "" {
		return cloneRecords(snapshot)
	}
	needle := strings.ToLower(query)
	out := make([]Record, 0, len(snapshot))
	for _, r := range snapshot {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Statistics aggregates a snapshot.
type Statistics struct {
	Total       int `json:"total" yaml:"total"`
	Purchased   int `json:"purchased" yaml:"purchased"`
	Unpurchased int `json:"unpurchased" yaml:"unpurchased"`

	// CategoryBreakdown maps category label to record count.
	CategoryBreakdown map[string]int `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	// Categories lists the breakdown in first-encounter order.
	Categories []CategoryCount `json:"categories" yaml:"categories"`
	// TopCategories is Categories stably sorted by count, at most TopCategoryLimit long.
	TopCategories []CategoryCount `json:"topCategories" yaml:"topCategories"`

	TotalValue     float64 `json:"totalValue" yaml:"totalValue"`
	PurchasedValue float64 `json:"purchasedValue" yaml:"purchasedValue"`
}

// ComputeStatistics aggregates counts, category breakdown and price totals.
func ComputeStatistics(snapshot []Record) Statistics {
	stats := Statistics{
		Total:             len(snapshot),
		CategoryBreakdown: make(map[string]int),
	}

	order := make([]string, 0)
	for _, r := range snapshot {
		if r.Purchased {
			stats.Purchased++
			stats.PurchasedValue += r.Price
		}
		stats.TotalValue += r.Price

		label := categoryLabel(r.Category)
		if _, seen := stats.CategoryBreakdown[label]; !seen {
			order = append(order, label)
		}
		stats.CategoryBreakdown[label]++
	}
	stats.Unpurchased = stats.Total - stats.Purchased

	stats.Categories = make([]CategoryCount, 0, len(order))
	for _, label := range order {
		stats.Categories = append(stats.Categories, CategoryCount{Label: label, Count: stats.CategoryBreakdown[label]})
	}

	top := make([]CategoryCount, len(stats.Categories))
	copy(top, stats.Categories)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > TopCategoryLimit {
		top = top[:TopCategoryLimit]
	}
	stats.TopCategories = top

	return stats
}

// ProgressRatio is Purchased/Total, or 0 for an empty collection.
func (s Statistics) ProgressRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Purchased) / float64(s.Total)
}

// ProgressPercent is ProgressRatio as a rounded percentage.
func (s Statistics) ProgressPercent() int {
	return int(math.Round(s.ProgressRatio() * 100))
}

func categoryLabel(category string) string {
	if category == "" {
		return UncategorizedLabel
	}
	return category
}
