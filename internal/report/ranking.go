package report

import "sort"

// TopByMetric returns the n content items with the highest value of the
// given metric. The sort is stable: ties keep input order, and repeated
// calls over the same input return the same ranking.
func TopByMetric(items []ContentRollup, metric string, n int) []ContentRollup {
	ranked := make([]ContentRollup, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metrics[metric] > ranked[j].Metrics[metric]
	})
	return clip(ranked, n)
}

// BottomByMetric returns the n content items with the lowest value of the
// given metric, with the same stability guarantee as TopByMetric.
func BottomByMetric(items []ContentRollup, metric string, n int) []ContentRollup {
	ranked := make([]ContentRollup, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metrics[metric] < ranked[j].Metrics[metric]
	})
	return clip(ranked, n)
}

// SortByNewest orders content by creation timestamp descending, for
// listings. ISO timestamps compare correctly as strings.
func SortByNewest(items []ContentRollup) []ContentRollup {
	sorted := make([]ContentRollup, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

func clip(items []ContentRollup, n int) []ContentRollup {
	if n >= 0 && n < len(items) {
		return items[:n]
	}
	return items
}
