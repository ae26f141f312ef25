package report

import (
	"fmt"
	"math"

	"github.com/brightpulse/social-monitor/internal/pkg/numeric"
)

// TitlePolicy decides which display title wins when duplicate rows for the
// same content carry different titles.
type TitlePolicy int

const (
	// TitleFirstSeen keeps the first non-empty title encountered.
	TitleFirstSeen TitlePolicy = iota
	// TitleLongest keeps the longest non-empty title encountered. The
	// connector truncates titles in some fetch windows, so longer is
	// usually more complete.
	TitleLongest
)

// RollupContent deduplicates raw content rows by content identifier.
//
// The connector re-sends overlapping date windows, and every metric is
// cumulative as of its snapshot, so the true value per content is the
// maximum seen across duplicates: summing would double-count, taking the
// latest row would under-count when windows arrive out of order.
//
// Rows without an identifier are dropped and counted. Output preserves
// first-seen identifier order; callers sort as needed. Feeding the same
// rows in again yields an identical result.
func RollupContent(rows []ContentRow, policy TitlePolicy) ([]ContentRollup, int) {
	order := make([]string, 0, len(rows))
	byID := make(map[string]*ContentRollup)
	dropped := 0

	for _, row := range rows {
		if row.ID == "" {
			dropped++
			continue
		}
		rc := byID[row.ID]
		if rc == nil {
			rc = &ContentRollup{ID: row.ID, Metrics: make(map[string]float64)}
			byID[row.ID] = rc
			order = append(order, row.ID)
		}
		// Creation time is stable across duplicates; first non-empty wins.
		if rc.CreatedAt == "" && row.CreatedAt != "" {
			rc.CreatedAt = row.CreatedAt
		}
		rc.Title = pickTitle(rc.Title, row.Title, policy)
		for k, v := range row.Metrics {
			if f := numeric.ToNonNegative(v); f > rc.Metrics[k] {
				rc.Metrics[k] = f
			}
		}
	}

	out := make([]ContentRollup, 0, len(order))
	for _, id := range order {
		rc := byID[id]
		rc.derive()
		out = append(out, *rc)
	}
	return out, dropped
}

func pickTitle(current, candidate string, policy TitlePolicy) string {
	if candidate == "" {
		return current
	}
	switch policy {
	case TitleLongest:
		if len(candidate) > len(current) {
			return candidate
		}
	default:
		if current == "" {
			return candidate
		}
	}
	return current
}

// derive computes the rate and formatted fields once max-aggregation is
// complete. Zero reach yields a zero engagement rate, never NaN.
func (rc *ContentRollup) derive() {
	reach := rc.Metrics[MetricReach]
	if reach > 0 {
		interactions := rc.Metrics[MetricLikes] + rc.Metrics[MetricComments] + rc.Metrics[MetricShares]
		rc.EngagementRate = interactions / reach * 100
	}
	// The connector reports the full-watch rate as a 0..1 fraction.
	rc.FullWatchRate = rc.Metrics[MetricFullWatchRate] * 100
	rc.WatchTime = FormatWatchTime(rc.Metrics[MetricWatchTime])
	rc.AvgWatchTime = FormatWatchTime(rc.Metrics[MetricAvgWatchTime])
}

// FormatWatchTime renders a duration in seconds with the coarsest non-zero
// unit pair: "2ó 15p" at an hour or more, "3p 42mp" at a minute or more,
// "12mp" below that. Zero is "0mp", never an empty string.
func FormatWatchTime(seconds float64) string {
	total := int(math.Floor(numeric.ToNonNegative(seconds)))
	switch {
	case total >= 3600:
		return fmt.Sprintf("%dó %dp", total/3600, (total%3600)/60)
	case total >= 60:
		return fmt.Sprintf("%dp %dmp", total/60, total%60)
	default:
		return fmt.Sprintf("%dmp", total)
	}
}

// ContentTotals sums the period's per-content maxima and averages the
// engagement rate across all content in the period.
func ContentTotals(items []ContentRollup) map[string]float64 {
	totals := map[string]float64{"count": float64(len(items))}
	rates := make([]float64, 0, len(items))
	for _, it := range items {
		for _, k := range []string{MetricViews, MetricReach, MetricLikes, MetricComments, MetricShares, MetricNewFollowers} {
			totals[k] += it.Metrics[k]
		}
		rates = append(rates, it.EngagementRate)
	}
	totals["avg_engagement_rate"] = numeric.Average(rates)
	return totals
}
