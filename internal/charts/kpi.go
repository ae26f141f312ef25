package charts

import (
	"fmt"

	"github.com/brightpulse/social-monitor/internal/pkg/numeric"
	"github.com/brightpulse/social-monitor/internal/report"
)

// Reduction flattens one chart into a scalar. These four modes cover every
// KPI definition across all platforms.
type Reduction int

const (
	// ReduceSum sums the chart's first series.
	ReduceSum Reduction = iota
	// ReduceLastNonZero takes the last non-zero value of the first series.
	ReduceLastNonZero
	// ReduceAverage averages the chart's first series.
	ReduceAverage
	// ReduceRowCount counts the rows of a table chart.
	ReduceRowCount
)

// KPIDef binds a label to a source chart and a reduction mode.
type KPIDef struct {
	Label    string
	ChartKey string
	Mode     Reduction
}

// KPI is one label/value pair of the flat summary.
type KPI struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var kpiCatalog = map[string][]KPIDef{
	"tiktok": {
		{Label: "Followers", ChartKey: "tiktok_follower_growth", Mode: ReduceLastNonZero},
		{Label: "Total likes", ChartKey: "tiktok_likes_daily", Mode: ReduceSum},
		{Label: "Total comments", ChartKey: "tiktok_comments_daily", Mode: ReduceSum},
		{Label: "Total shares", ChartKey: "tiktok_shares_daily", Mode: ReduceSum},
		{Label: "Avg daily profile views", ChartKey: "tiktok_profile_views_daily", Mode: ReduceAverage},
		{Label: "Videos posted", ChartKey: "tiktok_top_videos", Mode: ReduceRowCount},
	},
	"instagram": {
		{Label: "Followers", ChartKey: "instagram_follower_growth", Mode: ReduceLastNonZero},
		{Label: "Total likes", ChartKey: "instagram_likes_daily", Mode: ReduceSum},
		{Label: "Total comments", ChartKey: "instagram_comments_daily", Mode: ReduceSum},
		{Label: "Posts published", ChartKey: "instagram_top_posts", Mode: ReduceRowCount},
	},
	"facebook": {
		{Label: "Page followers", ChartKey: "facebook_follower_growth", Mode: ReduceLastNonZero},
		{Label: "Total reactions", ChartKey: "facebook_likes_daily", Mode: ReduceSum},
		{Label: "Total shares", ChartKey: "facebook_shares_daily", Mode: ReduceSum},
		{Label: "Posts published", ChartKey: "facebook_top_posts", Mode: ReduceRowCount},
	},
	"youtube": {
		{Label: "Subscribers", ChartKey: "youtube_subscriber_growth", Mode: ReduceLastNonZero},
		{Label: "Total views", ChartKey: "youtube_views_daily", Mode: ReduceSum},
		{Label: "Avg daily likes", ChartKey: "youtube_likes_daily", Mode: ReduceAverage},
		{Label: "Videos published", ChartKey: "youtube_top_videos", Mode: ReduceRowCount},
	},
}

// KPIs generates the platform's KPI charts from the raw streams and reduces
// each into an ordered label/value list.
func KPIs(account, platform string, r report.DateRange, streams report.RawStreams) ([]KPI, error) {
	defs, ok := kpiCatalog[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	reqs := make([]Request, len(defs))
	for i, def := range defs {
		reqs[i] = Request{Key: def.ChartKey}
		if def.Mode == ReduceRowCount {
			// Row-count KPIs need the full table, not the display top-N.
			reqs[i].Params = map[string]any{"limit": -1}
		}
	}

	result, err := Generate(account, platform, r, reqs, streams)
	if err != nil {
		return nil, err
	}

	byChartKey := make(map[string]Data, len(result.Charts))
	for _, chart := range result.Charts {
		byChartKey[chart.Key] = chart
	}

	kpis := make([]KPI, len(defs))
	for i, def := range defs {
		kpis[i] = KPI{Label: def.Label, Value: reduce(byChartKey[def.ChartKey], def.Mode)}
	}
	return kpis, nil
}

// reduce flattens one chart to a scalar. An empty chart reduces to 0.
func reduce(chart Data, mode Reduction) float64 {
	if chart.Empty {
		return 0
	}
	switch mode {
	case ReduceRowCount:
		return float64(len(chart.Rows))
	case ReduceSum, ReduceLastNonZero, ReduceAverage:
		if len(chart.Series) == 0 {
			return 0
		}
		values := chart.Series[0].Values
		switch mode {
		case ReduceSum:
			return numeric.Sum(values)
		case ReduceAverage:
			return numeric.Average(values)
		default:
			for i := len(values) - 1; i >= 0; i-- {
				if values[i] != 0 {
					return values[i]
				}
			}
			return 0
		}
	}
	return 0
}
