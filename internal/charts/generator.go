package charts

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brightpulse/social-monitor/internal/pkg/numeric"
	"github.com/brightpulse/social-monitor/internal/report"
)

// ErrUnknownPlatform is returned when a generation request names a platform
// the catalog knows nothing about. Unlike an unknown chart key, this is
// fatal for the whole call.
var ErrUnknownPlatform = errors.New("charts: unknown platform")

// Request asks for one chart by key, with optional per-chart parameters
// (currently "limit" for table charts).
type Request struct {
	Key    string         `json:"key"`
	Params map[string]any `json:"params,omitempty"`
}

// Series is one named numeric array of a chart.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Data is one generated chart: labels plus series for line/bar charts, a
// row list for table charts, or an empty marker with the upstream error.
type Data struct {
	Key    string           `json:"key"`
	Title  string           `json:"title"`
	Type   Type             `json:"type"`
	Color  string           `json:"color,omitempty"`
	Empty  bool             `json:"empty,omitempty"`
	Error  string           `json:"error,omitempty"`
	Labels []string         `json:"labels,omitempty"`
	Series []Series         `json:"series,omitempty"`
	Rows   []map[string]any `json:"rows,omitempty"`
}

// Result is the outcome of one generation call. Unknown keys land in
// InvalidKeys as a flagged discrepancy; generation proceeds for the valid
// subset.
type Result struct {
	Account         string           `json:"account"`
	DateRange       report.DateRange `json:"dateRange"`
	ChartsRequested int              `json:"chartsRequested"`
	ChartsGenerated int              `json:"chartsGenerated"`
	InvalidKeys     []string         `json:"invalidKeys,omitempty"`
	Charts          []Data           `json:"charts"`
}

// Generate produces one chart per valid requested key from the given raw
// streams. Keys absent from the catalog, or belonging to another platform,
// are filtered out and reported, never fatal.
func Generate(account, platform string, r report.DateRange, reqs []Request, streams report.RawStreams) (*Result, error) {
	if !KnownPlatform(platform) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	result := &Result{
		Account:         account,
		DateRange:       r,
		ChartsRequested: len(reqs),
		Charts:          []Data{},
	}
	for _, req := range reqs {
		def, ok := Lookup(req.Key)
		if !ok || def.Platform != platform {
			result.InvalidKeys = append(result.InvalidKeys, req.Key)
			continue
		}
		result.Charts = append(result.Charts, generateOne(def, req, streams))
	}
	result.ChartsGenerated = len(result.Charts)
	return result, nil
}

func generateOne(def Def, req Request, streams report.RawStreams) Data {
	chart := Data{Key: def.Key, Title: def.Title, Type: def.Type, Color: def.Color}

	switch def.kind {
	case kindFlow, kindFollowers:
		if streams.DailyErr != nil {
			return emptyChart(chart, streams.DailyErr)
		}
		series := report.AggregateDaily(streams.Daily)
		if len(series.Points) == 0 {
			chart.Empty = true
			return chart
		}
		labels := make([]string, len(series.Points))
		values := make([]float64, len(series.Points))
		name := "followers"
		for i, p := range series.Points {
			labels[i] = p.Date
			if def.kind == kindFollowers {
				values[i] = p.Followers
			} else {
				values[i] = p.Flows[def.Field]
			}
		}
		if def.kind == kindFlow {
			name = def.Field
		}
		chart.Labels = labels
		chart.Series = []Series{{Name: name, Values: values}}

	case kindTopContent, kindBottomContent:
		if streams.ContentErr != nil {
			return emptyChart(chart, streams.ContentErr)
		}
		rollups, _ := report.RollupContent(streams.Content, report.TitleLongest)
		if len(rollups) == 0 {
			chart.Empty = true
			return chart
		}
		limit := def.Limit
		if raw, ok := req.Params["limit"]; ok {
			limit = int(numeric.ToNumber(raw))
		}
		var ranked []report.ContentRollup
		if def.kind == kindTopContent {
			ranked = report.TopByMetric(rollups, def.Field, limit)
		} else {
			ranked = report.BottomByMetric(rollups, def.Field, limit)
		}
		chart.Rows = contentRows(ranked)

	case kindGender:
		if streams.GenderErr != nil {
			return emptyChart(chart, streams.GenderErr)
		}
		buckets, _ := report.AggregateCategories(streams.Gender)
		fillBuckets(&chart, buckets)

	case kindAges:
		if streams.AgesErr != nil {
			return emptyChart(chart, streams.AgesErr)
		}
		buckets, _ := report.AggregateAges(streams.Ages)
		fillBuckets(&chart, buckets)

	case kindHourly:
		if streams.HourlyErr != nil {
			return emptyChart(chart, streams.HourlyErr)
		}
		if len(streams.Hourly) == 0 {
			chart.Empty = true
			return chart
		}
		hourly, _ := report.AggregateHourly(streams.Hourly)
		labels := make([]string, 24)
		for h := range labels {
			labels[h] = strconv.Itoa(h)
		}
		chart.Labels = labels
		chart.Series = []Series{{Name: "active", Values: hourly}}
	}

	return chart
}

func emptyChart(chart Data, err error) Data {
	chart.Empty = true
	chart.Error = err.Error()
	return chart
}

func fillBuckets(chart *Data, buckets []report.Bucket) {
	if len(buckets) == 0 {
		chart.Empty = true
		return
	}
	labels := make([]string, len(buckets))
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		values[i] = b.Percent
	}
	chart.Labels = labels
	chart.Series = []Series{{Name: "percent", Values: values}}
}

func contentRows(items []report.ContentRollup) []map[string]any {
	rows := make([]map[string]any, len(items))
	for i, it := range items {
		rows[i] = map[string]any{
			"id":             it.ID,
			"title":          it.Title,
			"createdAt":      it.CreatedAt,
			"views":          it.Metrics[report.MetricViews],
			"reach":          it.Metrics[report.MetricReach],
			"likes":          it.Metrics[report.MetricLikes],
			"comments":       it.Metrics[report.MetricComments],
			"shares":         it.Metrics[report.MetricShares],
			"engagementRate": it.EngagementRate,
			"fullWatchRate":  it.FullWatchRate,
			"watchTime":      it.WatchTime,
			"avgWatchTime":   it.AvgWatchTime,
		}
	}
	return rows
}
