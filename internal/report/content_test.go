package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupContentTakesMaxAcrossDuplicates(t *testing.T) {
	// Overlapping window resend: cumulative snapshots for the same video.
	rows := []ContentRow{
		{ID: "v1", Metrics: map[string]any{MetricViews: 100.0, MetricReach: 50.0, MetricLikes: 5.0}},
		{ID: "v1", Metrics: map[string]any{MetricViews: 150.0, MetricReach: 50.0, MetricLikes: 5.0}},
	}

	rollups, dropped := RollupContent(rows, TitleFirstSeen)

	require.Len(t, rollups, 1)
	assert.Equal(t, 0, dropped)
	v1 := rollups[0]
	assert.Equal(t, 150.0, v1.Metrics[MetricViews])
	assert.Equal(t, 50.0, v1.Metrics[MetricReach])
	assert.Equal(t, 5.0, v1.Metrics[MetricLikes])
	assert.Equal(t, 10.0, v1.EngagementRate) // 5/50*100
}

func TestRollupContentIdempotent(t *testing.T) {
	rows := []ContentRow{
		{ID: "a", CreatedAt: "2024-03-01T10:00:00", Metrics: map[string]any{MetricViews: 10.0}},
		{ID: "b", CreatedAt: "2024-03-02T10:00:00", Metrics: map[string]any{MetricViews: 20.0}},
		{ID: "a", CreatedAt: "2024-03-01T10:00:00", Metrics: map[string]any{MetricViews: 15.0}},
	}

	once, _ := RollupContent(rows, TitleFirstSeen)
	twice, _ := RollupContent(append(append([]ContentRow{}, rows...), rows...), TitleFirstSeen)

	assert.Equal(t, once, twice)
}

func TestRollupContentDropsRowsWithoutID(t *testing.T) {
	rows := []ContentRow{
		{ID: "", Metrics: map[string]any{MetricViews: 99.0}},
		{ID: "v1", Metrics: map[string]any{MetricViews: 1.0}},
	}

	rollups, dropped := RollupContent(rows, TitleFirstSeen)

	require.Len(t, rollups, 1)
	assert.Equal(t, 1, dropped)
}

func TestRollupContentZeroReachEngagement(t *testing.T) {
	rows := []ContentRow{
		{ID: "v1", Metrics: map[string]any{MetricLikes: 10.0, MetricComments: 5.0, MetricReach: 0.0}},
	}

	rollups, _ := RollupContent(rows, TitleFirstSeen)

	require.Len(t, rollups, 1)
	// Exact zero, never NaN or Inf.
	assert.Equal(t, 0.0, rollups[0].EngagementRate)
}

func TestRollupContentCreationTimeFirstNonEmpty(t *testing.T) {
	rows := []ContentRow{
		{ID: "v1"},
		{ID: "v1", CreatedAt: "2024-03-05T08:00:00"},
		{ID: "v1", CreatedAt: "2024-03-06T08:00:00"},
	}

	rollups, _ := RollupContent(rows, TitleFirstSeen)
	assert.Equal(t, "2024-03-05T08:00:00", rollups[0].CreatedAt)
}

func TestRollupContentTitlePolicies(t *testing.T) {
	rows := []ContentRow{
		{ID: "v1", Title: "short"},
		{ID: "v1", Title: "a much longer title"},
		{ID: "v1", Title: ""},
	}

	firstSeen, _ := RollupContent(rows, TitleFirstSeen)
	assert.Equal(t, "short", firstSeen[0].Title)

	longest, _ := RollupContent(rows, TitleLongest)
	assert.Equal(t, "a much longer title", longest[0].Title)
}

func TestRollupContentFullWatchRate(t *testing.T) {
	rows := []ContentRow{
		{ID: "v1", Metrics: map[string]any{MetricFullWatchRate: 0.37}},
	}

	rollups, _ := RollupContent(rows, TitleFirstSeen)
	assert.InDelta(t, 37.0, rollups[0].FullWatchRate, 1e-9)
}

func TestFormatWatchTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0mp"},
		{42, "42mp"},
		{60, "1p 0mp"},
		{222, "3p 42mp"},
		{3600, "1ó 0p"},
		{8100, "2ó 15p"},
		{-5, "0mp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWatchTime(tt.seconds))
	}
}

func TestContentTotals(t *testing.T) {
	rows := []ContentRow{
		{ID: "a", Metrics: map[string]any{MetricViews: 100.0, MetricReach: 50.0, MetricLikes: 5.0}},
		{ID: "b", Metrics: map[string]any{MetricViews: 200.0, MetricReach: 100.0, MetricLikes: 20.0}},
	}

	rollups, _ := RollupContent(rows, TitleFirstSeen)
	totals := ContentTotals(rollups)

	assert.Equal(t, 2.0, totals["count"])
	assert.Equal(t, 300.0, totals[MetricViews])
	assert.Equal(t, 25.0, totals[MetricLikes])
	// Mean of 10% and 20%.
	assert.InDelta(t, 15.0, totals["avg_engagement_rate"], 1e-9)
}
