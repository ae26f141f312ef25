package charts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpulse/social-monitor/internal/report"
)

func marchRange(t *testing.T) report.DateRange {
	t.Helper()
	cur, _, err := report.MonthRange("2024-03")
	require.NoError(t, err)
	return cur
}

func tiktokStreams() report.RawStreams {
	return report.RawStreams{
		Daily: []report.DailyRow{
			{Date: "2024-03-01", Flows: map[string]any{report.MetricLikes: 5.0}, Followers: 1000.0},
			{Date: "2024-03-02", Flows: map[string]any{report.MetricLikes: 7.0}},
		},
		Content: []report.ContentRow{
			{ID: "v1", CreatedAt: "2024-03-01T10:00:00", Metrics: map[string]any{report.MetricViews: 100.0}},
			{ID: "v2", CreatedAt: "2024-03-02T10:00:00", Metrics: map[string]any{report.MetricViews: 300.0}},
			{ID: "v3", CreatedAt: "2024-03-03T10:00:00", Metrics: map[string]any{report.MetricViews: 200.0}},
		},
		Gender: []report.CategoryRow{
			{Category: "female", Value: 0.6},
			{Category: "male", Value: 0.4},
		},
		Ages:   []report.CategoryRow{{Category: "18-24", Value: 0.8}},
		Hourly: []report.HourRow{{Hour: 21, Value: 80.0}},
	}
}

func TestGenerateLineChart(t *testing.T) {
	reqs := []Request{{Key: "tiktok_likes_daily"}}

	result, err := Generate("tt-1", "tiktok", marchRange(t), reqs, tiktokStreams())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ChartsRequested)
	assert.Equal(t, 1, result.ChartsGenerated)
	require.Len(t, result.Charts, 1)

	chart := result.Charts[0]
	assert.Equal(t, Bar, chart.Type)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, chart.Labels)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []float64{5, 7}, chart.Series[0].Values)
}

func TestGenerateFollowerChartCarriesForward(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_follower_growth"}}, tiktokStreams())

	require.NoError(t, err)
	chart := result.Charts[0]
	assert.Equal(t, []float64{1000, 1000}, chart.Series[0].Values)
}

func TestGenerateTableChart(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_top_videos"}}, tiktokStreams())

	require.NoError(t, err)
	chart := result.Charts[0]
	assert.Equal(t, Table, chart.Type)
	require.Len(t, chart.Rows, 3)
	assert.Equal(t, "v2", chart.Rows[0]["id"])
	assert.Equal(t, "v3", chart.Rows[1]["id"])
}

func TestGenerateTableChartLimitParam(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_top_videos", Params: map[string]any{"limit": 1}}}, tiktokStreams())

	require.NoError(t, err)
	require.Len(t, result.Charts[0].Rows, 1)
	assert.Equal(t, "v2", result.Charts[0].Rows[0]["id"])
}

func TestGenerateWorstVideos(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_worst_videos", Params: map[string]any{"limit": 2}}}, tiktokStreams())

	require.NoError(t, err)
	rows := result.Charts[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "v1", rows[0]["id"])
	assert.Equal(t, "v3", rows[1]["id"])
}

func TestGenerateDemographicCharts(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_audience_gender"}, {Key: "tiktok_audience_age"}, {Key: "tiktok_activity_hours"}},
		tiktokStreams())

	require.NoError(t, err)
	require.Len(t, result.Charts, 3)

	gender := result.Charts[0]
	assert.Equal(t, []string{"female", "male"}, gender.Labels)
	assert.InDelta(t, 60.0, gender.Series[0].Values[0], 1e-9)

	age := result.Charts[1]
	assert.Equal(t, []string{"18-24"}, age.Labels)

	hours := result.Charts[2]
	require.Len(t, hours.Labels, 24)
	assert.Equal(t, 80.0, hours.Series[0].Values[21])
}

func TestGenerateFiltersUnknownKeys(t *testing.T) {
	reqs := []Request{
		{Key: "tiktok_likes_daily"},
		{Key: "no_such_chart"},
		{Key: "instagram_likes_daily"}, // wrong platform for this call
	}

	result, err := Generate("tt-1", "tiktok", marchRange(t), reqs, tiktokStreams())

	require.NoError(t, err)
	assert.Equal(t, 3, result.ChartsRequested)
	assert.Equal(t, 1, result.ChartsGenerated)
	assert.Equal(t, []string{"no_such_chart", "instagram_likes_daily"}, result.InvalidKeys)
}

func TestGenerateUnknownPlatformFatal(t *testing.T) {
	_, err := Generate("x", "myspace", marchRange(t), []Request{{Key: "tiktok_likes_daily"}}, report.RawStreams{})
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestGenerateStreamFailureMarksChartEmpty(t *testing.T) {
	streams := tiktokStreams()
	streams.DailyErr = errors.New("connector unavailable")

	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_likes_daily"}, {Key: "tiktok_top_videos"}}, streams)

	require.NoError(t, err)
	require.Len(t, result.Charts, 2)
	assert.True(t, result.Charts[0].Empty)
	assert.Equal(t, "connector unavailable", result.Charts[0].Error)
	// Content stream was fine; its chart generates normally.
	assert.False(t, result.Charts[1].Empty)
}

func TestGenerateEmptyInputEmptyChartWithoutError(t *testing.T) {
	result, err := Generate("tt-1", "tiktok", marchRange(t),
		[]Request{{Key: "tiktok_likes_daily"}}, report.RawStreams{})

	require.NoError(t, err)
	assert.True(t, result.Charts[0].Empty)
	assert.Empty(t, result.Charts[0].Error)
}

func TestCatalogKeysMatchPlatformPrefix(t *testing.T) {
	for _, platform := range []string{"tiktok", "facebook", "instagram", "youtube"} {
		for _, def := range ByPlatform(platform) {
			assert.Equal(t, platform, def.Platform)
			assert.NotEmpty(t, def.Title)
		}
	}
	_, ok := Lookup("tiktok_follower_growth")
	assert.True(t, ok)
}

func TestMonthRangeBoundaries(t *testing.T) {
	cur, prev, err := report.MonthRange("2024-01")
	require.NoError(t, err)
	assert.Equal(t, time.December, prev.From.Month())
	assert.Equal(t, 31, cur.To.Day())
}
