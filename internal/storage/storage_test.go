package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpulse/social-monitor/internal/config"
	"github.com/brightpulse/social-monitor/internal/report"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewCache(config.CacheConfig{
		RedisAddr:  mr.Addr(),
		TTLMinutes: 60,
	})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func sampleReport() *report.Report {
	return &report.Report{
		Company:  "acme",
		Month:    "2024-03",
		Platform: "tiktok",
		Data: report.ReportData{
			Daily: report.DailySection{
				Points: []report.DailyPoint{
					{Date: "2024-03-01", Flows: map[string]float64{report.MetricLikes: 8}, Followers: 1000},
				},
				Totals: report.PeriodTotals{
					Flows: map[string]float64{report.MetricLikes: 8},
				},
			},
		},
	}
}

func TestReportRoundTrip(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	_, hit := cache.GetReport(ctx, "acme", "tiktok", "2024-03")
	assert.False(t, hit)

	cache.SetReport(ctx, sampleReport())

	got, hit := cache.GetReport(ctx, "acme", "tiktok", "2024-03")
	require.True(t, hit)
	assert.Equal(t, "acme", got.Company)
	require.Len(t, got.Data.Daily.Points, 1)
	assert.Equal(t, 8.0, got.Data.Daily.Points[0].Flows[report.MetricLikes])
}

func TestReportKeysAreScoped(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	cache.SetReport(ctx, sampleReport())

	_, hit := cache.GetReport(ctx, "acme", "tiktok", "2024-04")
	assert.False(t, hit, "different month must miss")
	_, hit = cache.GetReport(ctx, "acme", "instagram", "2024-03")
	assert.False(t, hit, "different platform must miss")
	_, hit = cache.GetReport(ctx, "other", "tiktok", "2024-03")
	assert.False(t, hit, "different company must miss")
}

func TestReportExpires(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	cache.SetReport(ctx, sampleReport())
	mr.FastForward(61 * time.Minute)

	_, hit := cache.GetReport(ctx, "acme", "tiktok", "2024-03")
	assert.False(t, hit)
}

func TestCorruptEntryEvicted(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("report:acme:tiktok:2024-03", "{not json"))

	_, hit := cache.GetReport(ctx, "acme", "tiktok", "2024-03")
	assert.False(t, hit)
	assert.False(t, mr.Exists("report:acme:tiktok:2024-03"))
}

func TestNewCacheUnreachableRedis(t *testing.T) {
	_, err := NewCache(config.CacheConfig{RedisAddr: "127.0.0.1:1", TTLMinutes: 1})
	assert.Error(t, err)
}
