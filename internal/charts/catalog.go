// Package charts projects aggregated report data into named chart
// definitions and flat KPI summaries. A static catalog maps stable string
// keys to chart metadata; generation validates requested keys against the
// catalog and packages aggregator output into each chart's declared type.
package charts

import "github.com/brightpulse/social-monitor/internal/report"

// Type is the presentation type of a chart.
type Type string

const (
	Line  Type = "line"
	Bar   Type = "bar"
	Table Type = "table"
)

// kind selects which aggregator feeds a chart.
type kind int

const (
	kindFlow kind = iota
	kindFollowers
	kindTopContent
	kindBottomContent
	kindGender
	kindAges
	kindHourly
)

// Def describes one chart in the catalog. Keys are stable: the frontend,
// the generation API, and the KPI catalog all refer to charts by key.
type Def struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Platform string `json:"platform"`
	Type     Type   `json:"type"`
	Color    string `json:"color"`
	Field    string `json:"field,omitempty"`
	Limit    int    `json:"limit,omitempty"`

	kind kind
}

var catalog = []Def{
	// TikTok
	{Key: "tiktok_follower_growth", Title: "Follower growth", Category: "growth", Platform: "tiktok", Type: Line, Color: "#FE2C55", kind: kindFollowers},
	{Key: "tiktok_likes_daily", Title: "Likes per day", Category: "engagement", Platform: "tiktok", Type: Bar, Color: "#FE2C55", Field: report.MetricLikes, kind: kindFlow},
	{Key: "tiktok_comments_daily", Title: "Comments per day", Category: "engagement", Platform: "tiktok", Type: Bar, Color: "#25F4EE", Field: report.MetricComments, kind: kindFlow},
	{Key: "tiktok_shares_daily", Title: "Shares per day", Category: "engagement", Platform: "tiktok", Type: Bar, Color: "#161823", Field: report.MetricShares, kind: kindFlow},
	{Key: "tiktok_profile_views_daily", Title: "Profile views per day", Category: "reach", Platform: "tiktok", Type: Line, Color: "#FE2C55", Field: report.MetricProfileViews, kind: kindFlow},
	{Key: "tiktok_top_videos", Title: "Best performing videos", Category: "content", Platform: "tiktok", Type: Table, Field: report.MetricViews, Limit: 3, kind: kindTopContent},
	{Key: "tiktok_worst_videos", Title: "Weakest videos", Category: "content", Platform: "tiktok", Type: Table, Field: report.MetricViews, Limit: 3, kind: kindBottomContent},
	{Key: "tiktok_audience_gender", Title: "Audience by gender", Category: "audience", Platform: "tiktok", Type: Bar, Color: "#25F4EE", kind: kindGender},
	{Key: "tiktok_audience_age", Title: "Audience by age", Category: "audience", Platform: "tiktok", Type: Bar, Color: "#25F4EE", kind: kindAges},
	{Key: "tiktok_activity_hours", Title: "Follower activity by hour", Category: "audience", Platform: "tiktok", Type: Line, Color: "#161823", kind: kindHourly},

	// Instagram
	{Key: "instagram_follower_growth", Title: "Follower growth", Category: "growth", Platform: "instagram", Type: Line, Color: "#E1306C", kind: kindFollowers},
	{Key: "instagram_likes_daily", Title: "Likes per day", Category: "engagement", Platform: "instagram", Type: Bar, Color: "#E1306C", Field: report.MetricLikes, kind: kindFlow},
	{Key: "instagram_comments_daily", Title: "Comments per day", Category: "engagement", Platform: "instagram", Type: Bar, Color: "#833AB4", Field: report.MetricComments, kind: kindFlow},
	{Key: "instagram_top_posts", Title: "Best performing posts", Category: "content", Platform: "instagram", Type: Table, Field: report.MetricViews, Limit: 3, kind: kindTopContent},
	{Key: "instagram_audience_gender", Title: "Audience by gender", Category: "audience", Platform: "instagram", Type: Bar, Color: "#833AB4", kind: kindGender},
	{Key: "instagram_audience_age", Title: "Audience by age", Category: "audience", Platform: "instagram", Type: Bar, Color: "#833AB4", kind: kindAges},

	// Facebook
	{Key: "facebook_follower_growth", Title: "Page follower growth", Category: "growth", Platform: "facebook", Type: Line, Color: "#1877F2", kind: kindFollowers},
	{Key: "facebook_likes_daily", Title: "Reactions per day", Category: "engagement", Platform: "facebook", Type: Bar, Color: "#1877F2", Field: report.MetricLikes, kind: kindFlow},
	{Key: "facebook_shares_daily", Title: "Shares per day", Category: "engagement", Platform: "facebook", Type: Bar, Color: "#42B72A", Field: report.MetricShares, kind: kindFlow},
	{Key: "facebook_top_posts", Title: "Best performing posts", Category: "content", Platform: "facebook", Type: Table, Field: report.MetricViews, Limit: 3, kind: kindTopContent},

	// YouTube
	{Key: "youtube_subscriber_growth", Title: "Subscriber growth", Category: "growth", Platform: "youtube", Type: Line, Color: "#FF0000", kind: kindFollowers},
	{Key: "youtube_views_daily", Title: "Views per day", Category: "reach", Platform: "youtube", Type: Bar, Color: "#FF0000", Field: report.MetricViews, kind: kindFlow},
	{Key: "youtube_likes_daily", Title: "Likes per day", Category: "engagement", Platform: "youtube", Type: Bar, Color: "#282828", Field: report.MetricLikes, kind: kindFlow},
	{Key: "youtube_top_videos", Title: "Best performing videos", Category: "content", Platform: "youtube", Type: Table, Field: report.MetricViews, Limit: 3, kind: kindTopContent},
	{Key: "youtube_audience_gender", Title: "Audience by gender", Category: "audience", Platform: "youtube", Type: Bar, Color: "#FF0000", kind: kindGender},
	{Key: "youtube_audience_age", Title: "Audience by age", Category: "audience", Platform: "youtube", Type: Bar, Color: "#FF0000", kind: kindAges},
}

var byKey = func() map[string]Def {
	m := make(map[string]Def, len(catalog))
	for _, def := range catalog {
		m[def.Key] = def
	}
	return m
}()

// Lookup returns the catalog entry for a chart key.
func Lookup(key string) (Def, bool) {
	def, ok := byKey[key]
	return def, ok
}

// ByPlatform returns the catalog entries for one platform, in catalog order.
func ByPlatform(platform string) []Def {
	defs := make([]Def, 0, 10)
	for _, def := range catalog {
		if def.Platform == platform {
			defs = append(defs, def)
		}
	}
	return defs
}

// KnownPlatform reports whether any catalog entry targets the platform.
func KnownPlatform(platform string) bool {
	return len(ByPlatform(platform)) > 0
}
