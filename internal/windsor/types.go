// Package windsor is the client for the Windsor data connector, the
// third-party service the agency's client accounts are connected through.
// It fetches raw rows per platform and maps the connector's
// platform-specific field names onto the engine's canonical metric keys;
// values stay untyped because coercion belongs to the aggregators.
package windsor

import "github.com/brightpulse/social-monitor/internal/report"

// Supported connector platforms.
const (
	PlatformTikTok    = "tiktok"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
)

// connectorResponse is the envelope every connector endpoint returns.
type connectorResponse struct {
	Data []map[string]any `json:"data"`
}

// fieldMap names the connector fields for one platform. The daily flow and
// content maps go canonical key -> connector field.
type fieldMap struct {
	date      string
	flows     map[string]string
	followers string

	contentID      string
	contentCreated string
	contentTitle   string
	content        map[string]string

	gender      string
	age         string
	hour        string
	percent     string
	activeCount string
}

var fieldMaps = map[string]fieldMap{
	PlatformTikTok: {
		date: "date",
		flows: map[string]string{
			report.MetricLikes:        "likes",
			report.MetricComments:     "comments",
			report.MetricShares:       "shares",
			report.MetricProfileViews: "profile_views",
		},
		followers:      "follower_count",
		contentID:      "embed_url",
		contentCreated: "create_time",
		contentTitle:   "video_title",
		content: map[string]string{
			report.MetricViews:         "video_views",
			report.MetricReach:         "reach",
			report.MetricLikes:         "likes",
			report.MetricComments:      "comments",
			report.MetricShares:        "shares",
			report.MetricNewFollowers:  "new_followers",
			report.MetricFullWatchRate: "full_video_watched_rate",
			report.MetricWatchTime:     "total_time_watched",
			report.MetricAvgWatchTime:  "average_time_watched",
		},
		gender:      "gender",
		age:         "audience_age",
		hour:        "hour",
		percent:     "percentage",
		activeCount: "active_followers",
	},
	PlatformFacebook: {
		date: "date",
		flows: map[string]string{
			report.MetricLikes:  "post_reactions",
			report.MetricShares: "post_shares",
		},
		followers:      "page_follows",
		contentID:      "post_id",
		contentCreated: "created_time",
		contentTitle:   "post_message",
		content: map[string]string{
			report.MetricViews:    "post_impressions",
			report.MetricReach:    "post_reach",
			report.MetricLikes:    "post_reactions",
			report.MetricComments: "post_comments",
			report.MetricShares:   "post_shares",
		},
		gender:      "gender",
		age:         "age_range",
		hour:        "hour",
		percent:     "fans_share",
		activeCount: "fans_online",
	},
	PlatformInstagram: {
		date: "date",
		flows: map[string]string{
			report.MetricLikes:        "likes",
			report.MetricComments:     "comments",
			report.MetricProfileViews: "profile_views",
		},
		followers:      "followers_count",
		contentID:      "media_id",
		contentCreated: "timestamp",
		contentTitle:   "caption",
		content: map[string]string{
			report.MetricViews:    "impressions",
			report.MetricReach:    "reach",
			report.MetricLikes:    "like_count",
			report.MetricComments: "comments_count",
			report.MetricShares:   "shares",
		},
		gender:      "audience_gender",
		age:         "audience_age",
		hour:        "hour",
		percent:     "percentage",
		activeCount: "online_followers",
	},
	PlatformYouTube: {
		date: "date",
		flows: map[string]string{
			report.MetricViews:    "views",
			report.MetricLikes:    "likes",
			report.MetricComments: "comments",
			report.MetricShares:   "shares",
		},
		followers:      "subscribers_gained_total",
		contentID:      "video_id",
		contentCreated: "video_published_at",
		contentTitle:   "video_title",
		content: map[string]string{
			report.MetricViews:        "views",
			report.MetricReach:        "impressions",
			report.MetricLikes:        "likes",
			report.MetricComments:     "comments",
			report.MetricShares:       "shares",
			report.MetricWatchTime:    "estimated_minutes_watched",
			report.MetricAvgWatchTime: "average_view_duration",
		},
		gender:      "viewer_gender",
		age:         "viewer_age",
		hour:        "hour",
		percent:     "viewer_percentage",
		activeCount: "concurrent_viewers",
	},
}

// dailyFields returns the connector field list for a platform's daily
// stream, in a stable order.
func (fm fieldMap) dailyFields() []string {
	fields := []string{fm.date}
	for _, key := range canonicalFlowOrder {
		if f, ok := fm.flows[key]; ok {
			fields = append(fields, f)
		}
	}
	return append(fields, fm.followers)
}

func (fm fieldMap) contentFields() []string {
	fields := []string{fm.contentID, fm.contentCreated, fm.contentTitle}
	for _, key := range canonicalContentOrder {
		if f, ok := fm.content[key]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Stable orders keep request URLs deterministic across runs.
var canonicalFlowOrder = []string{
	report.MetricLikes,
	report.MetricComments,
	report.MetricShares,
	report.MetricProfileViews,
	report.MetricViews,
}

var canonicalContentOrder = []string{
	report.MetricViews,
	report.MetricReach,
	report.MetricLikes,
	report.MetricComments,
	report.MetricShares,
	report.MetricNewFollowers,
	report.MetricFullWatchRate,
	report.MetricWatchTime,
	report.MetricAvgWatchTime,
}
