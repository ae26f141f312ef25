// Package report implements the aggregation engine that turns raw connector
// rows (daily account snapshots, per-video rows, demographic rows) into the
// deduplicated series, rollups, rankings, and derived metrics that monthly
// reports, charts, and KPIs are built from.
//
// Every function in this package is pure over its input slice and total over
// malformed data: missing dates drop the row (counted), malformed numerics
// coerce to zero. Report availability wins over strict correctness here;
// that trade-off is deliberate and callers get the dropped-row counts to
// make it observable.
package report

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadMonth is returned for a month string that is not "YYYY-MM".
var ErrBadMonth = errors.New("report: invalid month")

// Canonical metric keys. The connector layer maps platform-specific field
// names onto these before rows reach the aggregators.
const (
	MetricLikes        = "likes"
	MetricComments     = "comments"
	MetricShares       = "shares"
	MetricProfileViews = "profile_views"

	MetricViews         = "views"
	MetricReach         = "reach"
	MetricNewFollowers  = "new_followers"
	MetricFullWatchRate = "full_watch_rate"
	MetricWatchTime     = "total_watch_time"
	MetricAvgWatchTime  = "avg_watch_time"
)

// DateRange is an inclusive calendar-day range.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthRange returns the date range of a "YYYY-MM" month and the range of
// the month immediately before it.
func MonthRange(month string) (cur DateRange, prev DateRange, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return DateRange{}, DateRange{}, fmt.Errorf("%w: %q", ErrBadMonth, month)
	}
	cur = DateRange{From: t, To: t.AddDate(0, 1, -1)}
	p := t.AddDate(0, -1, 0)
	prev = DateRange{From: p, To: p.AddDate(0, 1, -1)}
	return cur, prev, nil
}

// DailyRow is one raw account-level snapshot for a calendar day. The same
// day may appear in several rows when fetch windows overlap; flow metrics
// are summed per day, the follower gauge is not.
//
// Values stay untyped (`any`) on purpose: the connector returns a mix of
// floats, strings, and nulls, and coercion is the aggregator's job.
type DailyRow struct {
	Date      string         // YYYY-MM-DD or an ISO timestamp
	Flows     map[string]any // counts accrued since the previous snapshot
	Followers any            // total follower count as of this snapshot
}

// DailyPoint is one row of the aggregated daily series.
type DailyPoint struct {
	Date      string             `json:"date"`
	Flows     map[string]float64 `json:"flows"`
	Followers float64            `json:"followers"`
}

// DailySeries is the deduplicated daily series: exactly one point per
// distinct input date, ascending by date.
type DailySeries struct {
	Points  []DailyPoint `json:"points"`
	Dropped int          `json:"dropped,omitempty"`
}

// PeriodTotals holds the scalar aggregates of one reporting period.
type PeriodTotals struct {
	Flows        map[string]float64 `json:"flows"`
	NewFollowers float64            `json:"newFollowers"`
}

// ContentRow is one raw snapshot of a single video/post for some fetch
// window. Metrics are cumulative as of the snapshot; overlapping windows
// re-send the same content with equal or higher values.
type ContentRow struct {
	ID        string // embed URL or platform content id
	CreatedAt string
	Title     string
	Metrics   map[string]any
}

// ContentRollup is the deduplicated record for one piece of content, with
// per-metric maxima across all raw rows and the derived rate fields.
type ContentRollup struct {
	ID             string             `json:"id"`
	CreatedAt      string             `json:"createdAt"`
	Title          string             `json:"title"`
	Metrics        map[string]float64 `json:"metrics"`
	EngagementRate float64            `json:"engagementRate"`
	FullWatchRate  float64            `json:"fullWatchRate"`
	WatchTime      string             `json:"watchTime"`
	AvgWatchTime   string             `json:"avgWatchTime"`
}

// CategoryRow is one raw demographic row: a category label (gender value,
// age range, country, city) and its percentage for that row's sample.
type CategoryRow struct {
	Category string
	Value    any
}

// HourRow is one raw audience-activity row: an hour of day and an active
// audience count for that hour.
type HourRow struct {
	Hour  any
	Value any
}

// Bucket is a named demographic category with its averaged percentage.
type Bucket struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Account identifies one connected platform account of a company.
type Account struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
}

// Company is the injected mapping from a company to its connected platform
// accounts. It comes from configuration; nothing in this package holds a
// company table of its own.
type Company struct {
	ID       string
	Name     string
	Accounts map[string]string // platform -> connector account id
}
