package report

import (
	"sort"

	"github.com/brightpulse/social-monitor/internal/pkg/numeric"
)

// AggregateDaily groups raw snapshots by calendar day, sums flow metrics
// within each day, and reconstructs the follower gauge by carrying the last
// known positive value forward across the date-sorted series.
//
// Rows without a usable date are dropped and counted in Dropped. A single
// corrupt negative metric value zeroes only that row's contribution, never
// the whole day.
func AggregateDaily(rows []DailyRow) DailySeries {
	type dayGroup struct {
		flows     map[string]float64
		followers float64 // max positive observation for the day
		observed  bool    // distinguishes "saw a value" from "saw nothing"
	}

	groups := make(map[string]*dayGroup)
	dropped := 0
	for _, row := range rows {
		day, ok := dayKey(row.Date)
		if !ok {
			dropped++
			continue
		}
		g := groups[day]
		if g == nil {
			g = &dayGroup{flows: make(map[string]float64)}
			groups[day] = g
		}
		for k, v := range row.Flows {
			g.flows[k] += numeric.ToNonNegative(v)
		}
		if f := numeric.ToNumber(row.Followers); f > 0 && f > g.followers {
			g.followers = f
			g.observed = true
		}
	}

	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Strings(days)

	// Carry-forward pass: the connector reports the follower total only
	// sporadically, so unobserved days inherit the last known value.
	points := make([]DailyPoint, 0, len(days))
	lastKnown := 0.0
	for _, day := range days {
		g := groups[day]
		if g.observed {
			lastKnown = g.followers
		}
		points = append(points, DailyPoint{Date: day, Flows: g.flows, Followers: lastKnown})
	}

	return DailySeries{Points: points, Dropped: dropped}
}

// dayKey truncates a date string to its YYYY-MM-DD prefix. Timestamps pass
// through unchanged apart from the truncation.
func dayKey(date string) (string, bool) {
	if len(date) < 10 {
		return "", false
	}
	day := date[:10]
	if day[4] != '-' || day[7] != '-' {
		return "", false
	}
	return day, true
}

// Totals derives the period aggregates from an already-built series: the
// sum of every flow metric, and the follower delta between the first and
// last positive values observed in the series.
//
// The delta intentionally uses observed values rather than calendar-boundary
// values; with sparse data at period edges this is an approximation the
// product has signed off on.
func (s DailySeries) Totals() PeriodTotals {
	flows := make(map[string]float64)
	for _, p := range s.Points {
		for k, v := range p.Flows {
			flows[k] += v
		}
	}

	var first, last float64
	for _, p := range s.Points {
		if p.Followers > 0 {
			if first == 0 {
				first = p.Followers
			}
			last = p.Followers
		}
	}

	return PeriodTotals{Flows: flows, NewFollowers: last - first}
}
