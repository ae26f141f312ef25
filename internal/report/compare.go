package report

// Change returns the percent change from previous to current.
//
// A zero previous value cannot divide, so the policy is explicit: growth
// from nothing reads as 100, nothing-to-nothing reads as 0. The two cases
// stay distinguishable without ever producing NaN or Inf.
func Change(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// CompareTotals computes the per-metric percent change between two period
// aggregates. The key set is the union of both periods' flow metrics, plus
// the follower delta under "new_followers".
func CompareTotals(current, previous PeriodTotals) map[string]float64 {
	change := make(map[string]float64, len(current.Flows)+1)
	for k, cur := range current.Flows {
		change[k] = Change(cur, previous.Flows[k])
	}
	for k, prev := range previous.Flows {
		if _, done := change[k]; !done {
			change[k] = Change(0, prev)
		}
	}
	change[MetricNewFollowers] = Change(current.NewFollowers, previous.NewFollowers)
	return change
}
