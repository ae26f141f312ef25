package report

import (
	"strings"

	"github.com/brightpulse/social-monitor/internal/pkg/numeric"
)

// AggregateCategories averages the per-row percentages of a categorical
// demographic stream (gender, country, city) per label.
//
// The mean is unweighted by per-row audience size; with very uneven sample
// sizes this biases toward small samples, which the product accepts.
// Some platforms report fractions (0..1), others report percentages; when
// no value in the stream exceeds 1 the whole stream is treated as
// fractional and rescaled to percentages.
//
// Rows without a label are dropped and counted. Labels appear in
// first-seen order; a label with no contributing rows never appears.
func AggregateCategories(rows []CategoryRow) ([]Bucket, int) {
	order := make([]string, 0, 8)
	sums := make(map[string]float64)
	counts := make(map[string]int)
	dropped := 0
	maxSeen := 0.0

	for _, row := range rows {
		if row.Category == "" {
			dropped++
			continue
		}
		v := numeric.ToNonNegative(row.Value)
		if _, ok := counts[row.Category]; !ok {
			order = append(order, row.Category)
		}
		sums[row.Category] += v
		counts[row.Category]++
		if v > maxSeen {
			maxSeen = v
		}
	}

	scale := 1.0
	if maxSeen <= 1 {
		scale = 100
	}

	buckets := make([]Bucket, 0, len(order))
	for _, label := range order {
		buckets = append(buckets, Bucket{
			Label:   label,
			Percent: sums[label] / float64(counts[label]) * scale,
		})
	}
	return buckets, dropped
}

// ageBucketDefs is the canonical ordered age bucket set. Raw labels are
// heterogeneous across platforms ("AGE_18_24", "18-24", "age18to24"), so
// matching is by token substring; a raw 55-64 or 65+ range folds into 55+.
var ageBucketDefs = []struct {
	Label  string
	Tokens []string
}{
	{"13-17", []string{"13", "teen"}},
	{"18-24", []string{"18"}},
	{"25-34", []string{"25"}},
	{"35-44", []string{"35"}},
	{"45-54", []string{"45"}},
	{"55+", []string{"55", "65"}},
}

func canonicalAge(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, def := range ageBucketDefs {
		for _, token := range def.Tokens {
			if strings.Contains(lower, token) {
				return def.Label, true
			}
		}
	}
	return "", false
}

// AggregateAges averages per-row percentages into the canonical age
// buckets, in canonical order. Unmatched raw labels are dropped and
// counted; buckets with no contributing rows are omitted, not emitted
// as zero. Scale normalization follows AggregateCategories.
func AggregateAges(rows []CategoryRow) ([]Bucket, int) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	dropped := 0
	maxSeen := 0.0

	for _, row := range rows {
		label, ok := canonicalAge(row.Category)
		if !ok {
			dropped++
			continue
		}
		v := numeric.ToNonNegative(row.Value)
		sums[label] += v
		counts[label]++
		if v > maxSeen {
			maxSeen = v
		}
	}

	scale := 1.0
	if maxSeen <= 1 {
		scale = 100
	}

	buckets := make([]Bucket, 0, len(ageBucketDefs))
	for _, def := range ageBucketDefs {
		if counts[def.Label] == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			Label:   def.Label,
			Percent: sums[def.Label] / float64(counts[def.Label]) * scale,
		})
	}
	return buckets, dropped
}

// AggregateHourly averages the audience-activity count per hour of day
// across all rows. Averaging (not summing) keeps re-fetched overlapping
// windows from inflating activity. The result always has 24 entries;
// hours with no data read 0.
func AggregateHourly(rows []HourRow) ([]float64, int) {
	var sums [24]float64
	var counts [24]int
	dropped := 0

	for _, row := range rows {
		h := int(numeric.ToNumber(row.Hour))
		if h < 0 || h > 23 {
			dropped++
			continue
		}
		sums[h] += numeric.ToNonNegative(row.Value)
		counts[h]++
	}

	out := make([]float64, 24)
	for h := range sums {
		if counts[h] > 0 {
			out[h] = sums[h] / float64(counts[h])
		}
	}
	return out, dropped
}
