package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightpulse/social-monitor/internal/pkg/logger"
)

// ErrNoAccount is returned when a company has no connected account for the
// requested platform.
var ErrNoAccount = errors.New("report: company has no account for platform")

// RawStreams carries the resolved raw rows for one account and period, one
// slice (and one error) per stream. The fetch layer resolves all streams
// before the engine sees any of them; how concurrently it did so is its
// own business.
type RawStreams struct {
	Daily    []DailyRow
	DailyErr error

	Content    []ContentRow
	ContentErr error

	Gender    []CategoryRow
	GenderErr error

	Ages    []CategoryRow
	AgesErr error

	Hourly    []HourRow
	HourlyErr error
}

// StreamFetcher is the external collaborator that retrieves raw rows from
// the data connector. The assembler owns no retry or caching behavior;
// whatever policy the fetcher applies is invisible here.
type StreamFetcher interface {
	FetchStreams(ctx context.Context, account Account, r DateRange) RawStreams
	FetchDaily(ctx context.Context, account Account, r DateRange) ([]DailyRow, error)
}

// Report is the assembled result for one (company, month, platform).
type Report struct {
	Company   string     `json:"company"`
	Month     string     `json:"month"`
	Platform  string     `json:"platform"`
	DateRange DateRange  `json:"dateRange"`
	Data      ReportData `json:"data"`
}

// ReportData groups the report sections.
type ReportData struct {
	Daily        DailySection        `json:"daily"`
	Video        VideoSection        `json:"video"`
	Demographics DemographicsSection `json:"demographics"`
}

// DailySection holds the daily series, its period totals, and the change
// versus the previous month.
type DailySection struct {
	Empty   bool               `json:"empty,omitempty"`
	Error   string             `json:"error,omitempty"`
	Points  []DailyPoint       `json:"points,omitempty"`
	Totals  PeriodTotals       `json:"totals"`
	Change  map[string]float64 `json:"change,omitempty"`
	Dropped int                `json:"dropped,omitempty"`
}

// VideoSection holds the deduplicated content list (newest first), the
// top-ranked items, and the content totals.
type VideoSection struct {
	Empty   bool               `json:"empty,omitempty"`
	Error   string             `json:"error,omitempty"`
	Items   []ContentRollup    `json:"items,omitempty"`
	Top     []ContentRollup    `json:"top,omitempty"`
	Totals  map[string]float64 `json:"totals"`
	Dropped int                `json:"dropped,omitempty"`
}

// DemographicsSection holds the averaged audience distributions. A failed
// demographic stream degrades to an empty slice so the rest of the report
// still renders.
type DemographicsSection struct {
	Gender []Bucket  `json:"gender"`
	Ages   []Bucket  `json:"ages"`
	Hourly []float64 `json:"hourly"`
}

// Assembler builds monthly reports by running the aggregators over fetched
// raw streams. It holds no state between calls; concurrent reports for
// different companies need no synchronization.
type Assembler struct {
	fetcher StreamFetcher
	titles  TitlePolicy
	topN    int
}

// NewAssembler creates an Assembler with the default title tie-break
// (longest string) and top-3 ranking.
func NewAssembler(fetcher StreamFetcher) *Assembler {
	return &Assembler{fetcher: fetcher, titles: TitleLongest, topN: 3}
}

// SetTopN overrides how many items the ranked content list carries.
func (a *Assembler) SetTopN(n int) {
	if n > 0 {
		a.topN = n
	}
}

// MonthlyReport assembles one report for the given company, platform, and
// "YYYY-MM" month. A failed daily or content stream marks that section
// empty with its error; a failed demographic sub-stream degrades to an
// empty distribution. The result is always fully shaped, never partial in
// an ambiguous way.
func (a *Assembler) MonthlyReport(ctx context.Context, company Company, platform, month string) (*Report, error) {
	cur, prev, err := MonthRange(month)
	if err != nil {
		return nil, err
	}
	accountID, ok := company.Accounts[platform]
	if !ok || accountID == "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoAccount, company.ID, platform)
	}
	account := Account{Platform: platform, ID: accountID}

	streams := a.fetcher.FetchStreams(ctx, account, cur)

	rpt := &Report{
		Company:   company.ID,
		Month:     month,
		Platform:  platform,
		DateRange: cur,
	}
	rpt.Data.Daily = a.buildDaily(ctx, account, prev, streams)
	rpt.Data.Video = a.buildVideo(streams)
	rpt.Data.Demographics = buildDemographics(streams)
	return rpt, nil
}

func (a *Assembler) buildDaily(ctx context.Context, account Account, prev DateRange, streams RawStreams) DailySection {
	if streams.DailyErr != nil {
		return DailySection{Empty: true, Error: streams.DailyErr.Error()}
	}
	series := AggregateDaily(streams.Daily)
	section := DailySection{
		Points:  series.Points,
		Totals:  series.Totals(),
		Dropped: series.Dropped,
	}

	// Month-over-month change needs last month's daily rows as well. If
	// that fetch fails the report ships without the comparison.
	prevRows, err := a.fetcher.FetchDaily(ctx, account, prev)
	if err != nil {
		logger.Warn("previous period unavailable, skipping comparison",
			"platform", account.Platform, "account", account.ID, "error", err.Error())
		return section
	}
	section.Change = CompareTotals(section.Totals, AggregateDaily(prevRows).Totals())
	return section
}

func (a *Assembler) buildVideo(streams RawStreams) VideoSection {
	if streams.ContentErr != nil {
		return VideoSection{Empty: true, Error: streams.ContentErr.Error()}
	}
	rollups, dropped := RollupContent(streams.Content, a.titles)
	return VideoSection{
		Items:   SortByNewest(rollups),
		Top:     TopByMetric(rollups, MetricViews, a.topN),
		Totals:  ContentTotals(rollups),
		Dropped: dropped,
	}
}

func buildDemographics(streams RawStreams) DemographicsSection {
	section := DemographicsSection{
		Gender: []Bucket{},
		Ages:   []Bucket{},
		Hourly: make([]float64, 24),
	}
	if streams.GenderErr == nil {
		section.Gender, _ = AggregateCategories(streams.Gender)
	} else {
		logger.Warn("gender stream unavailable", "error", streams.GenderErr.Error())
	}
	if streams.AgesErr == nil {
		section.Ages, _ = AggregateAges(streams.Ages)
	} else {
		logger.Warn("age stream unavailable", "error", streams.AgesErr.Error())
	}
	if streams.HourlyErr == nil {
		section.Hourly, _ = AggregateHourly(streams.Hourly)
	} else {
		logger.Warn("hourly activity stream unavailable", "error", streams.HourlyErr.Error())
	}
	return section
}
